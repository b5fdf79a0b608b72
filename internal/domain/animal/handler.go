package animal

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"favorites/internal/pkg/apperror"
	"favorites/internal/pkg/dberr"
	"favorites/internal/pkg/response"
	"favorites/internal/pkg/validator"
)

// Handler serves the demo animals API.
type Handler struct {
	repo *Repository
}

// NewHandler returns a Handler backed by repo.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List returns all animals with the caller's is_favorite flag.
// ?favorites_only=true keeps only the caller's favorites.
func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	onlyFavorites := c.Query("favorites_only") == "true"
	rows, err := h.repo.ListWithFavorite(c.Request.Context(), userID, onlyFavorites)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ToAnimalListResponse(rows))
}

// Get returns one animal with the caller's is_favorite flag.
func (h *Handler) Get(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.FromError(c, apperror.New(apperror.ErrCodeBadRequest, "Invalid animal id"))
		return
	}

	row, err := h.repo.GetWithFavorite(c.Request.Context(), id, userID)
	if err != nil {
		if dberr.IsNotFound(err) {
			response.FromError(c, apperror.Wrap(err, apperror.ErrCodeNotFound, "Animal not found"))
			return
		}
		response.FromError(c, err)
		return
	}

	resp := ToAnimalResponse(&row.Record)
	resp.IsFavorite = row.IsFavorite
	response.Success(c, http.StatusOK, resp)
}

// Create adds an animal; the name is trimmed before validation.
func (h *Handler) Create(c *gin.Context) {
	var req CreateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, string(apperror.ErrCodeValidation), "Invalid animal", fields)
		return
	}

	a := &Animal{Name: req.Name}
	if err := h.repo.Create(c.Request.Context(), a); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, ToAnimalResponse(a))
}
