package favorite

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"favorites/internal/domain/contenttype"
	"favorites/internal/pkg/apperror"
	"favorites/internal/pkg/dberr"
	"favorites/internal/pkg/response"
)

// Handler serves the favorites API for any registered content type.
type Handler struct {
	repo *Repository
}

// NewHandler returns a Handler backed by repo.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// GetFavorites lists the caller's favorites a page at a time, optionally of
// one type (?type=animal&page=1&per_page=20).
func (h *Handler) GetFavorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var ct *contenttype.ContentType
	if typeName := c.Query("type"); typeName != "" {
		var err error
		ct, err = h.repo.Registry().ForName(typeName)
		if err != nil {
			response.FromError(c, mapError(err))
			return
		}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	favorites, total, err := h.repo.ListForUser(c.Request.Context(), userID, ct, perPage, (page-1)*perPage)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ToFavoriteListResponse(favorites, total, page, perPage))
}

// AddFavorite favorites the :type/:id target for the caller.
func (h *Handler) AddFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	target, ok := h.target(c)
	if !ok {
		return
	}

	fav, err := h.repo.Create(c.Request.Context(), userID, target)
	if err != nil {
		response.FromError(c, mapError(err))
		return
	}

	response.Success(c, http.StatusCreated, ToFavoriteResponse(fav))
}

// RemoveFavorite deletes the caller's favorite of :type/:id.
func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ct, objectID, ok := h.ref(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteRef(c.Request.Context(), userID, ct, objectID); err != nil {
		response.FromError(c, mapError(err))
		return
	}

	c.Status(http.StatusNoContent)
}

// CheckFavorite reports whether the caller has favorited :type/:id.
func (h *Handler) CheckFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ct, objectID, ok := h.ref(c)
	if !ok {
		return
	}

	isFavorite, err := h.repo.ExistsRef(c.Request.Context(), userID, ct, objectID)
	if err != nil {
		response.FromError(c, mapError(err))
		return
	}

	response.Success(c, http.StatusOK, CheckFavoriteResponse{IsFavorite: isFavorite})
}

// CountFavorites returns how many users favorited :type/:id.
func (h *Handler) CountFavorites(c *gin.Context) {
	ct, objectID, ok := h.ref(c)
	if !ok {
		return
	}

	count, err := h.repo.CountRef(c.Request.Context(), ct, objectID)
	if err != nil {
		response.FromError(c, mapError(err))
		return
	}

	response.Success(c, http.StatusOK, CountFavoriteResponse{Count: count})
}

// ref parses the :type/:id path parameters into a content type and object
// id without loading the target, writing the error response itself when
// that fails.
func (h *Handler) ref(c *gin.Context) (*contenttype.ContentType, int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.FromError(c, errInvalidID)
		return nil, 0, false
	}

	ct, err := h.repo.Registry().ForName(c.Param("type"))
	if err != nil {
		response.FromError(c, mapError(err))
		return nil, 0, false
	}
	return ct, id, true
}

// target is ref followed by loading the stored record.
func (h *Handler) target(c *gin.Context) (contenttype.Model, bool) {
	ct, id, ok := h.ref(c)
	if !ok {
		return nil, false
	}

	obj, err := h.repo.Registry().Resolve(c.Request.Context(), ct.ID, id)
	if err != nil {
		response.FromError(c, mapError(err))
		return nil, false
	}
	return obj, true
}

var (
	errAuthRequired = apperror.New(apperror.ErrCodeUnauthorized, "Authentication required")
	errInvalidID    = apperror.New(apperror.ErrCodeBadRequest, "Invalid object id")
)

// currentUser returns the authenticated caller's id, writing a 401 when
// there is none.
func currentUser(c *gin.Context) (int64, bool) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.FromError(c, errAuthRequired)
		return 0, false
	}
	return userID, true
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrConflict):
		return apperror.Wrap(err, apperror.ErrCodeConflict, "Object is already a favorite")
	case errors.Is(err, ErrNotFound):
		return apperror.Wrap(err, apperror.ErrCodeNotFound, "Favorite not found")
	case errors.Is(err, contenttype.ErrNotRegistered):
		return apperror.Wrap(err, apperror.ErrCodeNotFound, "Unknown content type")
	case dberr.IsNotFound(err):
		return apperror.Wrap(err, apperror.ErrCodeNotFound, "Object not found")
	default:
		return err
	}
}
