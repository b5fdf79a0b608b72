package favorite

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	{
		favorites.GET("", h.GetFavorites)
		favorites.POST("/:type/:id", h.AddFavorite)
		favorites.DELETE("/:type/:id", h.RemoveFavorite)
		favorites.GET("/:type/:id/check", h.CheckFavorite)
		favorites.GET("/:type/:id/count", h.CountFavorites)
	}
}
