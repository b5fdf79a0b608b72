package animal

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	animals := rg.Group("/animals")
	{
		animals.GET("", h.List)
		animals.POST("", h.Create)
		animals.GET("/:id", h.Get)
	}
}
