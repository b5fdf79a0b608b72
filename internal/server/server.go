package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"favorites/internal/domain/animal"
	"favorites/internal/domain/auth"
	"favorites/internal/domain/contenttype"
	"favorites/internal/domain/favorite"
	"favorites/internal/middleware"
	jwtsvc "favorites/internal/pkg/jwt"
)

// Deps are the shared resources the router is built from.
type Deps struct {
	DB             *gorm.DB
	Registry       *contenttype.Registry
	JWT            *jwtsvc.Service
	Log            *logrus.Logger
	AllowedOrigins []string
}

// NewRouter wires repositories, handlers and middleware into a gin engine.
// Everything except /auth and /health requires a bearer token.
func NewRouter(d Deps) *gin.Engine {
	userRepo := auth.NewUserRepository(d.DB)
	authHandler := auth.NewHandler(auth.NewService(userRepo, d.JWT))

	favoriteHandler := favorite.NewHandler(favorite.NewRepository(d.DB, d.Registry))
	animalHandler := animal.NewHandler(animal.NewRepository(d.DB, d.Registry))

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(d.Log),
		middleware.RequestLogger(d.Log),
		middleware.CORS(d.AllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(d.JWT))
		{
			authHandler.RegisterProtectedRoutes(protected)
			favoriteHandler.RegisterRoutes(protected)
			animalHandler.RegisterRoutes(protected)
		}
	}

	return r
}
