package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"

	"favorites/internal/config"
	"favorites/internal/database"
	"favorites/internal/domain/contenttype"
	"favorites/internal/logger"
	jwtsvc "favorites/internal/pkg/jwt"
	"favorites/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().WithError(err).Fatal("failed to load config")
	}

	log := logger.Init(cfg.LogLevel, cfg.AppEnv)
	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	reg := contenttype.NewRegistry(db)
	if err := database.RegisterModels(context.Background(), reg); err != nil {
		log.WithError(err).Fatal("failed to register content types")
	}
	log.WithField("models", reg.Names()).Info("content types registered")

	r := server.NewRouter(server.Deps{
		DB:             db,
		Registry:       reg,
		JWT:            jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL),
		Log:            log,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	log.WithField("port", cfg.HTTPPort).Info("starting HTTP server")
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}
