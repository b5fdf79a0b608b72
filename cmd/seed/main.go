package main

import (
	"context"

	"favorites/internal/config"
	"favorites/internal/database"
	"favorites/internal/domain/animal"
	"favorites/internal/domain/auth"
	"favorites/internal/domain/contenttype"
	"favorites/internal/domain/favorite"
	"favorites/internal/logger"
	jwtsvc "favorites/internal/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().WithError(err).Fatal("failed to load config")
	}
	log := logger.Init(cfg.LogLevel, cfg.AppEnv)
	ctx := context.Background()

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("DB connection failed")
	}

	log.Info("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("AutoMigrate failed")
	}

	reg := contenttype.NewRegistry(db)
	if err := database.RegisterModels(ctx, reg); err != nil {
		log.WithError(err).Fatal("content type registration failed")
	}

	// favorites first, they reference users
	log.Info("Cleaning old data...")
	for _, table := range []string{"favorites", "animals", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.WithError(err).WithField("table", table).Fatal("cleanup failed")
		}
	}

	log.Info("Creating users...")
	authService := auth.NewService(auth.NewUserRepository(db), jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL))
	users := make(map[string]*auth.User)
	for _, name := range []string{"alice", "bob", "chris", "dawn"} {
		u, err := authService.Register(ctx, auth.RegisterRequest{
			Username: name,
			Email:    name + "@example.com",
			Password: name + "123",
		})
		if err != nil {
			log.WithError(err).WithField("username", name).Fatal("failed to create user")
		}
		users[name] = u
	}

	log.Info("Creating animals...")
	animals := animal.NewRepository(db, reg)
	zoo := make(map[string]*animal.Animal)
	for _, name := range []string{"zebra", "donkey", "horse"} {
		a := &animal.Animal{Name: name}
		if err := animals.Create(ctx, a); err != nil {
			log.WithError(err).WithField("animal", name).Fatal("failed to create animal")
		}
		zoo[name] = a
	}

	log.Info("Creating favorites...")
	favorites := favorite.NewRepository(db, reg)
	fav, err := favorites.Create(ctx, users["chris"].ID, *users["alice"])
	if err != nil {
		log.WithError(err).Fatal("failed to create favorite")
	}
	seeded := []struct {
		user   string
		target contenttype.Model
	}{
		{user: "alice", target: *fav},
		{user: "alice", target: *zoo["zebra"]},
		{user: "chris", target: *zoo["donkey"]},
	}
	for _, s := range seeded {
		if _, err := favorites.Create(ctx, users[s.user].ID, s.target); err != nil {
			log.WithError(err).WithField("user", s.user).Fatal("failed to create favorite")
		}
	}

	all, err := favorites.ForUser(ctx, users["alice"].ID)
	if err != nil {
		log.WithError(err).Fatal("failed to list favorites")
	}
	for _, f := range all {
		log.Info(f.String())
	}
	log.Info("Seed completed (passwords are <username>123)")
}
