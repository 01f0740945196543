package main

import (
	"log/slog"
	"os"

	"authkit/pkg/hash"
	"authkit/pkg/token"

	"github.com/gin-gonic/gin"
)

// app wires the handlers to their collaborators. Everything is injected so
// tests can swap in stub directories and per-test signing keys.
type app struct {
	cfg    *Config
	log    *slog.Logger
	users  Directory
	hasher hash.PasswordHasher
	tokens token.Manager
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := openDB(cfg)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}

	a := &app{
		cfg:    cfg,
		log:    logger,
		users:  NewGormDirectory(db),
		hasher: hash.NewBcryptHasher(cfg.BcryptCost),
		tokens: token.NewJWTManager([]byte(cfg.JWTSecret), cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
	}

	r := gin.Default()
	a.setupRoutes(r)

	logger.Info("listening", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
