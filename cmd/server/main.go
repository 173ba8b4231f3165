package main

import (
	"context"

	"github.com/iliaalekseevofb/Twitter-clone/internal/app"
	"github.com/iliaalekseevofb/Twitter-clone/internal/cache"
	"github.com/iliaalekseevofb/Twitter-clone/internal/config"
	"github.com/iliaalekseevofb/Twitter-clone/internal/db"
	"github.com/iliaalekseevofb/Twitter-clone/internal/logger"
	"github.com/iliaalekseevofb/Twitter-clone/internal/server"
	"github.com/iliaalekseevofb/Twitter-clone/internal/service/profile"
	"github.com/iliaalekseevofb/Twitter-clone/internal/service/tweet"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	appCtx := app.New(cfg, database, redisCache, log)

	registrars := []server.Registrar{
		tweet.NewRegistrar(appCtx),
		profile.NewRegistrar(appCtx),
	}

	if cfg.App.Env == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, registrars...); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
