package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"microblog/config"
	"microblog/internal/container"
	"microblog/internal/infrastructure/memstore"
	"microblog/internal/infrastructure/session"
	"microblog/internal/router"
	"microblog/pkg/avatar"
	"microblog/pkg/helpers"
	"microblog/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	// Avatar generator + per-letter disk cache
	gen, err := avatar.NewGenerator(cfg.AvatarSize, cfg.AvatarSize)
	if err != nil {
		log.Fatalf("failed to init avatar generator: %v", err)
	}
	avatars, err := avatar.NewCache(gen, cfg.AvatarDir)
	if err != nil {
		log.Fatalf("failed to init avatar cache: %v", err)
	}

	// Sessions: Redis-backed when configured, in-process otherwise
	var sessions session.Store
	if cfg.SessionBackend == "redis" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		container.SetRedis(rdb)
		sessions = session.NewRedisStore(rdb)
		logger.Info("using redis session store")
	} else {
		sessions = session.NewMemoryStore()
		logger.Info("using in-memory session store")
	}

	jwtManager := helpers.NewJWTManager(cfg.SessionSecret, cfg.SessionTTL)

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(jwtManager)
	container.SetSessions(sessions)
	container.SetAvatars(avatars)
	container.SetUsers(memstore.NewUserRepository())
	container.SetPosts(memstore.NewPostRepository())

	r := router.BuildEngine()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
