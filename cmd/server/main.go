package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leonardcser/users-cache/internal/api"
	"github.com/leonardcser/users-cache/internal/cache"
	"github.com/leonardcser/users-cache/internal/config"
	"github.com/leonardcser/users-cache/internal/logger"
	"github.com/leonardcser/users-cache/internal/users"
)

func main() {
	cfg, err := config.ParseEnv()
	if err != nil {
		logger.Errorf("config: %v", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.LogPath); err != nil {
		logger.Errorf("init logger: %v", err)
		os.Exit(1)
	}
	defer logger.Close()

	// One shared cache client for the whole process, closed on shutdown.
	kv, err := openCache(cfg)
	if err != nil {
		logger.Errorf("open cache: %v", err)
		os.Exit(1)
	}
	defer kv.Close()
	logger.Infof("cache backend %q ready", cfg.CacheBackend)

	mux := http.NewServeMux()
	api.NewHandler(users.NewStore(), kv, cfg.TTL()).Register(mux)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("server: %v", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Infof("received %s, shutting down", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("shutdown: %v", err)
		}
	}
}

func openCache(cfg config.Config) (cache.KV, error) {
	switch cfg.CacheBackend {
	case config.BackendBolt:
		return cache.OpenBolt(cfg.CacheDBPath)
	default:
		return cache.NewRedis(cfg.RedisHost, cfg.RedisPort), nil
	}
}
