package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"siteforge/internal/app"
	"siteforge/internal/config"
	"siteforge/internal/event"
	"siteforge/internal/gate"
	"siteforge/internal/server"
	"siteforge/internal/storage"
	"siteforge/internal/store"
	"siteforge/internal/util"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	dataStore, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}

	unlockTTL := time.Duration(cfg.UnlockTTLMinutes) * time.Minute
	unlocks, err := buildUnlockStore(cfg, unlockTTL)
	if err != nil {
		log.Fatalf("failed to init unlock store: %v", err)
	}

	events, err := event.NewAMQPPublisher(cfg.AMQPURL)
	if err != nil {
		log.Fatalf("failed to init event publisher: %v", err)
	}
	defer events.Close()

	media, diskMedia, err := buildMediaStore(cfg)
	if err != nil {
		log.Fatalf("failed to init media store: %v", err)
	}

	appCore, err := app.New(app.Config{
		Store:          dataStore,
		Unlocks:        unlocks,
		Events:         events,
		Media:          media,
		BaseURL:        cfg.BaseURL,
		RenderCacheTTL: time.Duration(cfg.RenderCacheTTLSeconds) * time.Second,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	httpServer := server.New(server.Config{
		App:            appCore,
		Media:          diskMedia,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		slog.Info("siteforge server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server error", "err", err)
	}
}

// buildStore selects the persistence backend: Postgres when configured,
// otherwise the JSON snapshot file.
func buildStore(cfg config.FileConfig) (store.Store, error) {
	if cfg.DatabaseURL != "" {
		return store.NewGormStore(cfg.DatabaseURL)
	}
	return store.NewSnapshotStore(cfg.DataFile)
}

// buildUnlockStore selects the unlock token backend. A signing secret
// wins over Redis because stateless tokens need no extra infrastructure.
func buildUnlockStore(cfg config.FileConfig, ttl time.Duration) (gate.UnlockStore, error) {
	if cfg.UnlockSecret != "" {
		return gate.NewJWTUnlockStore(cfg.UnlockSecret, ttl)
	}
	if cfg.RedisAddr != "" {
		return gate.NewRedisUnlockStore(cfg.RedisAddr, cfg.RedisPassword, ttl), nil
	}
	return gate.NewMemoryUnlockStore(ttl), nil
}

// buildMediaStore returns the image backend plus the disk store when
// local files need serving under /media/.
func buildMediaStore(cfg config.FileConfig) (storage.MediaStore, *storage.DiskStore, error) {
	if cfg.MinioEndpoint != "" {
		s, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	}
	disk, err := storage.NewDiskStore(cfg.MediaDir)
	if err != nil {
		return nil, nil, err
	}
	return disk, disk, nil
}
