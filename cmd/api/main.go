package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"photobooth/internal/adapter/repo"
	"photobooth/internal/auth"
	"photobooth/internal/domain/jsoncfg"
	"photobooth/internal/http/handlers"
	"photobooth/internal/http/httpapi"
	"photobooth/internal/imagegen"
	"photobooth/internal/infra"
	"photobooth/internal/infra/geoip"
	"photobooth/internal/middleware"
	"photobooth/internal/pipeline"
	"photobooth/internal/ratelimit"
	"photobooth/internal/storage"
	"photobooth/internal/styles"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	if err := infra.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	// Rate-limit state prefers Redis so multiple kiosks share windows; a
	// single-node deploy falls back to process memory.
	var limitStore ratelimit.Store
	if redisClient, err := infra.NewRedisClient(ctx, cfg); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, rate limits are per process")
		limitStore = ratelimit.NewMemoryStore()
	} else {
		defer redisClient.Close()
		limitStore = ratelimit.NewRedisStore(redisClient)
	}
	limiter := ratelimit.NewLimiter(limitStore, logger)

	var store storage.ObjectStore
	if cfg.S3Bucket != "" {
		s3store, err := storage.NewS3Store(ctx, storage.S3Options{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			BaseEndpoint:  cfg.S3BaseEndpoint,
			PublicBaseURL: cfg.StorageBaseURL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init object storage")
		}
		store = s3store
	} else {
		fileStore, err := storage.NewFileStore(cfg.LocalStoragePath, cfg.StorageBaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init local storage")
		}
		store = fileStore
		logger.Info().Str("path", cfg.LocalStoragePath).Msg("using local photo storage")
	}

	var countryLookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database not loaded, country detection off")
	} else if resolver != nil {
		countryLookup = resolver.CountryCode
	}

	if cfg.StylesConfigPath != "" {
		raw, err := os.ReadFile(cfg.StylesConfigPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to read styles config")
		}
		set, err := jsoncfg.ParseStyleSet(raw)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid styles config")
		}
		for _, def := range set.Styles {
			styles.Register(def.ID, def.Name, def.Prompt)
		}
		logger.Info().Int("count", len(set.Styles)).Msg("custom styles registered")
	}

	genClient := imagegen.NewClient(imagegen.Options{
		BaseURL:     cfg.BFLBaseURL,
		APIKey:      cfg.BFLAPIKey,
		AspectRatio: cfg.BFLAspectRatio,
	})

	events := repo.NewEventRepository(dbpool)
	photos := repo.NewPhotoRepository(dbpool)
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AdminPassword)

	app := &handlers.App{
		Log:      logger,
		Events:   events,
		Photos:   photos,
		Limiter:  limiter,
		Pipeline: pipeline.New(events, photos, limiter, genClient, imagegen.NewPoller(genClient), store, logger),
		Auth:     issuer,
		Store:    store,
		Ping:     dbpool.Ping,
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		Log:            logger,
		AllowedOrigins: cfg.AllowedOrigins,
		DefaultLocale:  cfg.DefaultLocale,
		CountryLookup:  countryLookup,
		VerifyToken:    issuer.Verify,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
