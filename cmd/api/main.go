package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medication-adherence/internal/adapters/auth/iam"
	"medication-adherence/internal/adapters/auth/jwtauth"
	"medication-adherence/internal/adapters/objectstore/gcsstore"
	"medication-adherence/internal/adapters/objectstore/memstore"
	"medication-adherence/internal/adapters/objectstore/s3store"
	pg "medication-adherence/internal/adapters/storage/postgres"
	"medication-adherence/internal/adapters/vision"
	"medication-adherence/internal/platform/config"
	"medication-adherence/internal/platform/logger"
	"medication-adherence/internal/ports/auth"
	"medication-adherence/internal/ports/objectstore"
	"medication-adherence/internal/ports/verification"
	"medication-adherence/internal/router"
)

func main() {
	log := logger.NewFromEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{
		Logger:              log,
		Location:            cfg.ReferenceTZ,
		VerifyRatePerMinute: cfg.VerifyRatePerMinute,
		PanelConcurrency:    cfg.PanelConcurrency,
	}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		if cfg.DBMigrate {
			v, err := pg.Migrate(db)
			if err != nil {
				log.Error("migrations failed", map[string]any{"err": err.Error()})
				os.Exit(1)
			}
			log.Info("migrations applied", map[string]any{"version": v})
		}
		opts.DB = db
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	store, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		log.Error("object store init failed", map[string]any{"err": err.Error(), "backend": string(cfg.ObjectStore)})
		os.Exit(1)
	}
	defer closeStore()
	opts.Store = store

	oracle, err := buildOracle(cfg)
	if err != nil {
		log.Error("vision oracle init failed", map[string]any{"err": err.Error(), "provider": string(cfg.Vision)})
		os.Exit(1)
	}
	if cfg.Vision == config.VisionStatic {
		log.Warn("VISION_PROVIDER=static, every photo is accepted with confidence 90", nil)
	}
	opts.Oracle = oracle

	verifier, err := buildVerifier(cfg)
	if err != nil {
		log.Error("auth verifier init failed", map[string]any{"err": err.Error(), "provider": string(cfg.Auth)})
		os.Exit(1)
	}
	if verifier == nil {
		log.Warn("AUTH_PROVIDER=dev, debug identity headers enabled", nil)
	}
	opts.AuthVerifier = verifier

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second, // subida de fotos
		WriteTimeout:      cfg.VisionTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":         srv.Addr,
			"object_store": string(cfg.ObjectStore),
			"vision":       string(cfg.Vision),
			"reference_tz": cfg.ReferenceTZ.String(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", map[string]any{"err": err.Error()})
	}
}

func buildStore(ctx context.Context, cfg config.Config) (objectstore.Store, func(), error) {
	noop := func() {}
	switch cfg.ObjectStore {
	case config.ObjectStoreS3:
		s, err := s3store.New(ctx, s3store.Options{Region: cfg.AWSRegion, Bucket: cfg.S3Bucket})
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case config.ObjectStoreGCS:
		s, err := gcsstore.New(ctx, gcsstore.Options{Bucket: cfg.GCSBucket, CredentialsFile: cfg.GCSCredentialsFile})
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return memstore.New(), noop, nil
	}
}

func buildOracle(cfg config.Config) (verification.Oracle, error) {
	switch cfg.Vision {
	case config.VisionAnthropic:
		return vision.NewAnthropic(vision.AnthropicOptions{
			APIKey:  cfg.AnthropicAPIKey,
			Model:   cfg.ClaudeModel,
			Timeout: cfg.VisionTimeout,
		})
	case config.VisionOpenAI:
		return vision.NewOpenAI(vision.OpenAIOptions{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.VisionTimeout,
		})
	default:
		return vision.NewStatic(), nil
	}
}

// buildVerifier devuelve nil en modo dev: el middleware acepta headers de depuración.
func buildVerifier(cfg config.Config) (auth.AuthVerifier, error) {
	switch cfg.Auth {
	case config.AuthJWT:
		return jwtauth.NewVerifier(jwtauth.Options{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer})
	case config.AuthIAM:
		c, err := iam.NewClient(iam.Config{BaseURL: cfg.IAMBaseURL, APIKey: cfg.IAMAPIKey})
		if err != nil {
			return nil, err
		}
		return iam.NewVerifier(c), nil
	default:
		return nil, nil
	}
}
