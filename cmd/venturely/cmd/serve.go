package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/venturely/venturely/db"
	"github.com/venturely/venturely/internal/auth"
	"github.com/venturely/venturely/internal/config"
	"github.com/venturely/venturely/internal/handlers"
	"github.com/venturely/venturely/internal/identity"
	"github.com/venturely/venturely/internal/notify"
	"github.com/venturely/venturely/internal/repository"
	"github.com/venturely/venturely/internal/router"
	"github.com/venturely/venturely/internal/storage"
	"github.com/venturely/venturely/internal/types"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Venturely API server",
	Long:  `Migrates the schema, then serves the HTTP API until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Debug {
			gin.SetMode(gin.ReleaseMode)
		}

		conn, err := db.ConnectDatabase(cfg.DatabaseURL, db.Options{Log: log, Debug: cfg.Debug})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close(conn)

		if err := db.MigrateDatabase(conn); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		log.WithField("database", db.DetectDatabaseType(cfg.DatabaseURL)).Info("Connected to database")

		codec, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			return fmt.Errorf("failed to create token codec: %w", err)
		}

		httpClient := &http.Client{Timeout: 15 * time.Second}

		var provider identity.Provider
		switch cfg.IdentityProvider {
		case config.IdentityProviderSupabase:
			provider = identity.NewSupabaseProvider(cfg.Supabase.URL, cfg.Supabase.ServiceRoleKey, httpClient)
		default:
			provider = identity.NewLocalProvider(conn)
		}

		var blobs storage.Storage
		uploadDir := ""
		switch cfg.Storage.Backend {
		case config.StorageBackendSupabase:
			blobs = storage.NewSupabaseStorage(cfg.Supabase.URL, cfg.Supabase.ServiceRoleKey, cfg.Storage.Bucket)
		default:
			local, err := storage.NewLocalStorage(cfg.Storage.UploadDir, cfg.Storage.PublicURL)
			if err != nil {
				return err
			}
			blobs = local
			uploadDir = local.Dir()
		}

		origins := types.AllowedOrigins(cfg.ClientURL, cfg.AllowedOrigins)
		hub := notify.NewHub(origins, log)

		h := handlers.New(handlers.Dependencies{
			Tokens:         codec,
			Identity:       provider,
			Profiles:       repository.NewGormProfileRepository(conn),
			Startups:       repository.NewGormStartupRepository(conn),
			Pitches:        repository.NewGormPitchRepository(conn),
			SavedPitches:   repository.NewGormSavedPitchRepository(conn),
			Notifications:  repository.NewGormNotificationRepository(conn),
			Files:          repository.NewGormFileRepository(conn),
			Storage:        blobs,
			Hub:            hub,
			Log:            log,
			MaxUploadBytes: cfg.Storage.MaxUploadBytes,
		})

		r := router.NewRouter(router.Options{
			Handler:        h,
			Tokens:         codec,
			Log:            log,
			AllowedOrigins: origins,
			UploadDir:      uploadDir,
			MaxUploadBytes: cfg.Storage.MaxUploadBytes,
		})

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErr := make(chan error, 1)
		go func() {
			log.WithFields(logrus.Fields{
				"port":      cfg.Port,
				"identity":  cfg.IdentityProvider,
				"storage":   cfg.Storage.Backend,
				"token_ttl": codec.TTL().String(),
			}).Info("Server running")

			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
			close(serverErr)
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(stop)

		select {
		case err := <-serverErr:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case sig := <-stop:
			log.WithField("signal", sig.String()).Info("Shutting down server")
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		log.Info("Server stopped")
		return nil
	},
}
