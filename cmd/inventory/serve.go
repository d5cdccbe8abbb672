package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"inventory/m/internal/api"
	"inventory/m/internal/auth"
	"inventory/m/internal/database"
	"inventory/m/internal/events"
	"inventory/m/internal/metrics"
	"inventory/m/internal/migrations"
	"inventory/m/internal/seed"
	"inventory/m/internal/service"
	"inventory/m/internal/store"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Apply pending migrations, optionally seed the catalog, and serve the
REST API until SIGINT or SIGTERM.`,
		RunE: runServe,
	}
	cmd.Flags().String("port", "8080", "HTTP port")
	_ = v.BindPFlag("http.port", cmd.Flags().Lookup("port"))
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if err := migrations.Run(cfg.Database.Driver, cfg.Database.DSN); err != nil {
		return err
	}
	db, err := database.Connect(cfg.Database.Driver, cfg.Database.DSN, database.Options{
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	st := store.New(db)

	if cfg.SeedCatalog != "" {
		if _, err := seed.LoadCatalogFile(ctx, st, cfg.SeedCatalog, log); err != nil {
			log.Warn("catalog seed failed", zap.String("path", cfg.SeedCatalog), zap.Error(err))
		}
	}

	publisher, err := newPublisher()
	if err != nil {
		return err
	}
	defer publisher.Close()

	m := metrics.New()
	svc := service.New(service.Deps{
		Store:   st,
		Hasher:  auth.NewBcrypt(),
		Tokens:  auth.NewJWT(cfg.Secret, cfg.TokenTTL),
		Events:  publisher,
		Metrics: m,
	})
	handler := api.New(svc, log, m, api.Options{
		RequestTimeout: cfg.RequestTimeout,
		CORSOrigins:    cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("inventory server starting", zap.String("addr", srv.Addr), zap.String("driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped gracefully")
	return nil
}

func newPublisher() (events.Publisher, error) {
	if cfg.AMQP.URL == "" {
		log.Info("event publishing disabled")
		return events.Nop{}, nil
	}
	p, err := events.DialAMQP(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return nil, err
	}
	log.Info("publishing events", zap.String("exchange", cfg.AMQP.Exchange))
	return p, nil
}
