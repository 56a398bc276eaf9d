package main

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

	"ExpenseTracker/pkg/cache"
	"ExpenseTracker/pkg/config"
	"ExpenseTracker/pkg/database"
	"ExpenseTracker/pkg/logger"
	"ExpenseTracker/pkg/metrics"
	"ExpenseTracker/pkg/token"
	"ExpenseTracker/routes"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "expense-tracker:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		return err
	}

	store, err := cache.Open(ctx, cache.Options{
		Driver:   cfg.CacheDriver,
		MaxItems: cfg.CacheMaxItems,
		Redis: cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
	})
	if err != nil {
		return err
	}
	defer store.Close()

	m := metrics.New()

	codec, err := token.NewCodec(cfg.JWTSecret, token.WithTTL(cfg.JWTTTL), token.WithIssuer(cfg.JWTIssuer))
	if err != nil {
		return err
	}
	policy, err := token.ParseFailurePolicy(cfg.StoreFailurePolicy)
	if err != nil {
		return err
	}
	ledger := token.NewLedger(store,
		token.WithLedgerLogger(log.With().Str("component", "ledger").Logger()),
		token.WithLedgerMetrics(m),
	)
	validator := token.NewValidator(codec, ledger,
		token.WithPolicy(policy),
		token.WithValidatorLogger(log.With().Str("component", "validator").Logger()),
	)

	engine := routes.NewEngine(routes.Deps{
		Config:    cfg,
		DB:        db,
		Logger:    log,
		Metrics:   m,
		Validator: validator,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("db_driver", cfg.DBDriver).
			Str("cache_driver", cfg.CacheDriver).
			Bool("token_gate", cfg.TokenGateEnabled).
			Str("failure_policy", policy.String()).
			Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
