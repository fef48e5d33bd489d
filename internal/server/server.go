// Package server boots the console: config, logging, session storage, the
// backend client, the route table and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smartshop/webapp/app/routes"
	"github.com/smartshop/webapp/app/services"
	"github.com/smartshop/webapp/config"
	"github.com/smartshop/webapp/internal/auth"
	"github.com/smartshop/webapp/pkg/backend"
	"github.com/smartshop/webapp/pkg/cache"
	"github.com/smartshop/webapp/pkg/database"
	"github.com/smartshop/webapp/pkg/logger"
	"github.com/smartshop/webapp/pkg/metrics"
	"github.com/smartshop/webapp/pkg/middleware"
	"github.com/smartshop/webapp/pkg/reqid"
	"github.com/smartshop/webapp/pkg/router"
	"github.com/smartshop/webapp/pkg/session"
)

const shutdownTimeout = 10 * time.Second

// Start runs the console until SIGINT/SIGTERM, then drains in-flight
// requests before returning.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}
	logger.Setup()
	defer logger.Close()

	store, err := sessionStore()
	if err != nil {
		return err
	}

	r, err := BuildRouter(store)
	if err != nil {
		return err
	}

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L.Info("smartshop console listening", "addr", addr, "backend", config.BackendBaseURL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.L.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// BuildRouter wires the full middleware stack and route table. Exposed so
// the route:list command can enumerate routes without serving.
func BuildRouter(store session.Store) (*router.Router, error) {
	mgr := session.NewManager(store, sessionOptions())

	client := backend.New(config.BackendBaseURL())
	authSvc := services.NewAuthService(client)

	deps := routes.Deps{
		AuthStore: auth.NewStore(authSvc),
		Auth:      authSvc,
		Products:  services.NewProductService(client),
		Clients:   services.NewClientService(client),
		Orders:    services.NewOrderService(client),
		Payments:  services.NewPaymentService(client),
	}

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		mgr.Middleware(),
		middleware.RateLimit(config.GetInt("RATE_LIMIT", 300), time.Minute),
	)
	r.HandleFunc("/metrics", metrics.Handler())
	routes.Register(r, deps)

	return r, nil
}

func sessionOptions() session.Options {
	opts := session.DefaultOptions()
	opts.TTL = config.SessionTTL()
	opts.Secure = config.AppEnv() == "production"
	return opts
}

// sessionStore builds the configured session driver. A redis or database
// connection failure aborts startup.
func sessionStore() (session.Store, error) {
	ttl := config.SessionTTL()

	switch config.SessionDriver() {
	case "redis":
		if err := cache.Connect(); err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		return session.NewRedisStore(ttl), nil
	case "database":
		if err := database.Connect(); err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		store, err := session.NewDatabaseStore(database.DB, ttl)
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		return store, nil
	default:
		return session.NewMemoryStore(ttl), nil
	}
}
