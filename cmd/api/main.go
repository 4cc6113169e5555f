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

	"vibecommerce/internal/config"
	"vibecommerce/internal/db"
	"vibecommerce/internal/httpserver"
	"vibecommerce/internal/redisdb"
	cartrepo "vibecommerce/internal/repository/cart"
	productrepo "vibecommerce/internal/repository/product"
	"vibecommerce/internal/seed"
	cartsvc "vibecommerce/internal/service/cart"
	catalogsvc "vibecommerce/internal/service/catalog"
	checkoutsvc "vibecommerce/internal/service/checkout"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	cache, err := redisdb.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Fatalf("connect to redis: %v", err)
	}
	defer cache.Close()

	// One-time catalog seeding when the table is empty; run cmd/migrate
	// first on a fresh database.
	if err := seed.Apply(ctx, dbpool); err != nil {
		logger.Fatalf("seed catalog: %v", err)
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewRedis(cache, cfg.CartTTL, logger)
	catalogService := catalogsvc.New(productRepo)
	cartService := cartsvc.New(cartRepo, productRepo)
	checkoutService := checkoutsvc.New(cartRepo)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, cache, httpserver.Deps{
		CatalogSvc:  catalogService,
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
	})

	sweepDone := make(chan struct{})
	go sweepExpiredCarts(ctx, cartRepo, cfg.SweepInterval, logger, sweepDone)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	close(sweepDone)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// sweepExpiredCarts periodically removes cart documents past their lifetime,
// so abandoned sessions do not pile up in the store between reads.
func sweepExpiredCarts(ctx context.Context, repo cartrepo.Repository, interval time.Duration, logger *log.Logger, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			removed, err := repo.Sweep(ctx)
			if err != nil {
				logger.Printf("cart sweep: %v", err)
				continue
			}
			if removed > 0 {
				logger.Printf("cart sweep: removed %d expired carts", removed)
			}
		}
	}
}
