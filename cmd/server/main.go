package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ostocare-be/internal/auth"
	"ostocare-be/internal/cart"
	"ostocare-be/internal/config"
	"ostocare-be/internal/db"
	"ostocare-be/internal/handler"
	"ostocare-be/internal/logger"
	"ostocare-be/internal/metrics"
	"ostocare-be/internal/middleware"
	"ostocare-be/internal/product"
	"ostocare-be/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sweepInterval = time.Minute

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(addr string, handler http.Handler) error {
		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		return srv.ListenAndServe()
	}
)

func main() {
	if err := run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if !cfg.HasDatabase() {
		return errors.New("DB_HOST and DB_NAME must be set")
	}

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router, err := newServer(ctx, cfg, database)
	if err != nil {
		return err
	}

	logger.L().Info("server listening",
		zap.String("port", cfg.AppPort),
		zap.String("cart_storage", cfg.CartStorage),
	)
	return startServerFunc(":"+cfg.AppPort, router)
}

// newServer builds every service and returns the routed handler. Background
// sweepers stop when ctx is done.
func newServer(ctx context.Context, cfg *config.Config, database *sql.DB) (http.Handler, error) {
	storage, err := newCartStorage(ctx, cfg, database)
	if err != nil {
		return nil, err
	}

	carts := cart.NewRegistry(storage, &metrics.CartCounters{})
	go carts.RunSweeper(ctx, sweepInterval, cfg.CartSessionIdle)

	checkers := user.NewCheckers(user.NewRepository(database), cfg.UsernameCheckDelay)
	go runEvery(ctx, sweepInterval, func() { checkers.Sweep(cfg.CartSessionIdle) })

	limiter := middleware.NewRateLimiter()
	go limiter.Run(ctx)

	var verifier *auth.Verifier
	if cfg.JWTSecret != "" {
		verifier, err = auth.NewVerifier(cfg.JWTSecret)
		if err != nil {
			return nil, err
		}
	} else {
		logger.L().Warn("JWT_SECRET not set, all requests are anonymous")
	}

	h := handler.New(handler.Deps{
		Products: product.NewRepositoryProvider(product.NewRepository(database)),
		Carts:    carts,
		Users:    user.NewService(checkers),
		Pricing: cart.Pricing{
			FreeShippingThreshold: cfg.FreeShippingThreshold,
			ShippingFee:           cfg.ShippingFee,
			SavingsThreshold:      cfg.SavingsThreshold,
			SavingsRate:           cfg.SavingsRate,
		},
		CatalogCounters:  &metrics.CatalogCounters{},
		CartRequiresAuth: cfg.CartRequiresAuth,
	})

	return setupRouter(cfg, h, verifier, limiter), nil
}

func setupRouter(cfg *config.Config, h *handler.Handler, verifier *auth.Verifier, limiter *middleware.RateLimiter) *chi.Mux {
	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.Auth(verifier))
	r.Use(middleware.Session(cfg.AppEnv == "production"))
	r.Use(middleware.Logging)
	r.Use(limiter.Middleware)

	h.Routes(r)
	return r
}

func newCartStorage(ctx context.Context, cfg *config.Config, database *sql.DB) (cart.Storage, error) {
	switch cfg.CartStorage {
	case config.StorageMemory:
		return cart.NewMemoryStorage(), nil
	case config.StorageFile:
		return cart.NewFileStorage(cfg.CartFileDir)
	case config.StoragePostgres:
		return cart.NewPostgresStorage(database), nil
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		// An unreachable redis degrades to in-memory carts per session, so
		// only warn here.
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			logger.L().Warn("redis not reachable, carts will not persist until it is",
				zap.String("addr", cfg.RedisAddr),
				zap.Error(err),
			)
		}
		return cart.NewRedisStorage(client), nil
	default:
		return nil, fmt.Errorf("unknown CART_STORAGE %q", cfg.CartStorage)
	}
}

func runEvery(ctx context.Context, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}
