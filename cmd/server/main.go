package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/idempotency"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/service"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/logging"
	loggingmw "github.com/Skotchmaster/storefront/pkg/middleware/logging"
)

func main() {
	promote := flag.String("promote-admin", "", "grant the admin role to this username and exit")
	envFile := flag.String("env", ".env", "optional env file")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: could not load %s: %v", *envFile, err)
	}

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = pkgdb.Close(db) }()

	if cfg.AutoMigrate {
		if err := repo.Migrate(db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	r := repo.New(db)
	authSvc := &service.AuthService{
		Repo:          r,
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	}

	if *promote != "" {
		if err := authSvc.PromoteAdmin(logging.IntoContext(context.Background(), logger), *promote); err != nil {
			log.Fatalf("promote admin: %v", err)
		}
		return
	}

	publisher := events.New(cfg.KafkaBrokers)
	defer func() { _ = publisher.Close() }()

	index := openSearch(cfg, logger)
	store, rdb := openIdempotency(cfg, logger)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	catalogSvc := &service.CatalogService{Repo: r, Events: publisher, Producer: cfg.ServiceName}
	if index != nil {
		catalogSvc.Search = index
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		Auth:    &httpserver.AuthHTTP{Svc: authSvc, SecureCookie: cfg.CookieSecure},
		Catalog: &httpserver.CatalogHTTP{Svc: catalogSvc},
		Cart:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: r}},
		Orders: &httpserver.OrderHTTP{Svc: &service.OrderService{
			Repo:        r,
			Events:      publisher,
			Idempotency: store,
			Producer:    cfg.ServiceName,
		}},
		Wishlist:  &httpserver.WishlistHTTP{Svc: &service.WishlistService{Repo: r}},
		Account:   &httpserver.AccountHTTP{Svc: &service.AccountService{Repo: r}},
		JWTSecret: cfg.JWTAccessSecret,
		Ready:     readiness(db, rdb),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_error", "error", err)
	}
	logger.Info("server_stopped")
}

// openSearch returns nil when search is not configured or unreachable;
// the catalog then searches the database.
func openSearch(cfg config.ServiceConfig, logger *slog.Logger) *search.ESIndex {
	if !cfg.SearchEnabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := search.NewClient(ctx, cfg.ESURL, cfg.ESUser, cfg.ESPassword)
	if err != nil {
		logger.Warn("search_unavailable", "reason", "falling back to database search", "error", err)
		return nil
	}
	index := &search.ESIndex{ES: client, Index: cfg.ESIndex}
	if err := index.EnsureIndex(ctx); err != nil {
		logger.Warn("search_index_setup_error", "index", cfg.ESIndex, "error", err)
	}
	return index
}

func openIdempotency(cfg config.ServiceConfig, logger *slog.Logger) (idempotency.Store, *redis.Client) {
	if !cfg.RedisEnabled() {
		logger.Info("idempotency_store", "backend", "memory")
		return idempotency.NewMemory(), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdb, err := idempotency.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	logger.Info("idempotency_store", "backend", "redis", "addr", cfg.RedisAddr)
	return idempotency.NewRedisStore(rdb), rdb
}

func readiness(db *gorm.DB, rdb *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
		}
		return nil
	}
}
