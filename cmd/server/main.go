package main

import (
	"admin-service/internal/api"
	"admin-service/internal/api/handlers"
	"admin-service/internal/auth"
	"admin-service/internal/cache"
	"admin-service/internal/database"
	"admin-service/internal/repository"
	"admin-service/internal/repository/memory"
	"admin-service/internal/service"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type repositories struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	users    repository.UserRepository
	menu     repository.MenuRepository
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := database.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repos repositories
	switch cfg.StorageDriver {
	case database.StorageDriverPostgres:
		pool, err := database.ConnectDB(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrations failed: %w", err)
		}

		repos = repositories{
			products: repository.NewProductRepository(pool),
			orders:   repository.NewOrderRepository(pool),
			users:    repository.NewUserRepository(pool),
			menu:     repository.NewMenuRepository(pool),
		}
	case database.StorageDriverMemory:
		log.Println("using in-memory storage, data is lost on exit")
		store := memory.NewStore()
		repos = repositories{
			products: store.Products(),
			orders:   store.Orders(),
			users:    store.Users(),
			menu:     store.Menu(),
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	var rdb *redis.Client
	if cfg.SessionStore == database.SessionStoreRedis || cfg.ProductCache {
		rdb, err = cache.ConnectRedis(ctx, cfg)
		if err != nil {
			if cfg.SessionStore == database.SessionStoreRedis {
				return fmt.Errorf("failed to connect redis: %w", err)
			}
			log.Printf("redis unavailable, product cache disabled: %v", err)
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	var sessions service.SessionStore
	switch cfg.SessionStore {
	case database.SessionStoreRedis:
		sessions = cache.NewRedisSessionStore(rdb)
	case database.SessionStoreMemory:
		mem := cache.NewMemorySessionStore(time.Minute)
		defer mem.Close()
		sessions = mem
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}

	products := repos.products
	if cfg.ProductCache && rdb != nil {
		products = cache.NewCachedProductRepository(products, rdb, cfg.ProductCacheTTL)
	}

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := auth.NewJWTIssuer(cfg.JWTSecret)

	authSvc := service.NewAuthService(repos.users, hasher, tokens, sessions)
	userSvc := service.NewUserService(repos.users, hasher, sessions)
	productSvc := service.NewProductService(products)
	orderSvc := service.NewOrderService(repos.orders, products)
	menuSvc := service.NewMenuService(repos.menu)

	if _, err := menuSvc.Seed(ctx); err != nil {
		return err
	}

	if !cfg.AuthRequired {
		log.Println("AUTH_REQUIRED=false, every route is open")
	}

	router := api.NewRouter(api.Handlers{
		Products: handlers.NewProductHandler(productSvc),
		Orders:   handlers.NewOrderHandler(orderSvc),
		Auth:     handlers.NewAuthHandler(authSvc, userSvc),
		Menu:     handlers.NewMenuHandler(menuSvc),
	}, handlers.NewPolicy(authSvc, cfg.AuthRequired))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.HTTPAddr)
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

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
