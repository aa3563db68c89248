package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "favorites-api/cmd/api"
	"favorites-api/internal/customer/delivery"
	"favorites-api/internal/customer/domain"
	"favorites-api/internal/customer/repository"
	"favorites-api/internal/customer/usecase"
	"favorites-api/pkg/catalog"
	"favorites-api/pkg/config"
	"favorites-api/pkg/database"
	"favorites-api/pkg/logger"
	"favorites-api/pkg/token"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type stores struct {
	customers   repository.CustomerRepository
	errorLogs   repository.ErrorLogRepository
	idValidator delivery.IDValidator
	close       func()
}

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize customer store for the configured driver
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize store")
	}
	defer st.close()

	// Product catalog, cached in redis when configured
	var products catalog.Catalog = catalog.NewClient(cfg.ProductAPIURL, cfg.ProductAPITimeout, log)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, product cache disabled")
		} else {
			products = catalog.NewCachedCatalog(products, catalog.NewRedisCache(redisClient, cfg.ProductCacheTTL), log)
			log.WithField("addr", cfg.RedisAddr).Info("product cache enabled")
		}
	}

	jwtAdapter := token.NewJWTAdapter(cfg.JWTSecret)

	// Initialize use cases (dependency injection)
	deps := api.Dependencies{
		Customers: delivery.CustomerUsecases{
			AddCustomer:           usecase.NewDbAddCustomer(st.customers, st.customers),
			Authentication:        usecase.NewDbAuthentication(st.customers, jwtAdapter, st.customers),
			GetCustomer:           usecase.NewDbGetCustomer(st.customers),
			UpdateCustomer:        usecase.NewDbUpdateCustomer(st.customers),
			DeleteCustomer:        usecase.NewDbDeleteCustomer(st.customers),
			AddFavoriteProduct:    usecase.NewDbAddFavoriteProduct(products, st.customers, st.customers),
			RemoveFavoriteProduct: usecase.NewDbRemoveFavoriteProduct(st.customers, st.customers),
		},
		LoadCustomer: usecase.NewDbLoadCustomerByToken(jwtAdapter, st.customers),
		GetProduct:   usecase.NewHttpGetProduct(products),
		ListProducts: usecase.NewHttpListProducts(products),
		ErrorLogs:    st.errorLogs,
		IDValidator:  st.idValidator,
		Logger:       log,
	}

	handler := api.NewHandler(deps, cfg)
	if err := handler.Start(ctx, ":"+cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func openStores(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgresConnection(cfg)
		if err != nil {
			return nil, err
		}

		// Auto-migrate database schemas
		if err := db.AutoMigrate(&domain.Customer{}, &domain.ErrorLog{}); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		log.Info("using postgres store")
		return &stores{
			customers:   repository.NewCustomerRepository(db),
			errorLogs:   repository.NewErrorLogRepository(db),
			idValidator: delivery.UUIDValidator,
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil

	case config.StoreDriverMongo:
		handle := database.NewMongoHandle(cfg.MongoURI, cfg.MongoDBName)

		indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := repository.EnsureMongoIndexes(indexCtx, handle); err != nil {
			return nil, err
		}

		log.Info("using mongo store")
		return &stores{
			customers:   repository.NewMongoCustomerRepository(handle),
			errorLogs:   repository.NewMongoErrorLogRepository(handle),
			idValidator: delivery.ObjectIDValidator,
			close: func() {
				disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = handle.Disconnect(disconnectCtx)
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
