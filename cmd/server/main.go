package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inventorypos/salesdesk/internal/api"
	v1 "github.com/inventorypos/salesdesk/internal/api/v1"
	"github.com/inventorypos/salesdesk/internal/cache"
	"github.com/inventorypos/salesdesk/internal/config"
	"github.com/inventorypos/salesdesk/internal/logger"
	"github.com/inventorypos/salesdesk/internal/postgres"
	"github.com/inventorypos/salesdesk/internal/publisher"
	"github.com/inventorypos/salesdesk/internal/pubsub"
	"github.com/inventorypos/salesdesk/internal/pubsub/memory"
	"github.com/inventorypos/salesdesk/internal/repository"
	"github.com/inventorypos/salesdesk/internal/sentry"
	"github.com/inventorypos/salesdesk/internal/service"
	"github.com/inventorypos/salesdesk/internal/validator"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// .env is optional; real deployments set SALESDESK_* directly
	_ = godotenv.Load()

	app := fx.New(
		sentry.Module(),
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewDB,

			// Events
			memory.NewPubSub,
			publisher.NewEventPublisher,
			provideInvoiceEventLogger,

			// Repositories
			repository.NewProductRepository,
			repository.NewCustomerRepository,
			repository.NewInvoiceRepository,
			repository.NewInvoiceNumberGenerator,

			// Services
			service.NewServiceParams,
			service.NewSalesSessionService,

			// API
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(
			validator.NewValidator,
			closeDB,
			startInvoiceEventLogger,
			startAPIServer,
		),
	)

	app.Run()
}

func provideHandlers(salesService service.SalesSessionService, logger *logger.Logger) api.Handlers {
	return api.Handlers{
		Health: v1.NewHealthHandler(logger),
		Sales:  v1.NewSalesHandler(salesService, logger),
	}
}

func provideInvoiceEventLogger(ps pubsub.PubSub, logger *logger.Logger) *publisher.InvoiceEventLogger {
	return publisher.NewInvoiceEventLogger(ps, logger)
}

func closeDB(lc fx.Lifecycle, db *postgres.DB, ps pubsub.PubSub, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := ps.Close(); err != nil {
				log.Errorw("error closing pubsub", "error", err)
			}
			db.Close()
			return nil
		},
	})
}

func startInvoiceEventLogger(lc fx.Lifecycle, eventLogger *publisher.InvoiceEventLogger, cfg *config.Configuration, log *logger.Logger) {
	if !cfg.Events.Enabled {
		log.Info("invoice events disabled, not starting event logger")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := eventLogger.Run(ctx); err != nil {
					log.Errorw("invoice event logger stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down API server")
			return srv.Shutdown(ctx)
		},
	})
}
