package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/swiftpos/backend/internal/cfg"
	v1Http "github.com/swiftpos/backend/internal/delivery/v1/http"
	"github.com/swiftpos/backend/internal/infrastructure/kafka"
	redisRepo "github.com/swiftpos/backend/internal/repository/redis"
	redisConv "github.com/swiftpos/backend/internal/repository/redis/converter/generated"
	"github.com/swiftpos/backend/internal/usecase"
	"github.com/swiftpos/backend/pkg/clients"
	"github.com/swiftpos/backend/pkg/closer"
	"github.com/swiftpos/backend/pkg/logger"
)

func Run() {
	logger := logger.NewSlogLogger()

	cfg, err := cfg.Load(logger)
	if err != nil {
		logger.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	shutdownCloser := closer.NewCloser(2 * time.Second)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(redisCtx); err != nil {
		redisCancel()
		logger.Errorf(err, "failed to connect to redis")
		os.Exit(1)
	}
	redisCancel()
	shutdownCloser.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	stateRepo := redisRepo.NewStateRepo(redisClient, redisConv.NewSnapshotConverterImpl(), cfg.Store, logger)

	// Диспетчер событий продаж включается только при настроенной Kafka
	var dispatcher usecase.SaleEventDispatcher
	if cfg.Kafka != nil {
		producer, err := kafka.NewProducer(logger, cfg.Kafka)
		if err != nil {
			logger.Errorf(err, "failed to initialize kafka producer")
			os.Exit(1)
		}
		if err := producer.EnsureTopic(10 * time.Second); err != nil {
			logger.Warnf("failed to ensure kafka topic, continuing: %v", err)
		}

		kafkaDispatcher := kafka.NewDispatcher(producer, logger, cfg.Kafka.MaxPublishRetries)
		kafkaDispatcher.Start(context.Background())
		dispatcher = kafkaDispatcher

		shutdownCloser.Add(func(ctx context.Context) error {
			kafkaDispatcher.Stop()
			return producer.Close()
		})
	}

	store := usecase.NewDataStore(stateRepo, dispatcher, logger)

	// Единственная гидратация за время жизни процесса
	hydrateCtx, hydrateCancel := context.WithTimeout(context.Background(), 10*time.Second)
	store.Hydrate(hydrateCtx)
	hydrateCancel()

	invoiceUC := usecase.NewInvoiceUC(store, cfg.Store.LookupRetries, cfg.Store.LookupRetryDelay, logger)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(store, invoiceUC, cfg.Auth, cfg.Store)

	httpSrv := v1Http.NewServer(r, cfg.Http)
	shutdownCloser.Add(func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := shutdownCloser.Close(shutdownCtx); err != nil {
		logger.Warnf("shutdown finished with errors: %v", err)
	}

	logger.Infof("Application shutdown complete")
	if appErr != nil {
		os.Exit(1)
	}
}
