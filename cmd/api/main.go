package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	redisCache "github.com/numrent/virtual-number-service/internal/cache/redis"
	"github.com/numrent/virtual-number-service/internal/domain"
	httpHandler "github.com/numrent/virtual-number-service/internal/handler/http"
	"github.com/numrent/virtual-number-service/internal/persistant/postgresql"
	"github.com/numrent/virtual-number-service/internal/provider"
	orderRepo "github.com/numrent/virtual-number-service/internal/repository/order"
	"github.com/numrent/virtual-number-service/internal/service"
	"gorm.io/gorm"
)

var (
	configFile = flag.String("config", "config.json", "config file path")
)

func main() {
	// create root context
	appCtx, appCtxCancel := context.WithCancel(context.Background())
	defer appCtxCancel()

	// listen for terminate signal
	notifyCtx, stop := signal.NotifyContext(appCtx, syscall.SIGTERM)
	defer stop()

	// parse flags
	flag.Parse()

	// parse config
	config, err := ReadConfigJson(*configFile)
	if err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	// initialize external dependencies
	db, rClient, err := initExternalDependencies(notifyCtx, config)
	if err != nil {
		log.Fatalf("failed to initialize external dependencies: %v", err)
	}

	// setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// init order repository
	orders := orderRepo.NewOrderRepository(db)

	// init provider gateway
	gateway := provider.NewClient(config.ProviderUrl, config.ProviderApiKey)

	// init order lifecycle service
	orderSvc, err := service.NewOrderService(
		orders,
		gateway,
		rClient,
		logger.With(slog.String("component", "orderLifecycle")),
		&config.StoreMaxRetry,
		config.SweepInterval,
		config.CatalogTtl,
	)
	if err != nil {
		log.Fatalf("failed to initiate order service: %v", err)
	}

	// init http handler
	httpHandler := httpHandler.NewHttpHandler(
		fmt.Sprintf(":%d", config.HttpPort),
		orderSvc,
	)

	// run the expiry sweep in the background
	orderSvc.Start()

	wg := sync.WaitGroup{}
	// run http handler
	wg.Go(func() {
		if err := httpHandler.Run(); err != nil {
			logger.Error("http server encountered with an error and closed", "error", err.Error())
		}
		// cancel app context if http handler fails
		appCtxCancel()
	})

	// graceful shutdown
	wg.Go(func() {
		<-notifyCtx.Done()
		logger.Info("application shutting down...")

		shutDownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()

		orderSvc.Stop()
		httpHandler.Shutdown(shutDownCtx)
		postgresql.Close(db)
	})

	wg.Wait()
	os.Exit(0)
}

func initExternalDependencies(ctx context.Context, config *Config) (db *gorm.DB, rCache *redisCache.RedisCache, err error) {
	// initialize database
	db, err = postgresql.Initialize(config.DbConnString, []any{&domain.Order{}})
	if err != nil {
		return
	}

	// initialize cache
	rCache, err = redisCache.NewRedisCache(ctx, config.RedisAddr)

	return
}
