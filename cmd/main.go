package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"canteen-system/internal/config"
	"canteen-system/internal/database"
	"canteen-system/internal/logger"
	"canteen-system/internal/messaging"
	"canteen-system/internal/models"
	"canteen-system/internal/pos"
	"canteen-system/internal/services/backoffice"
	"canteen-system/internal/services/kitchen"
	"canteen-system/internal/services/notification"
	"canteen-system/internal/services/posapi"
	"canteen-system/internal/services/queue"
)

func main() {
	var (
		mode              = flag.String("mode", "", "Service mode (pos-service, backoffice-service, queue-service, kitchen-worker, notification-subscriber)")
		port              = flag.Int("port", 3000, "HTTP port")
		workerName        = flag.String("worker-name", "", "Worker name (required for kitchen-worker mode)")
		channels          = flag.String("channels", "", "Comma-separated order channels for worker specialization")
		heartbeatInterval = flag.Int("heartbeat-interval", 30, "Heartbeat interval in seconds")
		prefetch          = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": *port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "pos-service":
		err = runPOSService(ctx, cfg, log, *port)
	case "backoffice-service":
		err = runBackofficeService(ctx, cfg, log, *port)
	case "queue-service":
		err = runQueueService(ctx, cfg, log, *port)
	case "kitchen-worker":
		if *workerName == "" {
			log.Error("validation_failed", "worker-name is required for kitchen-worker mode", requestID, nil, nil)
			os.Exit(1)
		}
		err = runKitchenWorker(ctx, cfg, log, *workerName, *channels, *heartbeatInterval, *prefetch)
	case "notification-subscriber":
		err = runNotificationSubscriber(ctx, cfg, log)
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	if err != nil {
		log.Error("service_failed", fmt.Sprintf("%s failed", *mode), requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runPOSService runs the point-of-sale HTTP service
func runPOSService(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	db, err := connectDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	catalog := posapi.NewPostgresCatalog(db)
	register := pos.NewRegister(catalog, posapi.NewSalesRecorder(db))
	handler := posapi.NewHandler(register, catalog, log)

	return serveHTTP(ctx, cfg, log, port, "POS service", handler.Routes())
}

// runBackofficeService runs the dashboard CRUD service
func runBackofficeService(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	db, err := connectDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	service := backoffice.NewService(backoffice.NewPostgresStore(db), log)
	handler := backoffice.NewHandler(service, log)

	return serveHTTP(ctx, cfg, log, port, "Backoffice service", handler.Routes())
}

// runQueueService runs the order queue HTTP service
func runQueueService(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	db, err := connectDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", "", nil)

	publisher := messaging.NewPublisher(conn, log)
	service := queue.NewService(queue.NewPostgresStore(db), publisher, log)
	handler := queue.NewHandler(service, log)

	return serveHTTP(ctx, cfg, log, port, "Queue service", handler.Routes())
}

// runKitchenWorker runs one kitchen worker consuming from its channel queue
func runKitchenWorker(ctx context.Context, cfg *config.Config, log *logger.Logger,
	workerName, channelsStr string, heartbeatInterval, prefetch int) error {

	db, err := connectDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	queueName := messaging.KitchenQueueForChannels(channelsStr)
	consumer := messaging.NewConsumer(conn, log, queueName, workerName, prefetch)
	publisher := messaging.NewPublisher(conn, log)

	worker := kitchen.NewWorker(
		workerName,
		models.ParseChannels(channelsStr),
		time.Duration(heartbeatInterval)*time.Second,
		prefetch,
		db, consumer, publisher, log,
	)

	return worker.Start(ctx)
}

// runNotificationSubscriber runs the status update subscriber
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.NotificationsQueue, "notification-subscriber", 1)
	subscriber := notification.NewSubscriber(consumer, log)

	return subscriber.Start(ctx)
}

// connectDatabase opens the pool and applies pending migrations
func connectDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.DB, error) {
	db, err := database.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	log.Info("db_connected", "Connected to PostgreSQL database", "", nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// serveHTTP runs an HTTP server until the context is cancelled
func serveHTTP(ctx context.Context, cfg *config.Config, log *logger.Logger, port int, name string, handler http.Handler) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSeconds) * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("service_started", fmt.Sprintf("%s started on port %d", name, port), "", map[string]interface{}{
			"port": port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
