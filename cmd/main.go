package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-pricing/internal/catalog"
	"restaurant-pricing/internal/clock"
	"restaurant-pricing/internal/config"
	"restaurant-pricing/internal/database"
	"restaurant-pricing/internal/logger"
	"restaurant-pricing/internal/messaging"
	"restaurant-pricing/internal/models"
	engine "restaurant-pricing/internal/pricing"
	"restaurant-pricing/internal/services/driverevents"
	pricingsvc "restaurant-pricing/internal/services/pricing"
	"restaurant-pricing/migrations"
)

func main() {
	// Parse command line flags
	var (
		mode       = flag.String("mode", "", "Service mode (pricing-service, driver-events-subscriber, driver-events-publisher)")
		configPath = flag.String("config", "config.yaml", "Path to configuration file")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
		prefetch   = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	// Validate required mode flag
	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	// Route to appropriate service
	switch *mode {
	case "pricing-service":
		if err := runPricingService(ctx, cfg, log, *port); err != nil {
			log.Error("service_failed", "Pricing service failed", requestID, err, nil)
			os.Exit(1)
		}
	case "driver-events-subscriber":
		if err := runDriverEventsSubscriber(ctx, cfg, log, *prefetch); err != nil {
			log.Error("service_failed", "Driver events subscriber failed", requestID, err, nil)
			os.Exit(1)
		}
	case "driver-events-publisher":
		if err := runDriverEventsPublisher(ctx, cfg, log); err != nil {
			log.Error("service_failed", "Driver events publisher failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runPricingService runs the cart pricing HTTP service
func runPricingService(ctx context.Context, cfg *config.Config, log *logger.Logger, portOverride int) error {
	requestID := logger.GenerateRequestID()

	// Initialize database
	db, err := database.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	// Run database migrations
	if err := db.RunMigrations(ctx, migrations.Files); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize messaging
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)

	// Wire the catalog cache and engine
	clk := clock.Real{}
	repo := catalog.NewRepository(db, log)
	ttl := time.Duration(cfg.Pricing.SnapshotTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	cache := catalog.NewCache(repo, ttl, clk)
	eng := engine.NewEngine(clk)

	service := pricingsvc.NewService(cache, eng, publisher, db, conn, clk, log)
	handler := pricingsvc.NewHandler(service, log)

	port := cfg.Pricing.Port
	if portOverride != 0 {
		port = portOverride
	}
	if port == 0 {
		port = 3000
	}

	// Setup HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler.SetupRoutes(),
	}

	// Start HTTP server in goroutine
	go func() {
		log.Info("service_started", fmt.Sprintf("Pricing service started on port %d", port), requestID, map[string]interface{}{
			"port":                 port,
			"snapshot_ttl_seconds": int(ttl.Seconds()),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// runDriverEventsSubscriber runs the driver event stream subscriber
func runDriverEventsSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	requestID := logger.GenerateRequestID()

	// Initialize database
	db, err := database.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	// Run database migrations
	if err := db.RunMigrations(ctx, migrations.Files); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize messaging
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	consumer := messaging.NewConsumer(conn, log, messaging.DriverEventsQueue, "driver-events-subscriber", prefetch)
	subscriber := driverevents.NewSubscriber(consumer, db, log)

	return subscriber.Start(ctx)
}

// runDriverEventsPublisher replays driver events from stdin onto the
// driver events exchange, one JSON object per line. Used to exercise
// the subscriber locally without the external driver system.
func runDriverEventsPublisher(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)

	published := 0
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var event models.DriverEventMessage
		if err := messaging.ParseMessage([]byte(line), &event); err != nil {
			log.Warn("message_parsing_failed", "Skipping malformed driver event line", requestID, map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		if err := event.Validate(); err != nil {
			log.Warn("validation_failed", "Skipping invalid driver event", requestID, map[string]interface{}{
				"order_number": event.OrderNumber,
				"error":        err.Error(),
			})
			continue
		}

		if err := publisher.PublishDriverEvent(ctx, &event); err != nil {
			return fmt.Errorf("failed to publish driver event for order %s: %w", event.OrderNumber, err)
		}
		published++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read driver events from stdin: %w", err)
	}

	log.Info("driver_events_published", fmt.Sprintf("Published %d driver events", published), requestID, map[string]interface{}{
		"published": published,
	})
	return nil
}
