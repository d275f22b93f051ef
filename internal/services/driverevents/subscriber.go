// Package driverevents consumes the external driver event stream
// (order accepted / delivered) and records it. The order lifecycle
// itself lives outside this system; this subscriber is its only point
// of contact.
package driverevents

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"restaurant-pricing/internal/database"
	"restaurant-pricing/internal/logger"
	"restaurant-pricing/internal/messaging"
	"restaurant-pricing/internal/models"
)

// Subscriber handles driver event messages
type Subscriber struct {
	consumer *messaging.Consumer
	db       *database.DB
	logger   *logger.Logger

	// Graceful shutdown
	shutdown chan os.Signal
	done     chan bool
}

// NewSubscriber creates a new driver events subscriber
func NewSubscriber(consumer *messaging.Consumer, db *database.DB, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		db:       db,
		logger:   log,
		shutdown: make(chan os.Signal, 1),
		done:     make(chan bool, 1),
	}
}

// Start starts the driver events subscriber
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	// Set up graceful shutdown
	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)

	s.logger.Info("service_started", "Driver events subscriber started", requestID, nil)

	// Start message consumption
	go func() {
		if err := s.consumer.StartConsuming(ctx, s.handleDriverEvent); err != nil {
			s.logger.Error("consumer_failed", "Driver events consumer failed", requestID, err, nil)
		}
		s.done <- true
	}()

	// Wait for shutdown signal or consumer to finish
	select {
	case <-s.shutdown:
		s.logger.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		return s.gracefulShutdown(requestID)
	case <-s.done:
		return nil
	}
}

// handleDriverEvent processes one driver event message
func (s *Subscriber) handleDriverEvent(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var event models.DriverEventMessage
	if err := messaging.ParseMessage(body, &event); err != nil {
		// a malformed message would requeue forever; log and drop it
		s.logger.Error("message_parsing_failed", "Failed to parse driver event", requestID, err, nil)
		return nil
	}

	if err := event.Validate(); err != nil {
		s.logger.Error("validation_failed", "Invalid driver event", requestID, err, map[string]interface{}{
			"order_number": event.OrderNumber,
			"event":        event.Event,
		})
		return nil
	}

	var id int
	err := s.db.QueryRow(ctx, database.InsertDeliveryEventSQL,
		event.OrderNumber, event.DriverName, string(event.Event), event.Timestamp).Scan(&id)
	if err != nil {
		// transient database failure; requeue the message
		return fmt.Errorf("failed to record driver event: %w", err)
	}

	s.logger.Info("driver_event_recorded", s.formatEvent(&event), requestID, map[string]interface{}{
		"event_id":     id,
		"order_number": event.OrderNumber,
		"driver_name":  event.DriverName,
		"event":        event.Event,
	})

	return nil
}

// formatEvent creates a human-readable event message
func (s *Subscriber) formatEvent(event *models.DriverEventMessage) string {
	timestamp := event.Timestamp.Format("2006-01-02 15:04:05")

	switch event.Event {
	case models.DriverEventAccepted:
		return fmt.Sprintf("[%s] Driver %s accepted order %s", timestamp, event.DriverName, event.OrderNumber)
	case models.DriverEventDelivered:
		return fmt.Sprintf("[%s] Driver %s delivered order %s", timestamp, event.DriverName, event.OrderNumber)
	default:
		return fmt.Sprintf("[%s] Driver %s reported %s for order %s", timestamp, event.DriverName, event.Event, event.OrderNumber)
	}
}

// gracefulShutdown handles graceful shutdown of the subscriber
func (s *Subscriber) gracefulShutdown(requestID string) error {
	s.logger.Info("graceful_shutdown", "Starting graceful shutdown", requestID, nil)

	if s.consumer != nil {
		s.consumer.Close()
	}

	s.logger.Info("graceful_shutdown", "Graceful shutdown completed", requestID, nil)
	return nil
}
