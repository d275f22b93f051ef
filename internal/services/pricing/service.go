package pricing

import (
	"context"
	"fmt"

	"restaurant-pricing/internal/catalog"
	"restaurant-pricing/internal/clock"
	"restaurant-pricing/internal/database"
	"restaurant-pricing/internal/logger"
	"restaurant-pricing/internal/messaging"
	"restaurant-pricing/internal/models"
	engine "restaurant-pricing/internal/pricing"
)

// Service wires the pricing engine to the catalog cache and the
// repricing audit feed
type Service struct {
	cache     *catalog.Cache
	engine    *engine.Engine
	publisher *messaging.Publisher
	db        *database.DB
	conn      *messaging.Connection
	clock     clock.Clock
	logger    *logger.Logger
}

// NewService creates a pricing service
func NewService(cache *catalog.Cache, eng *engine.Engine, publisher *messaging.Publisher, db *database.DB, conn *messaging.Connection, clk clock.Clock, log *logger.Logger) *Service {
	return &Service{
		cache:     cache,
		engine:    eng,
		publisher: publisher,
		db:        db,
		conn:      conn,
		clock:     clk,
		logger:    log,
	}
}

// ComputePrices prices a cart against the current catalog snapshot
func (s *Service) ComputePrices(ctx context.Context, req *models.ComputeRequest, requestID string) (*models.ComputeResult, error) {
	snapshot, err := s.cache.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}

	result, err := s.engine.Compute(req, snapshot)
	if err != nil {
		return nil, err
	}

	for _, warning := range result.Warnings {
		s.logger.Warn("pricing_warning", warning, requestID, map[string]interface{}{
			"zone":         req.Zone,
			"service_type": req.ServiceType,
		})
	}

	// best-effort audit feed; a publish failure never fails the request
	msg := &models.RepricingMessage{
		RequestID:   requestID,
		Zone:        req.Zone,
		ServiceType: req.ServiceType,
		CartTotal:   result.CartTotal,
		ItemCount:   len(result.Items),
		ComputedAt:  s.clock.Now().UTC(),
	}
	if err := s.publisher.PublishRepricing(ctx, msg); err != nil {
		s.logger.Error("repricing_publish_failed", "Failed to publish repricing audit message", requestID, err, nil)
	}

	return result, nil
}

// DeliveryEvents returns the recorded driver events for one order,
// oldest first
func (s *Service) DeliveryEvents(ctx context.Context, orderNumber string) ([]models.DeliveryEvent, error) {
	rows, err := s.db.Query(ctx, database.GetDeliveryEventsByOrderSQL, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query delivery events: %w", err)
	}
	defer rows.Close()

	events := make([]models.DeliveryEvent, 0)
	for rows.Next() {
		var event models.DeliveryEvent
		err := rows.Scan(&event.ID, &event.OrderNumber, &event.DriverName,
			&event.Event, &event.OccurredAt, &event.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// RefreshCatalog drops the cached snapshot and loads a fresh one
func (s *Service) RefreshCatalog(ctx context.Context) error {
	s.cache.Invalidate()
	_, err := s.cache.Snapshot(ctx)
	return err
}

// HealthCheck reports whether the database and messaging are reachable
func (s *Service) HealthCheck(ctx context.Context) bool {
	if err := s.db.Ping(ctx); err != nil {
		return false
	}
	return !s.conn.IsClosed()
}
