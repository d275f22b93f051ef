package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"restaurant-pricing/internal/logger"
	"restaurant-pricing/internal/models"
)

// Handler handles HTTP requests for the pricing service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new pricing handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// ComputePrices handles POST /price/compute requests
func (h *Handler) ComputePrices(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	// Only accept POST method
	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	// Only accept JSON content
	if r.Header.Get("Content-Type") != "application/json" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Content-Type must be application/json", requestID)
		return
	}

	h.logger.Debug("compute_received", "Received price computation request", requestID, map[string]interface{}{
		"content_length": r.ContentLength,
		"remote_addr":    r.RemoteAddr,
	})

	// Parse request body
	var req models.ComputeRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		h.logger.Error("validation_failed", "Request validation failed", requestID, err, map[string]interface{}{
			"zone":         req.Zone,
			"service_type": req.ServiceType,
			"item_count":   len(req.Items),
		})
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	// Compute with timeout
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := h.service.ComputePrices(ctx, &req, requestID)
	if err != nil {
		h.logger.Error("compute_failed", "Failed to compute cart prices", requestID, err, map[string]interface{}{
			"zone":         req.Zone,
			"service_type": req.ServiceType,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.logger.Debug("compute_completed", "Cart priced successfully", requestID, map[string]interface{}{
		"cart_total": result.CartTotal,
		"item_count": len(result.Items),
		"warnings":   len(result.Warnings),
	})

	// Write successful response
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

// DeliveryEvents handles GET /orders/{orderNumber}/events requests
func (h *Handler) DeliveryEvents(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	orderNumber, ok := orderNumberFromPath(r.URL.Path)
	if !ok {
		h.writeErrorResponse(w, http.StatusNotFound, "Not found", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	events, err := h.service.DeliveryEvents(ctx, orderNumber)
	if err != nil {
		h.logger.Error("delivery_events_failed", "Failed to load delivery events", requestID, err, map[string]interface{}{
			"order_number": orderNumber,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"order_number": orderNumber,
		"events":       events,
	})
}

// RefreshCatalog handles POST /catalog/refresh requests
func (h *Handler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := h.service.RefreshCatalog(ctx); err != nil {
		h.logger.Error("catalog_refresh_failed", "Failed to refresh catalog snapshot", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.logger.Info("catalog_refreshed", "Catalog snapshot reloaded", requestID, nil)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "refreshed",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// orderNumberFromPath extracts the order number from an
// /orders/{orderNumber}/events path
func orderNumberFromPath(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/orders/")
	if !ok {
		return "", false
	}
	orderNumber, ok := strings.CutSuffix(rest, "/events")
	if !ok || orderNumber == "" || strings.Contains(orderNumber, "/") {
		return "", false
	}
	return orderNumber, true
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Check database and messaging health
	healthy := h.service.HealthCheck(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pricing-service",
		"healthy":   healthy,
	}

	w.Header().Set("Content-Type", "application/json")

	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
		response["status"] = "unhealthy"
	}

	json.NewEncoder(w).Encode(response)
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	}

	json.NewEncoder(w).Encode(errorResponse)
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Add request logging middleware
	mux.HandleFunc("/price/compute", h.withLogging(h.ComputePrices))
	mux.HandleFunc("/orders/", h.withLogging(h.DeliveryEvents))
	mux.HandleFunc("/catalog/refresh", h.withLogging(h.RefreshCatalog))
	mux.HandleFunc("/health", h.withLogging(h.HealthCheck))

	return mux
}

// withLogging adds request logging middleware
func (h *Handler) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		// Log request
		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
				"user_agent":  r.Header.Get("User-Agent"),
			})

		// Create a response writer that captures status code
		rw := &responseWriter{ResponseWriter: w, statusCode: 200}

		// Call the handler
		next(rw, r)

		// Log response
		duration := time.Since(start)
		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
			})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
