package queue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"canteen-system/internal/logger"
	"canteen-system/internal/models"
	"canteen-system/internal/web"
)

// Handler exposes the queue service over HTTP
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new queue handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Routes builds the queue service router
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(web.RequestLogger(h.logger))

	r.Get("/health", h.healthCheck)
	r.Get("/workers/status", h.getWorkerStatus)

	r.Route("/queue/orders", func(r chi.Router) {
		r.Post("/", h.placeOrder)
		r.Get("/", h.listOrders)
		r.Route("/{orderNumber}", func(r chi.Router) {
			r.Get("/", h.getOrder)
			r.Get("/status", h.getOrderStatus)
			r.Get("/history", h.getOrderHistory)
			r.Patch("/status", h.updateStatus)
		})
	})

	return r
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.PlaceOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	if err := req.Validate(); err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := h.service.PlaceOrder(ctx, &req, requestID)
	if err != nil {
		h.logger.Error("order_placement_failed", "Failed to place order", requestID, err, nil)
		web.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.WriteJSON(w, http.StatusCreated, response)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list orders", requestID, err, nil)
		web.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	order, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "orderNumber"))
	if err != nil {
		h.writeOrderError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderStatus(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	status, err := h.service.GetOrderStatus(r.Context(), chi.URLParam(r, "orderNumber"))
	if err != nil {
		h.writeOrderError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, status)
}

func (h *Handler) getOrderHistory(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	history, err := h.service.GetOrderHistory(r.Context(), chi.URLParam(r, "orderNumber"))
	if err != nil {
		h.writeOrderError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, history)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req struct {
		Status    string `json:"status"`
		ChangedBy string `json:"changed_by"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	if _, err := models.ParseQueueOrderStatus(req.Status); err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	status, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "orderNumber"), req.Status, req.ChangedBy, requestID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			web.WriteError(w, http.StatusNotFound, "Order not found", requestID)
			return
		}
		h.logger.Error("status_update_failed", "Failed to update order status", requestID, err, nil)
		web.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.WriteJSON(w, http.StatusOK, status)
}

func (h *Handler) getWorkerStatus(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	workers, err := h.service.GetWorkerStatus(r.Context())
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to get worker status", requestID, err, nil)
		web.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.WriteJSON(w, http.StatusOK, workers)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.service.HealthCheck(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "queue-service",
		"healthy":   healthy,
	}

	statusCode := http.StatusOK
	if !healthy {
		statusCode = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}

	web.WriteJSON(w, statusCode, response)
}

func (h *Handler) writeOrderError(w http.ResponseWriter, requestID string, err error) {
	if errors.Is(err, ErrOrderNotFound) {
		web.WriteError(w, http.StatusNotFound, "Order not found", requestID)
		return
	}
	h.logger.Error("db_query_failed", "Queue order lookup failed", requestID, err, nil)
	web.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
}
