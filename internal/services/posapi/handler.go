package posapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"canteen-system/internal/logger"
	"canteen-system/internal/models"
	"canteen-system/internal/pos"
	"canteen-system/internal/web"
)

// CatalogLister is the read interface the POS handler needs beyond the
// register: the full item list for the POS item picker.
type CatalogLister interface {
	List(ctx context.Context) ([]models.MenuItem, error)
}

// Handler exposes the POS register over HTTP
type Handler struct {
	register *pos.Register
	catalog  CatalogLister
	logger   *logger.Logger
}

// NewHandler creates a new POS handler
func NewHandler(register *pos.Register, catalog CatalogLister, log *logger.Logger) *Handler {
	return &Handler{
		register: register,
		catalog:  catalog,
		logger:   log,
	}
}

// Routes builds the POS service router
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(web.RequestLogger(h.logger))

	r.Get("/health", h.healthCheck)
	r.Get("/catalog", h.listCatalog)

	r.Route("/pos/sessions", func(r chi.Router) {
		r.Post("/", h.openSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.getSession)
			r.Post("/lines", h.addLine)
			r.Delete("/lines", h.clearCart)
			r.Patch("/lines/{lineID}", h.updateQuantity)
			r.Delete("/lines/{lineID}", h.removeLine)
			r.Post("/discount", h.applyDiscount)
			r.Delete("/discount", h.removeDiscount)
			r.Post("/payment", h.processPayment)
		})
	})

	return r
}

func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) {
	sessionID := h.register.OpenSession()

	h.logger.Debug("session_opened", "Opened POS session", web.RequestID(r), map[string]interface{}{
		"session_id": sessionID,
	})

	web.WriteJSON(w, http.StatusCreated, map[string]string{"session_id": sessionID})
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.register.Snapshot(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeRegisterError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) addLine(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req struct {
		MenuItemID string `json:"menu_item_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}
	if req.MenuItemID == "" {
		web.WriteError(w, http.StatusBadRequest, "menu_item_id is required", requestID)
		return
	}

	view, err := h.register.AddLine(r.Context(), chi.URLParam(r, "sessionID"), req.MenuItemID)
	if err != nil {
		h.writeRegisterError(w, r, err)
		return
	}

	h.logger.Debug("line_added", "Added line to cart", requestID, map[string]interface{}{
		"session_id":   view.SessionID,
		"menu_item_id": req.MenuItemID,
		"subtotal":     view.Totals.Subtotal,
	})

	web.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req struct {
		Delta int `json:"delta"`
	}
	if err := decodeJSON(r, &req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	view, err := h.register.UpdateQuantity(chi.URLParam(r, "sessionID"), chi.URLParam(r, "lineID"), req.Delta)
	if err != nil {
		h.writeRegisterError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) removeLine(w http.ResponseWriter, r *http.Request) {
	view, err := h.register.RemoveLine(chi.URLParam(r, "sessionID"), chi.URLParam(r, "lineID"))
	if err != nil {
		h.writeRegisterError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.register.Clear(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeRegisterError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) applyDiscount(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req struct {
		Value string `json:"value"`
		Kind  string `json:"kind"`
	}
	if err := decodeJSON(r, &req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	kind := pos.DiscountKind(req.Kind)
	if kind != pos.DiscountPercentage && kind != pos.DiscountFixed {
		web.WriteError(w, http.StatusBadRequest, "kind must be one of: percentage, fixed", requestID)
		return
	}

	view, err := h.register.ApplyDiscount(chi.URLParam(r, "sessionID"), req.Value, kind)
	if err != nil {
		h.writeRegisterError(w, r, err)
		return
	}

	h.logger.Debug("discount_applied", "Applied discount", requestID, map[string]interface{}{
		"session_id": view.SessionID,
		"kind":       req.Kind,
		"value":      req.Value,
	})

	web.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) removeDiscount(w http.ResponseWriter, r *http.Request) {
	view, err := h.register.RemoveDiscount(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeRegisterError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) processPayment(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req struct {
		Method string `json:"method"`
	}
	if err := decodeJSON(r, &req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	confirmation, err := h.register.FinalizePayment(ctx, chi.URLParam(r, "sessionID"), req.Method)
	if err != nil {
		h.writeRegisterError(w, r, err)
		return
	}

	h.logger.Info("payment_processed", "Payment finalized", requestID, map[string]interface{}{
		"session_id": confirmation.SessionID,
		"total":      confirmation.Total,
		"method":     confirmation.Method,
	})

	web.WriteJSON(w, http.StatusOK, confirmation)
}

func (h *Handler) listCatalog(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	items, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list catalog", requestID, err, nil)
		web.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	web.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pos-service",
	})
}

// writeRegisterError maps register errors onto HTTP status codes
func (h *Handler) writeRegisterError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := web.RequestID(r)

	switch {
	case errors.Is(err, pos.ErrSessionNotFound), errors.Is(err, pos.ErrMenuItemNotFound):
		web.WriteError(w, http.StatusNotFound, err.Error(), requestID)
	case errors.Is(err, pos.ErrMenuItemUnavailable):
		web.WriteError(w, http.StatusConflict, err.Error(), requestID)
	case errors.Is(err, pos.ErrInvalidNumber),
		errors.Is(err, pos.ErrPercentageOutOfRange),
		errors.Is(err, pos.ErrInvalidDelta),
		errors.Is(err, pos.ErrInvalidPaymentMethod),
		errors.Is(err, pos.ErrEmptyOrder):
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
	default:
		h.logger.Error("pos_request_failed", "POS operation failed", requestID, err, nil)
		web.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
