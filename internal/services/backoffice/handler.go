package backoffice

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"canteen-system/internal/logger"
	"canteen-system/internal/models"
	"canteen-system/internal/web"
)

// Handler exposes the backoffice dashboard API over HTTP
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new backoffice handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Routes builds the backoffice router
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(web.RequestLogger(h.logger))

	r.Get("/health", h.healthCheck)

	r.Route("/menu-items", func(r chi.Router) {
		r.Get("/", h.listMenuItems)
		r.Post("/", h.createMenuItem)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getMenuItem)
			r.Put("/", h.updateMenuItem)
			r.Delete("/", h.deleteMenuItem)
		})
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", h.listInventory)
		r.Post("/", h.createInventoryItem)
		r.Get("/activities", h.listInventoryActivities)
		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", h.updateInventoryItem)
			r.Delete("/", h.deleteInventoryItem)
		})
	})

	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.listEmployees)
		r.Post("/", h.createEmployee)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getEmployee)
			r.Put("/", h.updateEmployee)
			r.Delete("/", h.deleteEmployee)
		})
	})

	r.Route("/schedule", func(r chi.Router) {
		r.Get("/", h.listSchedule)
		r.Post("/", h.createScheduleEntry)
	})

	r.Route("/feedback", func(r chi.Router) {
		r.Get("/", h.listFeedback)
		r.Post("/", h.createFeedback)
	})

	r.Get("/sales", h.listSales)
	r.Get("/dashboard/stats", h.dashboardStats)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.listUsers)
		r.Post("/", h.createUser)
		r.Get("/logs", h.listActivityLogs)
		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", h.updateUser)
			r.Delete("/", h.deleteUser)
		})
	})

	return r
}

func (h *Handler) listMenuItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListMenuItems(r.Context())
	if err != nil {
		h.writeServiceError(w, web.RequestID(r), err)
		return
	}
	web.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetMenuItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, web.RequestID(r), err)
		return
	}
	web.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.MenuItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	item, err := h.service.CreateMenuItem(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, requestID, err)
		return
	}
	web.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.MenuItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	item, err := h.service.UpdateMenuItem(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.writeServiceError(w, requestID, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMenuItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, web.RequestID(r), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListInventory(r.Context())
	if err != nil {
		h.writeServiceError(w, web.RequestID(r), err)
		return
	}
	web.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) createInventoryItem(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.InventoryItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	item, err := h.service.CreateInventoryItem(r.Context(), &req, r.Header.Get("X-Staff-Name"))
	if err != nil {
		h.writeServiceError(w, requestID, err)
		return
	}
	web.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateInventoryItem(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.InventoryItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	item, err := h.service.UpdateInventoryItem(r.Context(), chi.URLParam(r, "id"), &req, r.Header.Get("X-Staff-Name"))
	if err != nil {
		h.writeServiceError(w, requestID, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteInventoryItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, web.RequestID(r), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listInventoryActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.service.ListInventoryActivities(r.Context())
	if err != nil {
		h.writeServiceError(w, web.RequestID(r), err)
		return
	}
	web.WriteJSON(w, http.StatusOK, activities)
}

func (h *Handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.ListEmployees(r.Context())
	if err != nil {
		h.writeServiceError(w, web.RequestID(r), err)
		return
	}
	web.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) getEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.service.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, web.RequestID(r), err)
		return
	}
	web.WriteJSON(w, http.StatusOK, employee)
}

func (h *Handler) createEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.EmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	employee, err := h.service.CreateEmployee(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, requestID, err)
		return
	}
	web.WriteJSON(w, http.StatusCreated, employee)
}

func (h *Handler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.EmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	employee, err := h.service.UpdateEmployee(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.writeServiceError(w, requestID, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, employee)
}

func (h *Handler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, web.RequestID(r), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listSchedule(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListSchedule(r.Context())
	if err != nil {
		h.writeServiceError(w, web.RequestID(r), err)
		return
	}
	web.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) createScheduleEntry(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.ScheduleEntryRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	entry, err := h.service.CreateScheduleEntry(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, requestID, err)
		return
	}
	web.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) listFeedback(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListFeedback(r.Context())
	if err != nil {
		h.writeServiceError(w, web.RequestID(r), err)
		return
	}
	web.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) createFeedback(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.FeedbackRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	feedback, err := h.service.CreateFeedback(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, requestID, err)
		return
	}
	web.WriteJSON(w, http.StatusCreated, feedback)
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.ListSales(r.Context())
	if err != nil {
		h.writeServiceError(w, web.RequestID(r), err)
		return
	}
	web.WriteJSON(w, http.StatusOK, sales)
}

func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		h.writeServiceError(w, web.RequestID(r), err)
		return
	}
	web.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.writeServiceError(w, web.RequestID(r), err)
		return
	}
	web.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.UserRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(true); err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, requestID, err)
		return
	}
	web.WriteJSON(w, http.StatusCreated, user)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.UserRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(false); err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	user, err := h.service.UpdateUser(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.writeServiceError(w, requestID, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, web.RequestID(r), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listActivityLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.service.ListActivityLogs(r.Context())
	if err != nil {
		h.writeServiceError(w, web.RequestID(r), err)
		return
	}
	web.WriteJSON(w, http.StatusOK, logs)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	healthy := h.service.HealthCheck(r.Context())

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "backoffice-service",
		"healthy":   healthy,
	}

	statusCode := http.StatusOK
	if !healthy {
		statusCode = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}

	web.WriteJSON(w, statusCode, response)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid JSON format", web.RequestID(r))
		return false
	}
	return true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, requestID string, err error) {
	if errors.Is(err, ErrNotFound) {
		web.WriteError(w, http.StatusNotFound, "Record not found", requestID)
		return
	}
	h.logger.Error("request_failed", "Backoffice request failed", requestID, err, nil)
	web.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
}
