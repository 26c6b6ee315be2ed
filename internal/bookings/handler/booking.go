package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"staybook/internal/bookings/service"
	apperrors "staybook/pkg/errors"
	httputil "staybook/pkg/http"
	"staybook/pkg/logger"
	"staybook/pkg/middleware"
	"staybook/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
	auth    func(http.Handler) http.Handler
}

// NewBookingHandler wires the booking routes. The auth middleware guards the
// mutating routes only; availability and calendar reads stay public. A nil
// auth leaves everything open, which is only acceptable in local development.
func NewBookingHandler(service service.BookingService, log *logger.Logger, auth func(http.Handler) http.Handler) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
		auth:    auth,
	}
}

type availabilityResponse struct {
	ProductID string `json:"product_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Available bool   `json:"available"`
}

type blockedDatesResponse struct {
	ProductID    string   `json:"product_id"`
	BlockedDates []string `json:"blocked_dates"`
}

type statusUpdateRequest struct {
	Status model.BookingStatus `json:"status"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	// The authenticated principal owns the booking regardless of what the
	// body claims.
	if customerID, ok := middleware.CustomerIDFrom(r.Context()); ok {
		booking.CustomerID = customerID
	}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetByProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("'product_id' query parameter is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByProduct", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByProduct", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, total, err := h.service.GetByProduct(r.Context(), productID, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByProduct", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetByProduct", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	productID := r.URL.Query().Get("product_id")

	start, err := httputil.ExtractDate(r, "start_date")
	if err != nil {
		h.writeError(w, "CheckAvailability", err)
		return
	}
	end, err := httputil.ExtractDate(r, "end_date")
	if err != nil {
		h.writeError(w, "CheckAvailability", err)
		return
	}
	if start == nil || end == nil {
		h.writeError(w, "CheckAvailability", apperrors.InvalidInput("Both 'start_date' and 'end_date' query parameters are required"))
		return
	}

	available, err := h.service.CheckAvailability(r.Context(), productID, *start, *end)
	if err != nil {
		h.writeError(w, "CheckAvailability", err)
		return
	}

	if writeErr := httputil.WriteSuccess(w, availabilityResponse{
		ProductID: productID,
		StartDate: start.String(),
		EndDate:   end.String(),
		Available: available,
	}); writeErr != nil {
		h.log.Error("failed to write success response", "handler", "CheckAvailability", "operation", "WriteSuccess", "error", writeErr)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) BlockedDates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	productID := r.URL.Query().Get("product_id")

	from, err := httputil.ExtractDate(r, "from")
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BlockedDates", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	to, err := httputil.ExtractDate(r, "to")
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BlockedDates", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	dates, err := h.service.BlockedDates(r.Context(), productID, from, to)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BlockedDates", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, blockedDatesResponse{
		ProductID:    productID,
		BlockedDates: dates,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "BlockedDates", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateStatus", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.protected(h.Create))
	router.GET("/api/v1/bookings", h.GetByProduct)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.PATCH("/api/v1/bookings/id/:id/status", h.protected(h.UpdateStatus))
	router.GET("/api/v1/bookings/availability", h.CheckAvailability)
	router.GET("/api/v1/bookings/blocked-dates", h.BlockedDates)
}

func (h *BookingHandler) protected(next httprouter.Handle) httprouter.Handle {
	if h.auth == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		h.auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next(w, r, ps)
		})).ServeHTTP(w, r)
	}
}
