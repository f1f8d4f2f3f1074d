package get_all_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArenaSlots/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaSlots/internal/api/middleware"
	"github.com/m04kA/SMC-ArenaSlots/internal/service/bookings"
)

const (
	msgForbidden  = "недостаточно прав для просмотра бронирований"
	msgNoBookings = "бронирований нет"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/get-bookings
// Требует разрешение view_bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	result, err := h.service.ListAll(r.Context(), principal)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /admin/get-bookings - Access denied: user_id=%s, role=%s", principal.UserID, principal.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrNoBookings):
			handlers.RespondNotFound(w, msgNoBookings)

		default:
			h.logger.Error("GET /admin/get-bookings - Failed to get bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/get-bookings - Bookings retrieved successfully: user_id=%s, count=%d",
		principal.UserID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
