package clear_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArenaSlots/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaSlots/internal/api/middleware"
	"github.com/m04kA/SMC-ArenaSlots/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgForbidden        = "недостаточно прав для удаления бронирования"
	msgNotFound         = "бронирование не найдено"
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

// Handle DELETE /api/v1/admin/delete-booking/{bookingId}
// Требует разрешение clear_booking, владелец бронирования не проверяется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("DELETE /admin/delete-booking/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.Clear(r.Context(), principal, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("DELETE /admin/delete-booking/{id} - Access denied: user_id=%s, role=%s",
				principal.UserID, principal.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /admin/delete-booking/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("DELETE /admin/delete-booking/{id} - Failed to clear booking: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/delete-booking/{id} - Booking cleared successfully: booking_id=%s, owner=%s, by=%s",
		bookingID, result.UserID, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
