package cancel_booking

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

// Handle DELETE /api/v1/users/delete-slot/{bookingId}
// Пользователь может отменить только свое бронирование
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("DELETE /users/delete-slot/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.CancelOwn(r.Context(), principal.UserID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /users/delete-slot/{id} - Booking not found: booking_id=%s, user_id=%s",
				bookingID, principal.UserID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("DELETE /users/delete-slot/{id} - Failed to cancel booking: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /users/delete-slot/{id} - Booking cancelled successfully: booking_id=%s, user_id=%s",
		bookingID, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
