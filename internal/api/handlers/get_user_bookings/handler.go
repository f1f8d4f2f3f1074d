package get_user_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArenaSlots/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaSlots/internal/api/middleware"
	"github.com/m04kA/SMC-ArenaSlots/internal/service/bookings"
)

const (
	msgNoBookings = "у вас нет бронирований"
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

// Handle GET /api/v1/users/view-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	result, err := h.service.ListForUser(r.Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, bookings.ErrNoBookings) {
			h.logger.Info("GET /users/view-slots - No bookings: user_id=%s", principal.UserID)
			handlers.RespondNotFound(w, msgNoBookings)
			return
		}
		h.logger.Error("GET /users/view-slots - Failed to get bookings: user_id=%s, error=%v",
			principal.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/view-slots - Bookings retrieved successfully: user_id=%s, count=%d",
		principal.UserID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
