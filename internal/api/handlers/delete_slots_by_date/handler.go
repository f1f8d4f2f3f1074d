package delete_slots_by_date

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArenaSlots/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaSlots/internal/api/middleware"
	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	"github.com/m04kA/SMC-ArenaSlots/internal/service/slots"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgForbidden   = "недостаточно прав для удаления слотов"
	msgNoSlots     = "на эту дату нет слотов"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/delete-slot?date=YYYY-MM-DD
// Требует разрешение delete_slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("DELETE /admin/delete-slot - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("DELETE /admin/delete-slot - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.DeleteSlotsByDate(r.Context(), principal, date)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("DELETE /admin/delete-slot - Access denied: user_id=%s, role=%s", principal.UserID, principal.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrNoSlotsOnDate):
			handlers.RespondNotFound(w, msgNoSlots)

		case errors.Is(err, slots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("DELETE /admin/delete-slot - Failed to delete slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/delete-slot - Slots deleted successfully: date=%s, slots=%d, bookings=%d, by=%s",
		result.Date, result.SlotsDeleted, result.BookingsDeleted, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
