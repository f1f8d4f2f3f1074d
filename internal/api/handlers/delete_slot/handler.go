package delete_slot

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArenaSlots/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaSlots/internal/api/middleware"
	"github.com/m04kA/SMC-ArenaSlots/internal/service/slots"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgForbidden     = "недостаточно прав для удаления слотов"
	msgNotFound      = "слот не найден"
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

// Handle DELETE /api/v1/admin/delete-slot/{slotId}
// Требует разрешение delete_slot. Бронирования слота удаляются вместе с ним
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	slotID, err := uuid.Parse(mux.Vars(r)["slotId"])
	if err != nil {
		h.logger.Warn("DELETE /admin/delete-slot/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.service.DeleteSlot(r.Context(), principal, slotID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("DELETE /admin/delete-slot/{id} - Access denied: user_id=%s, role=%s", principal.UserID, principal.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /admin/delete-slot/{id} - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		default:
			h.logger.Error("DELETE /admin/delete-slot/{id} - Failed to delete slot: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/delete-slot/{id} - Slot deleted successfully: slot_id=%s, by=%s", slotID, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
