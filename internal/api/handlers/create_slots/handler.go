package create_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArenaSlots/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaSlots/internal/api/middleware"
	"github.com/m04kA/SMC-ArenaSlots/internal/service/slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса: нужны непустые dateRange и timeRange"
	msgInvalidInput       = "некорректные даты, интервалы или maxBookings"
	msgForbidden          = "недостаточно прав для создания слотов"
	msgDuplicate          = "все указанные слоты уже существуют"
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

// Handle POST /api/v1/admin/create-slot
// Требует разрешение add_slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req CreateSlotsRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /admin/create-slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateSlots(r.Context(), principal, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("POST /admin/create-slot - Access denied: user_id=%s, role=%s", principal.UserID, principal.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /admin/create-slot - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, slots.ErrDuplicateSlot):
			h.logger.Warn("POST /admin/create-slot - All slots already exist: user_id=%s", principal.UserID)
			handlers.RespondConflict(w, msgDuplicate)

		default:
			h.logger.Error("POST /admin/create-slot - Failed to create slots: user_id=%s, error=%v", principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/create-slot - Slots created successfully: user_id=%s, created=%d, skipped=%d",
		principal.UserID, len(result.Created), len(result.Skipped))
	handlers.RespondJSON(w, http.StatusCreated, result)
}
