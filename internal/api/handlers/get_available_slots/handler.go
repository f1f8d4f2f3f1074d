package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArenaSlots/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ArenaSlots/internal/usecase/get_available_slots"
)

const (
	msgInvalidQuery = "некорректные параметры: date в формате YYYY-MM-DD, onlyAvailable true/false"
	msgNoSlots      = "слоты еще не созданы"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/get-slots
// Query params: date (optional, YYYY-MM-DD), onlyAvailable (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	useCaseReq, err := ToUseCaseRequest(query.Get("date"), query.Get("onlyAvailable"))
	if err != nil {
		h.logger.Warn("GET /users/get-slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrNoSlots):
			h.logger.Warn("GET /users/get-slots - No slots: date=%q", query.Get("date"))
			handlers.RespondNotFound(w, msgNoSlots)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /users/get-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /users/get-slots - Failed to get slots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/get-slots - Slots retrieved successfully: slots_count=%d, remaining=%d",
		len(result.Slots), result.TotalRemaining)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
