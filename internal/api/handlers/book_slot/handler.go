package book_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArenaSlots/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaSlots/internal/api/middleware"
	bookSlot "github.com/m04kA/SMC-ArenaSlots/internal/usecase/book_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса: нужны date и timeFrame"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные бронирования"
	msgSlotFull           = "все места в слоте заняты"
	msgAlreadyBooked      = "вы уже забронировали этот слот"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/users/book-slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req BookSlotRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /users/book-slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest(principal.UserID)
	if err != nil {
		h.logger.Warn("POST /users/book-slot - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrSlotFull):
			h.logger.Warn("POST /users/book-slot - Slot full: user_id=%s, date=%s, time_frame=%s",
				principal.UserID, req.Date, req.TimeFrame)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, bookSlot.ErrAlreadyBooked):
			h.logger.Warn("POST /users/book-slot - Already booked: user_id=%s, date=%s, time_frame=%s",
				principal.UserID, req.Date, req.TimeFrame)
			handlers.RespondConflict(w, msgAlreadyBooked)

		case errors.Is(err, bookSlot.ErrInvalidInput):
			h.logger.Warn("POST /users/book-slot - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /users/book-slot - Failed to book slot: user_id=%s, error=%v",
				principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users/book-slot - Slot booked successfully: booking_id=%s, slot_id=%s, user_id=%s, remaining=%d",
		result.BookingID, result.SlotID, principal.UserID, result.Remaining)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
