package book_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ArenaSlots/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ArenaSlots/pkg/metrics"
)

// UseCase контроль допуска: бронирование слота с соблюдением вместимости
type UseCase struct {
	slotRepo           SlotRepository
	bookingRepo        BookingRepository
	txManager          TransactionManager
	metrics            Metrics
	logger             Logger
	defaultMaxBookings int
}

// NewUseCase создает новый экземпляр use case.
// defaultMaxBookings применяется к слотам, которые создаются при первом бронировании
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	recorder Metrics,
	logger Logger,
	defaultMaxBookings int,
) *UseCase {
	if defaultMaxBookings <= 0 {
		defaultMaxBookings = domain.DefaultMaxBookings
	}

	return &UseCase{
		slotRepo:           slotRepo,
		bookingRepo:        bookingRepo,
		txManager:          txManager,
		metrics:            recorder,
		logger:             logger,
		defaultMaxBookings: defaultMaxBookings,
	}
}

// Execute бронирует слот (date, timeFrame) для пользователя.
// Слот создается, если его еще нет. Поиск слота, подсчет и вставка выполняются
// в одной транзакции: upsert слота блокирует его строку, поэтому конкурентные
// бронирования одного слота выполняются по очереди и вместимость не превышается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		uc.record(metrics.OutcomeInvalid)
		return nil, err
	}

	date := domain.NormalizeDate(req.Date)
	timeFrame := domain.NormalizeTimeFrame(req.TimeFrame)

	uc.logger.Info("BookSlot: user=%s, date=%s, timeFrame=%s",
		req.UserID, date.Format(domain.DateFormat), timeFrame)

	var result *Response

	// 2. Все операции с БД в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Находим или создаем слот (строка слота блокируется до конца транзакции)
		slot, err := uc.slotRepo.FindOrCreate(txCtx, date, timeFrame, uc.defaultMaxBookings)
		if err != nil {
			uc.logger.Error("BookSlot: failed to find or create slot: %v", err)
			return fmt.Errorf("%w: failed to find or create slot: %v", ErrInternal, err)
		}

		// 2.2. Считаем занятые места
		occupied, err := uc.bookingRepo.CountForSlot(txCtx, slot.ID)
		if err != nil {
			uc.logger.Error("BookSlot: failed to count bookings for slot id=%s: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
		}

		// 2.3. Проверяем вместимость: при maxBookings = 5 допустимо occupied = 0..4
		if occupied >= slot.MaxBookings {
			uc.logger.Warn("BookSlot: slot id=%s is full, %d/%d spots taken",
				slot.ID, occupied, slot.MaxBookings)
			return ErrSlotFull
		}

		// 2.4. Создаем бронирование
		created, err := uc.bookingRepo.Create(txCtx, domain.NewBooking(slot, req.UserID))
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateBooking) {
				uc.logger.Warn("BookSlot: user=%s already booked slot id=%s", req.UserID, slot.ID)
				return ErrAlreadyBooked
			}
			uc.logger.Error("BookSlot: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		booked := occupied + 1
		result = &Response{
			BookingID:   created.ID,
			SlotID:      slot.ID,
			UserID:      created.UserID,
			Date:        slot.Date,
			TimeFrame:   slot.TimeFrame,
			MaxBookings: slot.MaxBookings,
			Booked:      booked,
			Remaining:   slot.MaxBookings - booked,
			ExpiresAt:   created.ExpiresAt,
			CreatedAt:   created.CreatedAt,
		}
		return nil
	})

	if err != nil {
		uc.record(outcomeFor(err))
		if errors.Is(err, ErrSlotFull) || errors.Is(err, ErrAlreadyBooked) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("BookSlot: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.record(metrics.OutcomeCreated)
	uc.logger.Info("BookSlot: created booking id=%s for slot id=%s (%d/%d)",
		result.BookingID, result.SlotID, result.Booked, result.MaxBookings)

	return result, nil
}

func (uc *UseCase) record(outcome string) {
	if uc.metrics != nil {
		uc.metrics.RecordBooking(outcome)
	}
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ErrSlotFull):
		return metrics.OutcomeSlotFull
	case errors.Is(err, ErrAlreadyBooked):
		return metrics.OutcomeAlreadyBooked
	default:
		return metrics.OutcomeError
	}
}
