package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
)

// UseCase use case для получения слотов с количеством свободных мест
type UseCase struct {
	slotRepo  SlotRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:  slotRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет use case получения слотов.
// Занятость считается одним агрегирующим запросом, без кэширования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	dateLabel := "all"
	if req.Date != nil {
		normalized := domain.NormalizeDate(*req.Date)
		req.Date = &normalized
		dateLabel = normalized.Format(domain.DateFormat)
	}
	uc.logger.Info("GetAvailableSlots: date=%s, onlyAvailable=%v", dateLabel, req.OnlyAvailable)

	// 2. Получаем слоты с количеством бронирований в транзакции только для чтения
	var available []domain.AvailableSlot
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		available, err = uc.slotRepo.ListAvailable(txCtx, req.Date)
		return err
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 3. Пустой список - слоты не созданы
	if len(available) == 0 {
		uc.logger.Warn("GetAvailableSlots: no slots for date=%s", dateLabel)
		return nil, ErrNoSlots
	}

	resp := buildResponse(available, req.OnlyAvailable)
	uc.logger.Info("GetAvailableSlots: returned %d slots, %d/%d places free",
		len(resp.Slots), resp.TotalRemaining, resp.TotalCapacity)

	return resp, nil
}
