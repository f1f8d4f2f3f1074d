package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaSlots/internal/access"
	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	slotRepo "github.com/m04kA/SMC-ArenaSlots/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ArenaSlots/internal/service/slots/models"
)

// Service сервис администрирования слотов
type Service struct {
	slotRepo           SlotRepository
	bookingRepo        BookingRepository
	txManager          TransactionManager
	policy             AccessPolicy
	logger             Logger
	defaultMaxBookings int
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	policy AccessPolicy,
	logger Logger,
	defaultMaxBookings int,
) *Service {
	if defaultMaxBookings <= 0 {
		defaultMaxBookings = domain.DefaultMaxBookings
	}

	return &Service{
		slotRepo:           slotRepo,
		bookingRepo:        bookingRepo,
		txManager:          txManager,
		policy:             policy,
		logger:             logger,
		defaultMaxBookings: defaultMaxBookings,
	}
}

// CreateSlots создает слоты для каждой пары (дата, интервал).
// Уже существующие пары пропускаются и возвращаются в Skipped; вместимость
// существующих слотов не меняется. Если существуют все пары - ErrDuplicateSlot.
// Требует разрешение add_slot
func (s *Service) CreateSlots(ctx context.Context, principal *domain.Principal, req *models.CreateSlotsRequest) (*models.CreateSlotsResponse, error) {
	// 1. Проверяем права доступа
	if err := s.authorize(principal, domain.CapabilityAddSlot); err != nil {
		return nil, err
	}

	// 2. Валидируем запрос и строим список слотов
	candidates, err := s.buildSlots(req)
	if err != nil {
		s.logger.Warn("CreateSlots: validation failed: %v", err)
		return nil, err
	}

	s.logger.Info("CreateSlots: user=%s creates %d slots (%d dates x %d time frames)",
		principal.UserID, len(candidates), len(req.DateRange), len(req.TimeRange))

	// 3. Вставляем в одной транзакции: ошибка БД откатывает весь пакет
	var created, duplicates []*domain.Slot
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, duplicates, err = s.slotRepo.CreateMany(txCtx, candidates)
		return err
	})
	if err != nil {
		s.logger.Error("CreateSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateSlots - repository error: %v", ErrInternal, err)
	}

	// 4. Ничего не создано - все слоты уже существуют
	if len(created) == 0 {
		s.logger.Warn("CreateSlots: all %d slots already exist", len(duplicates))
		return nil, ErrDuplicateSlot
	}

	s.logger.Info("CreateSlots: created %d slots, skipped %d duplicates", len(created), len(duplicates))
	return models.FromDomainCreateResult(created, duplicates), nil
}

// DeleteSlot удаляет слот по ID вместе с его бронированиями.
// Требует разрешение delete_slot
func (s *Service) DeleteSlot(ctx context.Context, principal *domain.Principal, id uuid.UUID) (*models.SlotResponse, error) {
	if err := s.authorize(principal, domain.CapabilityDeleteSlot); err != nil {
		return nil, err
	}

	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: slot id is required", ErrInvalidInput)
	}

	deleted, err := s.slotRepo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("DeleteSlot: slot id=%s not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("DeleteSlot: repository error for slot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: DeleteSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteSlot: user=%s deleted slot id=%s (%s %s)",
		principal.UserID, id, deleted.Date.Format(domain.DateFormat), deleted.TimeFrame)
	return models.FromDomainSlot(deleted), nil
}

// DeleteSlotsByDate удаляет все слоты на дату и их бронирования в одной транзакции.
// Требует разрешение delete_slot
func (s *Service) DeleteSlotsByDate(ctx context.Context, principal *domain.Principal, date time.Time) (*models.DeleteByDateResponse, error) {
	if err := s.authorize(principal, domain.CapabilityDeleteSlot); err != nil {
		return nil, err
	}

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date = domain.NormalizeDate(date)
	dateStr := date.Format(domain.DateFormat)

	resp := &models.DeleteByDateResponse{Date: dateStr}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Сначала бронирования, затем сами слоты
		bookingsDeleted, err := s.bookingRepo.DeleteBySlotDate(txCtx, date)
		if err != nil {
			return fmt.Errorf("%w: delete bookings: %v", ErrInternal, err)
		}

		slotsDeleted, err := s.slotRepo.DeleteByDate(txCtx, date)
		if err != nil {
			return fmt.Errorf("%w: delete slots: %v", ErrInternal, err)
		}

		if slotsDeleted == 0 {
			return ErrNoSlotsOnDate
		}

		resp.BookingsDeleted = bookingsDeleted
		resp.SlotsDeleted = slotsDeleted
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrNoSlotsOnDate) {
			s.logger.Warn("DeleteSlotsByDate: no slots on %s", dateStr)
			return nil, err
		}
		s.logger.Error("DeleteSlotsByDate: failed for date=%s: %v", dateStr, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: DeleteSlotsByDate - transaction: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteSlotsByDate: user=%s deleted %d slots and %d bookings on %s",
		principal.UserID, resp.SlotsDeleted, resp.BookingsDeleted, dateStr)
	return resp, nil
}

// buildSlots проверяет запрос и возвращает уникальные слоты в порядке (дата, интервал)
func (s *Service) buildSlots(req *models.CreateSlotsRequest) ([]*domain.Slot, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if len(req.DateRange) == 0 || len(req.TimeRange) == 0 {
		return nil, fmt.Errorf("%w: dateRange and timeRange must not be empty", ErrInvalidInput)
	}
	if len(req.DateRange) > domain.MaxDatesPerRequest {
		return nil, fmt.Errorf("%w: at most %d dates per request", ErrInvalidInput, domain.MaxDatesPerRequest)
	}
	if len(req.TimeRange) > domain.MaxTimeFramesPerRequest {
		return nil, fmt.Errorf("%w: at most %d time frames per request", ErrInvalidInput, domain.MaxTimeFramesPerRequest)
	}

	maxBookings := s.defaultMaxBookings
	if req.MaxBookings != nil {
		maxBookings = *req.MaxBookings
		if maxBookings < domain.MinMaxBookings || maxBookings > domain.MaxMaxBookings {
			return nil, fmt.Errorf("%w: maxBookings must be between %d and %d",
				ErrInvalidInput, domain.MinMaxBookings, domain.MaxMaxBookings)
		}
	}

	dates := make([]time.Time, 0, len(req.DateRange))
	seenDates := make(map[time.Time]struct{}, len(req.DateRange))
	for _, raw := range req.DateRange {
		date, err := domain.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalidInput, raw)
		}
		if _, ok := seenDates[date]; ok {
			continue
		}
		seenDates[date] = struct{}{}
		dates = append(dates, date)
	}

	timeFrames := make([]string, 0, len(req.TimeRange))
	seenFrames := make(map[string]struct{}, len(req.TimeRange))
	for _, raw := range req.TimeRange {
		tf := strings.TrimSpace(raw)
		if tf == "" {
			return nil, fmt.Errorf("%w: time frame must not be blank", ErrInvalidInput)
		}
		if domain.TimeFrameTooLong(tf) {
			return nil, fmt.Errorf("%w: time frame %q is longer than %d characters",
				ErrInvalidInput, tf, domain.MaxTimeFrameLength)
		}
		if _, ok := seenFrames[tf]; ok {
			continue
		}
		seenFrames[tf] = struct{}{}
		timeFrames = append(timeFrames, tf)
	}

	result := make([]*domain.Slot, 0, len(dates)*len(timeFrames))
	for _, date := range dates {
		for _, tf := range timeFrames {
			result = append(result, domain.NewSlot(date, tf, maxBookings))
		}
	}

	return result, nil
}

func (s *Service) authorize(principal *domain.Principal, c domain.Capability) error {
	if err := s.policy.Check(principal, c); err != nil {
		if errors.Is(err, access.ErrAccessDenied) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: access check: %v", ErrInternal, err)
	}
	return nil
}
