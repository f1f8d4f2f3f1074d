package book_slot

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ArenaSlots/internal/infra/storage/booking"
)

// memStore хранилище в памяти. Do сериализует транзакции так же,
// как блокировка строки слота в PostgreSQL, и откатывает изменения при ошибке
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	slots    map[uuid.UUID]domain.Slot
	bookings map[uuid.UUID]domain.Booking

	countErr error
}

func newMemStore() *memStore {
	return &memStore{
		slots:    make(map[uuid.UUID]domain.Slot),
		bookings: make(map[uuid.UUID]domain.Booking),
	}
}

func (s *memStore) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	slots, bookings := s.snapshot()
	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.slots, s.bookings = slots, bookings
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) snapshot() (map[uuid.UUID]domain.Slot, map[uuid.UUID]domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make(map[uuid.UUID]domain.Slot, len(s.slots))
	for k, v := range s.slots {
		slots[k] = v
	}
	bookings := make(map[uuid.UUID]domain.Booking, len(s.bookings))
	for k, v := range s.bookings {
		bookings[k] = v
	}
	return slots, bookings
}

func (s *memStore) FindOrCreate(_ context.Context, date time.Time, timeFrame string, maxBookings int) (*domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := domain.NewSlot(date, timeFrame, maxBookings)
	if existing, ok := s.slots[candidate.ID]; ok {
		return &existing, nil
	}

	s.slots[candidate.ID] = *candidate
	return candidate, nil
}

func (s *memStore) CountForSlot(_ context.Context, slotID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.countErr != nil {
		return 0, s.countErr
	}

	count := 0
	for _, b := range s.bookings {
		if b.SlotID == slotID {
			count++
		}
	}
	return count, nil
}

func (s *memStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.SlotID == booking.SlotID && b.UserID == booking.UserID {
			return nil, bookingRepo.ErrDuplicateBooking
		}
	}

	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	s.bookings[booking.ID] = *booking
	return booking, nil
}

func (s *memStore) addSlot(date time.Time, timeFrame string, maxBookings int) domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot := domain.NewSlot(date, timeFrame, maxBookings)
	s.slots[slot.ID] = *slot
	return *slot
}

func (s *memStore) addBookings(slot domain.Slot, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < n; i++ {
		b := domain.NewBooking(&slot, uuid.New())
		s.bookings[b.ID] = *b
	}
}

func (s *memStore) count(slotID uuid.UUID) int {
	n, _ := s.CountForSlot(context.Background(), slotID)
	return n
}

func (s *memStore) slotCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

type metricsStub struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *metricsStub) RecordBooking(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = make(map[string]int)
	}
	m.outcomes[outcome]++
}
