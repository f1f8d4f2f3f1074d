package book_slot

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	FindOrCreate(ctx context.Context, date time.Time, timeFrame string, maxBookings int) (*domain.Slot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountForSlot(ctx context.Context, slotID uuid.UUID) (int, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик исходов бронирования
type Metrics interface {
	RecordBooking(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
