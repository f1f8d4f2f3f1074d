package slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CreateMany(ctx context.Context, slots []*domain.Slot) (created []*domain.Slot, duplicates []*domain.Slot, err error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error)
	DeleteByDate(ctx context.Context, date time.Time) (int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	DeleteBySlotDate(ctx context.Context, date time.Time) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// AccessPolicy проверка разрешений по роли
type AccessPolicy interface {
	Check(principal *domain.Principal, c domain.Capability) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
