package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListAvailable(ctx context.Context, date *time.Time) ([]domain.AvailableSlot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
