package reaper

import (
	"context"
	"time"
)

// SlotRepository удаление просроченных слотов
type SlotRepository interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// BookingRepository удаление просроченных бронирований
type BookingRepository interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// Metrics счетчик удаленных записей
type Metrics interface {
	RecordPurged(entity string, count int64)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
