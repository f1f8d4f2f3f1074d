package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserBooking, error)
	ListAllWithDetails(ctx context.Context) ([]*domain.BookingDetails, error)
	DeleteByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Booking, error)
	DeleteByIDAdmin(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
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
