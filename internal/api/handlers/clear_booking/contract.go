package clear_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	"github.com/m04kA/SMC-ArenaSlots/internal/service/bookings/models"
)

type BookingService interface {
	Clear(ctx context.Context, principal *domain.Principal, bookingID uuid.UUID) (*models.DeletedBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
