package cancel_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaSlots/internal/service/bookings/models"
)

type BookingService interface {
	CancelOwn(ctx context.Context, userID, bookingID uuid.UUID) (*models.DeletedBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
