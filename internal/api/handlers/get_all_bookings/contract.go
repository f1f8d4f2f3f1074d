package get_all_bookings

import (
	"context"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	"github.com/m04kA/SMC-ArenaSlots/internal/service/bookings/models"
)

type BookingService interface {
	ListAll(ctx context.Context, principal *domain.Principal) (*models.BookingDetailsListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
