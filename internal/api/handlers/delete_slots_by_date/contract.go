package delete_slots_by_date

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	"github.com/m04kA/SMC-ArenaSlots/internal/service/slots/models"
)

type SlotService interface {
	DeleteSlotsByDate(ctx context.Context, principal *domain.Principal, date time.Time) (*models.DeleteByDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
