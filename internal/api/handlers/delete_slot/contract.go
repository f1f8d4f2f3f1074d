package delete_slot

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	"github.com/m04kA/SMC-ArenaSlots/internal/service/slots/models"
)

type SlotService interface {
	DeleteSlot(ctx context.Context, principal *domain.Principal, id uuid.UUID) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
