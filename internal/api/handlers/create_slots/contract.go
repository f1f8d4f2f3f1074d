package create_slots

import (
	"context"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	"github.com/m04kA/SMC-ArenaSlots/internal/service/slots/models"
)

type SlotService interface {
	CreateSlots(ctx context.Context, principal *domain.Principal, req *models.CreateSlotsRequest) (*models.CreateSlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
