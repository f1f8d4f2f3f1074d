package create_slots

import (
	"github.com/m04kA/SMC-ArenaSlots/internal/service/slots/models"
)

// CreateSlotsRequest HTTP request model
type CreateSlotsRequest struct {
	DateRange   []string `json:"dateRange" validate:"required,min=1,max=366,dive,required"`
	TimeRange   []string `json:"timeRange" validate:"required,min=1,max=48,dive,required,max=64"`
	MaxBookings *int     `json:"maxBookings,omitempty" validate:"omitempty,min=1,max=1000"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateSlotsRequest) ToServiceRequest() *models.CreateSlotsRequest {
	return &models.CreateSlotsRequest{
		DateRange:   r.DateRange,
		TimeRange:   r.TimeRange,
		MaxBookings: r.MaxBookings,
	}
}
