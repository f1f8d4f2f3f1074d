package models

import (
	"time"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
)

// Request модели

// CreateSlotsRequest запрос на создание слотов: декартово произведение дат и интервалов
type CreateSlotsRequest struct {
	DateRange   []string `json:"dateRange"`             // ["2025-06-01", "2025-06-02"]
	TimeRange   []string `json:"timeRange"`             // ["09AM-10AM", "10AM-11AM"]
	MaxBookings *int     `json:"maxBookings,omitempty"` // nil = значение по умолчанию из конфигурации
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	TimeFrame   string    `json:"timeFrame"`
	MaxBookings int       `json:"maxBookings"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SlotKey пара (дата, интервал), идентифицирующая слот
type SlotKey struct {
	Date      string `json:"date"`
	TimeFrame string `json:"timeFrame"`
}

// CreateSlotsResponse результат пакетного создания
type CreateSlotsResponse struct {
	Created []SlotResponse `json:"created"`
	Skipped []SlotKey      `json:"skipped"` // уже существовавшие слоты
}

// DeleteByDateResponse результат удаления слотов на дату
type DeleteByDateResponse struct {
	Date            string `json:"date"`
	SlotsDeleted    int64  `json:"slotsDeleted"`
	BookingsDeleted int64  `json:"bookingsDeleted"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain.Slot в SlotResponse
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:          s.ID.String(),
		Date:        s.Date.Format(domain.DateFormat),
		TimeFrame:   s.TimeFrame,
		MaxBookings: s.MaxBookings,
		CreatedAt:   s.CreatedAt,
	}
}

// FromDomainCreateResult конвертирует результат CreateMany в response
func FromDomainCreateResult(created, duplicates []*domain.Slot) *CreateSlotsResponse {
	resp := &CreateSlotsResponse{
		Created: make([]SlotResponse, 0, len(created)),
		Skipped: make([]SlotKey, 0, len(duplicates)),
	}

	for _, s := range created {
		resp.Created = append(resp.Created, *FromDomainSlot(s))
	}
	for _, s := range duplicates {
		resp.Skipped = append(resp.Skipped, SlotKey{
			Date:      s.Date.Format(domain.DateFormat),
			TimeFrame: s.TimeFrame,
		})
	}

	return resp
}
