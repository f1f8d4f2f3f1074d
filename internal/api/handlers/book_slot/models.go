package book_slot

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	bookSlot "github.com/m04kA/SMC-ArenaSlots/internal/usecase/book_slot"
)

// BookSlotRequest HTTP request model
type BookSlotRequest struct {
	Date      string `json:"date" validate:"required"`             // "2025-06-01"
	TimeFrame string `json:"timeFrame" validate:"required,max=64"` // "09AM-10AM"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID   string `json:"bookingId"`
	SlotID      string `json:"slotId"`
	UserID      string `json:"userId"`
	Date        string `json:"date"`
	TimeFrame   string `json:"timeFrame"`
	MaxBookings int    `json:"maxBookings"`
	Booked      int    `json:"booked"`
	Remaining   int    `json:"remaining"`
	ExpiresAt   string `json:"expiresAt"`
	CreatedAt   string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookSlotRequest) ToUseCaseRequest(userID uuid.UUID) (*bookSlot.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &bookSlot.Request{
		UserID:    userID,
		Date:      date,
		TimeFrame: r.TimeFrame,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSlot.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:   resp.BookingID.String(),
		SlotID:      resp.SlotID.String(),
		UserID:      resp.UserID.String(),
		Date:        resp.Date.Format(domain.DateFormat),
		TimeFrame:   resp.TimeFrame,
		MaxBookings: resp.MaxBookings,
		Booked:      resp.Booked,
		Remaining:   resp.Remaining,
		ExpiresAt:   resp.ExpiresAt.Format(time.RFC3339),
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
