package domain

import (
	"time"

	"github.com/google/uuid"
)

// Booking бронирование пользователем одного слота
type Booking struct {
	ID        uuid.UUID
	SlotID    uuid.UUID
	UserID    uuid.UUID
	ExpiresAt time.Time // совпадает с датой слота
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBooking создает бронирование пользователя на слот
func NewBooking(slot *Slot, userID uuid.UUID) *Booking {
	return &Booking{
		ID:        uuid.New(),
		SlotID:    slot.ID,
		UserID:    userID,
		ExpiresAt: slot.BookingExpiresAt(),
	}
}

// UserBooking бронирование пользователя вместе с данными слота
type UserBooking struct {
	BookingID uuid.UUID
	SlotID    uuid.UUID
	Date      time.Time
	TimeFrame string
}

// BookingDetails бронирование со слотом и пользователем (для администратора).
// Слот или пользователь могут отсутствовать, тогда соответствующие поля пустые
type BookingDetails struct {
	BookingID uuid.UUID
	SlotID    uuid.UUID
	UserID    uuid.UUID
	Date      *time.Time
	TimeFrame string
	Username  string
	Fullname  string
	Email     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
