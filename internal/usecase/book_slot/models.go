package book_slot

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на бронирование слота
type Request struct {
	UserID    uuid.UUID // ID пользователя из токена
	Date      time.Time // Дата слота (без времени)
	TimeFrame string    // Метка интервала, например "09AM-10AM"
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID   uuid.UUID
	SlotID      uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	TimeFrame   string
	MaxBookings int
	Booked      int // занято мест с учетом нового бронирования
	Remaining   int
	ExpiresAt   time.Time
	CreatedAt   time.Time
}
