package get_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на получение слотов
type Request struct {
	Date          *time.Time // Дата (опционально, без времени)
	OnlyAvailable bool       // Скрыть слоты без свободных мест
}

// Response модель ответа со списком слотов
type Response struct {
	Slots          []Slot
	TotalCapacity  int // сумма maxBookings по всем слотам ответа
	TotalRemaining int // сумма свободных мест
}

// Slot слот с занятостью
type Slot struct {
	SlotID      uuid.UUID
	Date        time.Time
	TimeFrame   string
	MaxBookings int
	Booked      int
	Remaining   int
}
