package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// slotNamespace пространство имён для детерминированных ID слотов (UUIDv5)
var slotNamespace = uuid.MustParse("6f1c1d52-3b0e-4c8e-9a55-6a4c2d1b7e90")

// Slot бронируемый временной интервал на конкретную дату
type Slot struct {
	ID          uuid.UUID
	Date        time.Time // дата без времени (полночь UTC)
	TimeFrame   string    // метка интервала, например "09AM-10AM"
	MaxBookings int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSlot создает слот с нормализованной датой и ID, выведенным из пары (date, timeFrame)
func NewSlot(date time.Time, timeFrame string, maxBookings int) *Slot {
	date = NormalizeDate(date)
	timeFrame = NormalizeTimeFrame(timeFrame)
	if maxBookings <= 0 {
		maxBookings = DefaultMaxBookings
	}

	return &Slot{
		ID:          SlotID(date, timeFrame),
		Date:        date,
		TimeFrame:   timeFrame,
		MaxBookings: maxBookings,
	}
}

// SlotID стабильный ключ слота: одна и та же пара (date, timeFrame) всегда даёт один и тот же ID
func SlotID(date time.Time, timeFrame string) uuid.UUID {
	key := NormalizeDate(date).Format(DateFormat) + "|" + NormalizeTimeFrame(timeFrame)
	return uuid.NewSHA1(slotNamespace, []byte(key))
}

// BookingExpiresAt момент истечения бронирований этого слота
func (s *Slot) BookingExpiresAt() time.Time {
	return s.Date
}

// NormalizeDate обнуляет время и переводит дату в UTC, сохраняя календарный день
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalizeTimeFrame убирает пробелы по краям метки интервала
func NormalizeTimeFrame(timeFrame string) string {
	return strings.TrimSpace(timeFrame)
}

// TimeFrameTooLong длина метки считается в символах, а не в байтах
func TimeFrameTooLong(timeFrame string) bool {
	return utf8.RuneCountInString(timeFrame) > MaxTimeFrameLength
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(t), nil
}

// AvailableSlot слот с посчитанной занятостью
type AvailableSlot struct {
	SlotID      uuid.UUID
	Date        time.Time
	TimeFrame   string
	MaxBookings int
	Booked      int
	Remaining   int
}

// NewAvailableSlot считает оставшиеся места; remaining не бывает отрицательным
func NewAvailableSlot(slot Slot, booked int) AvailableSlot {
	remaining := slot.MaxBookings - booked
	if remaining < 0 {
		remaining = 0
	}

	return AvailableSlot{
		SlotID:      slot.ID,
		Date:        slot.Date,
		TimeFrame:   slot.TimeFrame,
		MaxBookings: slot.MaxBookings,
		Booked:      booked,
		Remaining:   remaining,
	}
}

// IsFull returns true if the slot has no remaining places
func (s *AvailableSlot) IsFull() bool {
	return s.Remaining <= 0
}
