package domain

import "time"

// Значения по умолчанию
const (
	DefaultMaxBookings = 5
	DefaultRetention   = 24 * time.Hour
)

// Ограничения бизнес-валидации
const (
	MinMaxBookings          = 1
	MaxMaxBookings          = 1000
	MaxTimeFrameLength      = 64
	MaxDatesPerRequest      = 366
	MaxTimeFramesPerRequest = 48
)

// Форматы времени
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
