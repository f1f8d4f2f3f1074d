package book_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_slot: invalid input data")

	// ErrSlotFull возвращается, когда все места в слоте заняты
	ErrSlotFull = errors.New("book_slot: slot is full")

	// ErrAlreadyBooked возвращается, когда пользователь уже забронировал этот слот
	ErrAlreadyBooked = errors.New("book_slot: slot already booked by user")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_slot: internal error")
)
