package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено (или принадлежит другому пользователю)
	ErrBookingNotFound = errors.New("booking not found")

	// ErrNoBookings возвращается, когда список бронирований пуст
	ErrNoBookings = errors.New("no bookings found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
