package get_available_slots

import "errors"

var (
	// ErrNoSlots возвращается, когда не создано ни одного слота
	ErrNoSlots = errors.New("get_available_slots: no slots created")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
