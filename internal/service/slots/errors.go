package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrNoSlotsOnDate возвращается, когда на дату нет ни одного слота
	ErrNoSlotsOnDate = errors.New("no slots on date")

	// ErrDuplicateSlot возвращается, когда все запрошенные слоты уже существуют
	ErrDuplicateSlot = errors.New("slots already exist")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
