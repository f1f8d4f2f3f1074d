package access

import "errors"

var (
	// ErrAccessDenied возвращается, когда у пользователя нет нужного разрешения
	ErrAccessDenied = errors.New("access: permission denied")

	// ErrUnknownCapability возвращается, когда в таблице ролей указано неизвестное разрешение
	ErrUnknownCapability = errors.New("access: unknown capability")
)
