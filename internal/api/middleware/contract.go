package middleware

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
)

// PrincipalResolver строит пользователя с разрешениями его роли
type PrincipalResolver interface {
	PrincipalFor(userID uuid.UUID, username, role string) *domain.Principal
}

// HTTPMetrics сбор метрик HTTP-запросов
type HTTPMetrics interface {
	RecordHTTPRequest(method, route, status string, seconds float64)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
