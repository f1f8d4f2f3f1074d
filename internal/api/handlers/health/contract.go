package health

import "context"

// Pinger проверка доступности БД (реализуется *sql.DB)
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Error(format string, v ...interface{})
}
