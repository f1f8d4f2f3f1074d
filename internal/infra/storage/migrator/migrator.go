package migrator

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

var (
	// ErrMigrate возвращается при ошибке применения миграций
	ErrMigrate = errors.New("migrator: failed to apply migrations")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// SourceURL преобразует путь к каталогу миграций в URL для golang-migrate
func SourceURL(migrationsPath string) (string, error) {
	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		return "", fmt.Errorf("%w: resolve path %s: %v", ErrMigrate, migrationsPath, err)
	}
	return "file://" + filepath.ToSlash(absPath), nil
}

// Up применяет все новые миграции из migrationsPath к базе databaseURL
func Up(migrationsPath, databaseURL string, logger Logger) error {
	sourceURL, err := SourceURL(migrationsPath)
	if err != nil {
		return err
	}

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("%w: create migrate instance: %v", ErrMigrate, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("%w: up: %v", ErrMigrate, err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("%w: read version: %v", ErrMigrate, err)
	}
	logger.Info("Database migrated to version %d (dirty=%v)", version, dirty)

	return nil
}
