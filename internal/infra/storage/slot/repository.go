package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	"github.com/m04kA/SMC-ArenaSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArenaSlots/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"date",
	"time_frame",
	"max_bookings",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает слот. Существующая пара (date, time_frame) не перезаписывается:
// в этом случае возвращается ErrDuplicateSlot.
// ON CONFLICT DO NOTHING не прерывает внешнюю транзакцию, в отличие от unique violation
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns("id", "date", "time_frame", "max_bookings").
		Values(slot.ID, slot.Date, slot.TimeFrame, slot.MaxBookings).
		Suffix("ON CONFLICT (date, time_frame) DO NOTHING RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDuplicateSlot
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// CreateMany создает слоты по одному. Дубликаты не прерывают вставку остальных:
// они возвращаются отдельным списком
func (r *Repository) CreateMany(ctx context.Context, slots []*domain.Slot) (created []*domain.Slot, duplicates []*domain.Slot, err error) {
	created = make([]*domain.Slot, 0, len(slots))
	duplicates = make([]*domain.Slot, 0)

	for _, s := range slots {
		slot, err := r.Create(ctx, s)
		if errors.Is(err, ErrDuplicateSlot) {
			duplicates = append(duplicates, s)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		created = append(created, slot)
	}

	return created, duplicates, nil
}

// FindOrCreate возвращает слот для пары (date, time_frame), создавая его при отсутствии.
// Один upsert-запрос: конкурентные вызовы получают одну и ту же строку.
// ON CONFLICT DO UPDATE блокирует строку до конца транзакции, поэтому внутри
// транзакции последующий подсчёт бронирований выполняется эксклюзивно
func (r *Repository) FindOrCreate(ctx context.Context, date time.Time, timeFrame string, maxBookings int) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	slot := domain.NewSlot(date, timeFrame, maxBookings)

	query, args, err := psqlbuilder.Insert("slots").
		Columns("id", "date", "time_frame", "max_bookings").
		Values(slot.ID, slot.Date, slot.TimeFrame, slot.MaxBookings).
		Suffix("ON CONFLICT (date, time_frame) DO UPDATE SET updated_at = slots.updated_at RETURNING id, date, time_frame, max_bookings, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindOrCreate - build upsert query: %v", ErrBuildQuery, err)
	}

	result, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: FindOrCreate - execute upsert: %v", ErrExecQuery, err)
	}

	return result, nil
}

// DeleteByID удаляет слот и возвращает удалённую запись.
// Бронирования слота удаляются каскадно (FK ON DELETE CASCADE)
func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, date, time_frame, max_bookings, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: DeleteByID - build delete query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: DeleteByID - execute delete: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// DeleteByDate удаляет все слоты на дату и возвращает их количество
func (r *Repository) DeleteByDate(ctx context.Context, date time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"date": domain.NormalizeDate(date)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDate - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffected(ctx, executor, "DeleteByDate", query, args)
}

// DeleteExpired удаляет слоты с датой раньше дня before.
// Колонка date без времени, поэтому сравнение идет по календарной дате
func (r *Repository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Expr("date < ?::date", domain.NormalizeDate(before).Format(domain.DateFormat))).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffected(ctx, executor, "DeleteExpired", query, args)
}

// ListAvailable возвращает слоты с количеством бронирований одним агрегирующим запросом.
// Если date не nil, выборка ограничивается этой датой
func (r *Repository) ListAvailable(ctx context.Context, date *time.Time) ([]domain.AvailableSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"s.id",
		"s.date",
		"s.time_frame",
		"s.max_bookings",
		"s.created_at",
		"s.updated_at",
		"COUNT(b.id) AS booked",
	).
		From("slots s").
		LeftJoin("bookings b ON b.slot_id = s.id").
		GroupBy("s.id").
		OrderBy("s.date ASC, s.time_frame ASC")

	if date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.date": domain.NormalizeDate(*date)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.AvailableSlot, 0)
	for rows.Next() {
		var slot domain.Slot
		var createdAt, updatedAt sql.NullTime
		var booked int

		if err := rows.Scan(
			&slot.ID,
			&slot.Date,
			&slot.TimeFrame,
			&slot.MaxBookings,
			&createdAt,
			&updatedAt,
			&booked,
		); err != nil {
			return nil, fmt.Errorf("%w: ListAvailable - scan row: %v", ErrScanRow, err)
		}
		slot.Date = domain.NormalizeDate(slot.Date)
		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		result = append(result, domain.NewAvailableSlot(slot, booked))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) execAffected(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) (int64, error) {
	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}

	return affected, nil
}

func scanSlot(row *sql.Row) (*domain.Slot, error) {
	var slot domain.Slot
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&slot.ID,
		&slot.Date,
		&slot.TimeFrame,
		&slot.MaxBookings,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	slot.Date = domain.NormalizeDate(slot.Date)
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}
