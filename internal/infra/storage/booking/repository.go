package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	"github.com/m04kA/SMC-ArenaSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArenaSlots/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

const bookingReturning = "RETURNING id, slot_id, user_id, expires_at, created_at, updated_at"

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Повторное бронирование того же слота пользователем отсекается уникальным
// индексом (slot_id, user_id) и возвращается как ErrDuplicateBooking.
//
// Для проверки вместимости вызывать внутри транзакции, в которой слот уже заблокирован
// (см. slot.Repository.FindOrCreate)
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns("id", "slot_id", "user_id", "expires_at").
		Values(booking.ID, booking.SlotID, booking.UserID, booking.ExpiresAt).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pqUniqueViolation:
				return nil, ErrDuplicateBooking
			case pqForeignKeyViolation:
				return nil, ErrSlotNotFound
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// CountForSlot возвращает количество бронирований слота
func (r *Repository) CountForSlot(ctx context.Context, slotID uuid.UUID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"slot_id": slotID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountForSlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountForSlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// DeleteByID удаляет бронирование, принадлежащее пользователю.
// Чужое бронирование неотличимо от отсутствующего: возвращается ErrBookingNotFound
func (r *Repository) DeleteByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id, "user_id": ownerID}).
		Suffix(bookingReturning).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: DeleteByID - build delete query: %v", ErrBuildQuery, err)
	}

	return r.deleteReturning(ctx, executor, "DeleteByID", query, args)
}

// DeleteByIDAdmin удаляет бронирование без проверки владельца
func (r *Repository) DeleteByIDAdmin(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		Suffix(bookingReturning).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: DeleteByIDAdmin - build delete query: %v", ErrBuildQuery, err)
	}

	return r.deleteReturning(ctx, executor, "DeleteByIDAdmin", query, args)
}

// ListForUser получает бронирования пользователя вместе с датой и интервалом слота
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"b.id",
		"s.id",
		"s.date",
		"s.time_frame",
	).
		From("bookings b").
		Join("slots s ON s.id = b.slot_id").
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("s.date ASC, s.time_frame ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.UserBooking, 0)
	for rows.Next() {
		var b domain.UserBooking
		if err := rows.Scan(&b.BookingID, &b.SlotID, &b.Date, &b.TimeFrame); err != nil {
			return nil, fmt.Errorf("%w: ListForUser - scan row: %v", ErrScanRow, err)
		}
		b.Date = domain.NormalizeDate(b.Date)
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListForUser - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// ListAllWithDetails получает все бронирования с данными слота и пользователя.
// Отсутствующие слот или пользователь дают пустые поля, а не ошибку
func (r *Repository) ListAllWithDetails(ctx context.Context) ([]*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"b.id",
		"b.slot_id",
		"b.user_id",
		"s.date",
		"COALESCE(s.time_frame, '')",
		"COALESCE(u.username, '')",
		"COALESCE(u.fullname, '')",
		"COALESCE(u.email, '')",
		"b.expires_at",
		"b.created_at",
	).
		From("bookings b").
		LeftJoin("slots s ON s.id = b.slot_id").
		LeftJoin("users u ON u.id = b.user_id").
		OrderBy("b.created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAllWithDetails - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAllWithDetails - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BookingDetails, 0)
	for rows.Next() {
		var d domain.BookingDetails
		var date, expiresAt, createdAt sql.NullTime

		if err := rows.Scan(
			&d.BookingID,
			&d.SlotID,
			&d.UserID,
			&date,
			&d.TimeFrame,
			&d.Username,
			&d.Fullname,
			&d.Email,
			&expiresAt,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListAllWithDetails - scan row: %v", ErrScanRow, err)
		}

		if date.Valid {
			normalized := domain.NormalizeDate(date.Time)
			d.Date = &normalized
		}
		d.ExpiresAt = expiresAt.Time
		d.CreatedAt = createdAt.Time

		result = append(result, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAllWithDetails - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// DeleteBySlotDate удаляет бронирования всех слотов на дату
func (r *Repository) DeleteBySlotDate(ctx context.Context, date time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Expr("slot_id IN (SELECT id FROM slots WHERE date = ?)", domain.NormalizeDate(date))).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBySlotDate - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffected(ctx, executor, "DeleteBySlotDate", query, args)
}

// DeleteExpired удаляет бронирования с expires_at раньше before
func (r *Repository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Lt{"expires_at": before}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffected(ctx, executor, "DeleteExpired", query, args)
}

func (r *Repository) deleteReturning(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) (*domain.Booking, error) {
	var booking domain.Booking
	var expiresAt, createdAt, updatedAt sql.NullTime

	err := executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.SlotID,
		&booking.UserID,
		&expiresAt,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	booking.ExpiresAt = expiresAt.Time
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func (r *Repository) execAffected(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) (int64, error) {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return rowsAffected, nil
}
