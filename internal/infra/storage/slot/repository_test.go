package slot

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
)

func setupMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

var day = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func slotRow(s *domain.Slot) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(slotColumns).
		AddRow(s.ID.String(), s.Date, s.TimeFrame, s.MaxBookings, now, now)
}

func TestFindOrCreate_Upsert(t *testing.T) {
	repo, mock := setupMock(t)
	expected := domain.NewSlot(day, "09AM-10AM", 5)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO slots (id,date,time_frame,max_bookings) VALUES ($1,$2,$3,$4) ON CONFLICT (date, time_frame) DO UPDATE SET updated_at = slots.updated_at RETURNING")).
		WithArgs(expected.ID, day, "09AM-10AM", 5).
		WillReturnRows(slotRow(expected))

	got, err := repo.FindOrCreate(context.Background(), day.Add(15*time.Hour), " 09AM-10AM ", 5)
	require.NoError(t, err)
	assert.Equal(t, expected.ID, got.ID)
	assert.Equal(t, 5, got.MaxBookings)
	assert.Equal(t, "09AM-10AM", got.TimeFrame)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreate_ReturnsExistingCapacity(t *testing.T) {
	repo, mock := setupMock(t)
	existing := domain.NewSlot(day, "10AM-11AM", 2)

	// существующий слот с вместимостью 2 не перезаписывается значением по умолчанию
	mock.ExpectQuery("INSERT INTO slots").
		WillReturnRows(slotRow(existing))

	got, err := repo.FindOrCreate(context.Background(), day, "10AM-11AM", domain.DefaultMaxBookings)
	require.NoError(t, err)
	assert.Equal(t, 2, got.MaxBookings)
}

func TestFindOrCreate_DBError(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectQuery("INSERT INTO slots").WillReturnError(errors.New("connection reset"))

	_, err := repo.FindOrCreate(context.Background(), day, "09AM-10AM", 5)
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestCreateMany_SkipsDuplicates(t *testing.T) {
	repo, mock := setupMock(t)
	now := time.Now()

	first := domain.NewSlot(day, "09AM-10AM", 5)
	dup := domain.NewSlot(day, "10AM-11AM", 5)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (date, time_frame) DO NOTHING")).
		WithArgs(first.ID, day, "09AM-10AM", 5).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (date, time_frame) DO NOTHING")).
		WithArgs(dup.ID, day, "10AM-11AM", 5).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	created, duplicates, err := repo.CreateMany(context.Background(), []*domain.Slot{first, dup})
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.Len(t, duplicates, 1)
	assert.Equal(t, first.ID, created[0].ID)
	assert.Equal(t, dup.ID, duplicates[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMany_StopsOnDBError(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectQuery("INSERT INTO slots").WillReturnError(errors.New("disk full"))

	_, _, err := repo.CreateMany(context.Background(), []*domain.Slot{domain.NewSlot(day, "09AM-10AM", 5)})
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestDeleteByID(t *testing.T) {
	repo, mock := setupMock(t)
	s := domain.NewSlot(day, "09AM-10AM", 5)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM slots WHERE id = $1 RETURNING")).
		WithArgs(s.ID).
		WillReturnRows(slotRow(s))

	got, err := repo.DeleteByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM slots WHERE id = $1 RETURNING")).
		WithArgs(s.ID).
		WillReturnRows(sqlmock.NewRows(slotColumns))

	_, err = repo.DeleteByID(context.Background(), s.ID)
	assert.ErrorIs(t, err, ErrSlotNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByDate(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM slots WHERE date = $1")).
		WithArgs(day).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteByDate(context.Background(), day.Add(8*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestDeleteExpired(t *testing.T) {
	repo, mock := setupMock(t)
	// время суток отбрасывается, сравнивается только дата
	before := day.Add(-24 * time.Hour).Add(15*time.Hour + 30*time.Minute)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM slots WHERE date < $1::date")).
		WithArgs("2025-06-09").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeleteExpired(context.Background(), before)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestListAvailable(t *testing.T) {
	repo, mock := setupMock(t)
	now := time.Now()
	a := domain.NewSlot(day, "09AM-10AM", 5)
	b := domain.NewSlot(day, "10AM-11AM", 2)

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN bookings b ON b.slot_id = s.id WHERE s.date = $1 GROUP BY s.id")).
		WithArgs(day).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "time_frame", "max_bookings", "created_at", "updated_at", "booked"}).
			AddRow(a.ID.String(), day, a.TimeFrame, 5, now, now, 0).
			AddRow(b.ID.String(), day, b.TimeFrame, 2, now, now, 3))

	got, err := repo.ListAvailable(context.Background(), &day)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 5, got[0].Remaining)
	assert.Equal(t, 0, got[0].Booked)
	assert.Equal(t, 3, got[1].Booked)
	assert.Equal(t, 0, got[1].Remaining)
	assert.True(t, got[1].IsFull())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAvailable_NoDateFilter(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM slots s LEFT JOIN bookings b ON b.slot_id = s.id GROUP BY s.id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "time_frame", "max_bookings", "created_at", "updated_at", "booked"}))

	got, err := repo.ListAvailable(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
