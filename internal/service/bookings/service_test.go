package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArenaSlots/internal/access"
	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ArenaSlots/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ArenaSlots/pkg/logger"
)

type MockBookingRepo struct{ mock.Mock }

func (m *MockBookingRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserBooking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserBooking), args.Error(1)
}

func (m *MockBookingRepo) ListAllWithDetails(ctx context.Context) ([]*domain.BookingDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BookingDetails), args.Error(1)
}

func (m *MockBookingRepo) DeleteByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) DeleteByIDAdmin(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

var day = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *MockBookingRepo) {
	policy, err := access.NewPolicy(map[string][]string{
		"user":    {},
		"manager": {"view_bookings", "clear_booking"},
	}, logger.Discard())
	require.NoError(t, err)

	repo := new(MockBookingRepo)
	return NewService(repo, policy, logger.Discard()), repo
}

func newManager() *domain.Principal {
	return &domain.Principal{
		UserID:      uuid.New(),
		Role:        "manager",
		Permissions: []domain.Capability{domain.CapabilityClearBooking, domain.CapabilityViewBookings},
	}
}

func TestListForUser(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	slot := domain.NewSlot(day, "09AM-10AM", 5)
	bookingID := uuid.New()

	repo.On("ListForUser", mock.Anything, userID).Return([]*domain.UserBooking{
		{BookingID: bookingID, SlotID: slot.ID, Date: day, TimeFrame: "09AM-10AM"},
	}, nil)

	resp, err := svc.ListForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, bookingID.String(), resp.Bookings[0].BookingID)
	assert.Equal(t, "2025-06-01", resp.Bookings[0].Date)
	assert.Equal(t, "09AM-10AM", resp.Bookings[0].TimeFrame)
}

func TestListForUser_Empty(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	repo.On("ListForUser", mock.Anything, userID).Return([]*domain.UserBooking{}, nil)

	_, err := svc.ListForUser(context.Background(), userID)
	assert.ErrorIs(t, err, ErrNoBookings)
}

func TestCancelOwn(t *testing.T) {
	svc, repo := newTestService(t)
	userID, bookingID := uuid.New(), uuid.New()

	repo.On("DeleteByID", mock.Anything, bookingID, userID).
		Return(&domain.Booking{ID: bookingID, UserID: userID}, nil)

	resp, err := svc.CancelOwn(context.Background(), userID, bookingID)
	require.NoError(t, err)
	assert.Equal(t, bookingID.String(), resp.BookingID)
}

func TestCancelOwn_NotOwned(t *testing.T) {
	svc, repo := newTestService(t)
	userID, bookingID := uuid.New(), uuid.New()

	repo.On("DeleteByID", mock.Anything, bookingID, userID).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := svc.CancelOwn(context.Background(), userID, bookingID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelOwn_RepositoryError(t *testing.T) {
	svc, repo := newTestService(t)
	userID, bookingID := uuid.New(), uuid.New()

	repo.On("DeleteByID", mock.Anything, bookingID, userID).Return(nil, errors.New("db down"))

	_, err := svc.CancelOwn(context.Background(), userID, bookingID)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestListAll_RequiresViewBookings(t *testing.T) {
	svc, repo := newTestService(t)
	user := &domain.Principal{UserID: uuid.New(), Role: "user"}

	_, err := svc.ListAll(context.Background(), user)
	assert.ErrorIs(t, err, ErrAccessDenied)
	repo.AssertNotCalled(t, "ListAllWithDetails", mock.Anything)
}

func TestListAll(t *testing.T) {
	svc, repo := newTestService(t)
	manager := newManager()

	repo.On("ListAllWithDetails", mock.Anything).Return([]*domain.BookingDetails{
		{BookingID: uuid.New(), SlotID: uuid.New(), UserID: uuid.New(), Date: &day, TimeFrame: "09AM-10AM", Username: "neo"},
		{BookingID: uuid.New(), SlotID: uuid.New(), UserID: uuid.New()},
	}, nil)

	resp, err := svc.ListAll(context.Background(), manager)
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	require.NotNil(t, resp.Bookings[0].Date)
	assert.Equal(t, "2025-06-01", *resp.Bookings[0].Date)
	assert.Equal(t, "neo", resp.Bookings[0].User.Username)
	assert.Nil(t, resp.Bookings[1].Date)
}

func TestListAll_Empty(t *testing.T) {
	svc, repo := newTestService(t)
	manager := newManager()
	repo.On("ListAllWithDetails", mock.Anything).Return([]*domain.BookingDetails{}, nil)

	_, err := svc.ListAll(context.Background(), manager)
	assert.ErrorIs(t, err, ErrNoBookings)
}

func TestClear(t *testing.T) {
	svc, repo := newTestService(t)
	manager := newManager()
	bookingID, owner := uuid.New(), uuid.New()

	repo.On("DeleteByIDAdmin", mock.Anything, bookingID).Return(&domain.Booking{ID: bookingID, UserID: owner}, nil)

	resp, err := svc.Clear(context.Background(), manager, bookingID)
	require.NoError(t, err)
	assert.Equal(t, owner.String(), resp.UserID)
}

func TestClear_DeniedHasNoSideEffects(t *testing.T) {
	svc, repo := newTestService(t)
	user := &domain.Principal{UserID: uuid.New(), Role: "user"}

	_, err := svc.Clear(context.Background(), user, uuid.New())
	assert.ErrorIs(t, err, ErrAccessDenied)
	repo.AssertNotCalled(t, "DeleteByIDAdmin", mock.Anything, mock.Anything)
}

func TestClear_NotFound(t *testing.T) {
	svc, repo := newTestService(t)
	manager := newManager()
	bookingID := uuid.New()

	repo.On("DeleteByIDAdmin", mock.Anything, bookingID).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := svc.Clear(context.Background(), manager, bookingID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
