package get_user_bookings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArenaSlots/internal/api/middleware"
	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	"github.com/m04kA/SMC-ArenaSlots/internal/service/bookings"
	"github.com/m04kA/SMC-ArenaSlots/internal/service/bookings/models"
	"github.com/m04kA/SMC-ArenaSlots/pkg/logger"
)

type MockService struct{ mock.Mock }

func (m *MockService) ListForUser(ctx context.Context, userID uuid.UUID) (*models.UserBookingListResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBookingListResponse), args.Error(1)
}

func requestAs(principal *domain.Principal) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/view-slots", nil)
	if principal == nil {
		return req
	}
	return req.WithContext(middleware.WithPrincipal(req.Context(), principal))
}

func TestHandle_OK(t *testing.T) {
	svc := new(MockService)
	principal := &domain.Principal{UserID: uuid.New()}
	svc.On("ListForUser", mock.Anything, principal.UserID).Return(&models.UserBookingListResponse{
		Bookings: []models.UserBookingResponse{{BookingID: "b1", SlotID: "s1", Date: "2025-06-01", TimeFrame: "09AM-10AM"}},
		Total:    1,
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Discard()).Handle(rec, requestAs(principal))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data models.UserBookingListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Data.Total)
	assert.Equal(t, "09AM-10AM", body.Data.Bookings[0].TimeFrame)
}

func TestHandle_Errors(t *testing.T) {
	principal := &domain.Principal{UserID: uuid.New()}

	tests := []struct {
		name      string
		principal *domain.Principal
		svcErr    error
		status    int
	}{
		{"no principal", nil, nil, http.StatusUnauthorized},
		{"no bookings", principal, bookings.ErrNoBookings, http.StatusNotFound},
		{"internal", principal, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.svcErr != nil {
				svc.On("ListForUser", mock.Anything, mock.Anything).Return(nil, tt.svcErr)
			}

			rec := httptest.NewRecorder()
			NewHandler(svc, logger.Discard()).Handle(rec, requestAs(tt.principal))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
