package cancel_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ArenaSlots/internal/api/middleware"
	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	"github.com/m04kA/SMC-ArenaSlots/internal/service/bookings"
	"github.com/m04kA/SMC-ArenaSlots/internal/service/bookings/models"
	"github.com/m04kA/SMC-ArenaSlots/pkg/logger"
)

type MockService struct{ mock.Mock }

func (m *MockService) CancelOwn(ctx context.Context, userID, bookingID uuid.UUID) (*models.DeletedBookingResponse, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeletedBookingResponse), args.Error(1)
}

func serve(svc *MockService, principal *domain.Principal, bookingID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/delete-slot/"+bookingID, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	if principal != nil {
		req = req.WithContext(middleware.WithPrincipal(req.Context(), principal))
	}

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Discard()).Handle(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := new(MockService)
	principal := &domain.Principal{UserID: uuid.New()}
	bookingID := uuid.New()

	svc.On("CancelOwn", mock.Anything, principal.UserID, bookingID).
		Return(&models.DeletedBookingResponse{BookingID: bookingID.String(), UserID: principal.UserID.String()}, nil)

	rec := serve(svc, principal, bookingID.String())
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_InvalidID(t *testing.T) {
	svc := new(MockService)
	rec := serve(svc, &domain.Principal{UserID: uuid.New()}, "42")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CancelOwn", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_Unauthorized(t *testing.T) {
	rec := serve(new(MockService), nil, uuid.NewString())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found or not owned", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("CancelOwn", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(svc, &domain.Principal{UserID: uuid.New()}, uuid.NewString())
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
