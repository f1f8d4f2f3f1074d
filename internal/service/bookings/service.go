package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaSlots/internal/access"
	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ArenaSlots/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ArenaSlots/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	policy      AccessPolicy
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	policy AccessPolicy,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		policy:      policy,
		logger:      logger,
	}
}

// ListForUser получает бронирования пользователя с датой и интервалом слота.
// Пустой список возвращается как ErrNoBookings
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) (*models.UserBookingListResponse, error) {
	s.logger.Info("ListForUser: fetching bookings for user=%s", userID)

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListForUser(ctx, userID)
	if err != nil {
		s.logger.Error("ListForUser: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: ListForUser - repository error: %v", ErrInternal, err)
	}

	if len(bookings) == 0 {
		s.logger.Info("ListForUser: user=%s has no bookings", userID)
		return nil, ErrNoBookings
	}

	s.logger.Info("ListForUser: successfully fetched %d bookings for user=%s", len(bookings), userID)
	return models.FromDomainUserBookings(bookings), nil
}

// CancelOwn удаляет бронирование пользователя.
// Чужое бронирование не раскрывается: возвращается ErrBookingNotFound
func (s *Service) CancelOwn(ctx context.Context, userID, bookingID uuid.UUID) (*models.DeletedBookingResponse, error) {
	s.logger.Info("CancelOwn: user=%s cancels booking id=%s", userID, bookingID)

	if userID == uuid.Nil || bookingID == uuid.Nil {
		return nil, fmt.Errorf("%w: userID and bookingID are required", ErrInvalidInput)
	}

	deleted, err := s.bookingRepo.DeleteByID(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CancelOwn: booking id=%s not found for user=%s", bookingID, userID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("CancelOwn: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CancelOwn - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CancelOwn: booking id=%s cancelled", bookingID)
	return models.FromDomainDeletedBooking(deleted), nil
}

// ListAll получает все бронирования с данными слота и пользователя.
// Требует разрешение view_bookings
func (s *Service) ListAll(ctx context.Context, principal *domain.Principal) (*models.BookingDetailsListResponse, error) {
	if err := s.authorize(principal, domain.CapabilityViewBookings); err != nil {
		return nil, err
	}

	details, err := s.bookingRepo.ListAllWithDetails(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	if len(details) == 0 {
		s.logger.Info("ListAll: no bookings")
		return nil, ErrNoBookings
	}

	s.logger.Info("ListAll: user=%s fetched %d bookings", principal.UserID, len(details))
	return models.FromDomainBookingDetails(details), nil
}

// Clear удаляет любое бронирование без проверки владельца.
// Требует разрешение clear_booking
func (s *Service) Clear(ctx context.Context, principal *domain.Principal, bookingID uuid.UUID) (*models.DeletedBookingResponse, error) {
	if err := s.authorize(principal, domain.CapabilityClearBooking); err != nil {
		return nil, err
	}

	if bookingID == uuid.Nil {
		return nil, fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	deleted, err := s.bookingRepo.DeleteByIDAdmin(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Clear: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Clear: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Clear - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Clear: user=%s cleared booking id=%s of user=%s", principal.UserID, bookingID, deleted.UserID)
	return models.FromDomainDeletedBooking(deleted), nil
}

func (s *Service) authorize(principal *domain.Principal, c domain.Capability) error {
	if err := s.policy.Check(principal, c); err != nil {
		if errors.Is(err, access.ErrAccessDenied) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: access check: %v", ErrInternal, err)
	}
	return nil
}
