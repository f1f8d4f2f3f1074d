package models

import (
	"time"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
)

// Response модели

// UserBookingResponse бронирование пользователя
type UserBookingResponse struct {
	BookingID string `json:"bookingId"`
	SlotID    string `json:"slotId"`
	Date      string `json:"date"` // "2025-06-01"
	TimeFrame string `json:"timeFrame"`
}

// UserBookingListResponse список бронирований пользователя
type UserBookingListResponse struct {
	Bookings []UserBookingResponse `json:"bookings"`
	Total    int                   `json:"total"`
}

// UserInfo данные пользователя в админском списке
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}

// BookingDetailsResponse бронирование со слотом и пользователем
type BookingDetailsResponse struct {
	BookingID string   `json:"bookingId"`
	SlotID    string   `json:"slotId"`
	Date      *string  `json:"date"` // nil, если слот уже удален
	TimeFrame string   `json:"timeFrame"`
	User      UserInfo `json:"user"`
	ExpiresAt string   `json:"expiresAt"`
	CreatedAt string   `json:"createdAt"`
}

// BookingDetailsListResponse список всех бронирований
type BookingDetailsListResponse struct {
	Bookings []BookingDetailsResponse `json:"bookings"`
	Total    int                      `json:"total"`
}

// DeletedBookingResponse удаленное бронирование
type DeletedBookingResponse struct {
	BookingID string `json:"bookingId"`
	SlotID    string `json:"slotId"`
	UserID    string `json:"userId"`
}

// FromDomainUserBookings конвертирует бронирования пользователя в response
func FromDomainUserBookings(bookings []*domain.UserBooking) *UserBookingListResponse {
	resp := &UserBookingListResponse{
		Bookings: make([]UserBookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, UserBookingResponse{
			BookingID: b.BookingID.String(),
			SlotID:    b.SlotID.String(),
			Date:      b.Date.Format(domain.DateFormat),
			TimeFrame: b.TimeFrame,
		})
	}

	return resp
}

// FromDomainBookingDetails конвертирует админский список бронирований в response
func FromDomainBookingDetails(details []*domain.BookingDetails) *BookingDetailsListResponse {
	resp := &BookingDetailsListResponse{
		Bookings: make([]BookingDetailsResponse, 0, len(details)),
		Total:    len(details),
	}

	for _, d := range details {
		item := BookingDetailsResponse{
			BookingID: d.BookingID.String(),
			SlotID:    d.SlotID.String(),
			TimeFrame: d.TimeFrame,
			User: UserInfo{
				ID:       d.UserID.String(),
				Username: d.Username,
				Fullname: d.Fullname,
				Email:    d.Email,
			},
			ExpiresAt: d.ExpiresAt.Format(time.RFC3339),
			CreatedAt: d.CreatedAt.Format(time.RFC3339),
		}
		if d.Date != nil {
			date := d.Date.Format(domain.DateFormat)
			item.Date = &date
		}
		resp.Bookings = append(resp.Bookings, item)
	}

	return resp
}

// FromDomainDeletedBooking конвертирует удаленное бронирование в response
func FromDomainDeletedBooking(b *domain.Booking) *DeletedBookingResponse {
	return &DeletedBookingResponse{
		BookingID: b.ID.String(),
		SlotID:    b.SlotID.String(),
		UserID:    b.UserID.String(),
	}
}
