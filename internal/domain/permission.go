package domain

import "github.com/google/uuid"

// Capability именованное разрешение на административное действие
type Capability string

const (
	CapabilityAddSlot      Capability = "add_slot"
	CapabilityDeleteSlot   Capability = "delete_slot"
	CapabilityViewBookings Capability = "view_bookings"
	CapabilityClearBooking Capability = "clear_booking"
)

// KnownCapabilities разрешения, которыми оперирует сервис слотов
var KnownCapabilities = []Capability{
	CapabilityAddSlot,
	CapabilityDeleteSlot,
	CapabilityViewBookings,
	CapabilityClearBooking,
}

// Principal аутентифицированный пользователь, выполняющий запрос
type Principal struct {
	UserID      uuid.UUID
	Username    string
	Role        string
	Permissions []Capability
}

// Has returns true if the principal carries the capability
func (p *Principal) Has(c Capability) bool {
	if p == nil {
		return false
	}
	for _, have := range p.Permissions {
		if have == c {
			return true
		}
	}
	return false
}
