package get_available_slots

import (
	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
)

// buildResponse переводит слоты хранилища в ответ и считает итоги.
// При onlyAvailable полностью занятые слоты пропускаются
func buildResponse(available []domain.AvailableSlot, onlyAvailable bool) *Response {
	resp := &Response{
		Slots: make([]Slot, 0, len(available)),
	}

	for i := range available {
		s := &available[i]
		if onlyAvailable && s.IsFull() {
			continue
		}

		resp.Slots = append(resp.Slots, Slot{
			SlotID:      s.SlotID,
			Date:        s.Date,
			TimeFrame:   s.TimeFrame,
			MaxBookings: s.MaxBookings,
			Booked:      s.Booked,
			Remaining:   s.Remaining,
		})
		resp.TotalCapacity += s.MaxBookings
		resp.TotalRemaining += s.Remaining
	}

	return resp
}
