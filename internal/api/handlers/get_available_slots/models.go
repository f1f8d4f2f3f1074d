package get_available_slots

import (
	"strconv"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ArenaSlots/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Slots          []AvailableSlot `json:"slots"`
	TotalCapacity  int             `json:"totalCapacity"`
	TotalRemaining int             `json:"totalRemaining"`
}

// AvailableSlot модель слота с занятостью
type AvailableSlot struct {
	SlotID      string `json:"slotId"`
	Date        string `json:"date"`
	TimeFrame   string `json:"timeFrame"`
	MaxBookings int    `json:"maxBookings"`
	Booked      int    `json:"booked"`
	Remaining   int    `json:"remaining"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			SlotID:      slot.SlotID.String(),
			Date:        slot.Date.Format(domain.DateFormat),
			TimeFrame:   slot.TimeFrame,
			MaxBookings: slot.MaxBookings,
			Booked:      slot.Booked,
			Remaining:   slot.Remaining,
		}
	}

	return &AvailableSlotsResponse{
		Slots:          slots,
		TotalCapacity:  resp.TotalCapacity,
		TotalRemaining: resp.TotalRemaining,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров (оба необязательны)
func ToUseCaseRequest(dateStr, onlyAvailableStr string) (*getAvailableSlots.Request, error) {
	req := &getAvailableSlots.Request{}

	if dateStr != "" {
		date, err := domain.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if onlyAvailableStr != "" {
		onlyAvailable, err := strconv.ParseBool(onlyAvailableStr)
		if err != nil {
			return nil, err
		}
		req.OnlyAvailable = onlyAvailable
	}

	return req, nil
}
