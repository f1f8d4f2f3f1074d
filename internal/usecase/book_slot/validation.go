package book_slot

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.UserID == uuid.Nil {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	timeFrame := strings.TrimSpace(req.TimeFrame)
	if timeFrame == "" {
		return fmt.Errorf("%w: timeFrame is required", ErrInvalidInput)
	}
	if domain.TimeFrameTooLong(timeFrame) {
		return fmt.Errorf("%w: timeFrame is longer than %d characters", ErrInvalidInput, domain.MaxTimeFrameLength)
	}

	return nil
}
