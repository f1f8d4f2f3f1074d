package get_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date must not be zero", ErrInvalidInput)
	}

	return nil
}
