package check_out

import (
	"fmt"
	"strings"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

var supportedPaymentMethods = map[string]struct{}{
	"card": {},
	"cash": {},
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if method == "" {
		return fmt.Errorf("%w: paymentMethod is required", ErrInvalidInput)
	}
	if _, ok := supportedPaymentMethods[method]; !ok {
		return fmt.Errorf("%w: unsupported paymentMethod %q", ErrInvalidInput, req.PaymentMethod)
	}

	for i, charge := range req.ExtraCharges {
		if strings.TrimSpace(charge.Description) == "" {
			return fmt.Errorf("%w: charge %d: description is required", ErrInvalidInput, i)
		}
		if len(charge.Description) > domain.MaxChargeDescriptionLength {
			return fmt.Errorf("%w: charge %d: description exceeds %d characters",
				ErrInvalidInput, i, domain.MaxChargeDescriptionLength)
		}
	}

	return nil
}
