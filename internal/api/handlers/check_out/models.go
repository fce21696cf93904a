package check_out

import (
	checkOut "github.com/m04kA/HMS-ReservationService/internal/usecase/check_out"
)

// ChargeRequest доп. начисление в HTTP запросе
type ChargeRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// CheckOutRequest HTTP request model
type CheckOutRequest struct {
	ExtraCharges  []ChargeRequest `json:"extraCharges,omitempty"`
	PaymentMethod string          `json:"paymentMethod"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckOutRequest) ToUseCaseRequest(bookingID int64) *checkOut.Request {
	charges := make([]checkOut.ChargeInput, len(r.ExtraCharges))
	for i, c := range r.ExtraCharges {
		charges[i] = checkOut.ChargeInput{Description: c.Description, Amount: c.Amount}
	}

	return &checkOut.Request{
		BookingID:     bookingID,
		ExtraCharges:  charges,
		PaymentMethod: r.PaymentMethod,
	}
}
