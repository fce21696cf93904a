package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomId must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerId must be positive", ErrInvalidInput)
	}

	if req.GuestCount < domain.MinGuestCount {
		return fmt.Errorf("%w: guestCount must be at least %d", ErrInvalidInput, domain.MinGuestCount)
	}

	if req.CheckIn == "" {
		return fmt.Errorf("%w: checkIn is required", ErrInvalidInput)
	}

	if req.CheckOut == "" {
		return fmt.Errorf("%w: checkOut is required", ErrInvalidInput)
	}

	return nil
}

// parseDateRange парсит и проверяет диапазон дат бронирования
// Заселение - полуинтервал [checkIn, checkOut): ночей должно быть
// хотя бы одна, поэтому checkOut строго позже checkIn
func parseDateRange(checkInStr, checkOutStr string, now time.Time) (time.Time, time.Time, error) {
	checkIn, err := time.Parse(domain.DateFormat, checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: checkIn must be in format %s", ErrInvalidDateRange, domain.DateFormat)
	}

	checkOut, err := time.Parse(domain.DateFormat, checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: checkOut must be in format %s", ErrInvalidDateRange, domain.DateFormat)
	}

	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: checkOut must be after checkIn", ErrInvalidDateRange)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if checkIn.Before(today) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: checkIn must not be in the past", ErrInvalidDateRange)
	}

	return checkIn, checkOut, nil
}

// validateRoom проверяет, что номер пригоден для бронирования
func validateRoom(room *domain.Room, guestCount int) error {
	if room.InMaintenance() {
		return ErrRoomInMaintenance
	}

	if guestCount > room.Capacity {
		return fmt.Errorf("%w: room capacity is %d", ErrGuestCountExceeded, room.Capacity)
	}

	return nil
}
