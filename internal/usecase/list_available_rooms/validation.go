package list_available_rooms

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// buildFilter валидирует запрос и собирает фильтр подбора
// Одна дата без второй - ошибка: режим либо каталожный (без дат),
// либо с полной проверкой доступности на диапазон
func buildFilter(req *Request) (domain.AvailableRoomsFilter, error) {
	var filter domain.AvailableRoomsFilter

	hasCheckIn := req.CheckIn != nil && *req.CheckIn != ""
	hasCheckOut := req.CheckOut != nil && *req.CheckOut != ""

	if hasCheckIn != hasCheckOut {
		return filter, fmt.Errorf("%w: checkIn and checkOut must be provided together", ErrInvalidDateRange)
	}

	if hasCheckIn {
		checkIn, err := time.Parse(domain.DateFormat, *req.CheckIn)
		if err != nil {
			return filter, fmt.Errorf("%w: checkIn must be in format %s", ErrInvalidDateRange, domain.DateFormat)
		}

		checkOut, err := time.Parse(domain.DateFormat, *req.CheckOut)
		if err != nil {
			return filter, fmt.Errorf("%w: checkOut must be in format %s", ErrInvalidDateRange, domain.DateFormat)
		}

		if !checkOut.After(checkIn) {
			return filter, fmt.Errorf("%w: checkOut must be after checkIn", ErrInvalidDateRange)
		}

		filter.CheckIn = &checkIn
		filter.CheckOut = &checkOut
	}

	if req.Guests != nil {
		if *req.Guests < domain.MinGuestCount {
			return filter, fmt.Errorf("%w: guests must be at least %d", ErrInvalidInput, domain.MinGuestCount)
		}
		filter.Guests = req.Guests
	}

	if req.RoomType != nil && *req.RoomType != "" {
		roomType := domain.RoomType(strings.ToLower(strings.TrimSpace(*req.RoomType)))
		if !domain.ValidRoomType(roomType) {
			return filter, fmt.Errorf("%w: unknown roomType %q", ErrInvalidInput, *req.RoomType)
		}
		filter.RoomType = &roomType
	}

	return filter, nil
}
