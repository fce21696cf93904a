package domain

import "time"

// RoomStatus статус номера
// Доступность номера для дат выводится из активных бронирований,
// а не из этого поля: статус закрывает номер только на обслуживание,
// occupied/available - денормализованное зеркало для персонала,
// которое пишется в той же транзакции, что и переход бронирования
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

// RoomType тип номера
type RoomType string

const (
	RoomStandard RoomType = "standard"
	RoomDeluxe   RoomType = "deluxe"
	RoomSuite    RoomType = "suite"
)

// Room гостиничный номер (read-mostly для этого сервиса)
type Room struct {
	ID            int64
	Number        string
	RoomType      RoomType
	Capacity      int
	PricePerNight float64
	Status        RoomStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InMaintenance возвращает true, если номер закрыт на обслуживание
func (r *Room) InMaintenance() bool {
	return r.Status == RoomMaintenance
}

// ValidRoomType проверяет, что строка является известным типом номера
func ValidRoomType(t RoomType) bool {
	return t == RoomStandard || t == RoomDeluxe || t == RoomSuite
}

// AvailableRoomsFilter фильтр подбора номеров
// CheckIn/CheckOut либо оба заданы (режим бронирования: статические
// фильтры + отсутствие пересечений с активными бронированиями),
// либо оба nil (режим каталога: только статические фильтры)
type AvailableRoomsFilter struct {
	CheckIn  *time.Time
	CheckOut *time.Time
	Guests   *int
	RoomType *RoomType
}

// AvailabilityRequested возвращает true, если фильтр задаёт диапазон дат
func (f *AvailableRoomsFilter) AvailabilityRequested() bool {
	return f.CheckIn != nil && f.CheckOut != nil
}
