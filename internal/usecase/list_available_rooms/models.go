package list_available_rooms

// Request модель запроса подбора номеров
// CheckIn/CheckOut либо оба заданы, либо оба пусты
type Request struct {
	CheckIn  *string // Дата заезда, "2025-06-01"
	CheckOut *string // Дата выезда, "2025-06-03"
	Guests   *int    // Минимальная вместимость
	RoomType *string // Тип номера (standard, deluxe, suite)
}

// RoomResponse данные номера в выдаче
type RoomResponse struct {
	ID            int64   `json:"id"`
	Number        string  `json:"number"`
	RoomType      string  `json:"roomType"`
	Capacity      int     `json:"capacity"`
	PricePerNight float64 `json:"pricePerNight"`
	Status        string  `json:"status"`
}

// Response список подходящих номеров
type Response struct {
	Rooms []RoomResponse `json:"rooms"`
}
