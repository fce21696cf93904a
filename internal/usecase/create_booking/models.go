package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	RoomID     int64  // ID номера
	CustomerID int64  // ID клиента
	CheckIn    string // Дата заезда, "2025-06-01"
	CheckOut   string // Дата выезда, "2025-06-03"
	GuestCount int    // Количество гостей
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64   // ID созданного бронирования
	RoomID        int64   // ID номера
	CustomerID    int64   // ID клиента
	CheckIn       string  // Дата заезда
	CheckOut      string  // Дата выезда
	GuestCount    int     // Количество гостей
	Nights        int     // Количество ночей
	Status        string  // Статус бронирования
	PaymentStatus string  // Статус оплаты
	BasePrice     float64 // Цена проживания (ночи × тариф)

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
