package catalogservice

// Excursion модель экскурсии из каталога
type Excursion struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	PricePerPerson float64 `json:"price_per_person"`
	Capacity       int     `json:"capacity"` // 0 = без ограничения
	IsActive       bool    `json:"is_active"`
}
