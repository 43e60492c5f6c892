package domain

// SoldItem — снимок товара на момент продажи.
// Не является живой ссылкой на Product и переживает удаление товара.
type SoldItem struct {
	ProductID   string
	ProductCode string
	Name        string
	Quantity    int
	Price       float64 // цена за единицу на момент продажи
}

// Sale — зафиксированная продажа. После создания не изменяется;
// продажи только добавляются, новые — в начало списка.
type Sale struct {
	ID          string
	Date        string // ISO-8601
	Subtotal    float64
	Tax         float64
	TotalAmount float64
	SoldItems   []SoldItem
}

// Snapshot — полный персистируемый документ состояния: {products, sales}.
type Snapshot struct {
	Products []Product
	Sales    []Sale
}
