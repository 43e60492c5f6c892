package domain

// Product описывает товар каталога
type Product struct {
	ID            string
	ProductCode   string // SKU, видимый пользователю; уникален в пределах каталога
	Name          string
	Price         float64 // Цена в денежных единицах, максимум 2 знака после запятой
	StockQuantity int     // Никогда не бывает отрицательным
}

func NewProduct(id, productCode, name string, price float64, stockQuantity int) *Product {
	return &Product{
		ID:            id,
		ProductCode:   productCode,
		Name:          name,
		Price:         price,
		StockQuantity: stockQuantity,
	}
}

// DefaultProducts возвращает стартовый каталог, которым засевается пустое хранилище.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:            "sample-espresso",
			ProductCode:   "ESP-1001",
			Name:          "Espresso Shot",
			Price:         3.0,
			StockQuantity: 30,
		},
		{
			ID:            "sample-cappuccino",
			ProductCode:   "CAP-2002",
			Name:          "Cappuccino",
			Price:         4.5,
			StockQuantity: 24,
		},
		{
			ID:            "sample-bagel",
			ProductCode:   "BG-3003",
			Name:          "Fresh Bagel",
			Price:         2.25,
			StockQuantity: 50,
		},
	}
}
