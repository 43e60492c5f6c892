package converter

// Модели хранения повторяют исторический JSON-макет документа состояния:
// один блоб {products, sales} под единственным ключом.

type ProductModel struct {
	ID            string  `json:"id"`
	ProductCode   string  `json:"productCode"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
}

type SoldItemModel struct {
	ProductID   string  `json:"productId"`
	ProductCode string  `json:"productCode"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type SaleModel struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Subtotal    float64         `json:"subtotal"`
	Tax         float64         `json:"tax"`
	TotalAmount float64         `json:"totalAmount"`
	SoldItems   []SoldItemModel `json:"soldItems"`
}

type SnapshotModel struct {
	Products []ProductModel `json:"products"`
	Sales    []SaleModel    `json:"sales"`
}
