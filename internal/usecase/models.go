package usecase

import "github.com/swiftpos/backend/internal/domain"

// AddProductReq — запрос на добавление товара (идентификатор выдает хранилище).
type AddProductReq struct {
	ProductCode   string
	Name          string
	Price         float64
	StockQuantity int
}

// UpdateProductReq — частичное обновление товара: nil-поля не трогаются.
type UpdateProductReq struct {
	ProductCode   *string
	Name          *string
	Price         *float64
	StockQuantity *int
}

// RecordSaleReq — запрос на фиксацию продажи.
// Позиции — денормализованные снимки товаров на момент продажи.
type RecordSaleReq struct {
	SoldItems   []domain.SoldItem
	Subtotal    float64
	Tax         float64
	TotalAmount float64
}

func NewAddProductReq(productCode, name string, price float64, stockQuantity int) *AddProductReq {
	return &AddProductReq{
		ProductCode:   productCode,
		Name:          name,
		Price:         price,
		StockQuantity: stockQuantity,
	}
}

func NewRecordSaleReq(items []domain.SoldItem, subtotal, tax, totalAmount float64) *RecordSaleReq {
	return &RecordSaleReq{
		SoldItems:   items,
		Subtotal:    subtotal,
		Tax:         tax,
		TotalAmount: totalAmount,
	}
}
