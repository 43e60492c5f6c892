package usecase

import (
	"context"

	"github.com/swiftpos/backend/internal/domain"
)

type StoreUC interface {
	Ready() bool
	Products() []domain.Product
	Sales() []domain.Sale
	ProductByID(id string) (*domain.Product, bool)
	SaleByID(id string) (*domain.Sale, bool)
	AddProduct(ctx context.Context, req *AddProductReq) (string, error)
	UpdateProduct(ctx context.Context, id string, req *UpdateProductReq) error
	DeleteProduct(ctx context.Context, id string)
	AdjustStock(ctx context.Context, id string, delta int)
	RecordSale(ctx context.Context, req *RecordSaleReq) (string, error)
}

type InvoiceUC interface {
	GetInvoice(ctx context.Context, id string) (*domain.Sale, error)
}
