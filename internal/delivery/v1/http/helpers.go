package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/swiftpos/backend/internal/domain"
	"github.com/swiftpos/backend/pkg/e"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrProductNameRequired):
		return http.StatusBadRequest, e.ErrProductNameRequired.Error()
	case errors.Is(err, e.ErrProductCodeRequired):
		return http.StatusBadRequest, e.ErrProductCodeRequired.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrInvalidQuantity):
		return http.StatusBadRequest, e.ErrInvalidQuantity.Error()
	case errors.Is(err, e.ErrNoSoldItems):
		return http.StatusBadRequest, e.ErrNoSoldItems.Error()
	case errors.Is(err, e.ErrTotalsMismatch):
		return http.StatusBadRequest, e.ErrTotalsMismatch.Error()
	case errors.Is(err, e.ErrDuplicateProductCode):
		return http.StatusConflict, e.ErrDuplicateProductCode.Error()
	case errors.Is(err, e.ErrInvalidCredentials):
		return http.StatusUnauthorized, e.ErrInvalidCredentials.Error()
	case errors.Is(err, e.ErrInvalidToken):
		return http.StatusUnauthorized, e.ErrInvalidToken.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrSaleNotFound):
		return http.StatusNotFound, e.ErrSaleNotFound.Error()
	case errors.Is(err, e.ErrSaleMalformed):
		return http.StatusUnprocessableEntity, e.ErrSaleMalformed.Error()
	case errors.Is(err, e.ErrStoreNotReady):
		return http.StatusServiceUnavailable, e.ErrStoreNotReady.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parsePrice валидирует цену: неотрицательная, не больше двух знаков
// после запятой, в разумных пределах. Возвращает значение как float64.
func parsePrice(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	f, _ := d.Float64()
	return f, nil
}

// verifyTotals проверяет, что subtotal + tax = totalAmount (сравнение в decimal,
// чтобы не зависеть от двоичного представления float).
func verifyTotals(subtotal, tax, totalAmount float64) error {
	sub := decimal.NewFromFloat(subtotal).Round(2)
	tx := decimal.NewFromFloat(tax).Round(2)
	total := decimal.NewFromFloat(totalAmount).Round(2)

	if !sub.Add(tx).Equal(total) {
		return e.ErrTotalsMismatch
	}
	return nil
}

// ПРЕДСТАВЛЕНИЯ: JSON-формы повторяют макет персистируемого документа.

type ProductResponse struct {
	ID            string  `json:"id"`
	ProductCode   string  `json:"productCode"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
}

type SoldItemPayload struct {
	ProductID   string  `json:"productId"`
	ProductCode string  `json:"productCode"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type SaleResponse struct {
	ID          string            `json:"id"`
	Date        string            `json:"date"`
	Subtotal    float64           `json:"subtotal"`
	Tax         float64           `json:"tax"`
	TotalAmount float64           `json:"totalAmount"`
	SoldItems   []SoldItemPayload `json:"soldItems"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		ProductCode:   p.ProductCode,
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
	}
}

func toProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}

func toSaleResponse(s *domain.Sale) SaleResponse {
	items := make([]SoldItemPayload, 0, len(s.SoldItems))
	for _, item := range s.SoldItems {
		items = append(items, SoldItemPayload{
			ProductID:   item.ProductID,
			ProductCode: item.ProductCode,
			Name:        item.Name,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	return SaleResponse{
		ID:          s.ID,
		Date:        s.Date,
		Subtotal:    s.Subtotal,
		Tax:         s.Tax,
		TotalAmount: s.TotalAmount,
		SoldItems:   items,
	}
}

func toSaleResponses(sales []domain.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, toSaleResponse(&sales[i]))
	}
	return out
}

func toSoldItems(payload []SoldItemPayload) []domain.SoldItem {
	items := make([]domain.SoldItem, 0, len(payload))
	for _, it := range payload {
		items = append(items, domain.SoldItem{
			ProductID:   it.ProductID,
			ProductCode: it.ProductCode,
			Name:        it.Name,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	return items
}
