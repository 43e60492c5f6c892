package e

import "fmt"

var (
	// Внутренние ошибки хранилища
	ErrStoreNotReady        = fmt.Errorf("data store is not hydrated yet")
	ErrSnapshotMissing      = fmt.Errorf("stored snapshot is absent")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrProductNameRequired  = fmt.Errorf("product name is required")
	ErrProductCodeRequired  = fmt.Errorf("product code is required")
	ErrDuplicateProductCode = fmt.Errorf("product code already exists")
	ErrInvalidPrice         = fmt.Errorf("price must be a non-negative number")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidQuantity      = fmt.Errorf("quantity must be a non-negative integer")
	ErrNoSoldItems          = fmt.Errorf("sale must contain at least one item")
	ErrTotalsMismatch       = fmt.Errorf("sale totals do not add up")

	// 401 Unauthorized
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrInvalidToken       = fmt.Errorf("invalid session token")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrSaleNotFound    = fmt.Errorf("sale not found")

	// 422 Unprocessable Entity
	ErrSaleMalformed = fmt.Errorf("sale has no line items")

	// 500
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
