package usecase

import (
	"context"

	"github.com/swiftpos/backend/internal/domain"
)

// StateRepository хранит единственный JSON-документ состояния {products, sales}.
// Load возвращает (nil, nil), если документ отсутствует или не парсится:
// ошибка разбора логируется на стороне репозитория и трактуется как отсутствие.
type StateRepository interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snapshot *domain.Snapshot) error
}

// SaleEventDispatcher принимает события о зафиксированных продажах.
// Enqueue не блокируется и не возвращает ошибку: доставка — best effort.
type SaleEventDispatcher interface {
	Enqueue(sale domain.Sale)
}

// SaleReader — доступ на чтение, которого достаточно предъявителю счета.
type SaleReader interface {
	Ready() bool
	SaleByID(id string) (*domain.Sale, bool)
}
