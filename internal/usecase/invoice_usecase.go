package usecase

import (
	"context"
	"time"

	"github.com/swiftpos/backend/internal/domain"
	"github.com/swiftpos/backend/pkg/e"
	"github.com/swiftpos/backend/pkg/logger"
)

// InvoiceUseCase разрешает продажу по идентификатору для страницы счета.
// Промах трактуется как гонка с гидратацией: поиск повторяется ровно
// retries раз с фиксированной паузой — без экспоненты и без джиттера.
// Единственный способ отмены — контекст запроса.
type InvoiceUseCase struct {
	store   SaleReader
	retries int
	delay   time.Duration
	logger  logger.Logger
}

func NewInvoiceUC(store SaleReader, retries int, delay time.Duration, logger logger.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{
		store:   store,
		retries: retries,
		delay:   delay,
		logger:  logger,
	}
}

// GetInvoice возвращает продажу по идентификатору.
// Возможные исходы: e.ErrStoreNotReady до конца гидратации, e.ErrSaleNotFound
// после исчерпания повторов, e.ErrSaleMalformed для продажи без позиций.
func (u *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*domain.Sale, error) {
	const op = "InvoiceUseCase.GetInvoice"

	if !u.store.Ready() {
		return nil, e.Wrap(op, e.ErrStoreNotReady)
	}

	sale, ok := u.store.SaleByID(id)
	for attempt := 0; !ok && attempt < u.retries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, e.Wrap(op, ctx.Err())
		case <-time.After(u.delay):
		}

		u.logger.Debugf("%s: sale %s not found, retry %d/%d", op, id, attempt+1, u.retries)
		sale, ok = u.store.SaleByID(id)
	}

	if !ok {
		return nil, e.Wrap(op, e.ErrSaleNotFound)
	}

	if len(sale.SoldItems) == 0 {
		return nil, e.Wrap(op, e.ErrSaleMalformed)
	}

	return sale, nil
}
