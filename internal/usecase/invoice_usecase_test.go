package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftpos/backend/internal/domain"
	"github.com/swiftpos/backend/pkg/e"
	"github.com/swiftpos/backend/pkg/logger"
)

type fakeSaleReader struct {
	ready   bool
	sales   map[string]*domain.Sale
	lookups int
	// появление продажи после N-го обращения имитирует гонку с гидратацией
	appearAfter int
	appearing   *domain.Sale
}

func (f *fakeSaleReader) Ready() bool { return f.ready }

func (f *fakeSaleReader) SaleByID(id string) (*domain.Sale, bool) {
	f.lookups++

	if f.appearing != nil && f.appearing.ID == id && f.lookups > f.appearAfter {
		return f.appearing, true
	}

	sale, ok := f.sales[id]
	return sale, ok
}

func validSale(id string) *domain.Sale {
	return &domain.Sale{
		ID:   id,
		Date: "2026-03-01T12:00:00Z",
		SoldItems: []domain.SoldItem{
			{ProductID: "p1", ProductCode: "A-1", Name: "First", Quantity: 1, Price: 2},
		},
		Subtotal:    2,
		Tax:         0.2,
		TotalAmount: 2.2,
	}
}

func newInvoiceUC(reader *fakeSaleReader) *InvoiceUseCase {
	return NewInvoiceUC(reader, 3, time.Millisecond, logger.NewSlogLogger())
}

func TestGetInvoiceBeforeHydration(t *testing.T) {
	reader := &fakeSaleReader{ready: false}
	uc := newInvoiceUC(reader)

	_, err := uc.GetInvoice(context.Background(), "s1")
	require.ErrorIs(t, err, e.ErrStoreNotReady)
	// До готовности хранилища поиск не выполняется вовсе
	assert.Zero(t, reader.lookups)
}

func TestGetInvoiceFoundFirstAttempt(t *testing.T) {
	reader := &fakeSaleReader{ready: true, sales: map[string]*domain.Sale{"s1": validSale("s1")}}
	uc := newInvoiceUC(reader)

	sale, err := uc.GetInvoice(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", sale.ID)
	assert.Equal(t, 1, reader.lookups)
}

func TestGetInvoiceExhaustsExactlyThreeRetries(t *testing.T) {
	reader := &fakeSaleReader{ready: true}
	uc := newInvoiceUC(reader)

	_, err := uc.GetInvoice(context.Background(), "missing")
	require.ErrorIs(t, err, e.ErrSaleNotFound)
	// Первый поиск плюс ровно три повтора
	assert.Equal(t, 4, reader.lookups)
}

func TestGetInvoiceFindsSaleAppearingMidRetry(t *testing.T) {
	sale := validSale("late")
	reader := &fakeSaleReader{ready: true, appearing: sale, appearAfter: 2}
	uc := newInvoiceUC(reader)

	got, err := uc.GetInvoice(context.Background(), "late")
	require.NoError(t, err)
	assert.Equal(t, "late", got.ID)
	assert.Equal(t, 3, reader.lookups)
}

func TestGetInvoiceMalformedSale(t *testing.T) {
	reader := &fakeSaleReader{ready: true, sales: map[string]*domain.Sale{
		"empty": {ID: "empty", Date: "2026-03-01T12:00:00Z"},
	}}
	uc := newInvoiceUC(reader)

	_, err := uc.GetInvoice(context.Background(), "empty")
	assert.ErrorIs(t, err, e.ErrSaleMalformed)
}

func TestGetInvoiceCancelledDuringRetry(t *testing.T) {
	reader := &fakeSaleReader{ready: true}
	uc := NewInvoiceUC(reader, 3, 50*time.Millisecond, logger.NewSlogLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	_, err := uc.GetInvoice(ctx, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	// Отмена срабатывает до исчерпания повторов
	assert.Less(t, reader.lookups, 4)
}
