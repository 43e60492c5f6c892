package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftpos/backend/internal/domain"
	"github.com/swiftpos/backend/pkg/e"
	"github.com/swiftpos/backend/pkg/logger"
)

type fakeStateRepo struct {
	mu       sync.Mutex
	snapshot *domain.Snapshot
	loadErr  error
	saveErr  error
	saves    int
}

func (f *fakeStateRepo) Load(_ context.Context) (*domain.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.snapshot == nil {
		return nil, nil
	}

	cp := *f.snapshot
	return &cp, nil
}

func (f *fakeStateRepo) Save(_ context.Context, snapshot *domain.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.snapshot = snapshot
	return nil
}

type fakeDispatcher struct {
	mu    sync.Mutex
	sales []domain.Sale
}

func (f *fakeDispatcher) Enqueue(sale domain.Sale) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sales = append(f.sales, sale)
}

func newHydratedStore(t *testing.T, repo *fakeStateRepo) *DataStore {
	t.Helper()

	store := NewDataStore(repo, nil, logger.NewSlogLogger())
	store.Hydrate(context.Background())
	require.True(t, store.Ready())
	return store
}

func TestHydrateSeedsDefaultsWhenStorageEmpty(t *testing.T) {
	store := newHydratedStore(t, &fakeStateRepo{})

	products := store.Products()
	require.Len(t, products, 3)
	assert.Equal(t, "sample-espresso", products[0].ID)
	assert.Equal(t, 30, products[0].StockQuantity)
	assert.Empty(t, store.Sales())
}

func TestHydrateSeedsDefaultsWhenStoredProductsEmpty(t *testing.T) {
	repo := &fakeStateRepo{snapshot: &domain.Snapshot{
		Products: nil,
		Sales:    []domain.Sale{{ID: "old-sale", SoldItems: []domain.SoldItem{{ProductID: "x", Quantity: 1}}}},
	}}
	store := newHydratedStore(t, repo)

	assert.Len(t, store.Products(), 3)
	// Продажи из хранилища сохраняются даже при пустом каталоге
	require.Len(t, store.Sales(), 1)
	assert.Equal(t, "old-sale", store.Sales()[0].ID)
}

func TestHydrateContinuesOnLoadError(t *testing.T) {
	repo := &fakeStateRepo{loadErr: errors.New("redis down")}
	store := newHydratedStore(t, repo)

	assert.Len(t, store.Products(), 3)
}

func TestHydrateRoundTrip(t *testing.T) {
	seed := &domain.Snapshot{
		Products: []domain.Product{
			{ID: "p1", ProductCode: "A-1", Name: "First", Price: 1.5, StockQuantity: 7},
			{ID: "p2", ProductCode: "B-2", Name: "Second", Price: 0.75, StockQuantity: 0},
		},
		Sales: []domain.Sale{
			{ID: "s2", Date: "2026-02-01T10:00:00Z", TotalAmount: 5, SoldItems: []domain.SoldItem{{ProductID: "p1", Quantity: 2, Price: 1.5}}},
			{ID: "s1", Date: "2026-01-01T10:00:00Z", TotalAmount: 3, SoldItems: []domain.SoldItem{{ProductID: "p2", Quantity: 1, Price: 3}}},
		},
	}
	store := newHydratedStore(t, &fakeStateRepo{snapshot: seed})

	assert.Equal(t, seed.Products, store.Products())
	// Порядок продаж сохраняется: новые — первыми
	require.Len(t, store.Sales(), 2)
	assert.Equal(t, "s2", store.Sales()[0].ID)
	assert.Equal(t, "s1", store.Sales()[1].ID)
}

func TestAddProductAssignsFreshID(t *testing.T) {
	repo := &fakeStateRepo{}
	store := newHydratedStore(t, repo)

	id, err := store.AddProduct(context.Background(), NewAddProductReq("NEW-1", "New Product", 9.99, 5))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	product, ok := store.ProductByID(id)
	require.True(t, ok)
	assert.Equal(t, "NEW-1", product.ProductCode)
	assert.Equal(t, 5, product.StockQuantity)

	// Мутация сброшена в хранилище целиком
	require.NotNil(t, repo.snapshot)
	assert.Len(t, repo.snapshot.Products, 4)
}

// Уникальность кода товара намеренно перенесена из UI внутрь хранилища —
// это ужесточение исходного контракта, где проверка жила только в форме.
func TestAddProductRejectsDuplicateCode(t *testing.T) {
	repo := &fakeStateRepo{}
	store := newHydratedStore(t, repo)
	savesBefore := repo.saves

	_, err := store.AddProduct(context.Background(), NewAddProductReq("ESP-1001", "Clone", 1, 1))
	require.ErrorIs(t, err, e.ErrDuplicateProductCode)

	// Отклоненная операция не оставляет частичной мутации и не пишет снапшот
	assert.Len(t, store.Products(), 3)
	assert.Equal(t, savesBefore, repo.saves)
}

func TestAddProductRejectsDuplicateCodeCaseInsensitive(t *testing.T) {
	store := newHydratedStore(t, &fakeStateRepo{})

	_, err := store.AddProduct(context.Background(), NewAddProductReq("esp-1001", "Clone", 1, 1))
	assert.ErrorIs(t, err, e.ErrDuplicateProductCode)
}

func TestUpdateProductMergesFields(t *testing.T) {
	store := newHydratedStore(t, &fakeStateRepo{})

	name := "Double Espresso"
	price := 3.5
	err := store.UpdateProduct(context.Background(), "sample-espresso", &UpdateProductReq{Name: &name, Price: &price})
	require.NoError(t, err)

	product, ok := store.ProductByID("sample-espresso")
	require.True(t, ok)
	assert.Equal(t, "Double Espresso", product.Name)
	assert.Equal(t, 3.5, product.Price)
	// Нетронутые поля не меняются
	assert.Equal(t, "ESP-1001", product.ProductCode)
	assert.Equal(t, 30, product.StockQuantity)
}

func TestUpdateProductMissingIDIsNoop(t *testing.T) {
	repo := &fakeStateRepo{}
	store := newHydratedStore(t, repo)
	savesBefore := repo.saves

	name := "Ghost"
	err := store.UpdateProduct(context.Background(), "no-such-id", &UpdateProductReq{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, savesBefore, repo.saves)
}

func TestUpdateProductRejectsCodeOfAnotherProduct(t *testing.T) {
	store := newHydratedStore(t, &fakeStateRepo{})

	code := "CAP-2002"
	err := store.UpdateProduct(context.Background(), "sample-espresso", &UpdateProductReq{ProductCode: &code})
	assert.ErrorIs(t, err, e.ErrDuplicateProductCode)

	// Свой собственный код обновлять можно
	own := "ESP-1001"
	assert.NoError(t, store.UpdateProduct(context.Background(), "sample-espresso", &UpdateProductReq{ProductCode: &own}))
}

func TestDeleteProductKeepsSales(t *testing.T) {
	repo := &fakeStateRepo{snapshot: &domain.Snapshot{
		Products: []domain.Product{{ID: "p1", ProductCode: "A-1", Name: "First", Price: 2, StockQuantity: 1}},
		Sales: []domain.Sale{{ID: "s1", SoldItems: []domain.SoldItem{
			{ProductID: "p1", ProductCode: "A-1", Name: "First", Quantity: 1, Price: 2},
		}}},
	}}
	store := newHydratedStore(t, repo)

	store.DeleteProduct(context.Background(), "p1")

	_, ok := store.ProductByID("p1")
	assert.False(t, ok)
	// Денормализованная позиция продажи переживает удаление товара
	require.Len(t, store.Sales(), 1)
	assert.Equal(t, "p1", store.Sales()[0].SoldItems[0].ProductID)
}

func TestAdjustStockClampsAtZero(t *testing.T) {
	tests := []struct {
		name  string
		start int
		delta int
		want  int
	}{
		{"increment", 10, 5, 15},
		{"decrement", 10, -4, 6},
		{"to zero exactly", 10, -10, 0},
		{"below zero clamps", 10, -25, 0},
		{"from zero down stays zero", 0, -1, 0},
		{"from zero up", 0, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeStateRepo{snapshot: &domain.Snapshot{
				Products: []domain.Product{{ID: "p1", ProductCode: "A-1", Name: "First", Price: 1, StockQuantity: tt.start}},
			}}
			store := newHydratedStore(t, repo)

			store.AdjustStock(context.Background(), "p1", tt.delta)

			product, ok := store.ProductByID("p1")
			require.True(t, ok)
			assert.Equal(t, tt.want, product.StockQuantity)
		})
	}
}

func TestAdjustStockEspressoScenario(t *testing.T) {
	store := newHydratedStore(t, &fakeStateRepo{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		store.AdjustStock(ctx, "sample-espresso", -5)
	}
	product, _ := store.ProductByID("sample-espresso")
	assert.Equal(t, 15, product.StockQuantity)

	store.AdjustStock(ctx, "sample-espresso", -20)
	product, _ = store.ProductByID("sample-espresso")
	assert.Equal(t, 0, product.StockQuantity)
}

func TestRecordSalePrependsAndAssignsDistinctIDs(t *testing.T) {
	store := newHydratedStore(t, &fakeStateRepo{})
	ctx := context.Background()

	req := NewRecordSaleReq([]domain.SoldItem{
		{ProductID: "sample-espresso", ProductCode: "ESP-1001", Name: "Espresso Shot", Quantity: 2, Price: 3},
	}, 6, 0.6, 6.6)

	first, err := store.RecordSale(ctx, req)
	require.NoError(t, err)
	second, err := store.RecordSale(ctx, req)
	require.NoError(t, err)

	// Идемпотентности нет: одинаковые запросы дают разные продажи
	assert.NotEqual(t, first, second)

	sales := store.Sales()
	require.Len(t, sales, 2)
	assert.Equal(t, second, sales[0].ID, "новая продажа встает в начало")
	assert.Equal(t, first, sales[1].ID)
	assert.NotEmpty(t, sales[0].Date)
}

func TestRecordSalePrefersStoredProductsOnWrite(t *testing.T) {
	repo := &fakeStateRepo{}
	store := newHydratedStore(t, repo)

	// Конкурирующий писатель успел поменять каталог в хранилище
	repo.mu.Lock()
	repo.snapshot = &domain.Snapshot{
		Products: []domain.Product{{ID: "other", ProductCode: "OTH-1", Name: "Other", Price: 1, StockQuantity: 99}},
	}
	repo.mu.Unlock()

	id, err := store.RecordSale(context.Background(), NewRecordSaleReq([]domain.SoldItem{
		{ProductID: "sample-espresso", Quantity: 1, Price: 3},
	}, 3, 0, 3))
	require.NoError(t, err)

	// В записанный снапшот попала версия каталога из хранилища, а не из памяти
	require.NotNil(t, repo.snapshot)
	require.Len(t, repo.snapshot.Products, 1)
	assert.Equal(t, "other", repo.snapshot.Products[0].ID)
	require.Len(t, repo.snapshot.Sales, 1)
	assert.Equal(t, id, repo.snapshot.Sales[0].ID)

	// Зеркало в памяти защита не трогает
	assert.Len(t, store.Products(), 3)
}

func TestRecordSaleSurvivesStorageFailure(t *testing.T) {
	repo := &fakeStateRepo{loadErr: errors.New("redis down"), saveErr: errors.New("redis down")}
	store := newHydratedStore(t, repo)

	id, err := store.RecordSale(context.Background(), NewRecordSaleReq([]domain.SoldItem{
		{ProductID: "sample-espresso", Quantity: 1, Price: 3},
	}, 3, 0, 3))
	require.NoError(t, err)

	// Операция продолжилась на состоянии в памяти
	sale, ok := store.SaleByID(id)
	require.True(t, ok)
	assert.Equal(t, 3.0, sale.TotalAmount)
}

func TestRecordSaleEnqueuesEvent(t *testing.T) {
	repo := &fakeStateRepo{}
	dispatcher := &fakeDispatcher{}
	store := NewDataStore(repo, dispatcher, logger.NewSlogLogger())
	store.Hydrate(context.Background())

	id, err := store.RecordSale(context.Background(), NewRecordSaleReq([]domain.SoldItem{
		{ProductID: "sample-bagel", Quantity: 1, Price: 2.25},
	}, 2.25, 0, 2.25))
	require.NoError(t, err)

	require.Len(t, dispatcher.sales, 1)
	assert.Equal(t, id, dispatcher.sales[0].ID)
}

func TestMutationsBeforeHydrationDoNotPersist(t *testing.T) {
	repo := &fakeStateRepo{}
	store := NewDataStore(repo, nil, logger.NewSlogLogger())

	assert.False(t, store.Ready())
	store.AdjustStock(context.Background(), "sample-espresso", -1)
	assert.Zero(t, repo.saves)
}
