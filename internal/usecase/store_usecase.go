package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/swiftpos/backend/internal/domain"
	"github.com/swiftpos/backend/pkg/e"
	"github.com/swiftpos/backend/pkg/logger"
)

// DataStore владеет обеими коллекциями состояния: товарами и продажами.
// Коллекции зеркалируются в памяти, гидратируются один раз при старте и
// после каждой мутации целиком сбрасываются в StateRepository.
// Модель персистентности — last-writer-wins: ни версий, ни слияния.
type DataStore struct {
	repo       StateRepository
	dispatcher SaleEventDispatcher
	logger     logger.Logger

	mu       sync.RWMutex
	products []domain.Product
	sales    []domain.Sale
	ready    bool
}

func NewDataStore(repo StateRepository, dispatcher SaleEventDispatcher, logger logger.Logger) *DataStore {
	return &DataStore{
		repo:       repo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Hydrate выполняет единственную загрузку состояния из хранилища.
// Отсутствующий или нечитаемый документ заменяется стартовым каталогом
// и пустым списком продаж; ошибка чтения не фатальна — работа продолжается
// на состоянии в памяти. Записей в хранилище во время гидратации нет.
func (s *DataStore) Hydrate(ctx context.Context) {
	const op = "DataStore.Hydrate"

	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warnf("%s: falling back to seed data: %v", op, err)
		snapshot = nil
	}

	products := domain.DefaultProducts()
	var sales []domain.Sale

	if snapshot != nil {
		if len(snapshot.Products) > 0 {
			products = snapshot.Products
		}
		if snapshot.Sales != nil {
			sales = snapshot.Sales
		}
	}

	s.mu.Lock()
	s.products = products
	s.sales = sales
	s.ready = true
	s.mu.Unlock()

	s.logger.Infof("%s: %d products, %d sales", op, len(products), len(sales))
}

// Ready сообщает, завершилась ли гидратация. До этого коллекции читать нельзя.
func (s *DataStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Products возвращает копию каталога.
func (s *DataStore) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Sales возвращает копию списка продаж, новые — первыми.
func (s *DataStore) Sales() []domain.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

func (s *DataStore) ProductByID(id string) (*domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, true
		}
	}
	return nil, false
}

func (s *DataStore) SaleByID(id string) (*domain.Sale, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.sales {
		if s.sales[i].ID == id {
			sale := s.sales[i]
			return &sale, true
		}
	}
	return nil, false
}

// AddProduct выдает товару новый идентификатор и добавляет его в каталог.
// Уникальность кода товара проверяется внутри хранилища: дубликат отклоняется
// без какой-либо мутации.
func (s *DataStore) AddProduct(ctx context.Context, req *AddProductReq) (string, error) {
	const op = "DataStore.AddProduct"

	s.mu.Lock()
	if s.codeTakenLocked(req.ProductCode, "") {
		s.mu.Unlock()
		return "", e.Wrap(op, e.ErrDuplicateProductCode)
	}

	id := uuid.NewString()
	s.products = append(s.products, domain.Product{
		ID:            id,
		ProductCode:   req.ProductCode,
		Name:          req.Name,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	})
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, op, snapshot)
	return id, nil
}

// UpdateProduct сливает переданные поля в существующий товар.
// Отсутствующий идентификатор — no-op.
func (s *DataStore) UpdateProduct(ctx context.Context, id string, req *UpdateProductReq) error {
	const op = "DataStore.UpdateProduct"

	s.mu.Lock()
	idx := -1
	for i := range s.products {
		if s.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return nil
	}

	if req.ProductCode != nil && s.codeTakenLocked(*req.ProductCode, id) {
		s.mu.Unlock()
		return e.Wrap(op, e.ErrDuplicateProductCode)
	}

	p := &s.products[idx]
	if req.ProductCode != nil {
		p.ProductCode = *req.ProductCode
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.StockQuantity != nil {
		p.StockQuantity = *req.StockQuantity
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, op, snapshot)
	return nil
}

// DeleteProduct удаляет товар из каталога. Продажи, ссылающиеся на него,
// не меняются: позиции продаж денормализованы.
func (s *DataStore) DeleteProduct(ctx context.Context, id string) {
	const op = "DataStore.DeleteProduct"

	s.mu.Lock()
	filtered := s.products[:0]
	removed := false
	for _, p := range s.products {
		if p.ID == id {
			removed = true
			continue
		}
		filtered = append(filtered, p)
	}
	s.products = filtered
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if removed {
		s.persist(ctx, op, snapshot)
	}
}

// AdjustStock устанавливает остаток в max(current+delta, 0).
// Уход ниже нуля молча обрезается до нуля, отсутствующий товар — no-op.
func (s *DataStore) AdjustStock(ctx context.Context, id string, delta int) {
	const op = "DataStore.AdjustStock"

	s.mu.Lock()
	changed := false
	for i := range s.products {
		if s.products[i].ID == id {
			next := s.products[i].StockQuantity + delta
			if next < 0 {
				next = 0
			}
			s.products[i].StockQuantity = next
			changed = true
			break
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if changed {
		s.persist(ctx, op, snapshot)
	}
}

// RecordSale выдает продаже идентификатор и текущую метку времени и ставит ее
// в начало списка. Перед записью снапшота документ перечитывается из хранилища
// и, если там есть товары, в снапшот попадает именно их версия — узкая защита
// от потерянного обновления при конкурирующем писателе. Она намеренно не
// обобщена до транзакционного механизма и ограничена этой одной операцией.
func (s *DataStore) RecordSale(ctx context.Context, req *RecordSaleReq) (string, error) {
	const op = "DataStore.RecordSale"

	sale := domain.Sale{
		ID:          uuid.NewString(),
		Date:        time.Now().UTC().Format(time.RFC3339Nano),
		Subtotal:    req.Subtotal,
		Tax:         req.Tax,
		TotalAmount: req.TotalAmount,
		SoldItems:   req.SoldItems,
	}

	s.mu.Lock()
	s.sales = append([]domain.Sale{sale}, s.sales...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if stored, err := s.repo.Load(ctx); err != nil {
		s.logger.Warnf("%s: re-read before write failed, using in-memory products: %v", op, err)
	} else if stored != nil && len(stored.Products) > 0 {
		snapshot.Products = stored.Products
	}

	s.persist(ctx, op, snapshot)

	if s.dispatcher != nil {
		s.dispatcher.Enqueue(sale)
	}

	return sale.ID, nil
}

// persist сбрасывает полный снапшот в хранилище. Ошибка записи логируется
// и проглатывается: цикл продолжается на состоянии в памяти, повторов нет.
func (s *DataStore) persist(ctx context.Context, op string, snapshot *domain.Snapshot) {
	if !s.Ready() {
		return
	}

	if err := s.repo.Save(ctx, snapshot); err != nil {
		s.logger.Warnf("%s: snapshot write failed, continuing in-memory: %v", op, err)
	}
}

func (s *DataStore) snapshotLocked() *domain.Snapshot {
	products := make([]domain.Product, len(s.products))
	copy(products, s.products)
	sales := make([]domain.Sale, len(s.sales))
	copy(sales, s.sales)

	return &domain.Snapshot{Products: products, Sales: sales}
}

// codeTakenLocked проверяет, занят ли код товара кем-то кроме exceptID.
func (s *DataStore) codeTakenLocked(code, exceptID string) bool {
	code = strings.TrimSpace(code)
	for i := range s.products {
		if s.products[i].ID != exceptID && strings.EqualFold(s.products[i].ProductCode, code) {
			return true
		}
	}
	return false
}
