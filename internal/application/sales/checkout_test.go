package sales_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratera/pos-api/internal/application/dto"
	"github.com/stratera/pos-api/internal/application/sales"
	"github.com/stratera/pos-api/internal/domain"
	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/internal/domain/repository"
)

// fakeStore is an in-memory database shared by the fake repositories. The
// fake tx runner snapshots it before each unit of work and restores the
// snapshot on error, mirroring rollback semantics.
type fakeStore struct {
	mu sync.Mutex

	products   map[string]*entity.Product
	sales      map[string]*entity.Sale
	items      []*entity.SaleItem
	activities []*entity.ActivityLogEntry
	receipts   map[string]bool

	// forceDuplicates makes the next N sale inserts fail as receipt
	// collisions. Not part of the snapshot: it survives rollbacks.
	forceDuplicates int

	// lockOrder records every GetForUpdate call. Observability only, never
	// rolled back.
	lockOrder []string
}

func newFakeStore(products ...*entity.Product) *fakeStore {
	s := &fakeStore{
		products: map[string]*entity.Product{},
		sales:    map[string]*entity.Sale{},
		receipts: map[string]bool{},
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeStore) snapshot() *fakeStore {
	clone := &fakeStore{
		products:   make(map[string]*entity.Product, len(s.products)),
		sales:      make(map[string]*entity.Sale, len(s.sales)),
		items:      append([]*entity.SaleItem(nil), s.items...),
		activities: append([]*entity.ActivityLogEntry(nil), s.activities...),
		receipts:   make(map[string]bool, len(s.receipts)),
	}
	for id, p := range s.products {
		cp := *p
		clone.products[id] = &cp
	}
	for id, sale := range s.sales {
		clone.sales[id] = sale
	}
	for r := range s.receipts {
		clone.receipts[r] = true
	}
	return clone
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.products = snap.products
	s.sales = snap.sales
	s.items = snap.items
	s.activities = snap.activities
	s.receipts = snap.receipts
}

func (s *fakeStore) stockOf(t *testing.T, id string) int {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	require.True(t, ok, "product %s missing", id)
	return p.Stock
}

// fakeProductRepo implements repository.ProductRepository over the store.
// Methods the sale path never touches return zero values.
type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByBarcode(string) (*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	r.s.lockOrder = append(r.s.lockOrder, id)
	return r.GetByID(id)
}

func (r *fakeProductRepo) UpdateStock(id string, stock int) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *fakeProductRepo) List(int, int) ([]*entity.Product, error)              { return nil, nil }
func (r *fakeProductRepo) ListActive() ([]*entity.Product, error)                { return nil, nil }
func (r *fakeProductRepo) Search(string, string, int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) SetActive(string, bool) error                          { return nil }

// lockedProductRepo guards reads happening outside a unit of work, so
// concurrent checkouts can validate while another commit is in flight.
type lockedProductRepo struct{ fakeProductRepo }

func (r *lockedProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.fakeProductRepo.GetByID(id)
}

// inflatedStockRepo reports more stock than the store holds, forcing the
// validation pass to admit a cart the commit must then reject under lock.
type inflatedStockRepo struct{ lockedProductRepo }

func (r *inflatedStockRepo) GetByID(id string) (*entity.Product, error) {
	p, err := r.lockedProductRepo.GetByID(id)
	if p != nil {
		p.Stock += 100
	}
	return p, err
}

// fakeSaleRepo implements repository.SaleRepository over the store.
type fakeSaleRepo struct{ s *fakeStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	if r.s.forceDuplicates > 0 {
		r.s.forceDuplicates--
		return domain.ErrDuplicate
	}
	if r.s.receipts[sale.ReceiptNumber] {
		return domain.ErrDuplicate
	}
	r.s.receipts[sale.ReceiptNumber] = true
	r.s.sales[sale.ID] = sale
	return nil
}

func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	r.s.items = append(r.s.items, item)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sales[id], nil
}

func (r *fakeSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SaleItem
	for _, item := range r.s.items {
		if item.SaleID == saleID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) List(repository.SaleFilter) ([]*entity.Sale, error) { return nil, nil }

// fakeActivityRepo implements repository.ActivityLogRepository over the store.
type fakeActivityRepo struct{ s *fakeStore }

func (r *fakeActivityRepo) Create(e *entity.ActivityLogEntry) error {
	r.s.activities = append(r.s.activities, e)
	return nil
}

func (r *fakeActivityRepo) List(int, int) ([]*entity.ActivityLogEntry, error) {
	return r.s.activities, nil
}

// fakeSettingsRepo returns nil so the engine falls back to defaults.
type fakeSettingsRepo struct{}

func (fakeSettingsRepo) Get() (*entity.BusinessSettings, error) { return nil, nil }
func (fakeSettingsRepo) Upsert(*entity.BusinessSettings) error  { return nil }

// fakeTxRunner serializes units of work and restores the store on error, so
// a failed commit leaves no partial effects behind.
type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	activityRepo repository.ActivityLogRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.snapshot()
	err := fn(&fakeProductRepo{r.s}, &fakeSaleRepo{r.s}, &fakeActivityRepo{r.s})
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

func newCheckoutUC(store *fakeStore) *sales.CheckoutUseCase {
	return sales.NewCheckoutUseCase(
		&fakeTxRunner{store},
		&lockedProductRepo{fakeProductRepo{store}},
		&fakeSaleRepo{store},
		fakeSettingsRepo{},
	)
}

func TestCheckout_Success(t *testing.T) {
	in, products := validCart()
	store := newFakeStore(products["p1"], products["p2"])
	uc := newCheckoutUC(store)

	resp, err := uc.Checkout(context.Background(), "cashier-1", in)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, resp.Success)
	assert.Regexp(t, receiptPattern, resp.ReceiptNumber)

	// Stock decremented by exactly the sold quantities.
	assert.Equal(t, 8, store.stockOf(t, "p1"))
	assert.Equal(t, 2, store.stockOf(t, "p2"))

	sale := store.sales[resp.SaleID]
	require.NotNil(t, sale)
	assert.Equal(t, "cashier-1", sale.UserID)
	assert.Equal(t, resp.ReceiptNumber, sale.ReceiptNumber)
	require.Len(t, store.items, 2)
	// Names are snapshotted onto the lines at commit time; positions keep
	// cart order for the receipt.
	assert.Equal(t, "Rice 5kg", store.items[0].ProductName)
	assert.Equal(t, 1, store.items[0].Position)
	assert.Equal(t, "Cooking Oil", store.items[1].ProductName)
	assert.Equal(t, 2, store.items[1].Position)

	require.Len(t, store.activities, 1)
	entry := store.activities[0]
	assert.Equal(t, entity.ActivityCreateSale, entry.ActivityType)
	assert.Equal(t, resp.SaleID, entry.EntityID)
	assert.Equal(t, "cashier-1", entry.UserID)
}

func TestCheckout_LocksInProductIDOrder(t *testing.T) {
	// Cart lists p2 before p1. Rows must still be locked in product ID
	// order, while the persisted lines keep the cart's order.
	in := &dto.CheckoutRequest{
		Items: []dto.CheckoutItem{
			{ProductID: "p2", Quantity: 1, UnitPrice: money("2.50")},
			{ProductID: "p1", Quantity: 2, UnitPrice: money("5.00")},
		},
		SubTotal:      money("12.50"),
		GrandTotal:    money("12.50"),
		PaymentMethod: "Cash",
	}
	store := newFakeStore(
		testProduct("p1", "Rice 5kg", "5.00", 10),
		testProduct("p2", "Cooking Oil", "2.50", 3),
	)
	uc := newCheckoutUC(store)

	_, err := uc.Checkout(context.Background(), "cashier-1", in)
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "p2"}, store.lockOrder)

	require.Len(t, store.items, 2)
	assert.Equal(t, "p2", store.items[0].ProductID)
	assert.Equal(t, 1, store.items[0].Position)
	assert.Equal(t, "p1", store.items[1].ProductID)
	assert.Equal(t, 2, store.items[1].Position)
}

func TestCheckout_MissingCashier(t *testing.T) {
	in, products := validCart()
	store := newFakeStore(products["p1"], products["p2"])
	uc := newCheckoutUC(store)

	_, err := uc.Checkout(context.Background(), "", in)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, store.sales)
}

func TestCheckout_InsufficientStockRollsBack(t *testing.T) {
	in, products := validCart()
	// Real stock of p2 is below the ordered quantity, but validation sees an
	// inflated figure: the commit must catch it under lock and undo the p1
	// decrement that already happened inside the unit of work.
	products["p2"].Stock = 0
	store := newFakeStore(products["p1"], products["p2"])
	uc := sales.NewCheckoutUseCase(
		&fakeTxRunner{store},
		&inflatedStockRepo{lockedProductRepo{fakeProductRepo{store}}},
		&fakeSaleRepo{store},
		fakeSettingsRepo{},
	)

	_, err := uc.Checkout(context.Background(), "cashier-1", in)
	require.Error(t, err)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p2", stockErr.ProductID)
	assert.Equal(t, 0, stockErr.Available)

	// Nothing from the aborted attempt is visible.
	assert.Equal(t, 10, store.stockOf(t, "p1"))
	assert.Equal(t, 0, store.stockOf(t, "p2"))
	assert.Empty(t, store.sales)
	assert.Empty(t, store.items)
	assert.Empty(t, store.activities)
}

func TestCheckout_ReceiptCollisionRetries(t *testing.T) {
	in, products := validCart()
	store := newFakeStore(products["p1"], products["p2"])
	store.forceDuplicates = 1
	uc := newCheckoutUC(store)

	resp, err := uc.Checkout(context.Background(), "cashier-1", in)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Len(t, store.sales, 1)
	assert.Equal(t, 8, store.stockOf(t, "p1"))
}

func TestCheckout_ReceiptCollisionExhausted(t *testing.T) {
	in, products := validCart()
	store := newFakeStore(products["p1"], products["p2"])
	store.forceDuplicates = 5
	uc := newCheckoutUC(store)

	_, err := uc.Checkout(context.Background(), "cashier-1", in)
	assert.ErrorIs(t, err, domain.ErrReceiptGeneration)

	// Every attempt rolled back in full.
	assert.Equal(t, 10, store.stockOf(t, "p1"))
	assert.Empty(t, store.sales)
	assert.Empty(t, store.items)
	assert.Empty(t, store.activities)
}

func TestCheckout_ConcurrentNeverOversells(t *testing.T) {
	const stock, buyers = 5, 8
	store := newFakeStore(testProduct("p1", "Rice 5kg", "5.00", stock))
	uc := newCheckoutUC(store)

	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := &dto.CheckoutRequest{
				Items:         []dto.CheckoutItem{{ProductID: "p1", Quantity: 1, UnitPrice: money("5.00")}},
				SubTotal:      money("5.00"),
				GrandTotal:    money("5.00"),
				PaymentMethod: "Cash",
			}
			_, errs[i] = uc.Checkout(context.Background(), "cashier-1", in)
		}(i)
	}
	wg.Wait()

	sold := 0
	for _, err := range errs {
		if err == nil {
			sold++
			continue
		}
		var stockErr *domain.InsufficientStockError
		assert.ErrorAs(t, err, &stockErr)
	}
	assert.Equal(t, stock, sold)
	assert.Equal(t, 0, store.stockOf(t, "p1"))
	assert.Len(t, store.sales, stock)
}

func TestGetSale(t *testing.T) {
	in, products := validCart()
	store := newFakeStore(products["p1"], products["p2"])
	uc := newCheckoutUC(store)

	resp, err := uc.Checkout(context.Background(), "cashier-1", in)
	require.NoError(t, err)

	sale, err := uc.GetSale(context.Background(), resp.SaleID)
	require.NoError(t, err)
	assert.Equal(t, resp.ReceiptNumber, sale.ReceiptNumber)
	require.Len(t, sale.Items, 2)
	assert.Equal(t, "Rice 5kg", sale.Items[0].ProductName)
	assert.True(t, sale.Items[0].Total.Equal(money("10.00")))

	_, err = uc.GetSale(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListSales_DateValidation(t *testing.T) {
	store := newFakeStore()
	uc := newCheckoutUC(store)

	_, err := uc.ListSales(context.Background(), dto.SaleHistoryRequest{StartDate: "15-03-2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ListSales(context.Background(), dto.SaleHistoryRequest{EndDate: "not-a-date"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
