package ordersvc

import (
	"context"
	"errors"
	"testing"

	"github.com/productorderingapp/ordering/internal/order/dal/interfaces/ilineitemrepo"
	"github.com/productorderingapp/ordering/internal/order/dal/interfaces/iorderrepo"
	"github.com/productorderingapp/ordering/internal/order/service/models/currency"
	"github.com/productorderingapp/ordering/internal/order/service/models/event"
	"github.com/productorderingapp/ordering/internal/order/service/models/lineitem"
	"github.com/productorderingapp/ordering/internal/order/service/models/order"
	"github.com/productorderingapp/ordering/internal/order/service/models/placement"
)

type fakeOrderRepo struct {
	store     *fakeStore
	insertErr error
}

func (r *fakeOrderRepo) Insert(_ context.Context, o order.Order) (order.Order, error) {
	if r.insertErr != nil {
		return order.Order{}, r.insertErr
	}

	o.ID = int64(len(r.store.orders) + 1)
	r.store.pendingOrders = append(r.store.pendingOrders, o)

	return o, nil
}

func (r *fakeOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	var result []order.Order
	for _, o := range r.store.orders {
		if len(filter.Ids) > 0 && !containsInt64(filter.Ids, o.ID) {
			continue
		}
		o.Items = nil
		result = append(result, o)
	}

	return result, nil
}

type fakeLineItemRepo struct {
	store     *fakeStore
	insertErr error
}

func (r *fakeLineItemRepo) BulkInsert(_ context.Context, items []lineitem.LineItem) ([]lineitem.LineItem, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}

	for i := range items {
		items[i].ID = int64(len(r.store.items) + len(r.store.pendingItems) + 1)
		r.store.pendingItems = append(r.store.pendingItems, items[i])
	}

	return items, nil
}

func (r *fakeLineItemRepo) Query(_ context.Context, filter *lineitem.QueryLineItemsModel) ([]lineitem.LineItem, error) {
	var result []lineitem.LineItem
	for _, item := range r.store.items {
		if len(filter.OrderIds) > 0 && !containsInt64(filter.OrderIds, item.OrderID) {
			continue
		}
		result = append(result, item)
	}

	return result, nil
}

// fakeStore is the durable state shared by fake units of work. Pending
// writes move into it only on Commit, mirroring transaction semantics.
type fakeStore struct {
	orders        []order.Order
	items         []lineitem.LineItem
	pendingOrders []order.Order
	pendingItems  []lineitem.LineItem
}

type fakeUOW struct {
	store        *fakeStore
	orderRepo    *fakeOrderRepo
	lineItemRepo *fakeLineItemRepo
	commitErr    error
	begun        bool
	committed    bool
	rolledBack   bool
}

func newFakeUOW(store *fakeStore) *fakeUOW {
	return &fakeUOW{
		store:        store,
		orderRepo:    &fakeOrderRepo{store: store},
		lineItemRepo: &fakeLineItemRepo{store: store},
	}
}

func (u *fakeUOW) Begin(context.Context) error {
	u.begun = true
	return nil
}

func (u *fakeUOW) Commit(context.Context) error {
	if u.commitErr != nil {
		return u.commitErr
	}

	u.committed = true
	u.store.orders = append(u.store.orders, u.store.pendingOrders...)
	u.store.items = append(u.store.items, u.store.pendingItems...)
	u.store.pendingOrders = nil
	u.store.pendingItems = nil

	return nil
}

func (u *fakeUOW) Rollback(context.Context) error {
	u.rolledBack = true
	u.store.pendingOrders = nil
	u.store.pendingItems = nil

	return nil
}

func (u *fakeUOW) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *fakeUOW) LineItemRepository() ilineitemrepo.ILineItemRepository {
	return u.lineItemRepo
}

type fakeStockChecker struct {
	results map[string]bool
	err     error
	calls   [][]string
}

func (c *fakeStockChecker) CheckStock(_ context.Context, skuCodes []string) (map[string]bool, error) {
	c.calls = append(c.calls, skuCodes)
	if c.err != nil {
		return nil, c.err
	}

	return c.results, nil
}

type fakePublisher struct {
	events []event.OrderPlaced
	err    error
}

func (p *fakePublisher) PublishOrderPlaced(_ context.Context, e event.OrderPlaced) error {
	p.events = append(p.events, e)
	if p.err != nil {
		return p.err
	}

	return nil
}

func containsInt64(haystack []int64, needle int64) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}

	return false
}

func newService(store *fakeStore, checker *fakeStockChecker, pub *fakePublisher) (*OrderService, *fakeUOW) {
	work := newFakeUOW(store)

	svc := MustNewOrderService(
		WithUnitOfWorkFactory(func() unitOfWork { return work }),
		WithStockChecker(checker),
		WithPublisher(pub),
	)

	return svc, work
}

func someItems() []lineitem.LineItem {
	return []lineitem.LineItem{
		{SkuCode: "iphone_15", Quantity: 2, PriceCents: 1000, PriceCurrency: currency.CurrencyUSD},
		{SkuCode: "galaxy_s25", Quantity: 1, PriceCents: 2550, PriceCurrency: currency.CurrencyUSD},
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty request without side effects", func(t *testing.T) {
		store := &fakeStore{}
		checker := &fakeStockChecker{}
		pub := &fakePublisher{}
		svc, _ := newService(store, checker, pub)

		_, err := svc.PlaceOrder(context.Background(), nil)
		if !errors.Is(err, placement.ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
		if len(checker.calls) != 0 {
			t.Fatalf("expected no inventory query")
		}
		if len(store.orders) != 0 {
			t.Fatalf("expected no order persisted")
		}
		if len(pub.events) != 0 {
			t.Fatalf("expected no event published")
		}
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		store := &fakeStore{}
		svc, _ := newService(store, &fakeStockChecker{}, &fakePublisher{})

		_, err := svc.PlaceOrder(context.Background(), []lineitem.LineItem{
			{SkuCode: "iphone_15", Quantity: 0, PriceCents: 1000},
		})
		if !errors.Is(err, placement.ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("rejects negative price", func(t *testing.T) {
		store := &fakeStore{}
		svc, _ := newService(store, &fakeStockChecker{}, &fakePublisher{})

		_, err := svc.PlaceOrder(context.Background(), []lineitem.LineItem{
			{SkuCode: "iphone_15", Quantity: 1, PriceCents: -1},
		})
		if !errors.Is(err, placement.ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("commits and publishes when all SKUs are in stock", func(t *testing.T) {
		store := &fakeStore{}
		checker := &fakeStockChecker{results: map[string]bool{"iphone_15": true, "galaxy_s25": true}}
		pub := &fakePublisher{}
		svc, work := newService(store, checker, pub)

		placed, err := svc.PlaceOrder(context.Background(), someItems())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if placed.OrderNumber == "" {
			t.Fatalf("expected order number to be assigned")
		}
		if !work.committed {
			t.Fatalf("expected the unit of work to be committed")
		}
		if len(store.orders) != 1 {
			t.Fatalf("expected exactly one order persisted, got %d", len(store.orders))
		}
		if len(placed.Items) != 2 {
			t.Fatalf("expected 2 line items, got %d", len(placed.Items))
		}
		for i, want := range someItems() {
			got := placed.Items[i]
			if got.SkuCode != want.SkuCode || got.Quantity != want.Quantity || got.PriceCents != want.PriceCents {
				t.Fatalf("line item %d not preserved verbatim: got %+v", i, got)
			}
			if got.OrderID != placed.ID {
				t.Fatalf("line item %d not attached to order %d", i, placed.ID)
			}
		}
		if len(pub.events) != 1 {
			t.Fatalf("expected exactly one event, got %d", len(pub.events))
		}
		if pub.events[0].OrderNumber != placed.OrderNumber {
			t.Fatalf("event carries %q, want %q", pub.events[0].OrderNumber, placed.OrderNumber)
		}
	})

	t.Run("queries each distinct SKU once", func(t *testing.T) {
		store := &fakeStore{}
		checker := &fakeStockChecker{results: map[string]bool{"iphone_15": true}}
		pub := &fakePublisher{}
		svc, _ := newService(store, checker, pub)

		items := []lineitem.LineItem{
			{SkuCode: "iphone_15", Quantity: 1, PriceCents: 1000},
			{SkuCode: "iphone_15", Quantity: 3, PriceCents: 1000},
		}
		if _, err := svc.PlaceOrder(context.Background(), items); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(checker.calls) != 1 {
			t.Fatalf("expected one inventory query, got %d", len(checker.calls))
		}
		if got := checker.calls[0]; len(got) != 1 || got[0] != "iphone_15" {
			t.Fatalf("expected deduplicated SKU set, got %v", got)
		}
	})

	t.Run("rejects when any SKU is out of stock", func(t *testing.T) {
		store := &fakeStore{}
		checker := &fakeStockChecker{results: map[string]bool{"iphone_15": true, "galaxy_s25": false}}
		pub := &fakePublisher{}
		svc, work := newService(store, checker, pub)

		_, err := svc.PlaceOrder(context.Background(), someItems())
		if !errors.Is(err, placement.ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		if work.begun {
			t.Fatalf("expected no persistence attempt")
		}
		if len(store.orders) != 0 {
			t.Fatalf("expected store unchanged")
		}
		if len(pub.events) != 0 {
			t.Fatalf("expected no event published")
		}
	})

	t.Run("treats SKU missing from response as out of stock", func(t *testing.T) {
		store := &fakeStore{}
		checker := &fakeStockChecker{results: map[string]bool{"iphone_15": true}}
		pub := &fakePublisher{}
		svc, _ := newService(store, checker, pub)

		_, err := svc.PlaceOrder(context.Background(), someItems())
		if !errors.Is(err, placement.ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		if len(store.orders) != 0 {
			t.Fatalf("expected store unchanged")
		}
	})

	t.Run("maps inventory query failure to dependency unavailable", func(t *testing.T) {
		store := &fakeStore{}
		checker := &fakeStockChecker{err: errors.New("connection refused")}
		pub := &fakePublisher{}
		svc, work := newService(store, checker, pub)

		_, err := svc.PlaceOrder(context.Background(), someItems())
		if !errors.Is(err, placement.ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
		if work.begun {
			t.Fatalf("expected no persistence attempt")
		}
		if len(pub.events) != 0 {
			t.Fatalf("expected no event published")
		}
	})

	t.Run("maps insert failure to storage failure and publishes nothing", func(t *testing.T) {
		store := &fakeStore{}
		checker := &fakeStockChecker{results: map[string]bool{"iphone_15": true, "galaxy_s25": true}}
		pub := &fakePublisher{}
		svc, work := newService(store, checker, pub)
		work.orderRepo.insertErr = errors.New("connection reset")

		_, err := svc.PlaceOrder(context.Background(), someItems())
		if !errors.Is(err, placement.ErrStorageFailure) {
			t.Fatalf("expected ErrStorageFailure, got %v", err)
		}
		if !work.rolledBack {
			t.Fatalf("expected rollback")
		}
		if len(store.orders) != 0 {
			t.Fatalf("expected no order persisted")
		}
		if len(pub.events) != 0 {
			t.Fatalf("expected no event published")
		}
	})

	t.Run("maps commit failure to storage failure", func(t *testing.T) {
		store := &fakeStore{}
		checker := &fakeStockChecker{results: map[string]bool{"iphone_15": true, "galaxy_s25": true}}
		pub := &fakePublisher{}
		svc, work := newService(store, checker, pub)
		work.commitErr = errors.New("connection lost")

		_, err := svc.PlaceOrder(context.Background(), someItems())
		if !errors.Is(err, placement.ErrStorageFailure) {
			t.Fatalf("expected ErrStorageFailure, got %v", err)
		}
		if len(pub.events) != 0 {
			t.Fatalf("expected no event published")
		}
	})

	t.Run("publish failure does not fail the placement", func(t *testing.T) {
		store := &fakeStore{}
		checker := &fakeStockChecker{results: map[string]bool{"iphone_15": true, "galaxy_s25": true}}
		pub := &fakePublisher{err: errors.New("broker down")}
		svc, _ := newService(store, checker, pub)

		placed, err := svc.PlaceOrder(context.Background(), someItems())
		if err != nil {
			t.Fatalf("expected success despite publish failure, got %v", err)
		}
		if len(pub.events) != 1 {
			t.Fatalf("expected exactly one publish attempt, got %d", len(pub.events))
		}

		found, err := svc.GetOrderByID(context.Background(), placed.ID)
		if err != nil {
			t.Fatalf("expected order to be retrievable, got %v", err)
		}
		if found.OrderNumber != placed.OrderNumber {
			t.Fatalf("retrieved order number %q, want %q", found.OrderNumber, placed.OrderNumber)
		}
	})
}

func TestOrderService_GetOrderByID(t *testing.T) {
	t.Parallel()

	t.Run("unknown id returns not found", func(t *testing.T) {
		svc, _ := newService(&fakeStore{}, &fakeStockChecker{}, &fakePublisher{})

		_, err := svc.GetOrderByID(context.Background(), 42)
		if !errors.Is(err, placement.ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("stitches line items onto the order", func(t *testing.T) {
		store := &fakeStore{
			orders: []order.Order{{ID: 1, OrderNumber: "n-1"}},
			items: []lineitem.LineItem{
				{ID: 1, OrderID: 1, SkuCode: "iphone_15", Quantity: 2},
			},
		}
		svc, _ := newService(store, &fakeStockChecker{}, &fakePublisher{})

		found, err := svc.GetOrderByID(context.Background(), 1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(found.Items) != 1 || found.Items[0].SkuCode != "iphone_15" {
			t.Fatalf("expected stitched line item, got %+v", found.Items)
		}
	})
}
