package ordersvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/productorderingapp/ordering/internal/dal/postgres"
	"github.com/productorderingapp/ordering/internal/order/dal/interfaces/ilineitemrepo"
	"github.com/productorderingapp/ordering/internal/order/dal/interfaces/iorderrepo"
	"github.com/productorderingapp/ordering/internal/order/dal/uow"
	"github.com/productorderingapp/ordering/internal/order/service/models/event"
	"github.com/productorderingapp/ordering/internal/order/service/models/lineitem"
	"github.com/productorderingapp/ordering/internal/order/service/models/order"
	"github.com/productorderingapp/ordering/internal/order/service/models/placement"
	"github.com/productorderingapp/ordering/internal/order/service/models/stock"
	"go.opentelemetry.io/otel"
)

// OrderService orchestrates order placement across the order store, the
// inventory service and the notification channel.
type OrderService struct {
	uowFactory   func() unitOfWork
	stockChecker stockChecker
	publisher    orderPlacedPublisher
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	LineItemRepository() ilineitemrepo.ILineItemRepository
}

// stockChecker performs a single batched in-stock query. It is an explicit
// dependency so the orchestrator stays testable with a substitute.
type stockChecker interface {
	CheckStock(ctx context.Context, skuCodes []string) (map[string]bool, error)
}

type orderPlacedPublisher interface {
	PublishOrderPlaced(ctx context.Context, e event.OrderPlaced) error
}

func (s *OrderService) newUOW() unitOfWork {
	return s.uowFactory()
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.uowFactory == nil {
		panic("ordersvc: order store is required")
	}
	if s.stockChecker == nil {
		panic("ordersvc: stock checker is required")
	}
	if s.publisher == nil {
		panic("ordersvc: publisher is required")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.uowFactory = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithUnitOfWorkFactory sets a custom unit of work factory.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.uowFactory = factory
	}
}

// WithStockChecker sets the inventory query client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithStockChecker(checker stockChecker) option {
	return func(s *OrderService) {
		s.stockChecker = checker
	}
}

// WithPublisher sets the order placed event publisher for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPublisher(publisher orderPlacedPublisher) option {
	return func(s *OrderService) {
		s.publisher = publisher
	}
}

// PlaceOrder runs a single placement attempt: it builds the draft order,
// checks that every distinct SKU is in stock, commits the order atomically
// and publishes the order-placed event best-effort.
//
// No lock is held between the stock query and the commit; availability may
// change in that window and an occasional oversell is accepted rather than
// serializing all placements.
func (s *OrderService) PlaceOrder(
	ctx context.Context,
	items []lineitem.LineItem,
) (*order.Order, error) {
	ctx, span := otel.Tracer("order-svc").Start(ctx, "OrderService.PlaceOrder")
	defer span.End()

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one line item is required", placement.ErrInvalidRequest)
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for sku %s", placement.ErrInvalidRequest, item.SkuCode)
		}
		if item.PriceCents < 0 {
			return nil, fmt.Errorf("%w: price must be non-negative for sku %s", placement.ErrInvalidRequest, item.SkuCode)
		}
	}

	draft := order.New(items)

	skuCodes := stock.DistinctSkuCodes(items)
	results, err := s.stockChecker.CheckStock(ctx, skuCodes)
	if err != nil {
		slog.Error("inventory query failed", "order_number", draft.OrderNumber, "error", err)

		return nil, fmt.Errorf("%w: %v", placement.ErrDependencyUnavailable, err)
	}

	if !stock.AllInStock(skuCodes, results) {
		return nil, fmt.Errorf("%w: not all items are in stock", placement.ErrInsufficientStock)
	}

	committed, err := s.persist(ctx, draft)
	if err != nil {
		slog.Error("order persistence failed", "order_number", draft.OrderNumber, "error", err)

		return nil, fmt.Errorf("%w: %v", placement.ErrStorageFailure, err)
	}

	// The order is committed at this point; a publish failure must not
	// undo or mask the placement.
	evt := event.OrderPlaced{OrderNumber: committed.OrderNumber}
	if err := s.publisher.PublishOrderPlaced(ctx, evt); err != nil {
		slog.Error("order committed but notification publish failed",
			"order_number", committed.OrderNumber,
			"error", err,
		)
	}

	return committed, nil
}

// persist stores the order and its line items as a single transaction.
func (s *OrderService) persist(ctx context.Context, draft order.Order) (*order.Order, error) {
	now := time.Now()
	draft.CreatedAt = now
	draft.UpdatedAt = now

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}

	inserted, err := work.OrderRepository().Insert(ctx, draft)
	if err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	items := make([]lineitem.LineItem, len(draft.Items))
	copy(items, draft.Items)
	for i := range items {
		items[i].OrderID = inserted.ID
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
	}

	items, err = work.LineItemRepository().BulkInsert(ctx, items)
	if err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	inserted.Items = items

	return &inserted, nil
}

// GetOrders retrieves orders with their line items based on filter.
func (s *OrderService) GetOrders(
	ctx context.Context,
	filter order.QueryOrdersModel,
) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	itemFilter := &lineitem.QueryLineItemsModel{}
	for _, o := range orders {
		itemFilter.OrderIds = append(itemFilter.OrderIds, o.ID)
	}
	items, err := work.LineItemRepository().Query(ctx, itemFilter)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].Items = append(orders[i].Items, item)
			}
		}
	}

	return orders, nil
}

// GetOrderByID retrieves a single order with its line items.
func (s *OrderService) GetOrderByID(ctx context.Context, id int64) (*order.Order, error) {
	orders, err := s.GetOrders(ctx, order.QueryOrdersModel{Ids: []int64{id}})
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return nil, placement.ErrOrderNotFound
	}

	return &orders[0], nil
}
