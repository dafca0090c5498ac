package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/productorderingapp/ordering/internal/dal/postgres"
	"github.com/productorderingapp/ordering/internal/order/dal/interfaces/ilineitemrepo"
	"github.com/productorderingapp/ordering/internal/order/dal/interfaces/iorderrepo"
	lineitemrepo "github.com/productorderingapp/ordering/internal/order/dal/repositories/lineitem/postgres"
	orderrepo "github.com/productorderingapp/ordering/internal/order/dal/repositories/order/postgres"
)

// unitOfWork binds the order and line item repositories to a single pgx
// transaction so an order and its items commit or roll back as one unit.
type unitOfWork struct {
	pool         *pgxpool.Pool
	tx           pgx.Tx
	orderRepo    iorderrepo.IOrderRepository
	lineItemRepo ilineitemrepo.ILineItemRepository
}

// NewUnitOfWork creates a unit of work over the given Postgres client.
func NewUnitOfWork(pgClient *postgres.Client) *unitOfWork {
	return &unitOfWork{
		pool:         pgClient.Pool(),
		orderRepo:    orderrepo.NewPostgresOrderRepository(pgClient.Pool()),
		lineItemRepo: lineitemrepo.NewPostgresLineItemRepository(pgClient.Pool()),
	}
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) LineItemRepository() ilineitemrepo.ILineItemRepository {
	return u.lineItemRepo
}

// Begin starts a transaction and rebinds the repositories to it.
func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.lineItemRepo = lineitemrepo.NewPostgresLineItemRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}
