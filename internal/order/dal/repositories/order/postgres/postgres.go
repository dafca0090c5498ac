package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/productorderingapp/ordering/internal/order/service/models/lineitem"
	"github.com/productorderingapp/ordering/internal/order/service/models/order"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id          int64     `db:"id"`
	OrderNumber string    `db:"order_number"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() *order.Order {
	return &order.Order{
		ID:          o.Id,
		OrderNumber: o.OrderNumber,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Items:       []lineitem.LineItem{}, // Populated separately
	}
}

// OrderDalFromModel converts the service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:          o.ID,
		OrderNumber: o.OrderNumber,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert stores a single order and returns it with the generated id.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	sql, args, err := r.sb.
		Insert("orders").
		Columns("order_number", "created_at", "updated_at").
		Values(o.OrderNumber, o.CreatedAt, o.UpdatedAt).
		Suffix("RETURNING id, order_number, created_at, updated_at").
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	var dal OrderDal
	var createdAt, updatedAt pgtype.Timestamptz

	row := r.conn.QueryRow(ctx, sql, args...)
	if err := row.Scan(&dal.Id, &dal.OrderNumber, &createdAt, &updatedAt); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	dal.CreatedAt = createdAt.Time
	dal.UpdatedAt = updatedAt.Time

	model := dal.ToModel()
	model.Items = append(model.Items, o.Items...)

	return *model, nil
}

// Query retrieves orders based on filter criteria.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	query := r.sb.
		Select("id", "order_number", "created_at", "updated_at").
		From("orders")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.OrderNumbers) > 0 {
		query = query.Where(sq.Eq{"order_number": filter.OrderNumbers})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		var createdAt, updatedAt pgtype.Timestamptz

		err := rows.Scan(&dal.Id, &dal.OrderNumber, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		dal.CreatedAt = createdAt.Time
		dal.UpdatedAt = updatedAt.Time

		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
