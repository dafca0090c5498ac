package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/productorderingapp/ordering/internal/order/service/models/currency"
	"github.com/productorderingapp/ordering/internal/order/service/models/lineitem"
)

// LineItemDal represents the line item data access layer model.
type LineItemDal struct {
	Id            int64     `db:"id"`
	OrderId       int64     `db:"order_id"`
	SkuCode       string    `db:"sku_code"`
	Quantity      int       `db:"quantity"`
	PriceCents    int64     `db:"price_cents"`
	PriceCurrency string    `db:"price_currency"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ToModel converts LineItemDal to the service layer LineItem model.
func (li *LineItemDal) ToModel() (*lineitem.LineItem, error) {
	cur, err := currency.ParseCurrency(li.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &lineitem.LineItem{
		ID:            li.Id,
		OrderID:       li.OrderId,
		SkuCode:       li.SkuCode,
		Quantity:      li.Quantity,
		PriceCents:    li.PriceCents,
		PriceCurrency: cur,
		CreatedAt:     li.CreatedAt,
		UpdatedAt:     li.UpdatedAt,
	}, nil
}

// LineItemDalFromModel converts the service layer LineItem model to LineItemDal.
func LineItemDalFromModel(li *lineitem.LineItem) *LineItemDal {
	return &LineItemDal{
		Id:            li.ID,
		OrderId:       li.OrderID,
		SkuCode:       li.SkuCode,
		Quantity:      li.Quantity,
		PriceCents:    li.PriceCents,
		PriceCurrency: li.PriceCurrency.String(),
		CreatedAt:     li.CreatedAt,
		UpdatedAt:     li.UpdatedAt,
	}
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresLineItemRepository represents a Postgres line item repository.
type PostgresLineItemRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresLineItemRepository creates a new Postgres line item repository.
func NewPostgresLineItemRepository(conn GenericConn) *PostgresLineItemRepository {
	return &PostgresLineItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts the line items of an order and returns them with IDs.
func (r *PostgresLineItemRepository) BulkInsert(
	ctx context.Context,
	items []lineitem.LineItem,
) ([]lineitem.LineItem, error) {
	if len(items) == 0 {
		return []lineitem.LineItem{}, nil
	}

	query := r.sb.
		Insert("line_items").
		Columns("order_id", "sku_code", "quantity", "price_cents", "price_currency", "created_at", "updated_at").
		Suffix("RETURNING id, order_id, sku_code, quantity, price_cents, price_currency, created_at, updated_at")

	for _, li := range items {
		query = query.Values(
			li.OrderID,
			li.SkuCode,
			li.Quantity,
			li.PriceCents,
			li.PriceCurrency.String(),
			li.CreatedAt,
			li.UpdatedAt,
		)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert line items: %w", err)
	}
	defer rows.Close()

	var result []lineitem.LineItem
	for rows.Next() {
		var dal LineItemDal
		var createdAt, updatedAt pgtype.Timestamptz

		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.SkuCode,
			&dal.Quantity,
			&dal.PriceCents,
			&dal.PriceCurrency,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}

		dal.CreatedAt = createdAt.Time
		dal.UpdatedAt = updatedAt.Time

		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert line item dal to model: %w", err)
		}

		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Query retrieves line items based on filter criteria.
func (r *PostgresLineItemRepository) Query(
	ctx context.Context,
	filter *lineitem.QueryLineItemsModel,
) ([]lineitem.LineItem, error) {
	query := r.sb.
		Select("id", "order_id", "sku_code", "quantity", "price_cents", "price_currency", "created_at", "updated_at").
		From("line_items")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.OrderIds) > 0 {
		query = query.Where(sq.Eq{"order_id": filter.OrderIds})
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
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer rows.Close()

	var result []lineitem.LineItem
	for rows.Next() {
		var dal LineItemDal
		var createdAt, updatedAt pgtype.Timestamptz

		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.SkuCode,
			&dal.Quantity,
			&dal.PriceCents,
			&dal.PriceCurrency,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}

		dal.CreatedAt = createdAt.Time
		dal.UpdatedAt = updatedAt.Time

		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert line item dal to model: %w", err)
		}

		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
