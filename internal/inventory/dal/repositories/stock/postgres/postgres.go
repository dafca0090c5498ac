package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/productorderingapp/ordering/internal/inventory/service/models/stock"
)

// StockDal represents the stock data access layer model.
type StockDal struct {
	Id        int64     `db:"id"`
	SkuCode   string    `db:"sku_code"`
	Quantity  int       `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts StockDal to the service layer Stock model.
func (s *StockDal) ToModel() *stock.Stock {
	return &stock.Stock{
		ID:        s.Id,
		SkuCode:   s.SkuCode,
		Quantity:  s.Quantity,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresStockRepository represents a Postgres stock repository.
type PostgresStockRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresStockRepository creates a new Postgres stock repository.
func NewPostgresStockRepository(conn GenericConn) *PostgresStockRepository {
	return &PostgresStockRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// FindBySkuCodes retrieves the ledger entries for the given SKU codes.
// SKUs without an entry are simply absent from the result.
func (r *PostgresStockRepository) FindBySkuCodes(
	ctx context.Context,
	skuCodes []string,
) ([]stock.Stock, error) {
	sql, args, err := r.sb.
		Select("id", "sku_code", "quantity", "created_at", "updated_at").
		From("inventory").
		Where(sq.Eq{"sku_code": skuCodes}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var result []stock.Stock
	for rows.Next() {
		var dal StockDal
		var createdAt, updatedAt pgtype.Timestamptz

		err := rows.Scan(&dal.Id, &dal.SkuCode, &dal.Quantity, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock record: %w", err)
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
