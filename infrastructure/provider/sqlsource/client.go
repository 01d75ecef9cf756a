// Package sqlsource lê doações de uma tabela Postgres ou SQLite, somente leitura
package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/donor-analytics/infrastructure/database/sqldb"
	"github.com/vfg2006/donor-analytics/internal/domain"
	"github.com/vfg2006/donor-analytics/pkg/log"
)

type Client struct {
	conn  sqldb.Conn
	table string
	name  string
}

func NewClient(conn sqldb.Conn, driver, table string) *Client {
	return &Client{
		conn:  conn,
		table: table,
		name:  fmt.Sprintf("SQLClient (%s:%s)", driver, table),
	}
}

func (c *Client) Name() string {
	return c.name
}

// GetDonations envia o período para o banco (datas em ISO 8601) e confere de novo ao ler
func (c *Client) GetDonations(ctx context.Context, filters *domain.DonationFilters) ([]domain.DonationRecord, error) {
	schema, err := c.schema(ctx)
	if err != nil {
		return nil, err
	}

	builder := squirrel.Select("*").From(c.table)
	if !filters.IsZero() {
		dateColumn := sqldb.QuoteIdent(schema.Column(domain.ColumnDonationDate))
		if filters.Since != nil {
			builder = builder.Where(squirrel.Expr(dateColumn+" >= ?", filters.Since.Format(time.DateOnly)))
		}
		if filters.Until != nil {
			builder = builder.Where(squirrel.Expr(dateColumn+" < ?", filters.Until.Format(time.DateOnly)))
		}
	}

	query, args, err := builder.PlaceholderFormat(c.conn.Placeholder()).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := c.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar doações")
	}
	defer rows.Close()

	records := make([]domain.DonationRecord, 0)
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear doação")
		}

		record := schema.Record(row)
		if !filters.IsZero() {
			date, err := domain.ParseDonationDate(record.DonationDate)
			if err != nil || !filters.Contains(date) {
				continue
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao ler doações")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"source":  c.name,
		"records": len(records),
	}).Debug("sqlsource: doações lidas")

	return records, nil
}

func (c *Client) GetDonors(ctx context.Context) ([]domain.DonorRecord, error) {
	records, err := c.GetDonations(ctx, nil)
	if err != nil {
		return nil, err
	}
	return domain.DonorsFromDonations(records), nil
}

// schema lê somente os nomes das colunas da tabela
func (c *Client) schema(ctx context.Context) (*domain.Schema, error) {
	query, args, err := squirrel.Select("*").From(c.table).Limit(0).
		PlaceholderFormat(c.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := c.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler colunas da tabela %s", c.table)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler colunas")
	}

	return domain.NewSchema(columns, false)
}

func scanRow(rows *sql.Rows) ([]string, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}

	if err := rows.Scan(pointers...); err != nil {
		return nil, err
	}

	row := make([]string, len(columns))
	for i, value := range values {
		row[i] = stringify(value)
	}
	return row, nil
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format(time.DateOnly)
		}
		return v.UTC().Format(time.RFC3339)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
