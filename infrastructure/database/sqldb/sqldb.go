// Package sqldb abre a conexão somente leitura com a base de doações
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/donor-analytics/internal/config"
	_ "modernc.org/sqlite"
)

// Drivers aceitos em DATABASE_DRIVER
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Conn interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Placeholder() squirrel.PlaceholderFormat
	Ping(context.Context) error
	Close() error
}

type Connection struct {
	*sql.DB
	driver string
}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	switch cfg.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("driver de banco não suportado: %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == DriverSQLite {
		// Uma conexão só, para que bases em memória sejam compartilhadas
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Connection{DB: db, driver: cfg.Driver}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Placeholder devolve o formato de parâmetros do driver ($1 no Postgres, ? no SQLite)
func (c *Connection) Placeholder() squirrel.PlaceholderFormat {
	if c.driver == DriverPostgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

func (c *Connection) Driver() string {
	return c.driver
}

// QuoteIdent protege nomes de coluna com espaços, hífens ou acentos
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
