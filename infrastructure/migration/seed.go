// Package migration cria e popula a tabela de doações lida por DATA_SOURCE=postgres|sqlite
package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/donor-analytics/infrastructure/database/sqldb"
	"github.com/vfg2006/donor-analytics/internal/domain"
	"github.com/vfg2006/donor-analytics/pkg/log"
)

// Colunas gravadas, no mesmo formato do export do CRM
const (
	ColumnDonorID = "Kontakt-ID"
	ColumnDate    = "Getätigt am Datum"
	ColumnAmount  = "Betrag"
)

type Seeder struct {
	conn  *sqldb.Connection
	table string
}

func NewSeeder(conn *sqldb.Connection, table string) *Seeder {
	return &Seeder{conn: conn, table: table}
}

// Seed cria a tabela se preciso e grava as doações em uma única transação.
// Com replace=true as linhas existentes são apagadas antes.
func (s *Seeder) Seed(ctx context.Context, records []domain.DonationRecord, replace bool) (int, error) {
	startTime := time.Now()

	if _, err := s.conn.ExecContext(ctx, s.createTable()); err != nil {
		return 0, errors.Wrapf(err, "erro ao criar tabela %s", s.table)
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao iniciar transação")
	}
	defer func() { _ = tx.Rollback() }()

	if replace {
		if _, err := squirrel.Delete(s.table).RunWith(tx).ExecContext(ctx); err != nil {
			return 0, errors.Wrapf(err, "erro ao limpar tabela %s", s.table)
		}
	}

	inserted := 0
	for _, record := range records {
		_, err := squirrel.Insert(s.table).
			Columns(sqldb.QuoteIdent(ColumnDonorID), sqldb.QuoteIdent(ColumnDate), sqldb.QuoteIdent(ColumnAmount)).
			Values(record.DonorID, record.DonationDate, record.Amount).
			PlaceholderFormat(s.conn.Placeholder()).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return inserted, errors.Wrapf(err, "erro ao inserir doação de %s", record.DonorID)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "erro ao confirmar transação")
	}

	log.L.WithFields(log.Fields{
		"table":       s.table,
		"records":     inserted,
		"duration_ms": time.Since(startTime).Milliseconds(),
	}).Info("migration: doações gravadas")

	return inserted, nil
}

func (s *Seeder) createTable() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (%s TEXT NOT NULL, %s TEXT NOT NULL, %s NUMERIC(12, 2) NOT NULL)`,
		s.table,
		sqldb.QuoteIdent(ColumnDonorID),
		sqldb.QuoteIdent(ColumnDate),
		sqldb.QuoteIdent(ColumnAmount),
	)
}
