package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Colunas obrigatórias do feed de doações
const (
	ColumnDonorID      = "donor_id"
	ColumnDonationDate = "donation_date"
	ColumnAmount       = "amount"
)

// RequiredColumns lista as colunas que todo provedor precisa entregar
var RequiredColumns = []string{ColumnDonorID, ColumnDonationDate, ColumnAmount}

// Nomes usados pelas exportações do CRM (e pelo cliente sintético antigo)
var columnAliases = map[string]string{
	"donor_id":          ColumnDonorID,
	"kontakt-id":        ColumnDonorID,
	"donation_date":     ColumnDonationDate,
	"getätigt am datum": ColumnDonationDate,
	"amount":            ColumnAmount,
	"betrag":            ColumnAmount,
}

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"2006-01-02T15:04:05",
	"02.01.2006",
}

// CanonicalColumn resolve um nome de coluna da origem para o nome canônico
func CanonicalColumn(name string) (string, bool) {
	canonical, known := columnAliases[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))]
	return canonical, known
}

// Schema mapeia o cabeçalho de uma origem tabular para as colunas canônicas
type Schema struct {
	header []string
	index  map[string]int
}

// NewSchema valida o cabeçalho uma única vez na fronteira de ingestão.
// Colunas obrigatórias ausentes sempre falham; no modo estrito colunas desconhecidas também.
func NewSchema(header []string, strict bool) (*Schema, error) {
	schema := &Schema{
		header: make([]string, len(header)),
		index:  make(map[string]int, len(header)),
	}

	unknown := make([]string, 0)
	for i, name := range header {
		clean := strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		schema.header[i] = clean

		canonical, known := CanonicalColumn(clean)
		if !known {
			unknown = append(unknown, clean)
			continue
		}

		if _, duplicated := schema.index[canonical]; duplicated {
			return nil, fmt.Errorf("%w: column %q mapped twice", ErrSchema, canonical)
		}
		schema.index[canonical] = i
	}

	missing := make([]string, 0)
	for _, column := range RequiredColumns {
		if _, ok := schema.index[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %v (required %v)", ErrSchema, missing, RequiredColumns)
	}

	if strict && len(unknown) > 0 {
		return nil, fmt.Errorf("%w: unknown columns %v", ErrSchema, unknown)
	}

	return schema, nil
}

// Record converte uma linha da origem em DonationRecord. Células ausentes viram string vazia.
func (s *Schema) Record(row []string) DonationRecord {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	fields := make(map[string]string, len(s.header))
	for i, name := range s.header {
		fields[name] = cell(i)
	}

	return DonationRecord{
		DonorID:      cell(s.index[ColumnDonorID]),
		DonationDate: cell(s.index[ColumnDonationDate]),
		Amount:       cell(s.index[ColumnAmount]),
		Fields:       fields,
	}
}

// Column devolve o nome original da coluna mapeada para o nome canônico
func (s *Schema) Column(canonical string) string {
	if i, ok := s.index[canonical]; ok {
		return s.header[i]
	}
	return ""
}

// ParseDonationDate aceita os formatos de data conhecidos das exportações
func ParseDonationDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty donation date")
	}

	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported donation date %q", value)
}

// ParseAmount converte o valor da doação em decimal
func ParseAmount(value string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(value))
}

// Coerce converte o registro cru em Transaction. Retorna false quando a linha deve ser descartada.
func (r DonationRecord) Coerce() (Transaction, bool) {
	donorID := strings.TrimSpace(r.DonorID)
	if donorID == "" {
		return Transaction{}, false
	}

	date, err := ParseDonationDate(r.DonationDate)
	if err != nil {
		return Transaction{}, false
	}

	amount, err := ParseAmount(r.Amount)
	if err != nil || !amount.IsPositive() {
		return Transaction{}, false
	}
	// Valores acima do limite de float64 não cabem nas métricas
	if math.IsInf(amount.InexactFloat64(), 0) {
		return Transaction{}, false
	}

	return Transaction{
		DonorID:      donorID,
		DonationDate: date,
		Amount:       amount,
	}, true
}
