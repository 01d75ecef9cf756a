// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DonationRecord é uma linha crua do provedor, já mapeada pelo Schema mas ainda não convertida
type DonationRecord struct {
	DonorID      string            `json:"donor_id"`
	DonationDate string            `json:"donation_date"`
	Amount       string            `json:"amount"`
	Fields       map[string]string `json:"fields,omitempty"` // Todas as colunas da origem
}

// Transaction é uma doação válida (data e valor convertidos, valor > 0)
type Transaction struct {
	DonorID      string
	DonationDate time.Time
	Amount       decimal.Decimal
}

// DonorRecord representa a identidade de um doador com os campos da sua primeira doação
type DonorRecord struct {
	DonorID string            `json:"donor_id"`
	Fields  map[string]string `json:"fields"`
}

// DonationFilters limita a leitura de doações. Since é inclusivo e Until exclusivo.
type DonationFilters struct {
	Since *time.Time
	Until *time.Time
}

// Contains indica se a data está dentro dos limites do filtro
func (f *DonationFilters) Contains(date time.Time) bool {
	if f == nil {
		return true
	}
	if f.Since != nil && date.Before(*f.Since) {
		return false
	}
	if f.Until != nil && !date.Before(*f.Until) {
		return false
	}
	return true
}

// IsZero indica se nenhum limite foi informado
func (f *DonationFilters) IsZero() bool {
	return f == nil || (f.Since == nil && f.Until == nil)
}

// DonorsFromDonations devolve um registro por doador, com os campos da doação mais antiga.
// Datas inválidas ficam depois das válidas; em caso de empate vale a primeira ocorrência.
func DonorsFromDonations(records []DonationRecord) []DonorRecord {
	type earliest struct {
		record DonationRecord
		date   time.Time
		valid  bool
	}

	byDonor := make(map[string]*earliest)
	order := make([]string, 0)

	for _, record := range records {
		if record.DonorID == "" {
			continue
		}

		date, err := ParseDonationDate(record.DonationDate)
		valid := err == nil

		current, exists := byDonor[record.DonorID]
		if !exists {
			byDonor[record.DonorID] = &earliest{record: record, date: date, valid: valid}
			order = append(order, record.DonorID)
			continue
		}

		if valid && (!current.valid || date.Before(current.date)) {
			current.record = record
			current.date = date
			current.valid = true
		}
	}

	sort.Strings(order)

	donors := make([]DonorRecord, 0, len(order))
	for _, donorID := range order {
		record := byDonor[donorID].record
		donors = append(donors, DonorRecord{
			DonorID: donorID,
			Fields:  record.AllFields(),
		})
	}

	return donors
}

// AllFields devolve uma cópia dos campos da origem incluindo as colunas obrigatórias
func (r DonationRecord) AllFields() map[string]string {
	fields := make(map[string]string, len(r.Fields)+3)
	for k, v := range r.Fields {
		fields[k] = v
	}
	fields[ColumnDonorID] = r.DonorID
	fields[ColumnDonationDate] = r.DonationDate
	fields[ColumnAmount] = r.Amount
	return fields
}
