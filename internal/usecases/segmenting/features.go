package segmenting

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/donor-analytics/internal/domain"
)

// FeatureSet é o resultado do Feature Builder para uma requisição
type FeatureSet struct {
	Rows          []domain.DonorFeatureRow
	ReferenceDate time.Time
	Transactions  int // Linhas válidas após a limpeza
	Dropped       int // Linhas descartadas na conversão
}

type donorAggregate struct {
	first time.Time
	last  time.Time
	count int
	total decimal.Decimal
}

// BuildFeatures calcula uma linha RFM por doador.
// Linhas com data ou valor inválidos (valor <= 0 ou fora do limite de float64) são descartadas sem erro.
// Um total por doador que estoure float64 encerra a execução com ErrAmountOverflow.
func BuildFeatures(records []domain.DonationRecord) (*FeatureSet, error) {
	transactions := make([]domain.Transaction, 0, len(records))
	for _, record := range records {
		if tx, ok := record.Coerce(); ok {
			transactions = append(transactions, tx)
		}
	}

	if len(transactions) == 0 {
		return nil, domain.ErrEmptyData
	}

	// Referência = última doação do conjunto atual
	referenceDate := transactions[0].DonationDate
	for _, tx := range transactions[1:] {
		if tx.DonationDate.After(referenceDate) {
			referenceDate = tx.DonationDate
		}
	}

	byDonor := make(map[string]*donorAggregate)
	for _, tx := range transactions {
		agg, exists := byDonor[tx.DonorID]
		if !exists {
			byDonor[tx.DonorID] = &donorAggregate{
				first: tx.DonationDate,
				last:  tx.DonationDate,
				count: 1,
				total: tx.Amount,
			}
			continue
		}

		if tx.DonationDate.Before(agg.first) {
			agg.first = tx.DonationDate
		}
		if tx.DonationDate.After(agg.last) {
			agg.last = tx.DonationDate
		}
		agg.count++
		agg.total = agg.total.Add(tx.Amount)
	}

	donorIDs := make([]string, 0, len(byDonor))
	for donorID := range byDonor {
		donorIDs = append(donorIDs, donorID)
	}
	sort.Strings(donorIDs)

	rows := make([]domain.DonorFeatureRow, 0, len(donorIDs))
	for _, donorID := range donorIDs {
		agg := byDonor[donorID]
		avg := agg.total.Div(decimal.NewFromInt(int64(agg.count)))
		total := agg.total.InexactFloat64()
		if math.IsInf(total, 0) {
			return nil, fmt.Errorf("%w: donor %s", domain.ErrAmountOverflow, donorID)
		}

		rows = append(rows, domain.DonorFeatureRow{
			DonorID:       donorID,
			RecencyDays:   daysBetween(agg.last, referenceDate),
			Frequency:     agg.count,
			MonetaryTotal: total,
			MonetaryAvg:   avg.InexactFloat64(),
			FirstDate:     agg.first,
			LastDate:      agg.last,
			SpanDays:      max(0, daysBetween(agg.first, agg.last)),
		})
	}

	return &FeatureSet{
		Rows:          rows,
		ReferenceDate: referenceDate,
		Transactions:  len(transactions),
		Dropped:       len(records) - len(transactions),
	}, nil
}

// daysBetween conta dias inteiros entre duas datas, arredondando para baixo
func daysBetween(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}
