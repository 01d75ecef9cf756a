// Package synthetic gera um histórico de doações determinístico para desenvolvimento local
package synthetic

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/donor-analytics/internal/config"
	"github.com/vfg2006/donor-analytics/internal/domain"
	"github.com/vfg2006/donor-analytics/pkg/log"
)

// Colunas no formato da exportação do CRM
const (
	columnDonorID = "Kontakt-ID"
	columnDate    = "Getätigt am Datum"
	columnAmount  = "Betrag"
)

// Valores possíveis de uma doação
var amountMenu = []int64{20, 30, 50, 80, 100, 150, 200}

// Client devolve sempre o mesmo conjunto de doações, gerado na criação
type Client struct {
	cfg       config.Mock
	donations []domain.DonationRecord
}

// NewClient gera o histórico dos últimos cfg.HistoryDays dias até now
func NewClient(cfg config.Mock, now time.Time) *Client {
	client := &Client{cfg: cfg}
	client.donations = generate(cfg, now)

	log.L.WithFields(log.Fields{
		"source":    client.Name(),
		"donors":    cfg.Donors,
		"donations": len(client.donations),
	}).Debug("synthetic: histórico gerado")

	return client
}

func (c *Client) Name() string {
	return "SyntheticClient"
}

func (c *Client) GetDonations(ctx context.Context, filters *domain.DonationFilters) ([]domain.DonationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]domain.DonationRecord, 0, len(c.donations))
	for _, record := range c.donations {
		date, err := domain.ParseDonationDate(record.DonationDate)
		if err != nil || !filters.Contains(date) {
			continue
		}
		records = append(records, copyRecord(record))
	}

	return records, nil
}

func (c *Client) GetDonors(ctx context.Context) ([]domain.DonorRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return domain.DonorsFromDonations(c.donations), nil
}

func generate(cfg config.Mock, now time.Time) []domain.DonationRecord {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))

	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -cfg.HistoryDays)
	days := cfg.HistoryDays + 1

	records := make([]domain.DonationRecord, 0, int(float64(cfg.Donors)*cfg.MeanDonations))
	for i := 0; i < cfg.Donors; i++ {
		donorID := fmt.Sprintf("D%05d", i)

		count := min(poisson(rng, cfg.MeanDonations), days)
		// Datas sem repetição para o mesmo doador
		for _, offset := range rng.Perm(days)[:count] {
			date := start.AddDate(0, 0, offset).Format(time.DateOnly)
			amount := decimal.NewFromInt(amountMenu[rng.IntN(len(amountMenu))]).StringFixed(2)

			records = append(records, domain.DonationRecord{
				DonorID:      donorID,
				DonationDate: date,
				Amount:       amount,
				Fields: map[string]string{
					columnDonorID: donorID,
					columnDate:    date,
					columnAmount:  amount,
				},
			})
		}
	}

	return records
}

// poisson usa o método de Knuth, suficiente para médias pequenas
func poisson(rng *rand.Rand, mean float64) int {
	if mean <= 0 {
		return 0
	}

	limit := math.Exp(-mean)
	k := 0
	p := rng.Float64()
	for p > limit {
		k++
		p *= rng.Float64()
	}
	return k
}

func copyRecord(record domain.DonationRecord) domain.DonationRecord {
	fields := make(map[string]string, len(record.Fields))
	for k, v := range record.Fields {
		fields[k] = v
	}
	record.Fields = fields
	return record
}
