// Package csvsource lê doações de uma exportação CSV do CRM
package csvsource

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/vfg2006/donor-analytics/internal/config"
	"github.com/vfg2006/donor-analytics/internal/domain"
	"github.com/vfg2006/donor-analytics/pkg/log"
)

// Client relê o arquivo a cada chamada, sem cache
type Client struct {
	path      string
	delimiter rune
	strict    bool
}

func NewClient(cfg config.CSV) *Client {
	delimiter := ','
	if runes := []rune(cfg.Delimiter); len(runes) == 1 {
		delimiter = runes[0]
	}

	return &Client{
		path:      cfg.Path,
		delimiter: delimiter,
		strict:    cfg.StrictSchema,
	}
}

func (c *Client) Name() string {
	return "CSVClient (" + filepath.Base(c.path) + ")"
}

func (c *Client) GetDonations(ctx context.Context, filters *domain.DonationFilters) ([]domain.DonationRecord, error) {
	records, err := c.read(ctx)
	if err != nil {
		return nil, err
	}

	if filters.IsZero() {
		return records, nil
	}

	filtered := make([]domain.DonationRecord, 0, len(records))
	for _, record := range records {
		// Datas inválidas ficam de fora quando há filtro de período
		date, err := domain.ParseDonationDate(record.DonationDate)
		if err != nil || !filters.Contains(date) {
			continue
		}
		filtered = append(filtered, record)
	}

	return filtered, nil
}

func (c *Client) GetDonors(ctx context.Context) ([]domain.DonorRecord, error) {
	records, err := c.read(ctx)
	if err != nil {
		return nil, err
	}
	return domain.DonorsFromDonations(records), nil
}

func (c *Client) read(ctx context.Context) ([]domain.DonationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(c.path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir o arquivo %s", c.path)
	}
	defer file.Close()

	records, err := c.parse(file)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler o arquivo %s", c.path)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"source":  c.Name(),
		"records": len(records),
	}).Debug("csvsource: arquivo lido")

	return records, nil
}

func (c *Client) parse(r io.Reader) ([]domain.DonationRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = c.delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.Wrap(domain.ErrSchema, "arquivo sem cabeçalho")
	}
	if err != nil {
		return nil, err
	}

	schema, err := domain.NewSchema(header, c.strict)
	if err != nil {
		return nil, err
	}

	records := make([]domain.DonationRecord, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, schema.Record(row))
	}

	return records, nil
}
