// Package donationapi lê doações de uma API JSON com autenticação por token
package donationapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/donor-analytics/internal/config"
	"github.com/vfg2006/donor-analytics/internal/domain"
	"github.com/vfg2006/donor-analytics/pkg/log"
)

const (
	donationsPath = "/donations"
	donorsPath    = "/donors"
	dateFormat    = "2006-01-02"
)

var json = jsoniter.Config{UseNumber: true}.Froze()

// ErrUnexpectedStatus indica uma resposta diferente de 200
var ErrUnexpectedStatus = errors.New("unexpected status from donation api")

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient cria o cliente com o timeout configurado em API_TIMEOUT
func NewClient(cfg config.API) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
	}
}

func (c *Client) Name() string {
	if endpoint, err := url.Parse(c.baseURL); err == nil && endpoint.Host != "" {
		return "ApiClient (" + endpoint.Host + ")"
	}
	return "ApiClient"
}

// GetDonations consulta /donations; o período é repassado para a API e conferido de novo aqui
func (c *Client) GetDonations(ctx context.Context, filters *domain.DonationFilters) ([]domain.DonationRecord, error) {
	query := url.Values{}
	if filters != nil && filters.Since != nil {
		query.Set("since", filters.Since.Format(dateFormat))
	}
	if filters != nil && filters.Until != nil {
		query.Set("until", filters.Until.Format(dateFormat))
	}

	objects, err := c.get(ctx, donationsPath, query)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar doações")
	}

	if len(objects) == 0 {
		return []domain.DonationRecord{}, nil
	}

	header := keysOf(objects)
	schema, err := domain.NewSchema(header, false)
	if err != nil {
		return nil, err
	}

	records := make([]domain.DonationRecord, 0, len(objects))
	for _, object := range objects {
		row := make([]string, len(header))
		for i, key := range header {
			row[i] = stringify(object[key])
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

	log.ForContext(ctx).WithFields(log.Fields{
		"source":  c.Name(),
		"records": len(records),
	}).Debug("donationapi: doações recebidas")

	return records, nil
}

// GetDonors consulta /donors; objetos sem id de doador são ignorados
func (c *Client) GetDonors(ctx context.Context) ([]domain.DonorRecord, error) {
	objects, err := c.get(ctx, donorsPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar doadores")
	}

	donors := make([]domain.DonorRecord, 0, len(objects))
	for _, object := range objects {
		fields := make(map[string]string, len(object))
		donorID := ""
		for key, value := range object {
			fields[key] = stringify(value)
			if canonical, ok := domain.CanonicalColumn(key); ok && canonical == domain.ColumnDonorID {
				donorID = fields[key]
			}
		}
		if donorID == "" {
			continue
		}
		fields[domain.ColumnDonorID] = donorID
		donors = append(donors, domain.DonorRecord{DonorID: donorID, Fields: fields})
	}

	sort.Slice(donors, func(i, j int) bool {
		return donors[i].DonorID < donors[j].DonorID
	})

	return donors, nil
}

func (c *Client) get(ctx context.Context, resource string, query url.Values) ([]map[string]any, error) {
	var response []map[string]any

	// Construir a URL da requisição
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao analisar a URL base")
	}
	endpoint.Path = path.Join(endpoint.Path, resource)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrUnexpectedStatus, "requisição falhou com status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta")
	}

	return response, nil
}

// keysOf devolve a união ordenada das chaves dos objetos
func keysOf(objects []map[string]any) []string {
	seen := make(map[string]bool)
	keys := make([]string, 0)
	for _, object := range objects {
		for key := range object {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer: // números decodificados com UseNumber
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
