package csvsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/donor-analytics/internal/config"
	"github.com/vfg2006/donor-analytics/internal/domain"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "donations.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestClient_GetDonations(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		delimiter string
		strict    bool
		wantErr   error
		validate  func(t *testing.T, records []domain.DonationRecord)
	}{
		{
			name:      "Colunas canônicas",
			content:   "donor_id,donation_date,amount,campaign\nD1,2024-01-01,10,Natal\nD2,2024-02-01,20.5,\n",
			delimiter: ",",
			validate: func(t *testing.T, records []domain.DonationRecord) {
				require.Len(t, records, 2)
				assert.Equal(t, "D1", records[0].DonorID)
				assert.Equal(t, "2024-01-01", records[0].DonationDate)
				assert.Equal(t, "10", records[0].Amount)
				assert.Equal(t, "Natal", records[0].Fields["campaign"])
				assert.Equal(t, "20.5", records[1].Amount)
			},
		},
		{
			name:      "Exportação alemã com ponto e vírgula e BOM",
			content:   "\ufeffKontakt-ID;Getätigt am Datum;Betrag\nD00001;05.01.2024;50\n",
			delimiter: ";",
			validate: func(t *testing.T, records []domain.DonationRecord) {
				require.Len(t, records, 1)
				assert.Equal(t, "D00001", records[0].DonorID)
				assert.Equal(t, "05.01.2024", records[0].DonationDate)
				assert.Equal(t, "50", records[0].Amount)
			},
		},
		{
			name:      "Coluna obrigatória ausente",
			content:   "donor_id,donation_date\nD1,2024-01-01\n",
			delimiter: ",",
			wantErr:   domain.ErrSchema,
		},
		{
			name:      "Coluna desconhecida no modo estrito",
			content:   "donor_id,donation_date,amount,campaign\nD1,2024-01-01,10,Natal\n",
			delimiter: ",",
			strict:    true,
			wantErr:   domain.ErrSchema,
		},
		{
			name:      "Arquivo vazio",
			content:   "",
			delimiter: ",",
			wantErr:   domain.ErrSchema,
		},
		{
			name:      "Somente cabeçalho",
			content:   "donor_id,donation_date,amount\n",
			delimiter: ",",
			validate: func(t *testing.T, records []domain.DonationRecord) {
				assert.Empty(t, records)
			},
		},
		{
			name:      "Linhas com menos células mantêm o valor vazio",
			content:   "donor_id,donation_date,amount\nD1,2024-01-01\n",
			delimiter: ",",
			validate: func(t *testing.T, records []domain.DonationRecord) {
				require.Len(t, records, 1)
				assert.Empty(t, records[0].Amount)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(config.CSV{
				Path:         writeCSV(t, tt.content),
				Delimiter:    tt.delimiter,
				StrictSchema: tt.strict,
			})

			records, err := client.GetDonations(context.Background(), nil)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, records)
				return
			}

			require.NoError(t, err)
			tt.validate(t, records)
		})
	}
}

func TestClient_GetDonations_Filters(t *testing.T) {
	client := NewClient(config.CSV{
		Path:      writeCSV(t, "donor_id,donation_date,amount\nD1,2023-12-31,10\nD1,2024-01-01,10\nD2,2024-06-30,10\nD2,2024-07-01,10\nD3,invalid,10\n"),
		Delimiter: ",",
	})

	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	records, err := client.GetDonations(context.Background(), &domain.DonationFilters{Since: &since, Until: &until})
	require.NoError(t, err)

	dates := make([]string, len(records))
	for i, r := range records {
		dates[i] = r.DonationDate
	}
	assert.Equal(t, []string{"2024-01-01", "2024-06-30"}, dates)

	// Sem filtro as linhas inválidas seguem para a conversão
	all, err := client.GetDonations(context.Background(), &domain.DonationFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestClient_GetDonors(t *testing.T) {
	client := NewClient(config.CSV{
		Path:      writeCSV(t, "donor_id,donation_date,amount,city\nD2,2024-03-01,10,Köln\nD1,2024-02-01,10,Berlin\nD2,2024-01-01,10,Bonn\n"),
		Delimiter: ",",
	})

	donors, err := client.GetDonors(context.Background())
	require.NoError(t, err)
	require.Len(t, donors, 2)

	assert.Equal(t, "D1", donors[0].DonorID)
	assert.Equal(t, "D2", donors[1].DonorID)
	assert.Equal(t, "Bonn", donors[1].Fields["city"])
}

func TestClient_MissingFile(t *testing.T) {
	client := NewClient(config.CSV{Path: filepath.Join(t.TempDir(), "missing.csv"), Delimiter: ","})

	_, err := client.GetDonations(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, domain.ErrSchema)

	assert.Equal(t, "CSVClient (missing.csv)", client.Name())
}
