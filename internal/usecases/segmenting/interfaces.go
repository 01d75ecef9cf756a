package segmenting

import (
	"context"

	"github.com/vfg2006/donor-analytics/internal/domain"
)

// DonationProvider define o contrato de leitura da origem de doações
type DonationProvider interface {
	// GetDonations devolve as doações dentro dos limites (Since inclusivo, Until exclusivo)
	GetDonations(ctx context.Context, filters *domain.DonationFilters) ([]domain.DonationRecord, error)

	// GetDonors devolve um registro por doador com os campos da doação mais antiga
	GetDonors(ctx context.Context) ([]domain.DonorRecord, error)

	// Name identifica a origem em uso (exibida no rodapé da barra lateral)
	Name() string
}

// Segmenter é o serviço consumido pelas páginas do painel
type Segmenter interface {
	// Segment executa o pipeline completo: leitura, RFM, clusterização, rótulos e outreach
	Segment(ctx context.Context, params domain.SegmentationParams) (*domain.SegmentationReport, error)

	// Overview resume a origem de dados para a página inicial
	Overview(ctx context.Context) (*domain.DataOverview, error)

	// SourceName devolve o nome da origem de dados configurada
	SourceName() string

	// DefaultK é o k usado quando o usuário não escolhe outro
	DefaultK() int
}
