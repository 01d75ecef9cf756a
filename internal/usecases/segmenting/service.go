// Package segmenting implementa a segmentação RFM de doadores
package segmenting

import (
	"context"
	"errors"
	"fmt"

	"github.com/vfg2006/donor-analytics/internal/config"
	"github.com/vfg2006/donor-analytics/internal/domain"
	"github.com/vfg2006/donor-analytics/pkg/kmeans"
	"github.com/vfg2006/donor-analytics/pkg/log"
	"github.com/vfg2006/donor-analytics/pkg/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vfg2006/donor-analytics/internal/usecases/segmenting"

// Service executa o pipeline de segmentação a cada renderização, sem estado entre execuções
type Service struct {
	provider   DonationProvider
	clustering kmeans.Options
	defaultK   int
	tracer     trace.Tracer
	newRunID   func() (string, error)
}

// NewService cria o serviço com a origem de dados escolhida na inicialização
func NewService(cfg *config.Config, provider DonationProvider) Segmenter {
	return &Service{
		provider: provider,
		clustering: kmeans.Options{
			Seed:    cfg.Segmentation.Seed,
			NInit:   cfg.Segmentation.NInit,
			MaxIter: cfg.Segmentation.MaxIter,
			Tol:     kmeans.DefaultOptions().Tol,
		},
		defaultK: cfg.Segmentation.DefaultK,
		tracer:   otel.Tracer(tracerName),
		newRunID: utils.GenerateID,
	}
}

func (s *Service) SourceName() string {
	return s.provider.Name()
}

func (s *Service) DefaultK() int {
	return s.defaultK
}

// Segment executa leitura → RFM → clusterização → rótulos → outreach
func (s *Service) Segment(ctx context.Context, params domain.SegmentationParams) (report *domain.SegmentationReport, err error) {
	runID, err := s.newRunID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da execução: %w", err)
	}
	ctx = log.WithRunID(ctx, runID)
	logger := log.ForContext(ctx)

	ctx, span := s.tracer.Start(ctx, "segmentation.run", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.Int("k", params.K),
		attribute.String("source", s.provider.Name()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := ValidateClusterCount(params.K); err != nil {
		return nil, err
	}
	if err := validateFilters(params.Filters); err != nil {
		return nil, err
	}
	if _, err := ResolveSelection(params.Segments, domain.Segments); err != nil {
		return nil, err
	}

	logger.WithFields(log.Fields{
		"k":      params.K,
		"source": s.provider.Name(),
	}).Info("segmentation: iniciando execução")

	records, err := s.loadDonations(ctx, params.Filters)
	if err != nil {
		return nil, err
	}

	features, err := s.buildFeatures(ctx, records)
	if err != nil {
		return nil, err
	}

	clustering, err := s.cluster(ctx, features.Rows, params.K)
	if err != nil {
		return nil, err
	}

	_, labelSpan := s.tracer.Start(ctx, "segmentation.label")
	summaries := LabelClusters(SummarizeClusters(features.Rows, clustering.Labels))
	assignments := AssignSegments(features.Rows, clustering.Labels, summaries)
	labelSpan.End()

	options := SegmentOptions(assignments)
	selected, err := ResolveSelection(params.Segments, options)
	if err != nil {
		return nil, err
	}

	report = &domain.SegmentationReport{
		RunID:            runID,
		K:                params.K,
		ReferenceDate:    features.ReferenceDate,
		Transactions:     features.Transactions,
		DroppedRows:      features.Dropped,
		Clusters:         summaries,
		Donors:           assignments,
		Projection:       s.project(ctx, clustering.Matrix, assignments),
		SegmentSizes:     SegmentSizes(assignments),
		SegmentOptions:   options,
		SelectedSegments: selected,
		Targets:          SelectTargets(assignments, selected),
	}

	logger.WithFields(log.Fields{
		"donors":  len(assignments),
		"targets": len(report.Targets),
	}).Info("segmentation: execução concluída")

	return report, nil
}

// Overview conta doadores e doações da origem configurada
func (s *Service) Overview(ctx context.Context) (*domain.DataOverview, error) {
	donors, err := s.provider.GetDonors(ctx)
	if err != nil {
		return nil, wrapProviderError(err)
	}

	donations, err := s.provider.GetDonations(ctx, nil)
	if err != nil {
		return nil, wrapProviderError(err)
	}

	return &domain.DataOverview{
		Source:    s.provider.Name(),
		Donors:    len(donors),
		Donations: len(donations),
	}, nil
}

func (s *Service) loadDonations(ctx context.Context, filters *domain.DonationFilters) ([]domain.DonationRecord, error) {
	ctx, span := s.tracer.Start(ctx, "segmentation.load")
	defer span.End()

	records, err := s.provider.GetDonations(ctx, filters)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("segmentation: erro ao ler doações")
		return nil, wrapProviderError(err)
	}

	span.SetAttributes(attribute.Int("records", len(records)))
	return records, nil
}

func (s *Service) buildFeatures(ctx context.Context, records []domain.DonationRecord) (*FeatureSet, error) {
	ctx, span := s.tracer.Start(ctx, "segmentation.features")
	defer span.End()

	features, err := BuildFeatures(records)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("segmentation: doações sem condição de análise")
		return nil, err
	}

	if features.Dropped > 0 {
		log.ForContext(ctx).Debugf("segmentation: %d linhas descartadas na conversão", features.Dropped)
	}

	span.SetAttributes(
		attribute.Int("donors", len(features.Rows)),
		attribute.Int("dropped", features.Dropped),
	)
	return features, nil
}

func (s *Service) cluster(ctx context.Context, rows []domain.DonorFeatureRow, k int) (*Clustering, error) {
	ctx, span := s.tracer.Start(ctx, "segmentation.cluster")
	defer span.End()

	clustering, err := ClusterDonors(rows, k, s.clustering)
	if err != nil {
		var insufficient *domain.InsufficientDataError
		if errors.As(err, &insufficient) {
			log.ForContext(ctx).WithFields(log.Fields{
				"donors": insufficient.Donors,
				"k":      insufficient.K,
			}).Warn("segmentation: poucos doadores para o k escolhido")
		}
		return nil, err
	}

	// Doadores idênticos podem deixar clusters vazios mesmo após a realocação
	if found := distinctLabels(clustering.Labels); found < k {
		log.ForContext(ctx).WithFields(log.Fields{
			"k":        k,
			"clusters": found,
			"donors":   len(rows),
		}).Warn("segmentation: menos clusters distintos do que k")
	}

	return clustering, nil
}

func distinctLabels(labels []int) int {
	seen := make(map[int]struct{}, len(labels))
	for _, label := range labels {
		seen[label] = struct{}{}
	}
	return len(seen)
}

func (s *Service) project(ctx context.Context, matrix [][]float64, assignments []domain.ClusterAssignment) []domain.ProjectedPoint {
	ctx, span := s.tracer.Start(ctx, "segmentation.project")
	defer span.End()

	coords, err := Project(matrix)
	if err != nil {
		// O mapa de clusters é opcional; a lista de outreach continua válida
		log.ForContext(ctx).WithError(err).Warn("segmentation: erro ao projetar clusters")
		return []domain.ProjectedPoint{}
	}

	points := make([]domain.ProjectedPoint, len(coords))
	for i, c := range coords {
		points[i] = domain.ProjectedPoint{
			DonorID:   assignments[i].DonorID,
			PC1:       c[0],
			PC2:       c[1],
			ClusterID: assignments[i].ClusterID,
			Segment:   assignments[i].Segment,
		}
	}
	return points
}

func validateFilters(filters *domain.DonationFilters) error {
	if filters == nil || filters.Since == nil || filters.Until == nil {
		return nil
	}
	if !filters.Since.Before(*filters.Until) {
		return fmt.Errorf("%w: since %s must be before until %s", domain.ErrInvalidDateRange,
			filters.Since.Format("2006-01-02"), filters.Until.Format("2006-01-02"))
	}
	return nil
}

// wrapProviderError mantém erros de schema como estão e marca o resto como falha da origem
func wrapProviderError(err error) error {
	if errors.Is(err, domain.ErrSchema) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
}
