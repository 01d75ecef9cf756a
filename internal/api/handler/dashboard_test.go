package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/donor-analytics/internal/api/handler/router"
	"github.com/vfg2006/donor-analytics/internal/api/view"
	"github.com/vfg2006/donor-analytics/internal/domain"
	"github.com/vfg2006/donor-analytics/internal/usecases/segmenting/mocks"
	"github.com/vfg2006/donor-analytics/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func sampleReport() *domain.SegmentationReport {
	return &domain.SegmentationReport{
		RunID:         "run00001",
		K:             2,
		ReferenceDate: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		Transactions:  11,
		Clusters: []domain.ClusterSummary{
			{ClusterID: 0, Donors: 1, RecencyMean: 730, FrequencyMean: 1, MonetaryMean: 20, Segment: domain.SegmentLostDonors},
			{ClusterID: 1, Donors: 1, RecencyMean: 0, FrequencyMean: 10, MonetaryMean: 500, Segment: domain.SegmentChampions},
		},
		SegmentSizes: []domain.SegmentSize{
			{Segment: domain.SegmentChampions, Count: 1},
			{Segment: domain.SegmentLostDonors, Count: 1},
		},
		SegmentOptions:   []domain.Segment{domain.SegmentChampions, domain.SegmentLostDonors},
		SelectedSegments: []domain.Segment{domain.SegmentChampions},
		Targets: []domain.OutreachTarget{
			{DonorID: "D1", Segment: domain.SegmentChampions, Frequency: 10, MonetaryTotal: 500, MonetaryAvg: 50, SpanDays: 270},
		},
	}
}

func newTestRouter(t *testing.T, service *mocks.MockSegmenter) http.Handler {
	t.Helper()

	renderer, err := view.NewRenderer("en-US")
	require.NoError(t, err)

	return router.New(
		router.WithRoutes(Healthcheck(service)...),
		router.WithRoutes(Dashboard(service, renderer)...),
	)
}

func TestSegmentation(t *testing.T) {
	var mockService *mocks.MockSegmenter

	tests := []struct {
		name     string
		target   string
		accept   string
		setup    func()
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "renderiza a página com o k padrão",
			target: "/segmentation",
			setup: func() {
				mockService.EXPECT().
					Segment(gomock.Any(), domain.SegmentationParams{K: 4}).
					Return(sampleReport(), nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
				assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
				body := rec.Body.String()
				assert.Contains(t, body, "Cluster overview")
				assert.Contains(t, body, "run00001")
				assert.Contains(t, body, "D1")
				assert.Contains(t, body, "Data source in use: SyntheticClient")
			},
		},
		{
			name:   "repassa k, segmentos e período",
			target: "/segmentation?k=3&segment=Lost+Donors&segment=Potential+Loyalists&since=2025-01-01&until=2026-01-01",
			setup: func() {
				mockService.EXPECT().
					Segment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params domain.SegmentationParams) (*domain.SegmentationReport, error) {
						assert.Equal(t, 3, params.K)
						assert.Equal(t, []domain.Segment{domain.SegmentLostDonors, domain.SegmentPotentialLoyalists}, params.Segments)
						require.NotNil(t, params.Filters)
						require.NotNil(t, params.Filters.Since)
						require.NotNil(t, params.Filters.Until)
						assert.Equal(t, "2025-01-01", params.Filters.Since.Format(time.DateOnly))
						assert.Equal(t, "2026-01-01", params.Filters.Until.Format(time.DateOnly))
						return sampleReport(), nil
					})
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
			},
		},
		{
			name:   "responde JSON com format=json",
			target: "/segmentation?format=json",
			setup: func() {
				mockService.EXPECT().Segment(gomock.Any(), gomock.Any()).Return(sampleReport(), nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

				var report domain.SegmentationReport
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
				assert.Equal(t, "run00001", report.RunID)
				assert.Len(t, report.Targets, 1)
			},
		},
		{
			name:   "k não numérico",
			target: "/segmentation?k=abc",
			accept: "application/json",
			setup:  func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assertAPIError(t, rec, http.StatusBadRequest, apiErrors.ErrInvalidFormat)
			},
		},
		{
			name:   "data inválida",
			target: "/segmentation?since=01.01.2025&format=json",
			setup:  func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assertAPIError(t, rec, http.StatusBadRequest, apiErrors.ErrInvalidFormat)
			},
		},
		{
			name:   "segmento desconhecido",
			target: "/segmentation?segment=Whales&format=json",
			setup:  func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assertAPIError(t, rec, http.StatusBadRequest, apiErrors.ErrInvalidRequest)
			},
		},
		{
			name:   "k fora do intervalo",
			target: "/segmentation?k=9&format=json",
			setup: func() {
				mockService.EXPECT().Segment(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: 9", domain.ErrInvalidClusterCount))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assertAPIError(t, rec, http.StatusBadRequest, apiErrors.ErrInvalidRequest)
			},
		},
		{
			name:   "poucos doadores devolve o k máximo",
			target: "/segmentation?format=json",
			setup: func() {
				mockService.EXPECT().Segment(gomock.Any(), gomock.Any()).
					Return(nil, &domain.InsufficientDataError{Donors: 3, K: 4})
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				apiErr := assertAPIError(t, rec, http.StatusUnprocessableEntity, apiErrors.ErrInsufficientData)
				assert.Equal(t, "Too few donors (3) for k=4. Reduce k to at most 3.", apiErr.Message)
				assert.Equal(t, map[string]any{"donors": float64(3), "k": float64(4), "max_k": float64(3)}, apiErr.Details)
			},
		},
		{
			name:   "origem indisponível",
			target: "/segmentation?format=json",
			setup: func() {
				mockService.EXPECT().Segment(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: timeout", domain.ErrProviderUnavailable))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assertAPIError(t, rec, http.StatusBadGateway, apiErrors.ErrExternalService)
			},
		},
		{
			name:   "total de doações fora do limite",
			target: "/segmentation?format=json",
			setup: func() {
				mockService.EXPECT().Segment(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: donor D2", domain.ErrAmountOverflow))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				apiErr := assertAPIError(t, rec, http.StatusUnprocessableEntity, apiErrors.ErrAmountOutOfRange)
				assert.Equal(t, "A donor's total amount is too large to analyse.", apiErr.Message)
			},
		},
		{
			name:   "colunas ausentes",
			target: "/segmentation?format=json",
			setup: func() {
				mockService.EXPECT().Segment(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: missing columns [amount]", domain.ErrSchema))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				apiErr := assertAPIError(t, rec, http.StatusInternalServerError, apiErrors.ErrSchema)
				assert.Equal(t, "Missing columns. Required: donor_id, donation_date, amount", apiErr.Message)
			},
		},
		{
			name:   "sem dados mostra a página de erro",
			target: "/segmentation?k=3",
			setup: func() {
				mockService.EXPECT().Segment(gomock.Any(), gomock.Any()).Return(nil, domain.ErrEmptyData)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
				body := rec.Body.String()
				assert.Contains(t, body, "No valid donations found.")
				assert.Contains(t, body, `<option value="3" selected>`)
			},
		},
		{
			name:   "erro inesperado",
			target: "/segmentation",
			setup: func() {
				mockService.EXPECT().Segment(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("boom"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
				assert.Contains(t, rec.Body.String(), "Internal error.")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService = mocks.NewMockSegmenter(ctrl)
			mockService.EXPECT().SourceName().Return("SyntheticClient").AnyTimes()
			mockService.EXPECT().DefaultK().Return(4).AnyTimes()
			tt.setup()

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			rec := httptest.NewRecorder()

			newTestRouter(t, mockService).ServeHTTP(rec, req)

			tt.validate(t, rec)
		})
	}
}

func TestHome(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockSegmenter(ctrl)
	mockService.EXPECT().SourceName().Return("SyntheticClient").AnyTimes()

	t.Run("mostra a contagem", func(t *testing.T) {
		mockService.EXPECT().Overview(gomock.Any()).
			Return(&domain.DataOverview{Source: "SyntheticClient", Donors: 1200, Donations: 9800}, nil)

		rec := httptest.NewRecorder()
		newTestRouter(t, mockService).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "1,200")
		assert.Contains(t, rec.Body.String(), "9,800")
	})

	t.Run("origem indisponível", func(t *testing.T) {
		mockService.EXPECT().Overview(gomock.Any()).
			Return(nil, fmt.Errorf("%w: refused", domain.ErrProviderUnavailable))

		rec := httptest.NewRecorder()
		newTestRouter(t, mockService).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "The data source is unavailable.")
	})
}

func TestPlaceholderAndHealthcheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockSegmenter(ctrl)
	mockService.EXPECT().SourceName().Return("CSVClient (donations.csv)").AnyTimes()
	rt := newTestRouter(t, mockService)

	for _, path := range []string{"/churn", "/ltv"} {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "This page is not implemented yet.", path)
	}

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var status healthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "CSVClient (donations.csv)", status.Source)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/segmentation", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestClustersBySegment(t *testing.T) {
	clusters := sampleReport().Clusters

	sorted := clustersBySegment(clusters)

	require.Len(t, sorted, 2)
	assert.Equal(t, domain.SegmentChampions, sorted[0].Segment)
	assert.Equal(t, domain.SegmentLostDonors, sorted[1].Segment)
	assert.Equal(t, domain.SegmentLostDonors, clusters[0].Segment)
}

func assertAPIError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) apiErrors.APIError {
	t.Helper()

	assert.Equal(t, status, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, code, apiErr.Code)
	return apiErr
}
