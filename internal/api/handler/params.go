package handler

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/donor-analytics/internal/api/view"
	"github.com/vfg2006/donor-analytics/internal/domain"
	"github.com/vfg2006/donor-analytics/pkg/utils"
)

// errInvalidNumber indica um k que não é um número inteiro
var errInvalidNumber = errors.New("invalid number")

// segmentationQuery guarda os parâmetros já convertidos e os valores crus para o formulário
type segmentationQuery struct {
	params domain.SegmentationParams
	since  string
	until  string
}

// parseSegmentationQuery lê k, segment (repetível), since e until da query string.
// Mesmo com erro devolve o que foi possível ler, para reexibir o formulário.
func parseSegmentationQuery(r *http.Request, defaultK int) (segmentationQuery, error) {
	values := r.URL.Query()
	query := segmentationQuery{
		params: domain.SegmentationParams{K: defaultK},
		since:  strings.TrimSpace(values.Get("since")),
		until:  strings.TrimSpace(values.Get("until")),
	}

	if raw := strings.TrimSpace(values.Get("k")); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil {
			return query, errors.Wrapf(errInvalidNumber, "k=%q", raw)
		}
		query.params.K = k
	}

	for _, raw := range values["segment"] {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		segment, err := domain.ParseSegment(strings.TrimSpace(raw))
		if err != nil {
			return query, err
		}
		query.params.Segments = append(query.params.Segments, segment)
	}

	since, err := utils.ParseDate(query.since)
	if err != nil {
		return query, errors.Wrapf(domain.ErrInvalidDateRange, "since=%q", query.since)
	}
	until, err := utils.ParseDate(query.until)
	if err != nil {
		return query, errors.Wrapf(domain.ErrInvalidDateRange, "until=%q", query.until)
	}
	if since != nil || until != nil {
		query.params.Filters = &domain.DonationFilters{Since: since, Until: until}
	}

	return query, nil
}

// form monta o formulário da página; sem relatório as opções são os cinco segmentos
func (q segmentationQuery) form(report *domain.SegmentationReport) *view.SegmentationForm {
	form := &view.SegmentationForm{
		K:     q.params.K,
		Since: q.since,
		Until: q.until,
	}
	for k := domain.MinClusters; k <= domain.MaxClusters; k++ {
		form.KOptions = append(form.KOptions, k)
	}

	options := domain.Segments
	selected := q.params.Segments
	if report != nil {
		options = report.SegmentOptions
		selected = report.SelectedSegments
	}

	for _, segment := range options {
		form.Options = append(form.Options, view.SegmentOption{
			Segment:  segment,
			Selected: slices.Contains(selected, segment),
		})
	}

	return form
}
