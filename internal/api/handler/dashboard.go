package handler

import (
	"net/http"
	"slices"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/donor-analytics/internal/api/view"
	"github.com/vfg2006/donor-analytics/internal/domain"
	"github.com/vfg2006/donor-analytics/internal/usecases/segmenting"
	"github.com/vfg2006/donor-analytics/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Home mostra a página inicial com a contagem de doadores e doações
func Home(service segmenting.Segmenter, renderer *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := view.Page{
			Title:  "nav.home",
			Active: "home",
			Source: service.SourceName(),
		}

		overview, err := service.Overview(r.Context())
		if err != nil {
			writeFailure(w, r, renderer, page, nil, false, err)
			return
		}

		page.Body = view.HomeBody{Overview: overview}
		writePage(w, r, renderer, http.StatusOK, view.PageHome, page)
	}
}

// Segmentation executa o pipeline e devolve a página (ou JSON com format=json)
func Segmentation(service segmenting.Segmenter, renderer *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asJSON := wantsJSON(r)
		page := view.Page{
			Title:  "nav.segmentation",
			Active: "segmentation",
			Source: service.SourceName(),
		}

		query, err := parseSegmentationQuery(r, service.DefaultK())
		if err != nil {
			writeFailure(w, r, renderer, page, query.form(nil), asJSON, err)
			return
		}

		report, err := service.Segment(r.Context(), query.params)
		if err != nil {
			writeFailure(w, r, renderer, page, query.form(nil), asJSON, err)
			return
		}

		if asJSON {
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(report); err != nil {
				log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta da segmentação")
			}
			return
		}

		page.Body = view.SegmentationBody{
			Report:   report,
			Clusters: clustersBySegment(report.Clusters),
			Scatter:  view.NewScatter(report.Projection),
			Bars:     view.NewBars(report.SegmentSizes),
			Form:     *query.form(report),
		}
		writePage(w, r, renderer, http.StatusOK, view.PageSegmentation, page)
	}
}

// Placeholder atende as páginas ainda não implementadas (churn, LTV)
func Placeholder(service segmenting.Segmenter, renderer *view.Renderer, title, active string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePage(w, r, renderer, http.StatusOK, view.PagePlaceholder, view.Page{
			Title:  title,
			Active: active,
			Source: service.SourceName(),
		})
	}
}

func writePage(w http.ResponseWriter, r *http.Request, renderer *view.Renderer, status int, name string, page view.Page) {
	var buf strings.Builder
	if err := renderer.Render(&buf, name, page); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao renderizar página")
		http.Error(w, renderer.T("error.internal"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

func wantsJSON(r *http.Request) bool {
	if strings.EqualFold(r.URL.Query().Get("format"), "json") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// clustersBySegment ordena a tabela de clusters pelo nome do segmento
func clustersBySegment(clusters []domain.ClusterSummary) []domain.ClusterSummary {
	sorted := slices.Clone(clusters)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Segment != sorted[j].Segment {
			return sorted[i].Segment < sorted[j].Segment
		}
		return sorted[i].ClusterID < sorted[j].ClusterID
	})
	return sorted
}
