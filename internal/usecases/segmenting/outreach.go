package segmenting

import (
	"fmt"
	"slices"
	"sort"

	"github.com/vfg2006/donor-analytics/internal/domain"
)

// AssignSegments junta as linhas RFM com o cluster e o segmento do respectivo cluster
func AssignSegments(rows []domain.DonorFeatureRow, labels []int, summaries []domain.ClusterSummary) []domain.ClusterAssignment {
	segmentByCluster := make(map[int]domain.Segment, len(summaries))
	for _, s := range summaries {
		segmentByCluster[s.ClusterID] = s.Segment
	}

	assignments := make([]domain.ClusterAssignment, len(rows))
	for i, row := range rows {
		assignments[i] = domain.ClusterAssignment{
			DonorFeatureRow: row,
			ClusterID:       labels[i],
			Segment:         segmentByCluster[labels[i]],
		}
	}

	return assignments
}

// SelectTargets filtra os doadores dos segmentos escolhidos e ordena por
// recência crescente, frequência decrescente e valor total decrescente.
func SelectTargets(assignments []domain.ClusterAssignment, segments []domain.Segment) []domain.OutreachTarget {
	targets := make([]domain.OutreachTarget, 0)
	for _, a := range assignments {
		if !slices.Contains(segments, a.Segment) {
			continue
		}
		targets = append(targets, domain.OutreachTarget{
			DonorID:       a.DonorID,
			Segment:       a.Segment,
			RecencyDays:   a.RecencyDays,
			Frequency:     a.Frequency,
			MonetaryTotal: a.MonetaryTotal,
			MonetaryAvg:   a.MonetaryAvg,
			SpanDays:      a.SpanDays,
		})
	}

	sort.SliceStable(targets, func(i, j int) bool {
		a, b := targets[i], targets[j]
		if a.RecencyDays != b.RecencyDays {
			return a.RecencyDays < b.RecencyDays
		}
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		if a.MonetaryTotal != b.MonetaryTotal {
			return a.MonetaryTotal > b.MonetaryTotal
		}
		return a.DonorID < b.DonorID
	})

	return targets
}

// SegmentSizes conta os doadores por segmento, do maior para o menor
func SegmentSizes(assignments []domain.ClusterAssignment) []domain.SegmentSize {
	counts := make(map[domain.Segment]int)
	for _, a := range assignments {
		counts[a.Segment]++
	}

	sizes := make([]domain.SegmentSize, 0, len(counts))
	for segment, count := range counts {
		sizes = append(sizes, domain.SegmentSize{Segment: segment, Count: count})
	}

	sort.Slice(sizes, func(i, j int) bool {
		if sizes[i].Count != sizes[j].Count {
			return sizes[i].Count > sizes[j].Count
		}
		return sizes[i].Segment < sizes[j].Segment
	})

	return sizes
}

// SegmentOptions devolve os segmentos presentes na execução em ordem alfabética
func SegmentOptions(assignments []domain.ClusterAssignment) []domain.Segment {
	options := make([]domain.Segment, 0, len(domain.Segments))
	for _, a := range assignments {
		if !slices.Contains(options, a.Segment) {
			options = append(options, a.Segment)
		}
	}
	slices.Sort(options)
	return options
}

// ResolveSelection valida a seleção do usuário; vazia = segmentos padrão presentes na execução
func ResolveSelection(requested []domain.Segment, options []domain.Segment) ([]domain.Segment, error) {
	if len(requested) == 0 {
		selected := make([]domain.Segment, 0, len(domain.DefaultTargetSegments))
		for _, segment := range domain.DefaultTargetSegments {
			if slices.Contains(options, segment) {
				selected = append(selected, segment)
			}
		}
		return selected, nil
	}

	selected := make([]domain.Segment, 0, len(requested))
	for _, segment := range requested {
		if !slices.Contains(domain.Segments, segment) {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSegment, segment)
		}
		if !slices.Contains(selected, segment) {
			selected = append(selected, segment)
		}
	}

	return selected, nil
}
