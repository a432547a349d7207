package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/navelogic/rpgbot/internal/logger"
	"github.com/navelogic/rpgbot/internal/metrics"
	"github.com/navelogic/rpgbot/internal/sse"
)

// AdminMetricsResponse is a JSON digest of the Prometheus registry for the
// admin dashboard
type AdminMetricsResponse struct {
	HTTP HTTPMetrics `json:"http"`
	Dice DiceMetrics `json:"dice"`
	SSE  SSEMetrics  `json:"sse"`
}

type HTTPMetrics struct {
	RequestsTotalByStatus map[string]float64 `json:"requests_total_by_status"`
	AvgLatencyMs          float64            `json:"avg_latency_ms"`
	P95LatencyMs          float64            `json:"p95_latency_ms"`
	InFlight              float64            `json:"in_flight"`
}

type DiceMetrics struct {
	RollsByPlatform map[string]float64 `json:"rolls_by_platform"`
	ErrorsByKind    map[string]float64 `json:"errors_by_kind"`
	CriticalsByType map[string]float64 `json:"criticals_by_type"`
	DiceSampled     float64            `json:"dice_sampled"`
	AvgRollMicros   float64            `json:"avg_roll_us"`
}

type SSEMetrics struct {
	ClientCount   int   `json:"client_count"`
	DroppedEvents int64 `json:"dropped_events"`
}

type AdminMetricsHandler struct {
	sseHub   *sse.Hub
	gatherer prometheus.Gatherer
}

func NewAdminMetricsHandler(sseHub *sse.Hub) *AdminMetricsHandler {
	return &AdminMetricsHandler{sseHub: sseHub, gatherer: prometheus.DefaultGatherer}
}

// HandleGetMetrics returns JSON-formatted metrics from Prometheus
// GET /api/v1/admin/metrics
// @Summary Dashboard metrics
// @Tags admin
// @Produce json
// @Success 200 {object} AdminMetricsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/admin/metrics [get]
// @Security ApiKeyAuth
func (h *AdminMetricsHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	resp, err := gatherMetrics(h.gatherer)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to gather metrics", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGatherMetricsFailed)
		return
	}

	if h.sseHub != nil {
		resp.SSE.ClientCount = h.sseHub.ClientCount()
		resp.SSE.DroppedEvents = h.sseHub.DroppedEvents()
	}

	respondJSON(w, http.StatusOK, resp)
}

func gatherMetrics(gatherer prometheus.Gatherer) (*AdminMetricsResponse, error) {
	families, err := gatherer.Gather()
	if err != nil {
		return nil, err
	}

	resp := &AdminMetricsResponse{
		HTTP: HTTPMetrics{RequestsTotalByStatus: map[string]float64{}},
		Dice: DiceMetrics{
			RollsByPlatform: map[string]float64{},
			ErrorsByKind:    map[string]float64{},
			CriticalsByType: map[string]float64{},
		},
	}

	var httpLatency, rollLatency latency
	for _, mf := range families {
		series := mf.GetMetric()
		switch mf.GetName() {
		case metrics.MetricNameHTTPRequestsTotal:
			countByLabel(series, metrics.LabelStatus, resp.HTTP.RequestsTotalByStatus)
		case metrics.MetricNameHTTPRequestDuration:
			httpLatency.add(series)
		case metrics.MetricNameHTTPRequestsInFlight:
			for _, m := range series {
				resp.HTTP.InFlight += m.GetGauge().GetValue()
			}
		case metrics.MetricNameRollsTotal:
			countByLabel(series, metrics.LabelPlatform, resp.Dice.RollsByPlatform)
		case metrics.MetricNameRollErrors:
			countByLabel(series, metrics.LabelKind, resp.Dice.ErrorsByKind)
		case metrics.MetricNameCriticals:
			countByLabel(series, metrics.LabelType, resp.Dice.CriticalsByType)
		case metrics.MetricNameDiceSampled:
			for _, m := range series {
				resp.Dice.DiceSampled += m.GetCounter().GetValue()
			}
		case metrics.MetricNameRollDuration:
			rollLatency.add(series)
		}
	}

	resp.HTTP.AvgLatencyMs = httpLatency.mean() * 1e3
	resp.HTTP.P95LatencyMs = httpLatency.quantile(0.95) * 1e3
	resp.Dice.AvgRollMicros = rollLatency.mean() * 1e6
	return resp, nil
}

// countByLabel adds each counter to into under its value for label
func countByLabel(series []*dto.Metric, label string, into map[string]float64) {
	for _, m := range series {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == label && lp.GetValue() != "" {
				into[lp.GetValue()] += m.GetCounter().GetValue()
			}
		}
	}
}

// latency folds every series of one HistogramVec into a single histogram.
// All series of a vec share the bucket layout.
type latency struct {
	sum     float64
	count   uint64
	bounds  []float64
	buckets []uint64 // cumulative, aligned with bounds
}

func (l *latency) add(series []*dto.Metric) {
	for _, m := range series {
		h := m.GetHistogram()
		if h == nil {
			continue
		}
		l.sum += h.GetSampleSum()
		l.count += h.GetSampleCount()
		if l.bounds == nil {
			for _, b := range h.GetBucket() {
				l.bounds = append(l.bounds, b.GetUpperBound())
			}
			l.buckets = make([]uint64, len(l.bounds))
		}
		for i, b := range h.GetBucket() {
			if i < len(l.buckets) {
				l.buckets[i] += b.GetCumulativeCount()
			}
		}
	}
}

func (l *latency) mean() float64 {
	if l.count == 0 {
		return 0
	}
	return l.sum / float64(l.count)
}

// quantile returns the upper bound of the first bucket holding q of the
// samples, or the largest finite bound when the rest sit in +Inf
func (l *latency) quantile(q float64) float64 {
	if l.count == 0 || len(l.bounds) == 0 {
		return 0
	}
	target := q * float64(l.count)
	for i, c := range l.buckets {
		if float64(c) >= target {
			return l.bounds[i]
		}
	}
	return l.bounds[len(l.bounds)-1]
}
