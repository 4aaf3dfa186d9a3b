package pagination

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts paginated list requests.
	// Labels: status (HTTP status code), page_range (1-10, 11-50, 51-100, 100+)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_pagination_requests_total",
			Help: "Total number of paginated history list requests",
		},
		[]string{"status", "page_range"},
	)

	// TotalCount is the last observed number of history records.
	TotalCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "history_total_count",
			Help: "Current total number of message history records",
		},
	)
)

// RecordRequest records one list request.
func RecordRequest(statusCode int, page int) {
	RequestsTotal.WithLabelValues(strconv.Itoa(statusCode), pageRangeBucket(page)).Inc()
}

// UpdateTotalCount updates the history count gauge.
func UpdateTotalCount(count int64) {
	TotalCount.Set(float64(count))
}

func pageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
