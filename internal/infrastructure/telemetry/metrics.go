package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dealsync"

// SyncMetrics counts sync outcomes and the side effects a sync has on the
// MRP catalog.
type SyncMetrics struct {
	syncs          *prometheus.CounterVec
	customItems    prometheus.Counter
	catalogCreated prometheus.Counter
	// RemoteDuration is shared by the remote API transports.
	RemoteDuration *prometheus.HistogramVec
}

func NewSyncMetrics(registerer prometheus.Registerer) *SyncMetrics {
	m := &SyncMetrics{
		syncs: prometheus.NewCounterVec(prometheus.CounterOpts{ //nolint:exhaustruct
			Namespace: namespace,
			Name:      "syncs_total",
			Help:      "Deal sync requests by outcome.",
		}, []string{"outcome"}),
		customItems: prometheus.NewCounter(prometheus.CounterOpts{ //nolint:exhaustruct
			Namespace: namespace,
			Name:      "custom_items_total",
			Help:      "Order rows that fell back to the custom-item variant.",
		}),
		catalogCreated: prometheus.NewCounter(prometheus.CounterOpts{ //nolint:exhaustruct
			Namespace: namespace,
			Name:      "catalog_products_created_total",
			Help:      "Catalog products created for unknown stock codes.",
		}),
		RemoteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{ //nolint:exhaustruct
			Namespace: namespace,
			Name:      "remote_request_duration_seconds",
			Help:      "Duration of outgoing requests to the CRM and the MRP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "code", "method"}),
	}

	registerer.MustRegister(m.syncs, m.customItems, m.catalogCreated, m.RemoteDuration)

	return m
}

func (m *SyncMetrics) ObserveSync(outcome string) {
	m.syncs.WithLabelValues(outcome).Inc()
}

func (m *SyncMetrics) AddCustomItems(n int) {
	if n <= 0 {
		return
	}

	m.customItems.Add(float64(n))
}

func (m *SyncMetrics) CatalogEntryCreated() {
	m.catalogCreated.Inc()
}
