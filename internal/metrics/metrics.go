// Package metrics exposes Prometheus collectors for the domain engine.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	authAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitsync",
			Subsystem: "identity",
			Name:      "auth_attempts_total",
			Help:      "Login and register attempts by outcome.",
		},
		[]string{"op", "result"},
	)

	sessionChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitsync",
			Subsystem: "identity",
			Name:      "session_changes_total",
			Help:      "Session-changed broadcasts by reason.",
		},
		[]string{"reason"},
	)

	storeMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitsync",
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Applied store mutations by store and operation.",
		},
		[]string{"store", "op"},
	)

	storeSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "fitsync",
			Subsystem: "store",
			Name:      "entities",
			Help:      "Entities currently held per store.",
		},
		[]string{"store"},
	)
)

func init() {
	Registry.MustRegister(authAttempts, sessionChanges, storeMutations, storeSize)
}

// RecordAuth counts a login or register attempt.
func RecordAuth(op string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	authAttempts.WithLabelValues(op, result).Inc()
}

// RecordSessionChange counts a session broadcast.
func RecordSessionChange(reason string) {
	sessionChanges.WithLabelValues(reason).Inc()
}

// RecordMutation counts an applied add, update or remove.
func RecordMutation(store, op string) {
	storeMutations.WithLabelValues(store, op).Inc()
}

// SetStoreSize records how many entities a store holds.
func SetStoreSize(store string, n int) {
	storeSize.WithLabelValues(store).Set(float64(n))
}
