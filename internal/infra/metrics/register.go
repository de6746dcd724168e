package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	mu      sync.Mutex
	pending []prometheus.Collector
	done    bool
)

// register queues a collector at package init time. Collectors stay inert
// until MustRegister wires them into the default Prometheus registry.
func register(cs ...prometheus.Collector) {
	mu.Lock()
	pending = append(pending, cs...)
	mu.Unlock()
}

// MustRegister installs every queued collector. Calls after the first are
// no-ops, so main can call it unconditionally.
func MustRegister() {
	mu.Lock()
	defer mu.Unlock()
	if done {
		return
	}
	done = true
	if len(pending) > 0 {
		prometheus.MustRegister(pending...)
	}
}
