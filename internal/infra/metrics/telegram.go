package metrics

import "github.com/prometheus/client_golang/prometheus"

var updatesHandled = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "telegram_updates_handled_total",
	Help: "Processed Telegram updates by kind.",
}, []string{"kind"})

func init() {
	register(updatesHandled)
}

func IncUpdateHandled(kind string) { updatesHandled.WithLabelValues(kind).Inc() }
