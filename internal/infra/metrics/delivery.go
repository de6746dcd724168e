package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	postsDelivered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "posts_delivered_total",
		Help: "Posts whose main payload was delivered past the gate.",
	})

	gatePrompts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gate_prompts_total",
		Help: "Join-these-channels prompts rendered (first entry and rechecks).",
	})

	membershipLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "membership_lookups_total",
		Help: "Per-channel membership lookups by outcome.",
	}, []string{"outcome"})

	postsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "posts_created_total",
		Help: "Posts persisted by the authoring conversation.",
	})

	broadcastSends = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "broadcast_sends_total",
		Help: "Broadcast message sends by outcome.",
	}, []string{"outcome"})
)

func init() {
	register(postsDelivered, gatePrompts, membershipLookups, postsCreated, broadcastSends)
}

func IncDelivered()   { postsDelivered.Inc() }
func IncGatePrompt()  { gatePrompts.Inc() }
func IncPostCreated() { postsCreated.Inc() }

func IncMembershipLookup(ok bool) {
	membershipLookups.WithLabelValues(outcome(ok)).Inc()
}

func IncBroadcastSend(ok bool) {
	broadcastSends.WithLabelValues(outcome(ok)).Inc()
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
