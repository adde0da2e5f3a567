// internal/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reasons a link was broken without a revoke.
const (
	ReasonKilled        = "killed"
	ReasonDisposed      = "disposed"
	ReasonTraitDisabled = "trait_disabled"
	ReasonOwnerChanged  = "owner_changed"
)

// Revoke outcomes.
const (
	RevokeToOriginal = "original_owner"
	RevokeToFallback = "fallback_owner"
)

var (
	Registry = prometheus.NewRegistry()

	LinksEstablished = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mindcontrol",
		Name:      "links_established_total",
		Help:      "Mind control links created.",
	})

	SelfRecaptures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mindcontrol",
		Name:      "self_recaptures_total",
		Help:      "Links dropped at once because the controller belongs to the original owner.",
	})

	Revokes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mindcontrol",
		Name:      "revokes_total",
		Help:      "Revoked links by the player that received the unit back.",
	}, []string{"outcome"})

	ForcedUnlinks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mindcontrol",
		Name:      "forced_unlinks_total",
		Help:      "Links broken by teardown paths.",
	}, []string{"reason"})

	ControlledEntities = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mindcontrol",
		Name:      "controlled_entities",
		Help:      "Entities currently held by a controller.",
	})
)

func init() {
	Registry.MustRegister(LinksEstablished, SelfRecaptures, Revokes, ForcedUnlinks, ControlledEntities)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
