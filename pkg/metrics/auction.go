package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auction_house"

const (
	SettlementSold   = "sold"
	SettlementUnsold = "unsold"
	SettlementFailed = "failed"
)

//nolint:gochecknoglobals
var (
	bidsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "bids_total",
		Help:      "Bids evaluated by the engine, by admission result.",
	}, []string{"result"})

	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "countdown_ticks_total",
		Help:      "Countdown decrements applied to the auction record.",
	})

	settlementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "settlements_total",
		Help:      "Closed lots by settlement outcome.",
	}, []string{"outcome"})

	lotsStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "lots_started_total",
		Help:      "Lots opened for bidding.",
	})
)

func ObserveBid(admitted bool) {
	result := "rejected"
	if admitted {
		result = "admitted"
	}

	bidsTotal.WithLabelValues(result).Inc()
}

func ObserveTick() {
	ticksTotal.Inc()
}

func ObserveSettlement(outcome string) {
	settlementsTotal.WithLabelValues(outcome).Inc()
}

func ObserveLotStarted() {
	lotsStartedTotal.Inc()
}
