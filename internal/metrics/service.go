package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

type Service struct {
	FetchAttempts   *prometheus.CounterVec
	FetchFailures   *prometheus.CounterVec
	LiveGames       *prometheus.GaugeVec
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	BatchSwaps      prometheus.Counter
	LeagueRotations prometheus.Counter
}

// NewHandler returns an http.Handler for the given Gatherer, or the default one.
func NewHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the collectors. If no registerer is
// provided, the default Prometheus registerer is used.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		FetchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "liveleaders_fetch_attempts_total",
			Help: "Live game fetches attempted per league.",
		}, []string{"league"}),
		FetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "liveleaders_fetch_failures_total",
			Help: "Live game fetches that failed per league.",
		}, []string{"league"}),
		LiveGames: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "liveleaders_live_games",
			Help: "Live games returned by the last fetch per league.",
		}, []string{"league"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "liveleaders_cache_hits_total",
			Help: "Upstream responses served from the cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "liveleaders_cache_misses_total",
			Help: "Upstream responses not found in the cache.",
		}),
		BatchSwaps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "liveleaders_batch_swaps_total",
			Help: "Pending game batches swapped in at a scroll wrap.",
		}),
		LeagueRotations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "liveleaders_league_rotations_total",
			Help: "Times the rotation advanced past a league with no live games.",
		}),
	}

	reg.MustRegister(
		s.FetchAttempts,
		s.FetchFailures,
		s.LiveGames,
		s.CacheHits,
		s.CacheMisses,
		s.BatchSwaps,
		s.LeagueRotations,
	)

	return s
}

func (s *Service) IncFetchAttempt(league string) {
	s.FetchAttempts.WithLabelValues(league).Inc()
}

func (s *Service) IncFetchFailure(league string) {
	s.FetchFailures.WithLabelValues(league).Inc()
}

func (s *Service) SetLiveGames(league string, n int) {
	s.LiveGames.WithLabelValues(league).Set(float64(n))
}

func (s *Service) IncCacheHit() {
	s.CacheHits.Inc()
}

func (s *Service) IncCacheMiss() {
	s.CacheMisses.Inc()
}

func (s *Service) IncBatchSwap() {
	s.BatchSwaps.Inc()
}

func (s *Service) IncLeagueRotation() {
	s.LeagueRotations.Inc()
}
