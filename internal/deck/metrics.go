package deck

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiz_deck_resolutions_total",
		Help: "Deck index resolutions completed, by deck variant.",
	}, []string{"variant"})

	indexCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiz_deck_index_cache_hits_total",
		Help: "Deck index resolutions served from cache.",
	})

	indexCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiz_deck_index_cache_misses_total",
		Help: "Deck index resolutions that fell through to the store.",
	})
)
