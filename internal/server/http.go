package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-cms/internal/config"
	"github.com/gokatarajesh/quiz-cms/internal/deck"
	"github.com/gokatarajesh/quiz-cms/internal/mcqset"
	"github.com/gokatarajesh/quiz-cms/internal/question"
	"github.com/gokatarajesh/quiz-cms/internal/tag"
)

// Handlers bundles the per-domain HTTP handlers the server exposes.
type Handlers struct {
	Deck     *deck.Handlers
	Question *question.Handlers
	MCQSet   *mcqset.Handlers
	Tag      *tag.Handlers
}

// NewHTTPServer wires all content API routes. Read endpoints are open;
// write endpoints sit behind the shared-secret middleware.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, redisClient *redis.Client, h Handlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := pingDependencies(r.Context(), pool, redisClient); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	// Public reads
	mux.HandleFunc("/quiz/index", h.Deck.Index)
	mux.HandleFunc("/quiz/questions", h.Question.FetchByIDs)
	mux.HandleFunc("/adaptive-quizzes/{slug}", h.Deck.AdaptiveBySlug)
	mux.HandleFunc("/mcq-sets/slug/{slug}", h.MCQSet.BySlug)

	// Content writes
	writes := func(fn http.HandlerFunc) http.Handler {
		return requireSecret(cfg.Quiz.APISecret, fn)
	}
	mux.Handle("/adaptive-decks", writes(h.Deck.CreateAdaptive))
	mux.Handle("/adaptive-decks/{id}", writes(h.Deck.UpdateAdaptive))
	mux.Handle("/structured-decks", writes(h.Deck.CreateStructured))
	mux.Handle("/structured-decks/{id}", writes(h.Deck.UpdateStructured))
	mux.Handle("/mcq-sets", writes(h.MCQSet.Create))
	mux.Handle("/mcq-sets/{id}", writes(h.MCQSet.Update))
	mux.Handle("/questions/bulk", writes(h.Question.BulkCreate))
	mux.Handle("/tags/bulk", writes(h.Tag.BulkCreate))

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: withRequestLog(logger, mux),
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, redisClient *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return redisClient.Ping(ctx).Err()
}
