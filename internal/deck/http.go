package deck

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-cms/internal/content"
	httperrors "github.com/gokatarajesh/quiz-cms/pkg/http/errors"
)

// cacheHeader marks read responses publicly cacheable for the same window
// the Redis index cache uses.
const cacheHeader = "public, max-age=60"

// Handlers exposes the deck read and write endpoints.
type Handlers struct {
	svc    *Service
	admin  *Admin
	logger zerolog.Logger
}

func NewHandlers(svc *Service, admin *Admin, logger zerolog.Logger) *Handlers {
	return &Handlers{
		svc:    svc,
		admin:  admin,
		logger: logger.With().Str("component", "deck_http").Logger(),
	}
}

// Index handles GET /quiz/index?deckSlug=<slug>.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	slug := strings.TrimSpace(r.URL.Query().Get("deckSlug"))
	if slug == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingParameter, "deckSlug query parameter is required")
		return
	}

	resp, err := h.svc.ResolveIndex(r.Context(), slug)
	if err != nil {
		h.respondResolveError(w, slug, err)
		return
	}

	w.Header().Set("Cache-Control", cacheHeader)
	h.respondJSON(w, http.StatusOK, resp)
}

// AdaptiveBySlug handles GET /adaptive-quizzes/{slug}.
func (h *Handlers) AdaptiveBySlug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	slug := strings.TrimSpace(r.PathValue("slug"))
	if slug == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingParameter, "slug parameter is required")
		return
	}

	metadata, err := h.svc.AdaptiveMetadata(r.Context(), slug)
	if err != nil {
		h.respondResolveError(w, slug, err)
		return
	}

	w.Header().Set("Cache-Control", cacheHeader)
	h.respondJSON(w, http.StatusOK, metadata)
}

// CreateAdaptive handles POST /adaptive-decks.
func (h *Handlers) CreateAdaptive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in content.AdaptiveDeckInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid JSON payload")
		return
	}

	id, err := h.admin.CreateAdaptiveDeck(r.Context(), in)
	if err != nil {
		h.respondWriteError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]any{"id": id})
}

// UpdateAdaptive handles PUT /adaptive-decks/{id}.
func (h *Handlers) UpdateAdaptive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := pathID(r)
	if !ok {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid deck id")
		return
	}

	var in content.AdaptiveDeckInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid JSON payload")
		return
	}

	if err := h.admin.UpdateAdaptiveDeck(r.Context(), id, in); err != nil {
		h.respondWriteError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"id": id})
}

// CreateStructured handles POST /structured-decks.
func (h *Handlers) CreateStructured(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in content.StructuredDeckInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid JSON payload")
		return
	}

	id, err := h.admin.CreateStructuredDeck(r.Context(), in)
	if err != nil {
		h.respondWriteError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]any{"id": id})
}

// UpdateStructured handles PUT /structured-decks/{id}.
func (h *Handlers) UpdateStructured(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := pathID(r)
	if !ok {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid deck id")
		return
	}

	var in content.StructuredDeckInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid JSON payload")
		return
	}

	if err := h.admin.UpdateStructuredDeck(r.Context(), id, in); err != nil {
		h.respondWriteError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"id": id})
}

func (h *Handlers) respondResolveError(w http.ResponseWriter, slug string, err error) {
	var verr *content.ValidationError
	switch {
	case errors.Is(err, ErrDeckNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeDeckNotFound, "deck not found")
	case errors.As(err, &verr):
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, verr.Message, verr.Field)
	default:
		h.logger.Error().Err(err).Str("slug", slug).Msg("deck resolution failed")
		httperrors.RespondInternalError(w, "deck resolution failed")
	}
}

func (h *Handlers) respondWriteError(w http.ResponseWriter, err error) {
	var verr *content.ValidationError
	switch {
	case errors.Is(err, ErrDeckNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeDeckNotFound, "deck not found")
	case errors.As(err, &verr):
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, verr.Message, verr.Field)
	default:
		h.logger.Error().Err(err).Msg("deck write failed")
		httperrors.RespondInternalError(w, "deck write failed")
	}
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("response encode failed")
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
