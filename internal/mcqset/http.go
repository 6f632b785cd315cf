package mcqset

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

const cacheHeader = "public, max-age=60"

// Handlers exposes the MCQ set read and write endpoints.
type Handlers struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandlers(svc *Service, logger zerolog.Logger) *Handlers {
	return &Handlers{
		svc:    svc,
		logger: logger.With().Str("component", "mcqset_http").Logger(),
	}
}

// BySlug handles GET /mcq-sets/slug/{slug}.
func (h *Handlers) BySlug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	slug := strings.TrimSpace(r.PathValue("slug"))
	if slug == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingParameter, "slug parameter is required")
		return
	}

	view, err := h.svc.BySlug(r.Context(), slug)
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Cache-Control", cacheHeader)
	h.respondJSON(w, http.StatusOK, view)
}

// Create handles POST /mcq-sets.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in content.MCQSetInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid JSON payload")
		return
	}

	view, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, view)
}

// Update handles PUT /mcq-sets/{id}.
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil || id <= 0 {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid mcq set id")
		return
	}

	var in content.MCQSetInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid JSON payload")
		return
	}

	view, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, view)
}

func (h *Handlers) respondError(w http.ResponseWriter, err error) {
	var verr *content.ValidationError
	switch {
	case errors.Is(err, ErrSetNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeSetNotFound, "mcq set not found")
	case errors.As(err, &verr):
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, verr.Message, verr.Field)
	default:
		h.logger.Error().Err(err).Msg("mcq set request failed")
		httperrors.RespondInternalError(w, "mcq set request failed")
	}
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("response encode failed")
	}
}
