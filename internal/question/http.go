package question

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/quiz-cms/pkg/http/errors"
)

const cacheHeader = "public, max-age=60"

// Handlers exposes the batch detail and bulk import endpoints.
type Handlers struct {
	svc      *Service
	importer *Importer
	logger   zerolog.Logger
}

func NewHandlers(svc *Service, importer *Importer, logger zerolog.Logger) *Handlers {
	return &Handlers{
		svc:      svc,
		importer: importer,
		logger:   logger.With().Str("component", "question_http").Logger(),
	}
}

// FetchByIDs handles GET /quiz/questions?ids=<csv>&includeAnswers=<bool>.
func (h *Handlers) FetchByIDs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ids := ParseIDs(r.URL.Query().Get("ids"))
	if len(ids) == 0 {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingParameter, "ids query parameter is required")
		return
	}
	if len(ids) > MaxIDsPerRequest {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeTooManyIDs,
			fmt.Sprintf("a maximum of %d ids can be requested", MaxIDsPerRequest))
		return
	}

	includeAnswers := strings.EqualFold(r.URL.Query().Get("includeAnswers"), "true")
	reveal := includeAnswers && h.svc.RevealAllowed(r.Header.Get("X-Quiz-Secret"))

	details, err := h.svc.Details(r.Context(), ids, reveal)
	if err != nil {
		h.logger.Error().Err(err).Msg("question detail fetch failed")
		httperrors.RespondInternalError(w, "question fetch failed")
		return
	}

	w.Header().Set("Cache-Control", cacheHeader)
	w.Header().Set("X-Total-Count", strconv.Itoa(len(details)))
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(details); err != nil {
		h.logger.Error().Err(err).Msg("response encode failed")
	}
}

// BulkCreate handles POST /questions/bulk with an array body.
func (h *Handlers) BulkCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var items []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest,
			"request body must be an array of question objects")
		return
	}

	results := h.importer.Import(r.Context(), items)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(results); err != nil {
		h.logger.Error().Err(err).Msg("response encode failed")
	}
}
