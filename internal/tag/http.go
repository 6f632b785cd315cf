package tag

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/quiz-cms/pkg/http/errors"
)

// Handlers exposes the tag bulk import endpoint.
type Handlers struct {
	importer *Importer
	logger   zerolog.Logger
}

func NewHandlers(importer *Importer, logger zerolog.Logger) *Handlers {
	return &Handlers{
		importer: importer,
		logger:   logger.With().Str("component", "tag_http").Logger(),
	}
}

// BulkCreate handles POST /tags/bulk with an array body.
func (h *Handlers) BulkCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var items []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest,
			"request body must be an array of tag objects")
		return
	}

	results := h.importer.Import(r.Context(), items)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(results); err != nil {
		h.logger.Error().Err(err).Msg("response encode failed")
	}
}
