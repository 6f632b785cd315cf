package question

// OptionView is an answer choice as served to clients. IsCorrect is only
// present when the caller proved knowledge of the shared API secret.
type OptionView struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	IsCorrect *bool  `json:"is_correct,omitempty"`
}

// TagView is a populated tag reference on a question detail.
type TagView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Detail is the full question body served by the batch endpoint.
type Detail struct {
	ID          int64        `json:"id"`
	Type        string       `json:"type"`
	Difficulty  string       `json:"difficulty"`
	GroupID     *string      `json:"group_id"`
	Stem        string       `json:"stem"`
	Explanation *string      `json:"explanation"`
	Stimulus    *string      `json:"stimulus"`
	Options     []OptionView `json:"options"`
	Tags        []TagView    `json:"tags"`
}

// BulkResult reports the outcome of one bulk-import item.
type BulkResult struct {
	ID      *int64 `json:"id,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

const (
	BulkStatusOK    = "ok"
	BulkStatusError = "error"
)
