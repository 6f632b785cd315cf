package store

// TagLogic selects how a deck's inclusion tags combine.
type TagLogic string

const (
	TagLogicAny TagLogic = "ANY"
	TagLogicAll TagLogic = "ALL"
)

// Visibility gates public lookup of decks. Draft decks resolve as absent.
type Visibility string

const (
	VisibilityDraft  Visibility = "draft"
	VisibilityPublic Visibility = "public"
)

// Difficulty constants for readability.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// TypeMCQ is the default question type; non-MCQ types carry a free-text answer.
const TypeMCQ = "MCQ"

// QuestionStub is the minimal per-question index entry served by deck resolution.
type QuestionStub struct {
	ID         int64   `json:"id"`
	Difficulty string  `json:"difficulty"`
	GroupID    *string `json:"group_id"`
	TagIDs     []int64 `json:"tag_ids"`
}

// Option is a single answer choice attached to an MCQ question.
type Option struct {
	ID        int64
	Text      string
	IsCorrect bool
}

// TagRef is a populated tag association.
type TagRef struct {
	ID   int64
	Name string
}

// Question is a fully populated question row.
type Question struct {
	ID          int64
	Stem        string
	Explanation *string
	Stimulus    *string
	Type        string
	Difficulty  string
	GroupID     *string
	Answer      *string
	Options     []Option
	Tags        []TagRef
}

// Exam / Section / Topic form the fixed three-level display hierarchy.
type Exam struct {
	ID   int64
	Name string
	Slug *string
}

type Section struct {
	ID          int64
	Name        string
	DisplayName *string
	Slug        *string
	Exam        *Exam
}

type Topic struct {
	ID          int64
	Name        string
	DisplayName *string
	Slug        *string
	Section     *Section
}

// OrderedItem is one entry of a structured deck's explicit sequence. A
// "question" item references a question directly; a "group" item references
// an anchor question whose group_id is expanded to all members.
type OrderedItem struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
}

const (
	ItemKindQuestion = "question"
	ItemKindGroup    = "group"
)

// AdaptiveDeck is a rule-driven deck definition with populated associations.
type AdaptiveDeck struct {
	ID                     int64
	Slug                   string
	Title                  string
	Visibility             Visibility
	TagLogic               TagLogic
	IncludeDifficulties    []string
	BatchSize              int
	MaxQuestionsPerSession int
	RulePolicy             string
	KeepGroupsTogether     bool
	TagIDs                 []int64
	ExclusionIDs           []int64
	Topic                  *Topic
}

// StructuredDeck is an explicitly ordered deck definition.
type StructuredDeck struct {
	ID                 int64
	Slug               string
	Title              string
	Visibility         Visibility
	TagLogic           TagLogic
	KeepGroupsTogether bool
	OrderedItems       []OrderedItem
	TagIDs             []int64
	ExclusionIDs       []int64
	Topic              *Topic
}

// MCQSet is a standalone marketing/content page entity looked up by slug.
type MCQSet struct {
	ID              int64
	Slug            string
	Title           string
	Exam            string
	Section         string
	Topic           string
	Intro           *string
	ParentHubURL    *string
	CanonicalURL    *string
	TotalQuestions  int
	FreeQuestionIDs []int64
}

// Write-path records. These are the normalized shapes the content layer
// produces; stores persist them without further interpretation.

type OptionRecord struct {
	Text      string
	IsCorrect bool
}

type QuestionRecord struct {
	Stem        string
	Explanation *string
	Stimulus    *string
	Type        string
	Difficulty  string
	GroupID     *string
	Answer      *string
	Options     []OptionRecord
	TagIDs      []int64
}

type TagRecord struct {
	Name        string
	DisplayName string
}

type AdaptiveDeckRecord struct {
	Slug                   string
	Title                  string
	Visibility             Visibility
	TagLogic               TagLogic
	IncludeDifficulties    []string
	BatchSize              int
	MaxQuestionsPerSession int
	RulePolicy             string
	KeepGroupsTogether     bool
	TopicID                *int64
	TagIDs                 []int64
	ExclusionIDs           []int64
}

type StructuredDeckRecord struct {
	Slug               string
	Title              string
	Visibility         Visibility
	TagLogic           TagLogic
	KeepGroupsTogether bool
	OrderedItems       []OrderedItem
	TopicID            *int64
	TagIDs             []int64
	ExclusionIDs       []int64
}

type MCQSetRecord struct {
	Slug            string
	Title           string
	Exam            string
	Section         string
	Topic           string
	Intro           *string
	ParentHubURL    *string
	CanonicalURL    *string
	TotalQuestions  int
	FreeQuestionIDs []int64
}
