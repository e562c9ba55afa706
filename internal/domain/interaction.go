package domain

import "time"

type ContentType string

const (
	ContentChef ContentType = "chef"
	ContentMeal ContentType = "meal"
)

func (c ContentType) Valid() bool {
	return c == ContentChef || c == ContentMeal
}

type InteractionType string

const (
	InteractionView  InteractionType = "view"
	InteractionLike  InteractionType = "like"
	InteractionBook  InteractionType = "book"
	InteractionShare InteractionType = "share"
	InteractionSkip  InteractionType = "skip"

	// InteractionUnknown stands in for a blank type.
	InteractionUnknown InteractionType = "unknown"
)

var interactionWeights = map[InteractionType]int{
	InteractionView:  1,
	InteractionLike:  3,
	InteractionBook:  5,
	InteractionShare: 4,
}

// Weight returns the ledger weight for the interaction type.
// Types missing from the table (skip included) weigh 1.
func (t InteractionType) Weight() int {
	if w, ok := interactionWeights[t]; ok {
		return w
	}
	return 1
}

// Known reports whether t is one of view, like, book, share or skip.
func (t InteractionType) Known() bool {
	switch t {
	case InteractionView, InteractionLike, InteractionBook, InteractionShare, InteractionSkip:
		return true
	}
	return false
}

// MetricLabel folds unrecognized types into "other" so client input cannot
// grow label cardinality.
func (t InteractionType) MetricLabel() string {
	if t.Known() {
		return string(t)
	}
	return "other"
}

// InteractionEvent is an immutable ledger entry.
type InteractionEvent struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	ContentType     ContentType     `json:"content_type"`
	ContentID       int64           `json:"content_id"`
	InteractionType InteractionType `json:"interaction_type"`
	Weight          int             `json:"weight"`
	SessionID       string          `json:"session_id,omitempty"`
	DurationSeconds int             `json:"duration_seconds"`
	CreatedAt       time.Time       `json:"created_at"`
}

type TrackRequest struct {
	UserID          int64
	ContentType     ContentType
	ContentID       int64
	InteractionType InteractionType
	SessionID       string
	DurationSeconds int
}

type TrackResult struct {
	Event              *InteractionEvent
	PreferencesUpdated bool
}
