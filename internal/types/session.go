package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// SessionEntry records one piece of advice handed to a user.
type SessionEntry struct {
	ID        uuid.UUID   `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	UserID    string      `json:"user_id"`
	Profile   UserProfile `json:"profile"`
	Advice    string      `json:"advice"`
	Model     string      `json:"model"`
}

// Reaction is the kind of feedback a user left on a recommendation.
type Reaction string

// Reaction constants
const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
	ReactionComment Reaction = "comment"
)

// FeedbackEntry is a single reaction to a recommended role.
type FeedbackEntry struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user" validate:"required"`
	Role      string    `json:"role" validate:"required"`
	Reaction  Reaction  `json:"reaction" validate:"required,oneof=like dislike comment"`
	Text      string    `json:"text,omitempty" validate:"required_if=Reaction comment"`
}

// Validate validates the FeedbackEntry using the validator.
func (f *FeedbackEntry) Validate() error {
	validate := validator.New()
	return validate.Struct(f)
}
