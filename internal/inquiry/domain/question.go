// Package domain defines pending questions raised by the assistant toward
// the user: clarifications, personal-information requests, preferences, and
// confirmations.
package domain

import (
	"fmt"
	"time"

	apperrors "github.com/concierge-ai/concierge/internal/platform/errors"
)

// Kind classifies a pending question.
type Kind string

const (
	KindClarifying   Kind = "clarifying"
	KindPersonalInfo Kind = "personal_info"
	KindPreference   Kind = "preference"
	KindConfirmation Kind = "confirmation"
)

var (
	// ErrEmptyText rejects questions without text.
	ErrEmptyText = apperrors.New(apperrors.CodeQuestionEmptyText, "question text is required")
	// ErrEmptyOptions rejects preference questions without options.
	ErrEmptyOptions = apperrors.New(apperrors.CodeQuestionEmptyOptions, "preference question requires at least one option")
)

// Question is a recorded request toward the user. Once answered it becomes
// immutable and serves as an audit log entry of what was asked and answered.
type Question struct {
	ID           string
	Kind         Kind
	Text         string
	Context      string
	InfoType     string   // personal_info only
	Preference   string   // preference only: what the preference is about
	Options      []string // preference only, ordered
	Required     bool
	Action       string // confirmation only
	Consequences string // confirmation only
	AskedAt      time.Time
	Answered     bool
	Answer       string
	AnsweredAt   time.Time
}

// personalInfoQuestions maps well-known info types to canned phrasings.
var personalInfoQuestions = map[string]string{
	"name":     "What is your full name?",
	"email":    "What is your email address?",
	"phone":    "What is your phone number?",
	"address":  "What is your address?",
	"birthday": "What is your date of birth?",
}

// PersonalInfoText synthesizes the question text for a personal-information
// request from the info type and purpose.
func PersonalInfoText(infoType, purpose string) string {
	text, ok := personalInfoQuestions[infoType]
	if !ok {
		text = fmt.Sprintf("Please provide your %s", infoType)
	}
	if purpose != "" {
		text = fmt.Sprintf("%s (needed for: %s)", text, purpose)
	}
	return text
}

// HasOption reports whether answer is among the recorded options.
func (q Question) HasOption(answer string) bool {
	for _, opt := range q.Options {
		if opt == answer {
			return true
		}
	}
	return false
}
