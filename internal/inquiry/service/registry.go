// Package service implements the in-memory pending-question registry.
package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/concierge-ai/concierge/internal/inquiry/domain"
	apperrors "github.com/concierge-ai/concierge/internal/platform/errors"
	"github.com/concierge-ai/concierge/internal/platform/id"
)

var (
	// ErrNotFound is returned when a question id is unknown.
	ErrNotFound = apperrors.New(apperrors.CodeQuestionNotFound, "question not found")
	// ErrAlreadyAnswered is returned when a question already has an answer.
	ErrAlreadyAnswered = apperrors.New(apperrors.CodeQuestionAlreadyAnswered, "question is already answered")
)

// Registry owns the id-keyed question store for the lifetime of the process.
// Questions are never deleted; answered ones remain as an audit log. The
// mutex serializes Respond so each question is answered at most once.
type Registry struct {
	mu          sync.Mutex
	questions   map[string]*domain.Question
	order       []string // insertion order
	preferences map[string]string
	clock       func() time.Time
	newID       func() (string, error)
}

// NewRegistry creates an empty question registry.
func NewRegistry() *Registry {
	return &Registry{
		questions:   make(map[string]*domain.Question),
		preferences: make(map[string]string),
		clock:       time.Now,
		newID:       id.NewID,
	}
}

// AskClarifying records a clarifying question.
func (r *Registry) AskClarifying(question, context string, required bool) (domain.Question, error) {
	if question == "" {
		return domain.Question{}, domain.ErrEmptyText
	}
	return r.store(domain.Question{
		Kind:     domain.KindClarifying,
		Text:     question,
		Context:  context,
		Required: required,
	})
}

// AskPersonalInfo records a personal-information request. The question text
// is synthesized from the info type and purpose.
func (r *Registry) AskPersonalInfo(infoType, purpose string, required bool) (domain.Question, error) {
	if infoType == "" {
		return domain.Question{}, domain.ErrEmptyText
	}
	return r.store(domain.Question{
		Kind:     domain.KindPersonalInfo,
		Text:     domain.PersonalInfoText(infoType, purpose),
		Context:  fmt.Sprintf("Personal information request: %s", infoType),
		InfoType: infoType,
		Required: required,
	})
}

// AskPreference records a preference question with its ordered options.
func (r *Registry) AskPreference(preferenceType string, options []string, context string) (domain.Question, error) {
	if preferenceType == "" {
		return domain.Question{}, domain.ErrEmptyText
	}
	if len(options) == 0 {
		return domain.Question{}, domain.ErrEmptyOptions
	}
	return r.store(domain.Question{
		Kind:       domain.KindPreference,
		Text:       fmt.Sprintf("What is your preference for %s?", preferenceType),
		Context:    context,
		Preference: preferenceType,
		Options:    append([]string(nil), options...),
		Required:   true,
	})
}

// AskConfirmation records a confirmation request for an action.
func (r *Registry) AskConfirmation(action, details, consequences string) (domain.Question, error) {
	if action == "" {
		return domain.Question{}, domain.ErrEmptyText
	}
	return r.store(domain.Question{
		Kind:         domain.KindConfirmation,
		Text:         fmt.Sprintf("Please confirm: %s", action),
		Context:      details,
		Action:       action,
		Consequences: consequences,
		Required:     true,
	})
}

// Respond records the answer to a question. A question is answerable at most
// once; preference answers must be among the recorded options. The returned
// question is the now-immutable answered record.
func (r *Registry) Respond(questionID, answer string) (domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.questions[questionID]
	if !ok {
		return domain.Question{}, ErrNotFound
	}
	if q.Answered {
		return domain.Question{}, ErrAlreadyAnswered
	}
	if q.Kind == domain.KindPreference && !q.HasOption(answer) {
		return domain.Question{}, apperrors.WithMetadata(
			apperrors.CodeQuestionUnknownOption,
			fmt.Sprintf("answer %q is not among the offered options", answer),
			map[string]string{"answer": answer},
		)
	}

	q.Answered = true
	q.Answer = answer
	q.AnsweredAt = r.clock().UTC()
	if q.Kind == domain.KindPreference {
		r.preferences[q.Preference] = answer
	}
	return *q, nil
}

// Get returns a question by id.
func (r *Registry) Get(questionID string) (domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.questions[questionID]
	if !ok {
		return domain.Question{}, ErrNotFound
	}
	return *q, nil
}

// ListPending returns unanswered questions in insertion order.
func (r *Registry) ListPending() []domain.Question {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Question, 0, len(r.order))
	for _, questionID := range r.order {
		q := r.questions[questionID]
		if q.Answered {
			continue
		}
		out = append(out, *q)
	}
	return out
}

// Preferences returns the answers collected from preference questions,
// keyed by preference type.
func (r *Registry) Preferences() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]string, len(r.preferences))
	for k, v := range r.preferences {
		out[k] = v
	}
	return out
}

func (r *Registry) store(q domain.Question) (domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	questionID, err := r.newID()
	if err != nil {
		return domain.Question{}, fmt.Errorf("generate question id: %w", err)
	}
	q.ID = questionID
	q.AskedAt = r.clock().UTC()

	stored := q
	r.questions[questionID] = &stored
	r.order = append(r.order, questionID)
	return q, nil
}
