package career

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// Status is the submission state of a session.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Submission is the part of a session the submit action reads and writes.
type Submission struct {
	Category  Category  `json:"category"`
	Answers   AnswerSet `json:"answers"`
	Resume    *string   `json:"resume_text"`
	Submitted bool      `json:"submitted"`
	Status    Status    `json:"status"`
	Report    *string   `json:"report"`
}

// Advisor returns generated advice for a prompt.
type Advisor interface {
	Advise(ctx context.Context, prompt string) (string, error)
}

// Event describes a submission state transition.
type Event struct {
	SessionID string
	Status    Status
	Message   string
}

// EventSink receives submission transitions. Delivery failures never
// affect the submission itself.
type EventSink interface {
	Publish(ctx context.Context, ev Event) error
}

type nopSink struct{}

func (nopSink) Publish(context.Context, Event) error { return nil }

// Submitter runs the submit action against an Advisor.
type Submitter struct {
	advisor Advisor
	events  EventSink
}

// NewSubmitter returns a Submitter. A nil sink discards events.
func NewSubmitter(advisor Advisor, events EventSink) *Submitter {
	if events == nil {
		events = nopSink{}
	}
	return &Submitter{advisor: advisor, events: events}
}

// Submit marks the submission as made, builds the prompt from the current
// answers and résumé, and stores the advice. On failure the report is cleared
// and the returned error is either ErrEmptyGeneration or a *GenerationError.
func (s *Submitter) Submit(ctx context.Context, sessionID string, sub *Submission) error {
	sub.Submitted = true
	sub.Status = StatusPending
	prompt := BuildPrompt(sub.Category, sub.Answers, sub.Resume)
	s.publish(ctx, Event{SessionID: sessionID, Status: StatusPending, Message: "analysis started"})

	text, err := s.advisor.Advise(ctx, prompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyGeneration
	}
	if err != nil {
		var genErr *GenerationError
		if !errors.Is(err, ErrEmptyGeneration) && !errors.As(err, &genErr) {
			err = &GenerationError{Err: err}
		}
		sub.Status = StatusFailed
		sub.Report = nil
		slog.Warn("career advice failed", "session_id", sessionID, "error", err)
		s.publish(ctx, Event{SessionID: sessionID, Status: StatusFailed, Message: Message(err)})
		return err
	}

	sub.Status = StatusSucceeded
	sub.Report = &text
	s.publish(ctx, Event{SessionID: sessionID, Status: StatusSucceeded, Message: "analysis completed"})
	return nil
}

func (s *Submitter) publish(ctx context.Context, ev Event) {
	if err := s.events.Publish(ctx, ev); err != nil {
		slog.Warn("failed to publish session update", "session_id", ev.SessionID, "status", ev.Status, "error", err)
	}
}
