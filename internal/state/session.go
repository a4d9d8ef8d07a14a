// Package state keeps per-visitor form state between page renders.
package state

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/careerpath/internal/career"
)

// ErrNotFound is returned when a session does not exist or has ended.
var ErrNotFound = errors.New("session not found")

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeWarning NoticeLevel = "warning"
)

// Notice is a one-shot message shown on the next render.
type Notice struct {
	Level NoticeLevel `json:"level"`
	Text  string      `json:"text"`
}

// Session is everything one visitor has entered so far. The embedded
// Submission starts with no category, no answers, no résumé, no report and
// the submitted flag unset.
type Session struct {
	ID uuid.UUID `json:"id"`
	career.Submission

	ResumeName string    `json:"resume_name,omitempty"`
	ResumeKey  string    `json:"resume_key,omitempty"`
	Notices    []Notice  `json:"notices,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// New returns a fresh session.
func New() *Session {
	return &Session{
		ID: uuid.New(),
		Submission: career.Submission{
			Status: career.StatusIdle,
		},
	}
}

// SelectCategory switches the question set. Answers start over for the new
// category; résumé text and the last report are kept.
func (s *Session) SelectCategory(c career.Category) {
	if s.Category == c && s.Answers.Len() > 0 {
		return
	}
	s.Category = c
	s.Answers = career.NewAnswerSet(c)
}

// SetResume records successfully extracted résumé text.
func (s *Session) SetResume(name, text string) {
	s.ResumeName = name
	s.Resume = &text
}

// ResetResume records a failed extraction. The text becomes empty rather
// than keeping whatever an earlier upload produced.
func (s *Session) ResetResume(name string) {
	empty := ""
	s.ResumeName = name
	s.Resume = &empty
}

func (s *Session) AddNotice(level NoticeLevel, text string) {
	s.Notices = append(s.Notices, Notice{Level: level, Text: text})
}

// TakeNotices returns pending notices and clears them.
func (s *Session) TakeNotices() []Notice {
	notices := s.Notices
	s.Notices = nil
	return notices
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	c.Answers = s.Answers.Clone()
	if s.Resume != nil {
		text := *s.Resume
		c.Resume = &text
	}
	if s.Report != nil {
		report := *s.Report
		c.Report = &report
	}
	if s.Notices != nil {
		c.Notices = append([]Notice(nil), s.Notices...)
	}
	return &c
}

// Store persists sessions for their lifetime only.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	// Save inserts or replaces the session and stamps UpdatedAt.
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListIdle returns sessions not saved since cutoff.
	ListIdle(ctx context.Context, cutoff time.Time) ([]*Session, error)
	Close() error
}
