package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/muhammadolammi/careerpath/internal/database"
)

// PostgresStore keeps sessions in the form_sessions table so several
// server instances can share them.
type PostgresStore struct {
	db  *sql.DB
	q   *database.Queries
	now func() time.Time
}

// OpenPostgres connects, pings and applies the schema.
func OpenPostgres(ctx context.Context, dbURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("error opening db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresStore{db: db, q: database.New(db), now: time.Now}, nil
}

func (p *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	row, err := p.q.GetFormSession(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	return decodeSession(row)
}

func (p *PostgresStore) Save(ctx context.Context, s *Session) error {
	now := p.now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	params, err := encodeSession(s)
	if err != nil {
		return err
	}
	if err := p.q.UpsertFormSession(ctx, params); err != nil {
		return fmt.Errorf("failed to save session %s: %w", s.ID, err)
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := p.q.DeleteFormSession(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

func (p *PostgresStore) ListIdle(ctx context.Context, cutoff time.Time) ([]*Session, error) {
	rows, err := p.q.ListIdleFormSessions(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list idle sessions: %w", err)
	}
	sessions := make([]*Session, 0, len(rows))
	for _, row := range rows {
		s, err := decodeSession(row)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}

// encodeSession splits a session into its JSONB payload and the raw résumé
// bytes. Extracted text may hold NUL or invalid UTF-8, which JSONB would
// reject or rewrite, so it goes to a BYTEA column instead.
func encodeSession(s *Session) (database.UpsertFormSessionParams, error) {
	params := database.UpsertFormSessionParams{
		ID:         s.ID,
		ResumeText: []byte{},
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	if s.Resume != nil {
		params.ResumeText = []byte(*s.Resume)
		params.HasResume = true
	}

	body := s.Clone()
	body.Resume = nil
	payload, err := json.Marshal(body)
	if err != nil {
		return params, fmt.Errorf("failed to marshal session: %w", err)
	}
	params.Payload = payload
	return params, nil
}

func decodeSession(row database.FormSession) (*Session, error) {
	var s Session
	if err := json.Unmarshal(row.Payload, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", row.ID, err)
	}
	s.ID = row.ID
	s.CreatedAt = row.CreatedAt
	s.UpdatedAt = row.UpdatedAt
	s.Resume = nil
	if row.HasResume {
		text := string(row.ResumeText)
		s.Resume = &text
	}
	return &s, nil
}
