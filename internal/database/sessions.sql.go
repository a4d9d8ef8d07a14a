package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const deleteFormSession = `-- name: DeleteFormSession :exec
DELETE FROM form_sessions WHERE id=$1
`

func (q *Queries) DeleteFormSession(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, deleteFormSession, id)
	return err
}

const getFormSession = `-- name: GetFormSession :one
SELECT id, payload, created_at, updated_at, resume_text, has_resume FROM form_sessions WHERE id=$1
`

func (q *Queries) GetFormSession(ctx context.Context, id uuid.UUID) (FormSession, error) {
	row := q.db.QueryRowContext(ctx, getFormSession, id)
	var i FormSession
	err := row.Scan(
		&i.ID,
		&i.Payload,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.ResumeText,
		&i.HasResume,
	)
	return i, err
}

const listIdleFormSessions = `-- name: ListIdleFormSessions :many
SELECT id, payload, created_at, updated_at, resume_text, has_resume FROM form_sessions WHERE updated_at < $1
`

func (q *Queries) ListIdleFormSessions(ctx context.Context, updatedAt time.Time) ([]FormSession, error) {
	rows, err := q.db.QueryContext(ctx, listIdleFormSessions, updatedAt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FormSession
	for rows.Next() {
		var i FormSession
		if err := rows.Scan(
			&i.ID,
			&i.Payload,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.ResumeText,
			&i.HasResume,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertFormSession = `-- name: UpsertFormSession :exec
INSERT INTO form_sessions (
id, payload, resume_text, has_resume, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id)
DO UPDATE SET
    payload = EXCLUDED.payload,
    resume_text = EXCLUDED.resume_text,
    has_resume = EXCLUDED.has_resume,
    updated_at = EXCLUDED.updated_at
`

type UpsertFormSessionParams struct {
	ID         uuid.UUID
	Payload    json.RawMessage
	ResumeText []byte
	HasResume  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (q *Queries) UpsertFormSession(ctx context.Context, arg UpsertFormSessionParams) error {
	_, err := q.db.ExecContext(ctx, upsertFormSession,
		arg.ID,
		arg.Payload,
		arg.ResumeText,
		arg.HasResume,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}
