package database

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type FormSession struct {
	ID         uuid.UUID
	Payload    json.RawMessage
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResumeText []byte
	HasResume  bool
}
