package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type TurnRole string

const (
	RoleAI   TurnRole = "ai"
	RoleUser TurnRole = "user"
)

// Turn is a single message in an interview transcript.
type Turn struct {
	Role    TurnRole `json:"role"`
	Content string   `json:"content"`
}

// Transcript is the ordered, append-only conversation history of one
// session. It is stored as a JSON document inside the session row.
type Transcript []Turn

func (t Transcript) Value() (driver.Value, error) {
	if t == nil {
		t = Transcript{}
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transcript: %w", err)
	}
	return string(data), nil
}

func (t *Transcript) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = Transcript{}
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported transcript column type %T", value)
	}
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// NormalizeDifficulty maps empty or unknown labels to Medium.
func NormalizeDifficulty(value string) Difficulty {
	switch Difficulty(value) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(value)
	default:
		return DifficultyMedium
	}
}

type InterviewSession struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserEmail  string     `gorm:"type:text;index" json:"user_email"`
	JobRole    string     `gorm:"type:text" json:"job_role"`
	Difficulty Difficulty `gorm:"type:text" json:"difficulty"`
	History    Transcript `gorm:"type:jsonb" json:"history"`
	CreatedAt  time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (InterviewSession) TableName() string {
	return "interview_sessions"
}
