package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"careersync/backend/internal/models"
)

type SessionRepository interface {
	Create(session *models.InterviewSession) error
	FindByID(id uint) (*models.InterviewSession, error)
	UpdateTranscript(id uint, transcript models.Transcript) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create implements SessionRepository.
func (r *sessionRepository) Create(session *models.InterviewSession) error {
	if session.History == nil {
		session.History = models.Transcript{}
	}
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create interview session: %w", err)
	}
	return nil
}

// FindByID implements SessionRepository.
func (r *sessionRepository) FindByID(id uint) (*models.InterviewSession, error) {
	var session models.InterviewSession
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find interview session: %w", err)
	}
	return &session, nil
}

// UpdateTranscript replaces the whole stored transcript in one update. The
// transcript grows append-only, so the new value always supersedes the old.
func (r *sessionRepository) UpdateTranscript(id uint, transcript models.Transcript) error {
	result := r.db.Model(&models.InterviewSession{}).
		Where("id = ?", id).
		Update("history", transcript)

	if result.Error != nil {
		return fmt.Errorf("failed to update transcript: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
