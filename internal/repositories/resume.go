package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"careersync/backend/internal/models"
)

type ResumeRepository interface {
	Create(resume *models.ResumeAnalysis) error
	FindByID(id uint) (*models.ResumeAnalysis, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create implements ResumeRepository.
func (r *resumeRepository) Create(resume *models.ResumeAnalysis) error {
	if err := r.db.Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume analysis: %w", err)
	}
	return nil
}

// FindByID implements ResumeRepository.
func (r *resumeRepository) FindByID(id uint) (*models.ResumeAnalysis, error) {
	var resume models.ResumeAnalysis
	if err := r.db.Where("id = ?", id).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find resume analysis: %w", err)
	}
	return &resume, nil
}
