package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"careersync/backend/internal/models"
)

type JobRepository interface {
	// Save stores the job unless the same (user_email, title, company_name)
	// already exists. Returns true when a new row was created.
	Save(job *models.SavedJob) (bool, error)
	FindByEmail(userEmail string) ([]models.SavedJob, error)
	DeleteByID(id uint) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Save implements JobRepository.
func (r *jobRepository) Save(job *models.SavedJob) (bool, error) {
	var existing models.SavedJob
	err := r.db.
		Where("user_email = ? AND title = ? AND company_name = ?",
			job.UserEmail, job.Title, job.CompanyName).
		First(&existing).Error

	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to check saved job: %w", err)
	}

	if err := r.db.Create(job).Error; err != nil {
		return false, fmt.Errorf("failed to save job: %w", err)
	}
	return true, nil
}

// FindByEmail implements JobRepository.
func (r *jobRepository) FindByEmail(userEmail string) ([]models.SavedJob, error) {
	var jobs []models.SavedJob
	if err := r.db.
		Where("user_email = ?", userEmail).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}
	return jobs, nil
}

// DeleteByID implements JobRepository.
func (r *jobRepository) DeleteByID(id uint) error {
	result := r.db.Delete(&models.SavedJob{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete saved job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
