package models

import "time"

type SavedJob struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserEmail   string    `gorm:"type:text;index" json:"user_email"`
	Title       string    `gorm:"type:text" json:"title"`
	CompanyName string    `gorm:"type:text" json:"company_name"`
	Location    string    `gorm:"type:text" json:"location"`
	ApplyLink   string    `gorm:"type:text" json:"apply_link"`
	Platform    string    `gorm:"type:text" json:"platform"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (SavedJob) TableName() string {
	return "saved_jobs"
}

// JobResult is the normalized shape every search result is mapped into,
// including the synthetic error item returned on upstream failure.
type JobResult struct {
	JobID       string `json:"job_id,omitempty"`
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Salary      string `json:"salary"`
	JobType     string `json:"job_type"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	PostedAt    string `json:"posted_at"`
	ApplyLink   string `json:"apply_link"`
	Platform    string `json:"platform"`
	IsVerified  bool   `json:"is_verified"`
}
