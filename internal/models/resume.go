package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AnalysisReport is the structured payload the AI is asked to return for a
// resume. It is stored as a JSON document inside the resume row and rendered
// into the email report.
type AnalysisReport struct {
	ATSScore             int      `json:"ats_score"`
	Summary              string   `json:"summary"`
	BriefStrengths       []string `json:"brief_strengths"`
	BriefImprovements    []string `json:"brief_improvements"`
	DetailedStrengths    []string `json:"detailed_strengths"`
	DetailedImprovements []string `json:"detailed_improvements"`
	MissingKeywords      []string `json:"missing_keywords"`
	ImprovementPlan      []string `json:"improvement_plan"`
	MotivationalQuote    string   `json:"motivational_quote"`
}

func (r AnalysisReport) Value() (driver.Value, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis report: %w", err)
	}
	return string(data), nil
}

func (r *AnalysisReport) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*r = AnalysisReport{}
		return nil
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("unsupported analysis column type %T", value)
	}
}

type ResumeAnalysis struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"type:text;index;not null" json:"email"`
	JobRole      string         `gorm:"type:text;not null" json:"job_role"`
	RawText      string         `gorm:"type:text" json:"-"`
	ATSScore     int            `gorm:"default:0" json:"ats_score"`
	AnalysisJSON AnalysisReport `gorm:"type:jsonb" json:"analysis_json"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ResumeAnalysis) TableName() string {
	return "resumes"
}

// SearchParams is what the AI extracts from a resume to drive the
// search-by-resume flow. Never persisted.
type SearchParams struct {
	Role              string   `json:"role"`
	ExperienceLevel   string   `json:"experience_level"`
	Skills            []string `json:"skills"`
	YearsOfExperience int      `json:"years_of_experience"`
}
