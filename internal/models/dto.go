package models

type StartInterviewRequest struct {
	UserEmail  string `json:"user_email"`
	JobRole    string `json:"job_role"`
	Difficulty string `json:"difficulty"`
}

type StartInterviewResponse struct {
	SessionID uint   `json:"session_id"`
	Message   string `json:"message"`
}

type ChatRequest struct {
	SessionID  uint   `json:"session_id"`
	UserAnswer string `json:"user_answer"`
}

type ChatResponse struct {
	Message string `json:"message"`
}

type JobSaveRequest struct {
	UserEmail   string `json:"user_email"`
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	ApplyLink   string `json:"apply_link"`
	Platform    string `json:"platform"`
}

type AnalyzeResponse struct {
	ID           uint           `json:"id"`
	ATSScore     int            `json:"ats_score"`
	AnalysisJSON AnalysisReport `json:"analysis_json"`
	Message      string         `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
