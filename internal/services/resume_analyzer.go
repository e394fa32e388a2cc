package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"careersync/backend/internal/models"
	"careersync/backend/internal/repositories"
)

const analysisTemperature = 0.3

type ResumeAnalyzerService interface {
	// Analyze extracts text from the PDF, scores it with the AI and
	// persists the result. Returns ErrNoText when the PDF has no
	// extractable text. AI parse failures and rate limits degrade to fixed
	// fallback reports instead of erroring.
	Analyze(ctx context.Context, pdfContent []byte, email, jobRole string) (*models.ResumeAnalysis, error)
	// ExtractSearchParams distills a resume into job search parameters.
	// Always returns usable params; AI failures degrade to defaults.
	ExtractSearchParams(ctx context.Context, resumeText string) models.SearchParams
}

type resumeAnalyzerService struct {
	resumeRepo    repositories.ResumeRepository
	gemini        GeminiService
	pdfParser     PDFParserService
	promptBuilder *PromptBuilder
	maxRetries    int
	timeout       time.Duration
}

func NewResumeAnalyzerService(
	resumeRepo repositories.ResumeRepository,
	gemini GeminiService,
	pdfParser PDFParserService,
	maxRetries int,
	timeout time.Duration,
) ResumeAnalyzerService {
	return &resumeAnalyzerService{
		resumeRepo:    resumeRepo,
		gemini:        gemini,
		pdfParser:     pdfParser,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		timeout:       timeout,
	}
}

// Analyze implements ResumeAnalyzerService.
func (s *resumeAnalyzerService) Analyze(ctx context.Context, pdfContent []byte, email, jobRole string) (*models.ResumeAnalysis, error) {
	text, err := s.pdfParser.ExtractText(pdfContent)
	if err != nil {
		return nil, err
	}

	report, err := s.analyzeText(ctx, text, jobRole)
	if err != nil {
		return nil, err
	}

	resume := &models.ResumeAnalysis{
		Email:        email,
		JobRole:      jobRole,
		RawText:      text,
		ATSScore:     report.ATSScore,
		AnalysisJSON: report,
	}

	if err := s.resumeRepo.Create(resume); err != nil {
		return nil, err
	}

	return resume, nil
}

func (s *resumeAnalyzerService) analyzeText(ctx context.Context, resumeText, jobRole string) (models.AnalysisReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := s.promptBuilder.BuildResumeAnalysisPrompt(CleanText(resumeText), jobRole)

	response, err := s.gemini.GenerateTextWithRetry(ctx, prompt, analysisTemperature, s.maxRetries)
	if err != nil {
		// Rate limits degrade gracefully, everything else is reported
		if strings.Contains(err.Error(), "429") {
			log.Printf("⚠️  Gemini quota exhausted, returning degraded report: %v\n", err)
			return quotaExceededReport(), nil
		}
		return models.AnalysisReport{}, fmt.Errorf("AI analysis failed: %w", err)
	}

	var report models.AnalysisReport
	if err := parseJSONResponse(response, &report); err != nil {
		log.Printf("⚠️  Failed to parse analysis response, using fallback: %v\n", err)
		return parseFailureReport(), nil
	}

	return report, nil
}

// ExtractSearchParams implements ResumeAnalyzerService.
func (s *resumeAnalyzerService) ExtractSearchParams(ctx context.Context, resumeText string) models.SearchParams {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := s.promptBuilder.BuildSearchParamsPrompt(CleanText(resumeText))

	fallback := models.SearchParams{
		Role:            "Software Engineer",
		ExperienceLevel: "Entry Level",
	}

	response, err := s.gemini.GenerateText(ctx, prompt, analysisTemperature)
	if err != nil {
		log.Printf("⚠️  Search param extraction failed, using defaults: %v\n", err)
		return fallback
	}

	var params models.SearchParams
	if err := parseJSONResponse(response, &params); err != nil {
		log.Printf("⚠️  Failed to parse search params, using defaults: %v\n", err)
		return fallback
	}

	if params.Role == "" {
		params.Role = fallback.Role
	}

	return params
}

func quotaExceededReport() models.AnalysisReport {
	return models.AnalysisReport{
		ATSScore:          0,
		Summary:           "Quota exhausted.",
		BriefImprovements: []string{"API Quota Exceeded"},
		ImprovementPlan:   []string{"Wait 60 seconds and try again."},
	}
}

func parseFailureReport() models.AnalysisReport {
	return models.AnalysisReport{
		ATSScore:        0,
		Summary:         "Analysis parsing failed.",
		BriefStrengths:  []string{"Review your PDF formatting"},
		ImprovementPlan: []string{"Contact support or try another PDF."},
	}
}

func parseJSONResponse(response string, target interface{}) error {
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or
// other formatting around the object the model was asked for.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
