package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"careersync/backend/internal/repositories"
)

type fakeParser struct {
	text  string
	err   error
	calls int
}

func (f *fakeParser) ExtractText(content []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func newTestAnalyzer(t *testing.T, gemini *fakeGemini, parser *fakeParser) (ResumeAnalyzerService, repositories.ResumeRepository) {
	t.Helper()
	repo := repositories.NewResumeRepository(newTestDB(t))
	return NewResumeAnalyzerService(repo, gemini, parser, 3, time.Minute), repo
}

func TestAnalyzeParsesFencedJSON(t *testing.T) {
	gemini := &fakeGemini{textReply: "```json\n{\"ats_score\": 72, \"summary\": \"Solid foundation.\", \"brief_strengths\": [\"Clear project work\"]}\n```"}
	parser := &fakeParser{text: "resume text"}
	svc, repo := newTestAnalyzer(t, gemini, parser)

	resume, err := svc.Analyze(context.Background(), []byte("%PDF"), "a@b.com", "Backend Engineer")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if resume.ATSScore != 72 {
		t.Fatalf("expected ats score 72, got %d", resume.ATSScore)
	}
	if resume.AnalysisJSON.Summary != "Solid foundation." {
		t.Fatalf("unexpected summary %q", resume.AnalysisJSON.Summary)
	}

	stored, err := repo.FindByID(resume.ID)
	if err != nil {
		t.Fatalf("expected analysis persisted: %v", err)
	}
	if stored.AnalysisJSON.ATSScore != 72 || stored.RawText != "resume text" {
		t.Fatalf("stored analysis mismatch: %+v", stored)
	}
}

func TestAnalyzeMalformedJSONYieldsFallback(t *testing.T) {
	gemini := &fakeGemini{textReply: "Sorry, I cannot help with that."}
	parser := &fakeParser{text: "resume text"}
	svc, _ := newTestAnalyzer(t, gemini, parser)

	resume, err := svc.Analyze(context.Background(), []byte("%PDF"), "a@b.com", "Backend Engineer")
	if err != nil {
		t.Fatalf("expected fallback instead of error, got %v", err)
	}

	if resume.ATSScore != 0 {
		t.Fatalf("expected ats_score 0, got %d", resume.ATSScore)
	}
	if resume.AnalysisJSON.Summary != "Analysis parsing failed." {
		t.Fatalf("expected documented fallback summary, got %q", resume.AnalysisJSON.Summary)
	}
}

func TestAnalyzeEmptyTextFailsBeforeAICall(t *testing.T) {
	gemini := &fakeGemini{}
	parser := &fakeParser{err: ErrNoText}
	svc, _ := newTestAnalyzer(t, gemini, parser)

	_, err := svc.Analyze(context.Background(), []byte("%PDF"), "a@b.com", "Backend Engineer")
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
	if gemini.textCalls != 0 {
		t.Fatalf("expected no AI call for empty PDF, got %d", gemini.textCalls)
	}
}

func TestAnalyzeRateLimitYieldsQuotaFallback(t *testing.T) {
	gemini := &fakeGemini{textErr: errors.New("http 429: resource exhausted")}
	parser := &fakeParser{text: "resume text"}
	svc, _ := newTestAnalyzer(t, gemini, parser)

	resume, err := svc.Analyze(context.Background(), []byte("%PDF"), "a@b.com", "Backend Engineer")
	if err != nil {
		t.Fatalf("expected quota fallback instead of error, got %v", err)
	}
	if resume.AnalysisJSON.Summary != "Quota exhausted." {
		t.Fatalf("expected quota fallback, got %q", resume.AnalysisJSON.Summary)
	}
}

func TestAnalyzeOtherAIFailuresPropagate(t *testing.T) {
	gemini := &fakeGemini{textErr: errors.New("connection reset")}
	parser := &fakeParser{text: "resume text"}
	svc, _ := newTestAnalyzer(t, gemini, parser)

	if _, err := svc.Analyze(context.Background(), []byte("%PDF"), "a@b.com", "Backend Engineer"); err == nil {
		t.Fatalf("expected non-quota AI failure to propagate")
	}
}

func TestExtractSearchParams(t *testing.T) {
	gemini := &fakeGemini{textReply: `{"role": "Data Engineer", "experience_level": "Mid Level", "skills": ["Spark", "Airflow", "SQL"], "years_of_experience": 3}`}
	parser := &fakeParser{}
	svc, _ := newTestAnalyzer(t, gemini, parser)

	params := svc.ExtractSearchParams(context.Background(), "resume text")

	if params.Role != "Data Engineer" || len(params.Skills) != 3 {
		t.Fatalf("unexpected params %+v", params)
	}
}

func TestExtractSearchParamsFallsBackOnFailure(t *testing.T) {
	gemini := &fakeGemini{textErr: errors.New("model unavailable")}
	parser := &fakeParser{}
	svc, _ := newTestAnalyzer(t, gemini, parser)

	params := svc.ExtractSearchParams(context.Background(), "resume text")

	if params.Role != "Software Engineer" || params.ExperienceLevel != "Entry Level" {
		t.Fatalf("expected default params, got %+v", params)
	}
}

func TestExtractJSON(t *testing.T) {
	input := "Here you go:\n```json\n{\"ats_score\": 50}\n```\nGood luck!"
	got := extractJSON(input)
	if got != `{"ats_score": 50}` {
		t.Fatalf("unexpected extraction %q", got)
	}
}
