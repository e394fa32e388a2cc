package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"careersync/backend/internal/models"
	"careersync/backend/internal/repositories"
)

const interviewTemperature = 0.3

// interviewSeedMessage stands in for real history when a session has no
// turns yet. The backing model needs at least one user turn to produce
// output, and injecting it is the protocol's job, not the model wrapper's.
const interviewSeedMessage = "I am ready for the interview. Please start."

type InterviewService interface {
	// Start creates a session and generates the opening question. On AI
	// failure the whole operation fails; the already-created row stays
	// behind with an empty transcript and is never returned to the caller.
	Start(ctx context.Context, userEmail, jobRole, difficulty string) (*models.InterviewSession, string, error)
	// Advance appends the user's answer and the AI's next question as one
	// atomic transcript update and returns the AI reply.
	Advance(ctx context.Context, sessionID uint, userAnswer string) (string, error)
	History(ctx context.Context, sessionID uint) (models.Transcript, error)
}

type interviewService struct {
	sessionRepo   repositories.SessionRepository
	gemini        GeminiService
	promptBuilder *PromptBuilder
	timeout       time.Duration

	// one mutex per session id so concurrent Advance calls on the same
	// session cannot overwrite each other's transcript
	locks sync.Map
}

func NewInterviewService(
	sessionRepo repositories.SessionRepository,
	gemini GeminiService,
	timeout time.Duration,
) InterviewService {
	return &interviewService{
		sessionRepo:   sessionRepo,
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
	}
}

// Start implements InterviewService.
func (s *interviewService) Start(ctx context.Context, userEmail, jobRole, difficulty string) (*models.InterviewSession, string, error) {
	session := &models.InterviewSession{
		UserEmail:  userEmail,
		JobRole:    jobRole,
		Difficulty: models.NormalizeDifficulty(difficulty),
		History:    models.Transcript{},
	}

	if err := s.sessionRepo.Create(session); err != nil {
		return nil, "", err
	}

	opening, err := s.generateTurn(ctx, session.JobRole, session.Difficulty, models.Transcript{})
	if err != nil {
		log.Printf("❌ AI generation failed for new session %d: %v\n", session.ID, err)
		return nil, "", fmt.Errorf("AI agent failed to open interview: %w", err)
	}

	session.History = models.Transcript{{Role: models.RoleAI, Content: opening}}
	if err := s.sessionRepo.UpdateTranscript(session.ID, session.History); err != nil {
		return nil, "", err
	}

	return session, opening, nil
}

// Advance implements InterviewService.
func (s *interviewService) Advance(ctx context.Context, sessionID uint, userAnswer string) (string, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		return "", err
	}

	// The answer is forwarded verbatim, empty strings included.
	transcript := append(models.Transcript{}, session.History...)
	transcript = append(transcript, models.Turn{Role: models.RoleUser, Content: userAnswer})

	reply, err := s.generateTurn(ctx, session.JobRole, session.Difficulty, transcript)
	if err != nil {
		// Keep the user's answer rather than failing the turn: persist a
		// canned recovery question the candidate can continue from.
		log.Printf("⚠️  AI generation failed for session %d, using fallback reply: %v\n", sessionID, err)
		reply = fmt.Sprintf("**Feedback:** I'm having a slight technical synchronization issue.\n**Next Question:** Let's proceed. Could you explain another key concept related to %s?", session.JobRole)
	}

	transcript = append(transcript, models.Turn{Role: models.RoleAI, Content: reply})

	if err := s.sessionRepo.UpdateTranscript(sessionID, transcript); err != nil {
		return "", err
	}

	return reply, nil
}

// History implements InterviewService.
func (s *interviewService) History(ctx context.Context, sessionID uint) (models.Transcript, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	return session.History, nil
}

func (s *interviewService) generateTurn(ctx context.Context, jobRole string, difficulty models.Difficulty, history models.Transcript) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if len(history) == 0 {
		history = models.Transcript{{Role: models.RoleUser, Content: interviewSeedMessage}}
	}

	systemPrompt := s.promptBuilder.BuildInterviewSystemPrompt(jobRole, string(difficulty))
	return s.gemini.GenerateChat(ctx, systemPrompt, history, interviewTemperature)
}

func (s *interviewService) sessionLock(sessionID uint) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
