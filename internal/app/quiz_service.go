package app

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"trivia-quiz/internal/domain"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// QuizService contains the quiz use cases.
type QuizService struct {
	sessions  SessionRepository
	users     UserRepository
	questions *QuestionService
	palette   domain.Palette
	newID     func() string
}

func NewQuizService(sessions SessionRepository, users UserRepository, questions *QuestionService, palette domain.Palette) *QuizService {
	return &QuizService{
		sessions:  sessions,
		users:     users,
		questions: questions,
		palette:   palette,
		newID:     func() string { return uuid.New().String() },
	}
}

// Start fetches a question batch and presents the first question.
func (s *QuizService) Start(ctx context.Context, username, category, difficulty string) (*Session, domain.QuestionView, error) {
	if username == "" {
		return nil, domain.QuestionView{}, domain.ErrUnauthenticated
	}
	if category == "" || difficulty == "" {
		return nil, domain.QuestionView{}, domain.Invalid("please pick a category and difficulty !")
	}

	questions := s.questions.FetchQuestions(ctx, category, difficulty)
	session := NewSession(s.newID(), username, questions, s.palette)
	if session.Len() == 0 {
		return nil, domain.QuestionView{}, domain.ErrNoQuestions
	}

	view, err := session.Advance()
	if err != nil {
		return nil, domain.QuestionView{}, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, domain.QuestionView{}, fmt.Errorf("save session: %w", err)
	}
	return session, view, nil
}

// Next advances the session. It returns domain.ErrSessionExhausted after the last question.
func (s *QuizService) Next(ctx context.Context, sessionID string) (domain.QuestionView, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.QuestionView{}, err
	}
	view, advanceErr := session.Advance()
	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.QuestionView{}, fmt.Errorf("save session: %w", err)
	}
	return view, advanceErr
}

// Answer submits a slot and credits the player on a correct answer.
// When crediting fails the returned result still describes the marked slot.
func (s *QuizService) Answer(ctx context.Context, sessionID string, slotID int) (domain.AnswerResult, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	result, err := session.Submit(slotID)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	// The mark is stored before any points are credited.
	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.AnswerResult{}, fmt.Errorf("save session: %w", err)
	}

	if result.Awarded == 0 {
		return result, nil
	}
	user, err := s.users.AddPoints(ctx, session.Username(), result.Awarded)
	if err != nil {
		log.Printf("credit %d points to %s: %v", result.Awarded, session.Username(), err)
		return result, fmt.Errorf("update score: %w", err)
	}
	result.Points = user.Points
	return result, nil
}

// Abandon discards a session.
func (s *QuizService) Abandon(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}
