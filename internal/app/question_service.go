package app

import (
	"context"
	"log"

	"trivia-quiz/internal/domain"
)

// QuestionSource fetches question batches from the trivia provider (or a cache in front of it).
type QuestionSource interface {
	FetchQuestions(ctx context.Context, query domain.QuestionQuery) ([]domain.Question, error)
}

// QuestionService turns screen selections into provider queries.
type QuestionService struct {
	source QuestionSource
}

func NewQuestionService(source QuestionSource) *QuestionService {
	return &QuestionService{source: source}
}

// FetchQuestions returns up to QuestionsPerQuiz questions. Every failure is
// logged and reported as an empty result.
func (s *QuestionService) FetchQuestions(ctx context.Context, category, difficulty string) []domain.Question {
	id, ok := domain.CategoryID(category)
	if !ok {
		log.Printf("unknown category %q", category)
		return nil
	}
	level, err := domain.ParseDifficulty(difficulty)
	if err != nil {
		log.Printf("unknown difficulty %q", difficulty)
		return nil
	}

	questions, err := s.source.FetchQuestions(ctx, domain.QuestionQuery{
		Amount:     QuestionsPerQuiz,
		CategoryID: id,
		Difficulty: level,
		Type:       "multiple",
	})
	if err != nil {
		log.Printf("fetch questions: %v", err)
		return nil
	}
	return questions
}
