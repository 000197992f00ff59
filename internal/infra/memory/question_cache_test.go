package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

func TestQuestionCacheCaches(t *testing.T) {
	source := &countingSource{QuestionSource: NewStaticQuestionSource(sampleQuestions())}
	cache := NewQuestionCache(source, time.Minute)

	if _, err := cache.FetchQuestions(context.Background(), historyHard()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected source once, got %d", source.calls)
	}

	questions, err := cache.FetchQuestions(context.Background(), historyHard())
	if err != nil {
		t.Fatalf("fetch 2: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected cache hit, source calls %d", source.calls)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
}

func TestQuestionCacheZeroTTLDoesNotKeep(t *testing.T) {
	source := &countingSource{QuestionSource: NewStaticQuestionSource(sampleQuestions())}
	cache := NewQuestionCache(source, 0)

	for i := 0; i < 3; i++ {
		if _, err := cache.FetchQuestions(context.Background(), historyHard()); err != nil {
			t.Fatalf("fetch: %v", err)
		}
	}
	if source.calls != 3 {
		t.Fatalf("expected every fetch to reach the source, got %d", source.calls)
	}
}

func TestQuestionCacheExpires(t *testing.T) {
	source := &countingSource{QuestionSource: NewStaticQuestionSource(sampleQuestions())}
	cache := NewQuestionCache(source, time.Minute)
	now := time.Now()
	cache.clock = func() time.Time { return now }

	_, _ = cache.FetchQuestions(context.Background(), historyHard())
	now = now.Add(2 * time.Minute)
	_, _ = cache.FetchQuestions(context.Background(), historyHard())
	if source.calls != 2 {
		t.Fatalf("expected refetch after expiry, got %d calls", source.calls)
	}
}

func TestQuestionCacheDoesNotCacheErrors(t *testing.T) {
	source := &countingSource{QuestionSource: NewStaticQuestionSource(nil)}
	cache := NewQuestionCache(source, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := cache.FetchQuestions(context.Background(), historyHard()); !errors.Is(err, domain.ErrEmptyResult) {
			t.Fatalf("expected empty result error, got %v", err)
		}
	}
	if source.calls != 2 {
		t.Fatalf("expected errors to bypass the cache, got %d calls", source.calls)
	}
}

type countingSource struct {
	app.QuestionSource
	mu    sync.Mutex
	calls int
}

func (s *countingSource) FetchQuestions(ctx context.Context, query domain.QuestionQuery) ([]domain.Question, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.QuestionSource.FetchQuestions(ctx, query)
}

func historyHard() domain.QuestionQuery {
	return domain.QuestionQuery{Amount: 10, CategoryID: 23, Difficulty: domain.Hard, Type: "multiple"}
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			Question:         "Who is the author of Jurassic Park?",
			CorrectAnswer:    "Michael Crichton",
			IncorrectAnswers: []string{"Peter Benchley", "Chuck Paluhniuk", "Irvine Welsh"},
		},
	}
}
