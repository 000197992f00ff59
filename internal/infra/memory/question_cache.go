package memory

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

// QuestionCache caches question batches with TTL to avoid repeated provider hits.
// Identical concurrent fetches are always collapsed into one; with a zero TTL
// nothing is kept afterwards.
type QuestionCache struct {
	source app.QuestionSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedBatch
}

type cachedBatch struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewQuestionCache(source app.QuestionSource, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedBatch),
	}
}

func (c *QuestionCache) FetchQuestions(ctx context.Context, query domain.QuestionQuery) ([]domain.Question, error) {
	key := queryKey(query)
	if questions, ok := c.lookup(key); ok {
		return questions, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if questions, ok := c.lookup(key); ok {
			return questions, nil
		}

		questions, err := c.source.FetchQuestions(ctx, query)
		if err != nil {
			return nil, err
		}

		if ttl := c.ttlWithJitter(); ttl > 0 {
			c.mu.Lock()
			c.cache[key] = cachedBatch{
				questions: questions,
				expiresAt: c.clock().Add(ttl),
			}
			c.mu.Unlock()
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *QuestionCache) lookup(key string) ([]domain.Question, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[key]
	if !ok || !entry.expiresAt.After(c.clock()) {
		return nil, false
	}
	return entry.questions, true
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

func queryKey(q domain.QuestionQuery) string {
	return fmt.Sprintf("%d:%s:%s:%d", q.CategoryID, q.Difficulty, q.Type, q.Amount)
}

// StaticQuestionSource serves a fixed question list (useful for tests/demos).
type StaticQuestionSource struct {
	questions []domain.Question
}

func NewStaticQuestionSource(questions []domain.Question) *StaticQuestionSource {
	return &StaticQuestionSource{questions: questions}
}

func (s *StaticQuestionSource) FetchQuestions(_ context.Context, query domain.QuestionQuery) ([]domain.Question, error) {
	if len(s.questions) == 0 {
		return nil, domain.ErrEmptyResult
	}
	n := query.Amount
	if n <= 0 || n > len(s.questions) {
		n = len(s.questions)
	}
	out := make([]domain.Question, n)
	copy(out, s.questions)
	return out, nil
}
