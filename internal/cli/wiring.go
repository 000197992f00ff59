package cli

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"trivia-quiz/internal/app"
	"trivia-quiz/internal/auth"
	"trivia-quiz/internal/config"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/file"
	"trivia-quiz/internal/infra/memory"
	"trivia-quiz/internal/infra/opentdb"
	pgstore "trivia-quiz/internal/infra/postgres"
	redisstore "trivia-quiz/internal/infra/redis"
)

// loadConfig reads the YAML config, falling back to defaults when the file is absent.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("config %s not found, using defaults", path)
		return config.Default(), nil
	}
	return cfg, err
}

type stack struct {
	services *app.Services
	tokens   *auth.Tokens
	closers  []func()
}

func (r *stack) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

func buildStack(ctx context.Context, cfg config.Config) (*stack, error) {
	rt := &stack{}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rt.closers = append(rt.closers, func() { _ = redisClient.Close() })
	}

	var users app.UserRepository
	switch cfg.Store.Driver {
	case "postgres":
		if cfg.Postgres.URL == "" {
			rt.Close()
			return nil, fmt.Errorf("postgres url not configured")
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.closers = append(rt.closers, pool.Close)
		users = pgstore.NewUserStore(pool)
	case "file":
		users = file.NewUserStore(cfg.Store.Path)
	default:
		rt.Close()
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	var source app.QuestionSource = opentdb.NewClient(cfg.Trivia.BaseURL, config.TTLDuration(cfg.Trivia.Timeout, opentdb.DefaultTimeout))
	if cfg.Demo {
		source = memory.NewStaticQuestionSource(sampleQuestions())
	}
	cacheTTL := config.TTLDuration(cfg.Trivia.CacheTTL, 0)
	if redisClient != nil && cacheTTL > 0 {
		source = redisstore.NewQuestionCache(redisClient, source, cacheTTL)
	} else {
		source = memory.NewQuestionCache(source, cacheTTL)
	}

	var sessions app.SessionRepository
	if redisClient != nil {
		sessions = redisstore.NewSessionStore(redisClient, config.TTLDuration(cfg.Redis.TTL, 30*time.Minute))
	} else {
		sessions = memory.NewSessionStore()
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret = randomSecret()
		log.Printf("auth.jwt_secret not set, tokens will not survive a restart")
	}
	rt.tokens = auth.NewTokens(secret, config.TTLDuration(cfg.Auth.TokenTTL, 24*time.Hour))
	rt.services = app.NewServices(users, sessions, source, app.NewBcryptHasher(cfg.Auth.BcryptCost), cfg.Quiz.Palette)
	return rt, nil
}

func randomSecret() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// sampleQuestions backs demo mode; swap for the provider client in production.
func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			Category:         "General Knowledge",
			Type:             "multiple",
			Difficulty:       "easy",
			Question:         "Who is the author of Jurassic Park?",
			CorrectAnswer:    "Michael Crichton",
			IncorrectAnswers: []string{"Peter Benchley", "Chuck Paluhniuk", "Irvine Welsh"},
		},
		{
			Category:         "Science: Computers",
			Type:             "multiple",
			Difficulty:       "easy",
			Question:         "What does &quot;HTTP&quot; stand for?",
			CorrectAnswer:    "HyperText Transfer Protocol",
			IncorrectAnswers: []string{"HyperText Transmission Process", "High Transfer Text Protocol", "Hyperlink Text Transfer Program"},
		},
		{
			Category:         "Geography",
			Type:             "multiple",
			Difficulty:       "easy",
			Question:         "What is the capital of Australia?",
			CorrectAnswer:    "Canberra",
			IncorrectAnswers: []string{"Sydney", "Melbourne", "Perth"},
		},
	}
}
