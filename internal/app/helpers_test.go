package app_test

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/memory"
)

func questionBatch(n int) []domain.Question {
	out := make([]domain.Question, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.Question{
			Category:         "History",
			Type:             "multiple",
			Difficulty:       "hard",
			Question:         fmt.Sprintf("Question %d &amp; more?", i),
			CorrectAnswer:    fmt.Sprintf("right %d", i),
			IncorrectAnswers: []string{fmt.Sprintf("wrong %d a", i), fmt.Sprintf("wrong %d b", i), fmt.Sprintf("wrong %d c", i)},
		})
	}
	return out
}

type fixture struct {
	users    *memory.UserStore
	sessions *memory.SessionStore
	services *app.Services
}

func newFixture(questions []domain.Question, users ...domain.User) fixture {
	userStore := memory.NewUserStore(users...)
	sessions := memory.NewSessionStore()
	services := app.NewServices(userStore, sessions, memory.NewStaticQuestionSource(questions), app.NewBcryptHasher(bcrypt.MinCost), domain.DefaultPalette)
	return fixture{users: userStore, sessions: sessions, services: services}
}
