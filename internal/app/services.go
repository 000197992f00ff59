package app

import "trivia-quiz/internal/domain"

// Services wires the use cases over one set of repositories.
type Services struct {
	Users       UserRepository
	Auth        *AuthService
	Quiz        *QuizService
	Leaderboard *LeaderboardService
}

func NewServices(users UserRepository, sessions SessionRepository, source QuestionSource, hasher PasswordHasher, palette domain.Palette) *Services {
	return &Services{
		Users:       users,
		Auth:        NewAuthService(users, hasher),
		Quiz:        NewQuizService(sessions, users, NewQuestionService(source), palette),
		Leaderboard: NewLeaderboardService(users),
	}
}

// NewController starts a player at the login screen.
func (s *Services) NewController() *Controller {
	return NewController(s.Auth, s.Quiz, s.Leaderboard)
}
