package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"trivia-quiz/internal/domain"
)

// Controller drives one player's screens. It is not safe for concurrent use;
// a transport feeds it events one at a time.
type Controller struct {
	nav   *Navigator
	auth  *AuthService
	quiz  *QuizService
	board *LeaderboardService

	user      *domain.User
	sessionID string
}

func NewController(auth *AuthService, quiz *QuizService, board *LeaderboardService) *Controller {
	return &Controller{
		nav:   NewNavigator(),
		auth:  auth,
		quiz:  quiz,
		board: board,
	}
}

func (c *Controller) Screen() Screen { return c.nav.Current() }

// User returns the authenticated player, if any.
func (c *Controller) User() (domain.User, bool) {
	if c.user == nil {
		return domain.User{}, false
	}
	return *c.user, true
}

func (c *Controller) OpenSignup() error { return c.nav.Fire(EventOpenSignup) }

func (c *Controller) OpenLogin() error { return c.nav.Fire(EventOpenLogin) }

// Resume authenticates with an already verified identity and moves to Home.
func (c *Controller) Resume(user domain.User) error {
	if err := c.nav.Fire(EventAuthenticated); err != nil {
		return err
	}
	c.user = &user
	return nil
}

func (c *Controller) Login(ctx context.Context, username, password string) (domain.User, error) {
	if c.nav.Current() != ScreenLogin {
		return domain.User{}, c.invalid("login")
	}
	user, err := c.auth.Login(ctx, username, password)
	if err != nil {
		return domain.User{}, err
	}
	return user, c.Resume(user)
}

func (c *Controller) Signup(ctx context.Context, username, password, confirm string) (domain.User, error) {
	if c.nav.Current() != ScreenSignup {
		return domain.User{}, c.invalid("signup")
	}
	user, err := c.auth.Signup(ctx, username, password, confirm)
	if err != nil {
		return domain.User{}, err
	}
	return user, c.Resume(user)
}

// StartQuiz fetches questions and presents the first one.
func (c *Controller) StartQuiz(ctx context.Context, category, difficulty string) (domain.QuestionView, error) {
	if !c.nav.Can(EventStartQuiz) {
		return domain.QuestionView{}, c.invalid(string(EventStartQuiz))
	}
	session, view, err := c.quiz.Start(ctx, c.user.Username, category, difficulty)
	if err != nil {
		return domain.QuestionView{}, err
	}
	c.sessionID = session.ID()
	return view, c.nav.Fire(EventStartQuiz)
}

func (c *Controller) Next(ctx context.Context) (domain.QuestionView, error) {
	if c.nav.Current() != ScreenQuiz {
		return domain.QuestionView{}, c.invalid("next")
	}
	return c.quiz.Next(ctx, c.sessionID)
}

func (c *Controller) Answer(ctx context.Context, slotID int) (domain.AnswerResult, error) {
	if c.nav.Current() != ScreenQuiz {
		return domain.AnswerResult{}, c.invalid("answer")
	}
	result, err := c.quiz.Answer(ctx, c.sessionID, slotID)
	if result.Awarded > 0 && err == nil {
		c.user.Points = result.Points
	}
	return result, err
}

// Back returns to the previous screen; leaving a quiz requires confirm.
func (c *Controller) Back(ctx context.Context, confirm bool) error {
	leaving := c.nav.Current() == ScreenQuiz
	if err := c.nav.Back(confirm); err != nil {
		return err
	}
	if leaving {
		c.dropSession(ctx)
	}
	return nil
}

func (c *Controller) OpenLeaderboard(ctx context.Context) (domain.Leaderboard, error) {
	if err := c.nav.Fire(EventOpenLeaderboard); err != nil {
		return domain.Leaderboard{}, err
	}
	return c.board.Leaderboard(ctx, c.user.Username), nil
}

func (c *Controller) RefreshLeaderboard(ctx context.Context) (domain.Leaderboard, error) {
	if c.nav.Current() != ScreenLeaderboard {
		return domain.Leaderboard{}, c.invalid("refresh")
	}
	return c.board.Leaderboard(ctx, c.user.Username), nil
}

// Close releases the player's session when the connection ends.
func (c *Controller) Close(ctx context.Context) {
	c.dropSession(ctx)
}

func (c *Controller) dropSession(ctx context.Context) {
	if c.sessionID == "" {
		return
	}
	if err := c.quiz.Abandon(ctx, c.sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		log.Printf("abandon session %s: %v", c.sessionID, err)
	}
	c.sessionID = ""
}

func (c *Controller) invalid(action string) error {
	return fmt.Errorf("%w: %s on %s", domain.ErrInvalidTransition, action, c.nav.Current())
}
