package app

import (
	"fmt"

	"trivia-quiz/internal/domain"
)

// Screen is one navigator state.
type Screen string

const (
	ScreenLogin       Screen = "login"
	ScreenSignup      Screen = "signup"
	ScreenHome        Screen = "home"
	ScreenQuiz        Screen = "quiz"
	ScreenLeaderboard Screen = "leaderboard"
)

// Event triggers a screen transition.
type Event string

const (
	EventOpenSignup      Event = "openSignup"
	EventOpenLogin       Event = "openLogin"
	EventAuthenticated   Event = "authenticated"
	EventStartQuiz       Event = "startQuiz"
	EventOpenLeaderboard Event = "openLeaderboard"
	EventBack            Event = "back"
)

var transitions = map[Screen]map[Event]Screen{
	ScreenLogin: {
		EventOpenSignup:    ScreenSignup,
		EventAuthenticated: ScreenHome,
	},
	ScreenSignup: {
		EventOpenLogin:     ScreenLogin,
		EventAuthenticated: ScreenHome,
	},
	ScreenHome: {
		EventStartQuiz:       ScreenQuiz,
		EventOpenLeaderboard: ScreenLeaderboard,
	},
	ScreenQuiz: {
		EventBack: ScreenHome,
	},
	ScreenLeaderboard: {
		EventBack: ScreenHome,
	},
}

// Transition is the navigator's transition function.
func Transition(from Screen, ev Event) (Screen, error) {
	if to, ok := transitions[from][ev]; ok {
		return to, nil
	}
	return from, fmt.Errorf("%w: %s on %s", domain.ErrInvalidTransition, ev, from)
}

// Navigator tracks the current screen of one player.
type Navigator struct {
	current Screen
}

func NewNavigator() *Navigator {
	return &Navigator{current: ScreenLogin}
}

func (n *Navigator) Current() Screen { return n.current }

// Can reports whether ev is defined on the current screen.
func (n *Navigator) Can(ev Event) bool {
	_, err := Transition(n.current, ev)
	return err == nil
}

func (n *Navigator) Fire(ev Event) error {
	to, err := Transition(n.current, ev)
	if err != nil {
		return err
	}
	n.current = to
	return nil
}

// Back leaves the current screen. Leaving a quiz needs confirmation.
func (n *Navigator) Back(confirmed bool) error {
	if n.current == ScreenQuiz && !confirmed {
		return domain.ErrConfirmationRequired
	}
	return n.Fire(EventBack)
}
