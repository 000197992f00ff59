package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"trivia-quiz/internal/app"
	"trivia-quiz/internal/auth"
	"trivia-quiz/internal/domain"
)

type WSHandler struct {
	services *app.Services
	tokens   *auth.Tokens
	upgrader websocket.Upgrader
}

func NewWSHandler(services *app.Services, tokens *auth.Tokens) *WSHandler {
	return &WSHandler{
		services: services,
		tokens:   tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

type startPayload struct {
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

type answerPayload struct {
	Slot int `json:"slot"`
}

type backPayload struct {
	Confirm bool `json:"confirm"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type userPayload struct {
	Username string `json:"username"`
	Points   int    `json:"points"`
}

type screenPayload struct {
	Screen       app.Screen   `json:"screen"`
	User         *userPayload `json:"user,omitempty"`
	Categories   []string     `json:"categories,omitempty"`
	Difficulties []string     `json:"difficulties,omitempty"`
}

type noticePayload struct {
	Message      string `json:"message"`
	NextDisabled bool   `json:"nextDisabled,omitempty"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var difficulties = []string{"Easy", "Medium", "Hard"}

// ServeWS upgrades HTTP requests to websockets and drives one player's screens.
// A valid ?token= skips the login screen.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctl := h.services.NewController()
	if raw := r.URL.Query().Get("token"); raw != "" {
		user, err := h.resume(r.Context(), raw)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := ctl.Resume(user); err != nil {
			writeError(w, err)
			return
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	defer ctl.Close(context.Background())

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	send <- screenMessage(ctl)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		for _, msg := range h.handle(r.Context(), ctl, inbound) {
			select {
			case send <- msg:
			case <-writerDone:
			}
		}
	}

	close(send)
	<-writerDone
}

func (h *WSHandler) resume(ctx context.Context, raw string) (domain.User, error) {
	username, err := h.tokens.Verify(raw)
	if err != nil {
		return domain.User{}, err
	}
	user, err := h.services.Users.Get(ctx, username)
	if err != nil {
		return domain.User{}, domain.ErrUnauthenticated
	}
	return user, nil
}

// handle applies one client event and returns the messages to render.
func (h *WSHandler) handle(ctx context.Context, ctl *app.Controller, in inboundMessage) []outboundMessage[any] {
	switch in.Type {
	case "openSignup":
		if err := ctl.OpenSignup(); err != nil {
			return one(errorMessage(err))
		}
		return one(screenMessage(ctl))

	case "openLogin":
		if err := ctl.OpenLogin(); err != nil {
			return one(errorMessage(err))
		}
		return one(screenMessage(ctl))

	case "login", "signup":
		var payload credentialsPayload
		if err := decode(in.Payload, &payload); err != nil {
			return one(errorMessage(err))
		}
		var err error
		if in.Type == "login" {
			_, err = ctl.Login(ctx, payload.Username, payload.Password)
		} else {
			_, err = ctl.Signup(ctx, payload.Username, payload.Password, payload.Confirm)
		}
		if err != nil {
			return one(errorMessage(err))
		}
		return one(screenMessage(ctl))

	case "startQuiz":
		var payload startPayload
		if err := decode(in.Payload, &payload); err != nil {
			return one(errorMessage(err))
		}
		view, err := ctl.StartQuiz(ctx, payload.Category, payload.Difficulty)
		if err != nil {
			return one(errorMessage(err))
		}
		return []outboundMessage[any]{screenMessage(ctl), {Type: "question", Payload: view}}

	case "next":
		view, err := ctl.Next(ctx)
		if errors.Is(err, domain.ErrSessionExhausted) {
			return one(outboundMessage[any]{Type: "exhausted", Payload: noticePayload{
				Message:      domain.NoticeExhausted,
				NextDisabled: true,
			}})
		}
		if err != nil {
			return one(errorMessage(err))
		}
		return one(outboundMessage[any]{Type: "question", Payload: view})

	case "answer":
		var payload answerPayload
		if err := decode(in.Payload, &payload); err != nil {
			return one(errorMessage(err))
		}
		result, err := ctl.Answer(ctx, payload.Slot)
		if result.Slot.ID == 0 {
			return one(errorMessage(err))
		}
		msgs := []outboundMessage[any]{{Type: "answerResult", Payload: result}}
		if err != nil {
			msgs = append(msgs, errorMessage(err))
		}
		return msgs

	case "back":
		var payload backPayload
		if err := decode(in.Payload, &payload); err != nil {
			return one(errorMessage(err))
		}
		err := ctl.Back(ctx, payload.Confirm)
		if errors.Is(err, domain.ErrConfirmationRequired) {
			return one(outboundMessage[any]{Type: "confirm", Payload: noticePayload{Message: domain.NoticeQuitPrompt}})
		}
		if err != nil {
			return one(errorMessage(err))
		}
		return one(screenMessage(ctl))

	case "openLeaderboard":
		board, err := ctl.OpenLeaderboard(ctx)
		if err != nil {
			return one(errorMessage(err))
		}
		return []outboundMessage[any]{screenMessage(ctl), {Type: "leaderboard", Payload: board}}

	case "refreshLeaderboard":
		board, err := ctl.RefreshLeaderboard(ctx)
		if err != nil {
			return one(errorMessage(err))
		}
		return one(outboundMessage[any]{Type: "leaderboard", Payload: board})

	default:
		return one(outboundMessage[any]{Type: "error", Payload: errorPayload{Code: "unsupported", Message: "unsupported message type"}})
	}
}

func screenMessage(ctl *app.Controller) outboundMessage[any] {
	payload := screenPayload{Screen: ctl.Screen()}
	if user, ok := ctl.User(); ok {
		payload.User = &userPayload{Username: user.Username, Points: user.Points}
	}
	if payload.Screen == app.ScreenHome {
		payload.Categories = domain.Categories
		payload.Difficulties = difficulties
	}
	return outboundMessage[any]{Type: "screen", Payload: payload}
}

func errorMessage(err error) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{
		Code:    errorCode(err),
		Message: domain.UserMessage(err),
	}}
}

func one(msg outboundMessage[any]) []outboundMessage[any] {
	return []outboundMessage[any]{msg}
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return domain.Invalid("invalid payload")
	}
	return nil
}
