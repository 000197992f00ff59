package http

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"
	"trivia-quiz/internal/app"
	"trivia-quiz/internal/auth"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/memory"
)

type received struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func newTestServer(t *testing.T, questions []domain.Question, users ...domain.User) (*httptest.Server, *auth.Tokens) {
	t.Helper()
	services := app.NewServices(
		memory.NewUserStore(users...),
		memory.NewSessionStore(),
		memory.NewStaticQuestionSource(questions),
		app.NewBcryptHasher(bcrypt.MinCost),
		domain.DefaultPalette,
	)
	tokens := auth.NewTokens("test-secret", time.Hour)
	server := httptest.NewServer(NewRouter(services, tokens))
	t.Cleanup(server.Close)
	return server, tokens
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": typ, "payload": payload}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readNext[T any](t *testing.T, conn *websocket.Conn, expect string) T {
	t.Helper()
	var msg received
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if msg.Type != expect {
		t.Fatalf("expected type %s, got %s (%s)", expect, msg.Type, msg.Payload)
	}
	var payload T
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatalf("decode %s payload: %v", expect, err)
	}
	return payload
}

func sampleQuestions(n int) []domain.Question {
	out := make([]domain.Question, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.Question{
			Category:         "Geography",
			Type:             "multiple",
			Difficulty:       "easy",
			Question:         fmt.Sprintf("Capital number %d?", i),
			CorrectAnswer:    fmt.Sprintf("yes %d", i),
			IncorrectAnswers: []string{"no a", "no b", "no c"},
		})
	}
	return out
}

func TestWebSocketQuizFlow(t *testing.T) {
	server, _ := newTestServer(t, sampleQuestions(10))
	conn := dial(t, server, "")

	if s := readNext[screenPayload](t, conn, "screen"); s.Screen != app.ScreenLogin {
		t.Fatalf("expected login screen, got %s", s.Screen)
	}

	send(t, conn, "openSignup", nil)
	readNext[screenPayload](t, conn, "screen")
	send(t, conn, "signup", map[string]string{"username": "gina", "password": "pw", "confirm": "nope"})
	if e := readNext[errorPayload](t, conn, "error"); e.Message != "Passwords do not match" {
		t.Fatalf("unexpected error %+v", e)
	}
	send(t, conn, "signup", map[string]string{"username": "gina", "password": "pw", "confirm": "pw"})
	home := readNext[screenPayload](t, conn, "screen")
	if home.Screen != app.ScreenHome || home.User == nil || home.User.Username != "gina" {
		t.Fatalf("unexpected home screen %+v", home)
	}
	if len(home.Categories) != 24 || len(home.Difficulties) != 3 {
		t.Fatalf("home should list choices, got %d categories", len(home.Categories))
	}

	send(t, conn, "startQuiz", map[string]string{"category": "", "difficulty": "Easy"})
	if e := readNext[errorPayload](t, conn, "error"); e.Code != "validation" {
		t.Fatalf("expected validation error, got %+v", e)
	}

	send(t, conn, "startQuiz", map[string]string{"category": "Geography", "difficulty": "Easy"})
	readNext[screenPayload](t, conn, "screen")
	view := readNext[domain.QuestionView](t, conn, "question")
	if view.Number != 1 || len(view.Slots) != 4 {
		t.Fatalf("unexpected first question %+v", view)
	}

	right := 0
	for _, s := range view.Slots {
		if s.Text == "yes 1" {
			right = s.ID
		}
	}
	send(t, conn, "answer", map[string]int{"slot": right})
	result := readNext[domain.AnswerResult](t, conn, "answerResult")
	if !result.Correct || result.Points != 10 || result.Slot.Color != "green" {
		t.Fatalf("unexpected answer result %+v", result)
	}
	send(t, conn, "answer", map[string]int{"slot": right})
	if e := readNext[errorPayload](t, conn, "error"); e.Code != "slot_locked" {
		t.Fatalf("expected locked slot, got %+v", e)
	}

	for i := 2; i <= 10; i++ {
		send(t, conn, "next", nil)
		if q := readNext[domain.QuestionView](t, conn, "question"); q.Number != i {
			t.Fatalf("expected question %d, got %d", i, q.Number)
		}
	}
	send(t, conn, "next", nil)
	notice := readNext[noticePayload](t, conn, "exhausted")
	if notice.Message != domain.NoticeExhausted || !notice.NextDisabled {
		t.Fatalf("unexpected exhausted notice %+v", notice)
	}

	send(t, conn, "back", map[string]bool{"confirm": false})
	if c := readNext[noticePayload](t, conn, "confirm"); c.Message != domain.NoticeQuitPrompt {
		t.Fatalf("unexpected confirm prompt %+v", c)
	}
	send(t, conn, "back", map[string]bool{"confirm": true})
	if s := readNext[screenPayload](t, conn, "screen"); s.Screen != app.ScreenHome || s.User.Points != 10 {
		t.Fatalf("expected home with 10 points, got %+v", s)
	}

	send(t, conn, "openLeaderboard", nil)
	readNext[screenPayload](t, conn, "screen")
	board := readNext[domain.Leaderboard](t, conn, "leaderboard")
	if len(board.Entries) != 1 || board.Entries[0].Username != "gina" || !board.Entries[0].Current {
		t.Fatalf("unexpected leaderboard %+v", board)
	}
	send(t, conn, "refreshLeaderboard", nil)
	readNext[domain.Leaderboard](t, conn, "leaderboard")

	send(t, conn, "dance", nil)
	if e := readNext[errorPayload](t, conn, "error"); e.Code != "unsupported" {
		t.Fatalf("expected unsupported, got %+v", e)
	}
}

func TestWebSocketTokenResumesAtHome(t *testing.T) {
	server, tokens := newTestServer(t, sampleQuestions(1), domain.User{Username: "hana", Password: "pw", Points: 40})
	token, err := tokens.Issue("hana")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	conn := dial(t, server, "?token="+token)

	s := readNext[screenPayload](t, conn, "screen")
	if s.Screen != app.ScreenHome || s.User == nil || s.User.Points != 40 {
		t.Fatalf("expected resumed home screen, got %+v", s)
	}
}

func TestWebSocketRejectsBadToken(t *testing.T) {
	server, _ := newTestServer(t, nil)
	u := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=garbage"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	if err == nil {
		t.Fatalf("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != 401 {
		t.Fatalf("expected 401, got %+v", resp)
	}
}
