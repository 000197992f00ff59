package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/auth"
	"trivia-quiz/internal/domain"
)

// APIHandler serves the JSON endpoints used outside a websocket session.
type APIHandler struct {
	services *app.Services
	tokens   *auth.Tokens
}

func NewAPIHandler(services *app.Services, tokens *auth.Tokens) *APIHandler {
	return &APIHandler{services: services, tokens: tokens}
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type categoriesResponse struct {
	Categories   []string `json:"categories"`
	Difficulties []string `json:"difficulties"`
}

func (h *APIHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: domain.Categories, Difficulties: difficulties})
}

// Leaderboard ranks every user; ?user= highlights one row.
func (h *APIHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	board := h.services.Leaderboard.Leaderboard(r.Context(), r.URL.Query().Get("user"))
	writeJSON(w, http.StatusOK, board)
}

func (h *APIHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.Invalid("invalid request body"))
		return
	}
	user, err := h.services.Auth.Signup(r.Context(), req.Username, req.Password, req.Confirm)
	if err != nil {
		writeError(w, err)
		return
	}
	h.respondWithToken(w, http.StatusCreated, user)
}

func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.Invalid("invalid request body"))
		return
	}
	user, err := h.services.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	h.respondWithToken(w, http.StatusOK, user)
}

// Me returns the player identified by the bearer token.
func (h *APIHandler) Me(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if raw == "" {
		writeError(w, domain.ErrUnauthenticated)
		return
	}
	username, err := h.tokens.Verify(raw)
	if err != nil {
		writeError(w, err)
		return
	}
	user, err := h.services.Users.Get(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userPayload{Username: user.Username, Points: user.Points})
}

func (h *APIHandler) respondWithToken(w http.ResponseWriter, status int, user domain.User) {
	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, tokenResponse{
		Token: token,
		User:  userPayload{Username: user.Username, Points: user.Points},
	})
}
