package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"trivia-quiz/internal/app"
	"trivia-quiz/internal/auth"
)

// NewRouter registers the websocket endpoint and the JSON API.
func NewRouter(services *app.Services, tokens *auth.Tokens) *mux.Router {
	ws := NewWSHandler(services, tokens)
	api := NewAPIHandler(services, tokens)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	router.HandleFunc("/ws", ws.ServeWS)

	sub := router.PathPrefix("/api").Subrouter()
	sub.HandleFunc("/categories", api.Categories).Methods(http.MethodGet)
	sub.HandleFunc("/leaderboard", api.Leaderboard).Methods(http.MethodGet)
	sub.HandleFunc("/signup", api.Signup).Methods(http.MethodPost)
	sub.HandleFunc("/login", api.Login).Methods(http.MethodPost)
	sub.HandleFunc("/me", api.Me).Methods(http.MethodGet)
	return router
}
