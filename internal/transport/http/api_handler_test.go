package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"trivia-quiz/internal/domain"
)

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAPISignupLoginMe(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp := postJSON(t, server.URL+"/api/signup", map[string]string{"username": "ivy", "password": "pw", "confirm": "pw"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created tokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created.Token)
	require.Equal(t, "ivy", created.User.Username)

	resp = postJSON(t, server.URL+"/api/signup", map[string]string{"username": "ivy", "password": "x", "confirm": "x"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var dup errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dup))
	require.Equal(t, "Username already exists", dup.Message)

	resp = postJSON(t, server.URL+"/api/login", map[string]string{"username": "ivy", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, server.URL+"/api/login", map[string]string{"username": "ivy", "password": "pw"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+created.Token)
	me, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer me.Body.Close()
	require.Equal(t, http.StatusOK, me.StatusCode)
	var user userPayload
	require.NoError(t, json.NewDecoder(me.Body).Decode(&user))
	require.Equal(t, userPayload{Username: "ivy", Points: 0}, user)

	anon, err := http.Get(server.URL + "/api/me")
	require.NoError(t, err)
	defer anon.Body.Close()
	require.Equal(t, http.StatusUnauthorized, anon.StatusCode)
}

func TestAPILeaderboardAndCategories(t *testing.T) {
	server, _ := newTestServer(t, nil,
		domain.User{Username: "alice", Points: 20},
		domain.User{Username: "bob", Points: 40},
		domain.User{Username: "carol", Points: 20},
	)

	resp, err := http.Get(server.URL + "/api/leaderboard?user=alice")
	require.NoError(t, err)
	defer resp.Body.Close()
	var board domain.Leaderboard
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&board))
	require.Len(t, board.Entries, 3)
	require.Equal(t, "bob", board.Entries[0].Username)
	require.True(t, board.Entries[1].Current)
	require.Equal(t, "carol", board.Entries[2].Username)

	cats, err := http.Get(server.URL + "/api/categories")
	require.NoError(t, err)
	defer cats.Body.Close()
	var body categoriesResponse
	require.NoError(t, json.NewDecoder(cats.Body).Decode(&body))
	require.Len(t, body.Categories, 24)
	require.Equal(t, []string{"Easy", "Medium", "Hard"}, body.Difficulties)
}
