package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// basic auth for admin:password
const testAuthHeader = "Basic YWRtaW46cGFzc3dvcmQ="

func newFlowTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := database.ConnectTest()
	require.NoError(t, err)

	cfg := &config.Config{
		Port:          "8080",
		AdminUser:     "admin",
		AdminPassword: "password",
	}
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", testAuthHeader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	buf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, buf
}

func TestAuthGate(t *testing.T) {
	app := newFlowTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("WWW-Authenticate"), "Basic")

	// Wrong password is also rejected.
	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Basic YWRtaW46d3Jvbmc=")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFriendFlow(t *testing.T) {
	app := newFlowTestApp(t)

	// Two users.
	resp, body := doJSON(t, app, http.MethodPost, "/users", `{"external_id":"auth0|a","name":"Alice"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var alice models.User
	require.NoError(t, json.Unmarshal(body, &alice))

	resp, body = doJSON(t, app, http.MethodPost, "/users", `{"external_id":"auth0|b","name":"Bob"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var bob models.User
	require.NoError(t, json.Unmarshal(body, &bob))

	// Alice requests Bob; a repeat of the same direction conflicts, the
	// reverse direction would not.
	resp, _ = doJSON(t, app, http.MethodPost, "/users/1/friends/2", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/users/1/friends/2", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Bob sees the pending request; accepting as Alice fails (wrong side).
	resp, body = doJSON(t, app, http.MethodGet, "/users/2/friends/pending", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pending []models.User
	require.NoError(t, json.Unmarshal(body, &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, alice.ID, pending[0].ID)

	resp, _ = doJSON(t, app, http.MethodPost, "/users/1/friends/2/accept", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Bob accepts. Alice's friend list now has Bob; Bob's stays empty
	// because only the requester-side edge exists.
	resp, _ = doJSON(t, app, http.MethodPost, "/users/2/friends/1/accept", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/users/1/friends", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var friendsOfAlice []models.User
	require.NoError(t, json.Unmarshal(body, &friendsOfAlice))
	require.Len(t, friendsOfAlice, 1)
	assert.Equal(t, bob.ID, friendsOfAlice[0].ID)

	resp, body = doJSON(t, app, http.MethodGet, "/users/2/friends", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var friendsOfBob []models.User
	require.NoError(t, json.Unmarshal(body, &friendsOfBob))
	assert.Empty(t, friendsOfBob)

	// Removal works from either side.
	resp, _ = doJSON(t, app, http.MethodDelete, "/users/2/friends/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = doJSON(t, app, http.MethodGet, "/users/1/friends", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &friendsOfAlice))
	assert.Empty(t, friendsOfAlice)
}

func TestPostCommentOrphanFlow(t *testing.T) {
	app := newFlowTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/users", `{"external_id":"auth0|c","name":"Cara"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/posts", `{"user_id":1,"content":"hello"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post models.Post
	require.NoError(t, json.Unmarshal(body, &post))

	resp, body = doJSON(t, app, http.MethodPost, "/posts/1/comments", `{"user_id":1,"content":"nice"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var comment models.Comment
	require.NoError(t, json.Unmarshal(body, &comment))

	resp, _ = doJSON(t, app, http.MethodPost, "/posts/comments/1/replies",
		`{"user_id":1,"post_id":1,"content":"agreed"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// The post listing is flat and includes the reply alongside its parent.
	resp, body = doJSON(t, app, http.MethodGet, "/posts/1/comments", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var comments []models.Comment
	require.NoError(t, json.Unmarshal(body, &comments))
	require.Len(t, comments, 2)
	require.NotNil(t, comments[1].ParentCommentID)
	assert.Equal(t, comment.ID, *comments[1].ParentCommentID)

	// Deleting the post leaves the comments fetchable.
	resp, _ = doJSON(t, app, http.MethodDelete, "/posts/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/posts/1/comments", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &comments))
	assert.Len(t, comments, 2)
}

func TestAdminSurface(t *testing.T) {
	app := newFlowTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/admin", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var index struct {
		Tables []string `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(body, &index))
	assert.Equal(t, []string{"users", "posts", "comments", "friendships", "stories"}, index.Tables)

	resp, _ = doJSON(t, app, http.MethodPost, "/admin/users", `{"external_id":"auth0|d","name":"Dora"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/admin/users", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []models.User
	require.NoError(t, json.Unmarshal(body, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Dora", rows[0].Name)

	resp, _ = doJSON(t, app, http.MethodPut, "/admin/users/1", `{"name":"Dora II"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/admin/users/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodDelete, "/admin/users/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/admin/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// HTML rendering for browsers.
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", testAuthHeader)
	req.Header.Set("Accept", "text/html")
	htmlResp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = htmlResp.Body.Close() }()
	assert.Equal(t, http.StatusOK, htmlResp.StatusCode)
	assert.Contains(t, htmlResp.Header.Get("Content-Type"), "text/html")
}
