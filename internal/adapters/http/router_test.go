package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/parley/internal/adapters/signal"
	"github.com/avolkov/parley/internal/app"
	"github.com/avolkov/parley/internal/config"
	"github.com/avolkov/parley/internal/core"
	"github.com/avolkov/parley/internal/domain"
	"github.com/avolkov/parley/internal/store"
)

func newTestServer(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := store.Open(filepath.Join(t.TempDir(), "parley.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		Mode:         "release",
		StaticPath:   t.TempDir(),
		Secret:       "test-secret",
		HistoryLimit: 50,
		Rooms:        []string{"devops", "sports"},
	}

	ctl := &signal.ChatWSController{
		Coordinator: app.NewPresenceCoordinator(cfg.RoomNames()),
		Hub:         core.NewBroadcastHub(),
		Messages:    db,
		ReadLimit:   32768,
		PingPeriod:  54 * time.Second,
	}

	return SetupRouter(context.Background(), cfg, ctl, db, db), db
}

func doJSON(r *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignup(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/signup",
		`{"username":"alice","firstname":"Alice","lastname":"Doe","password":"s3cret"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/signup",
		`{"username":"alice","firstname":"Alice","lastname":"Doe","password":"other"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPost, "/api/signup", `{"username":"","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginAndSession(t *testing.T) {
	r, _ := newTestServer(t)

	doJSON(r, http.MethodPost, "/api/signup",
		`{"username":"alice","firstname":"Alice","lastname":"Doe","password":"s3cret"}`)

	w := doJSON(r, http.MethodPost, "/api/login", `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/login", `{"username":"alice","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		User domain.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	assert.Equal(t, "Alice", loginResp.User.Firstname)

	res := w.Result()
	me := doJSON(r, http.MethodGet, "/api/me", "", res.Cookies()...)
	assert.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), "alice")

	anon := doJSON(r, http.MethodGet, "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, anon.Code)
}

func TestRooms(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/rooms", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Rooms []string `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"devops", "sports"}, resp.Rooms)
}

func TestRoomMessages(t *testing.T) {
	r, db := newTestServer(t)
	ctx := context.Background()

	w := doJSON(r, http.MethodGet, "/api/room-messages", "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "room param is required")

	for i := 1; i <= 60; i++ {
		require.NoError(t, db.Append(ctx, domain.Message{
			Room:     "devops",
			FromUser: "alice",
			Body:     fmt.Sprintf("msg %d", i),
			DateSent: "01-01-2023 09:00 AM",
		}))
	}

	w = doJSON(r, http.MethodGet, "/api/room-messages?room=devops", "")
	require.Equal(t, http.StatusOK, w.Code)

	var msgs []domain.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msgs))
	require.Len(t, msgs, 50)
	assert.Equal(t, "msg 11", msgs[0].Body)
	assert.Equal(t, "msg 60", msgs[49].Body)
}
