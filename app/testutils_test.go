package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

// recordingProducer keeps every published message instead of sending it to a broker.
type recordingProducer struct {
	mu   sync.Mutex
	msgs [][]byte
}

func (p *recordingProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *recordingProducer) published() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([][]byte(nil), p.msgs...)
}

func (e envelope) JSON() string {
	json, err := json.MarshalIndent(e, "", "\t")
	if err != nil {
		return ""
	}

	return string(json)
}

// readResponse decodes the JSON body of res. Empty bodies decode to a nil envelope.
func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	t.Helper()
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	if len(bytes.TrimSpace(responseBody)) == 0 {
		return res.StatusCode, res.Header, nil
	}

	var env envelope
	require.NoError(t, json.Unmarshal(responseBody, &env))

	return res.StatusCode, res.Header, env
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newUnitApplication builds an application without a database. Only code paths that never reach a model work.
func newUnitApplication(t *testing.T) *application {
	t.Helper()

	cfg, err := loadConfig("../.test.env")
	require.NoError(t, err)

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	return &application{
		config:      cfg,
		logger:      testLogger(),
		cache:       cache,
		userService: userservice.NewUserService(nil, nil, cache, cfg.Auth.Secret, cfg.Auth.TokenTTL),
	}
}

func newTestApplication(t *testing.T) (*application, *sql.DB, *recordingProducer) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	db := common.TestDB("file://../migrations", t)

	cfg, err := loadConfig("../.test.env")
	require.NoError(t, err)

	producer := &recordingProducer{}
	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	userService := userservice.NewUserService(db, producer, cache, cfg.Auth.Secret, cfg.Auth.TokenTTL)

	app := &application{
		config:      cfg,
		logger:      testLogger(),
		db:          db,
		cache:       cache,
		userService: userService,
		blogService: blogservice.NewBlogService(db, userService, cache),
	}

	return app, db, producer
}

func (ts *testServer) do(t *testing.T, method, path string, token string, payload any) (int, http.Header, envelope) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	require.NoError(t, err)

	return readResponse(t, res)
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodGet, path, "", nil)
}

func (ts *testServer) post(t *testing.T, path string, token string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPost, path, token, payload)
}

func (ts *testServer) put(t *testing.T, path string, token string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPut, path, token, payload)
}

func (ts *testServer) delete(t *testing.T, path string, token string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodDelete, path, token, nil)
}

// register creates a user and logs in, returning the user id and a bearer token.
func (ts *testServer) register(t *testing.T, username, name string) (string, string) {
	t.Helper()

	status, _, body := ts.post(t, "/api/users", "", map[string]any{
		"username": username,
		"name":     name,
		"password": "sekret",
	})
	require.Equal(t, http.StatusCreated, status, body)

	status, _, login := ts.post(t, "/api/login", "", map[string]any{
		"username": username,
		"password": "sekret",
	})
	require.Equal(t, http.StatusOK, status, login)

	return body["user"].(map[string]any)["id"].(string), login["token"].(string)
}
