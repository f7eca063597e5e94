package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"colornotes/dto"
	"colornotes/model"
	"colornotes/test/testutils"
	"colornotes/usecase"
	"colornotes/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	store  *testutils.MemoryStore
	idem   *testutils.MemoryIdempotencyStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := testutils.NewMemoryStore()
	idem := testutils.NewMemoryIdempotencyStore()
	router := SetupRouter(RouterOptions{
		NotesService:   usecase.NewNotesService(store),
		Store:          store,
		Idempotency:    idem,
		IdempotencyTTL: time.Minute,
		MaxBodyBytes:   4096,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return &testServer{router: router, store: store, idem: idem}
}

func (s *testServer) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestCreateThenListScenario(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/notes", `{"title":"Shopping","content":"Milk, eggs","color":"#c8e6c9"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[dto.NoteResponse](t, w)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Shopping", created.Title)
	assert.Equal(t, "Milk, eggs", created.Content)
	assert.Equal(t, "#c8e6c9", created.Color)
	assert.False(t, created.CreatedAt.IsZero())
	assert.True(t, strings.HasSuffix(w.Header().Get("Location"), "/api/notes/"+created.ID))

	w = s.do(http.MethodGet, "/api/notes", "")
	require.Equal(t, http.StatusOK, w.Code)
	notes := decode[[]dto.NoteResponse](t, w)
	require.Len(t, notes, 1)
	assert.Equal(t, created, notes[0])
}

func TestNoteJSONShape(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/notes", `{"title":"A","content":"B"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	raw := decode[map[string]any](t, w)
	for _, field := range []string{"id", "title", "content", "color", "createdAt", "updatedAt"} {
		assert.Contains(t, raw, field)
	}
	assert.Len(t, raw, 6)
	assert.Equal(t, "#ffffff", raw["color"], "missing color defaults to white")
}

func TestListEmptyIsArray(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/notes", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestCreateNoteRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"malformed json", `{"title": "A",`, "Invalid request body"},
		{"trailing data", `{"title":"a","content":"b"} trailing`, "Invalid request body"},
		{"two objects", `{"title":"a","content":"b"}{"title":"c","content":"d"}`, "Invalid request body"},
		{"empty body", ``, "Invalid request body"},
		{"wrong type", `{"title": 1, "content": "B"}`, "Invalid request body"},
		{"missing title", `{"content": "B"}`, "title is required"},
		{"blank title", `{"title": "   ", "content": "B"}`, "title is required"},
		{"blank content", `{"title": "A", "content": "\n"}`, "content is required"},
		{"color outside palette", `{"title": "A", "content": "B", "color": "#000000"}`, "color must be one of the palette colors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			w := s.do(http.MethodPost, "/api/notes", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decode[utils.ErrorResponse](t, w).Error)

			count, _ := s.store.Count(context.Background())
			assert.Zero(t, count)
		})
	}
}

func TestGetNote(t *testing.T) {
	s := newTestServer(t)
	created := decode[dto.NoteResponse](t, s.do(http.MethodPost, "/api/notes", `{"title":"A","content":"B"}`))

	w := s.do(http.MethodGet, "/api/notes/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decode[dto.NoteResponse](t, w))

	w = s.do(http.MethodGet, "/api/notes/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateNote(t *testing.T) {
	s := newTestServer(t)
	created := decode[dto.NoteResponse](t, s.do(http.MethodPost, "/api/notes", `{"title":"A","content":"B"}`))

	w := s.do(http.MethodPut, "/api/notes/"+created.ID, `{"title":"A2","content":"B2","color":"#ffccbc"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated := decode[dto.NoteResponse](t, w)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "A2", updated.Title)
	assert.Equal(t, "B2", updated.Content)
	assert.Equal(t, "#ffccbc", updated.Color)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateUnknownNote(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPut, "/api/notes/missing", `{"title":"A","content":"B"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Note not found", decode[utils.ErrorResponse](t, w).Error)
}

func TestUpdateMalformedBody(t *testing.T) {
	s := newTestServer(t)
	created := decode[dto.NoteResponse](t, s.do(http.MethodPost, "/api/notes", `{"title":"A","content":"B"}`))

	w := s.do(http.MethodPut, "/api/notes/missing", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/notes/"+created.ID, `{"title":"A2","content":"B2"} trailing`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	got := decode[dto.NoteResponse](t, s.do(http.MethodGet, "/api/notes/"+created.ID, ""))
	assert.Equal(t, "A", got.Title)
}

func TestBlankIDIsNotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodDelete, "/api/notes/%20", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Note not found", decode[utils.ErrorResponse](t, w).Error)

	w = s.do(http.MethodPut, "/api/notes/%20", `{"title":"A","content":"B"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/notes/%20", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBlankColorUsesDefault(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/notes", `{"title":"A","content":"B","color":"  "}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, model.DefaultColor, decode[dto.NoteResponse](t, w).Color)

	w = s.do(http.MethodPost, "/api/notes", `{"title":"A","content":"B","color":" #BBDEFB "}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "#bbdefb", decode[dto.NoteResponse](t, w).Color)
}

func TestDeleteNote(t *testing.T) {
	s := newTestServer(t)
	created := decode[dto.NoteResponse](t, s.do(http.MethodPost, "/api/notes", `{"title":"A","content":"B"}`))

	w := s.do(http.MethodDelete, "/api/notes/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	ack := decode[dto.DeleteResponse](t, w)
	assert.Equal(t, "Note deleted successfully", ack.Message)
	assert.Equal(t, created.ID, ack.ID)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/notes/"+created.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/notes/"+created.ID, "").Code)
}

func TestStoreFailureHidesDetail(t *testing.T) {
	s := newTestServer(t)
	s.store.Err = &model.StoreError{Op: "find", Err: errors.New("dial tcp 10.0.0.7:27017: connection refused")}

	tests := []struct {
		method, path, body, message string
	}{
		{http.MethodGet, "/api/notes", "", "Failed to fetch notes"},
		{http.MethodPost, "/api/notes", `{"title":"A","content":"B"}`, "Failed to create note"},
		{http.MethodPut, "/api/notes/x", `{"title":"A","content":"B"}`, "Failed to update note"},
		{http.MethodDelete, "/api/notes/x", "", "Failed to delete note"},
	}
	for _, tt := range tests {
		w := s.do(tt.method, tt.path, tt.body)
		assert.Equal(t, http.StatusInternalServerError, w.Code, tt.method)
		assert.Equal(t, tt.message, decode[utils.ErrorResponse](t, w).Error)
		assert.NotContains(t, w.Body.String(), "10.0.0.7")
	}
}

func TestIdempotentCreate(t *testing.T) {
	s := newTestServer(t)
	body := `{"title":"A","content":"B"}`

	first := s.do(http.MethodPost, "/api/notes", body, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusCreated, first.Code)

	second := s.do(http.MethodPost, "/api/notes", body, "Idempotency-Key", "k-1")
	assert.Equal(t, http.StatusConflict, second.Code)

	other := s.do(http.MethodPost, "/api/notes", body, "Idempotency-Key", "k-2")
	assert.Equal(t, http.StatusCreated, other.Code)

	count, _ := s.store.Count(context.Background())
	assert.Equal(t, 2, count)
}

func TestFailedCreateReleasesIdempotencyKey(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/notes", `{"title":"","content":"B"}`, "Idempotency-Key", "retry-me")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, s.idem.Held("retry-me"))

	w = s.do(http.MethodPost, "/api/notes", `{"title":"A","content":"B"}`, "Idempotency-Key", "retry-me")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBodyTooLarge(t *testing.T) {
	s := newTestServer(t)
	body := `{"title":"A","content":"` + strings.Repeat("x", 5000) + `"}`

	req := httptest.NewRequest(http.MethodPost, "/api/notes", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodOptions, "/api/notes", "", "Origin", "http://example.com", "Access-Control-Request-Method", "POST")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")

	w = s.do(http.MethodGet, "/api/notes", "", "Origin", "http://example.com")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/notes", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = s.do(http.MethodGet, "/api/notes", "", "X-Request-ID", "abc-123")
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodPost, "/api/notes", `{"title":"A","content":"B"}`)

	w := s.do(http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[dto.HealthResponse](t, w)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "up", health.Store)
	assert.Equal(t, 1, health.NoteCount)

	s.store.Err = &model.StoreError{Op: "ping", Err: errors.New("no reachable servers")}
	w = s.do(http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "down", decode[dto.HealthResponse](t, w).Store)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodGet, "/api/notes", "")

	w := s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
