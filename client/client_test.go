package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"colornotes/handler"
	"colornotes/model"
	"colornotes/test/testutils"
	"colornotes/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T) (*Client, *testutils.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := testutils.NewMemoryStore()
	router := handler.SetupRouter(handler.RouterOptions{
		NotesService:   usecase.NewNotesService(store),
		Store:          store,
		Idempotency:    testutils.NewMemoryIdempotencyStore(),
		IdempotencyTTL: time.Minute,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL + "/")
	require.NoError(t, err)
	return c, store
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"http", "http://localhost:5001", false},
		{"https with path slash", "https://notes.example.com/", false},
		{"missing scheme", "localhost:5001", true},
		{"ftp", "ftp://localhost", true},
		{"garbage", "http://[::1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClientRoundTrip(t *testing.T) {
	c, _ := newTestAPI(t)
	ctx := context.Background()

	notes, err := c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	created, err := c.Create(ctx, model.NoteInput{Title: "Shopping", Content: "Milk, eggs", Color: "#c8e6c9"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "#c8e6c9", created.Color)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)

	updated, err := c.Update(ctx, created.ID, model.NoteInput{Title: "Groceries", Content: "Milk", Color: "#ffccbc"})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", updated.Title)
	assert.Equal(t, created.ID, updated.ID)

	notes, err = c.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Groceries", notes[0].Title)

	require.NoError(t, c.Delete(ctx, created.ID))

	_, err = c.Get(ctx, created.ID)
	assert.True(t, IsNotFound(err))
}

func TestClientCreateTwiceMakesTwoNotes(t *testing.T) {
	c, store := newTestAPI(t)
	ctx := context.Background()

	input := model.NoteInput{Title: "A", Content: "B"}
	_, err := c.Create(ctx, input)
	require.NoError(t, err)
	_, err = c.Create(ctx, input)
	require.NoError(t, err)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestClientErrors(t *testing.T) {
	c, store := newTestAPI(t)
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		_, err := c.Create(ctx, model.NoteInput{Title: "", Content: "B"})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "title is required", apiErr.Message)
	})

	t.Run("not found", func(t *testing.T) {
		err := c.Delete(ctx, "does-not-exist")
		assert.True(t, IsNotFound(err))
	})

	t.Run("store failure", func(t *testing.T) {
		store.Err = errors.New("connection reset")
		defer func() { store.Err = nil }()

		_, err := c.List(ctx)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
		assert.NotContains(t, apiErr.Message, "connection reset")
	})

	t.Run("unreachable", func(t *testing.T) {
		dead, err := New("http://127.0.0.1:1", WithHTTPClient(&http.Client{Timeout: time.Second}))
		require.NoError(t, err)

		_, err = dead.List(ctx)
		require.Error(t, err)
		assert.False(t, IsNotFound(err))
	})
}

func TestAPIErrorMessage(t *testing.T) {
	assert.Equal(t, "notes api: Not Found", (&APIError{Status: 404}).Error())
	assert.Equal(t, "notes api: Note not found (404)", (&APIError{Status: 404, Message: "Note not found"}).Error())
}
