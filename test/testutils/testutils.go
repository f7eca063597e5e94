// Package testutils holds fakes shared by the package tests.
package testutils

import (
	"context"
	"sync"
	"time"

	"colornotes/model"
	"colornotes/utils"
)

// MockableTime is an interface for mocking time.Now() in tests
type MockableTime interface {
	Now() time.Time
}

// RealTime implements MockableTime using time.Now()
type RealTime struct{}

func (RealTime) Now() time.Time {
	return time.Now()
}

// FixedTime implements MockableTime using a fixed time
type FixedTime struct {
	Fixed time.Time
}

func (ft FixedTime) Now() time.Time {
	return ft.Fixed
}

// MemoryStore is an in-memory note store with the same contract as
// repository.NotesRepo. Setting Err makes every call fail with it.
type MemoryStore struct {
	mu    sync.Mutex
	notes []*model.Note
	Clock MockableTime
	Err   error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Clock: RealTime{}}
}

func (s *MemoryStore) now() time.Time {
	return s.Clock.Now().UTC().Truncate(time.Millisecond)
}

func (s *MemoryStore) Insert(_ context.Context, input model.NoteInput) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	now := s.now()
	note := &model.Note{
		ID:        utils.NewNoteID(),
		Title:     input.Title,
		Content:   input.Content,
		Color:     model.NormalizeColor(input.Color),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append(s.notes, note)
	copied := *note
	return &copied, nil
}

func (s *MemoryStore) FindAll(_ context.Context) ([]*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]*model.Note, 0, len(s.notes))
	for _, n := range s.notes {
		copied := *n
		out = append(out, &copied)
	}
	return out, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	for _, n := range s.notes {
		if n.ID == id {
			copied := *n
			return &copied, nil
		}
	}
	return nil, model.ErrNoteNotFound
}

func (s *MemoryStore) UpdateByID(_ context.Context, id string, input model.NoteInput) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	for _, n := range s.notes {
		if n.ID == id {
			n.Title = input.Title
			n.Content = input.Content
			n.Color = model.NormalizeColor(input.Color)
			n.UpdatedAt = s.now()
			copied := *n
			return &copied, nil
		}
	}
	return nil, model.ErrNoteNotFound
}

func (s *MemoryStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	for i, n := range s.notes {
		if n.ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return nil
		}
	}
	return model.ErrNoteNotFound
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return len(s.notes), nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Err
}

// MemoryIdempotencyStore is a map-backed idempotency store.
type MemoryIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]time.Time
	Err  error
}

func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{keys: make(map[string]time.Time)}
}

func (s *MemoryIdempotencyStore) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	if exp, ok := s.keys[key]; ok && time.Now().Before(exp) {
		return false, nil
	}
	s.keys[key] = time.Now().Add(ttl)
	return true, nil
}

func (s *MemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}

// Held reports whether key is currently reserved.
func (s *MemoryIdempotencyStore) Held(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[key]
	return ok
}
