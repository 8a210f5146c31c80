package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryStore implements Store using in-process maps. Suitable for tests
// and single-instance development; production uses the Supabase store.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	messages map[string][]Message
	nextSeq  map[string]int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sessions: make(map[string]*Session),
		messages: make(map[string][]Message),
		nextSeq:  make(map[string]int64),
	}
}

// Load implements Store.
func (s *memoryStore) Load(ctx context.Context, token string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, exists := s.sessions[token]
	if !exists {
		return nil, nil
	}

	out := *stored
	out.Messages = append([]Message(nil), s.messages[token]...)
	return &out, nil
}

// UpsertActive implements Store.
func (s *memoryStore) UpsertActive(ctx context.Context, token, userRef, language string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stored, exists := s.sessions[token]; exists {
		stored.UserRef = userRef
		stored.Language = language
		stored.EndedAt = nil
		return nil
	}

	s.sessions[token] = &Session{
		Token:     token,
		UserRef:   userRef,
		Language:  language,
		CreatedAt: time.Now(),
	}
	return nil
}

// End implements Store.
func (s *memoryStore) End(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.sessions[token]
	if !exists {
		return ErrNotFound
	}
	now := time.Now()
	stored.EndedAt = &now
	return nil
}

// Reset implements Store.
func (s *memoryStore) Reset(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.sessions[token]
	if !exists {
		return ErrNotFound
	}
	delete(s.messages, token)
	stored.EndedAt = nil
	return nil
}

// Append implements Store.
func (s *memoryStore) Append(ctx context.Context, token, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[token]; !exists {
		return ErrNotFound
	}

	s.nextSeq[token]++
	s.messages[token] = append(s.messages[token], Message{
		ID:           uuid.NewString(),
		SessionToken: token,
		Seq:          s.nextSeq[token],
		Role:         role,
		Content:      content,
		TokenCount:   EstimateTokens(content),
		CreatedAt:    time.Now(),
	})
	return nil
}

// Close implements Store.
func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	s.messages = nil
	s.nextSeq = nil
	return nil
}

// Compile-time check that memoryStore implements Store
var _ Store = (*memoryStore)(nil)
