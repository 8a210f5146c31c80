package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// supabaseStore implements Store on top of Supabase (PostgREST).
//
// Schema:
//
//	chat_sessions(token text primary key, user_ref text, language text,
//	              ended_at timestamptz null, created_at timestamptz)
//	chat_messages(id uuid primary key, session_token text references
//	              chat_sessions(token), seq bigserial, role text,
//	              content text, token_count int, created_at timestamptz)
//
// The seq column is the per-session ordering basis; message order must equal
// real turn order, so Append is only called under the session's turn lock.
type supabaseStore struct {
	client       *supabase.Client
	sessionTable string
	messageTable string
}

type sessionRow struct {
	Token     string     `json:"token"`
	UserRef   string     `json:"user_ref"`
	Language  string     `json:"language"`
	EndedAt   *time.Time `json:"ended_at"`
	CreatedAt time.Time  `json:"created_at"`
}

type messageInsert struct {
	ID           string    `json:"id"`
	SessionToken string    `json:"session_token"`
	Role         string    `json:"role"`
	Content      string    `json:"content"`
	TokenCount   int       `json:"token_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Load implements Store.
func (s *supabaseStore) Load(ctx context.Context, token string) (*Session, error) {
	row, err := s.getSession(token)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	var messages []Message
	_, err = s.client.From(s.messageTable).
		Select("*", "", false).
		Eq("session_token", token).
		Order("seq", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&messages)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	return &Session{
		Token:     row.Token,
		UserRef:   row.UserRef,
		Language:  row.Language,
		EndedAt:   row.EndedAt,
		CreatedAt: row.CreatedAt,
		Messages:  messages,
	}, nil
}

// UpsertActive implements Store.
func (s *supabaseStore) UpsertActive(ctx context.Context, token, userRef, language string) error {
	existing, err := s.getSession(token)
	if err != nil {
		return err
	}

	if existing == nil {
		row := sessionRow{
			Token:     token,
			UserRef:   userRef,
			Language:  language,
			CreatedAt: time.Now().UTC(),
		}
		_, _, err = s.client.From(s.sessionTable).
			Insert(row, false, "", "", "").
			Execute()
		if err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}
		return nil
	}

	patch := map[string]any{
		"user_ref": userRef,
		"language": language,
		"ended_at": nil,
	}
	_, _, err = s.client.From(s.sessionTable).
		Update(patch, "", "").
		Eq("token", token).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

// End implements Store.
func (s *supabaseStore) End(ctx context.Context, token string) error {
	existing, err := s.getSession(token)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	patch := map[string]any{"ended_at": time.Now().UTC()}
	_, _, err = s.client.From(s.sessionTable).
		Update(patch, "", "").
		Eq("token", token).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// Reset implements Store.
func (s *supabaseStore) Reset(ctx context.Context, token string) error {
	existing, err := s.getSession(token)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	_, _, err = s.client.From(s.messageTable).
		Delete("", "").
		Eq("session_token", token).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}

	patch := map[string]any{"ended_at": nil}
	_, _, err = s.client.From(s.sessionTable).
		Update(patch, "", "").
		Eq("token", token).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to reactivate session: %w", err)
	}
	return nil
}

// Append implements Store.
func (s *supabaseStore) Append(ctx context.Context, token, role, content string) error {
	existing, err := s.getSession(token)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	row := messageInsert{
		ID:           uuid.NewString(),
		SessionToken: token,
		Role:         role,
		Content:      content,
		TokenCount:   EstimateTokens(content),
		CreatedAt:    time.Now().UTC(),
	}
	_, _, err = s.client.From(s.messageTable).
		Insert(row, false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *supabaseStore) Close() error {
	// Supabase client doesn't require explicit close
	return nil
}

func (s *supabaseStore) getSession(token string) (*sessionRow, error) {
	var rows []sessionRow
	_, err := s.client.From(s.sessionTable).
		Select("*", "", false).
		Eq("token", token).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Compile-time check that supabaseStore implements Store
var _ Store = (*supabaseStore)(nil)
