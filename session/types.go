package session

import "time"

// Message roles. The log only ever carries these two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in a session's ordered message log. Messages are
// append-only: never mutated, only bulk-deleted on session reset.
type Message struct {
	ID           string    `json:"id"`
	SessionToken string    `json:"session_token"`
	Seq          int64     `json:"seq"` // insertion sequence; per-session ordering basis
	Role         string    `json:"role"`
	Content      string    `json:"content"`
	TokenCount   int       `json:"token_count"` // estimated tokens
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the durable record of one conversation: identity, owning user,
// presentation language, lifecycle status, and the ordered message log.
//
// A session is active while EndedAt is nil. Ending a session keeps its
// messages; resetting it deletes them and re-activates the token.
type Session struct {
	Token     string     `json:"token"`
	UserRef   string     `json:"user_ref"`
	Language  string     `json:"language"` // two-letter code, e.g. "en", "tr"
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	// Messages is the ordered log, oldest first.
	Messages []Message `json:"messages"`
}

// Active reports whether the session is currently active.
func (s *Session) Active() bool {
	return s != nil && s.EndedAt == nil
}
