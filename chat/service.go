// Package chat sequences one conversational turn end to end: session load,
// preamble composition, translation, retrieval, generation, block parsing,
// dedup filtering, narrative stripping, and persistence.
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/creastat/scoutchat/blocks"
	"github.com/creastat/scoutchat/llm"
	"github.com/creastat/scoutchat/lock"
	"github.com/creastat/scoutchat/logger"
	"github.com/creastat/scoutchat/prompt"
	"github.com/creastat/scoutchat/retrieval"
	"github.com/creastat/scoutchat/session"
	"github.com/creastat/scoutchat/translate"
)

// Request carries the inputs of one turn.
type Request struct {
	// Token identifies the session. A fresh token starts a new session.
	Token string

	// UserRef is the owning user's external reference.
	UserRef string

	// Question is the user's free-text question, in the session language.
	Question string

	// Strategy is an optional free-text strategy preference.
	Strategy string

	// Language sets the session language on first contact. For an existing
	// session the stored language wins and this field is ignored.
	Language string
}

// Data is the structured part of the outward payload. Players holds only
// entities newly introduced this turn; re-emitted blocks for already-seen
// players are filtered out.
type Data struct {
	Players []blocks.Player `json:"players"`
}

// Response is the outward payload of one turn.
type Response struct {
	Answer string `json:"answer"`
	Data   Data   `json:"data"`
}

// Config tunes the orchestrator.
type Config struct {
	// GenerateTimeout bounds a single generation call.
	GenerateTimeout time.Duration

	// HistoryTokenLimit and HistoryMessageLimit bound the history handed
	// to the generator. The durable log is never truncated.
	HistoryTokenLimit   int
	HistoryMessageLimit int
}

// Service is a stateless turn orchestrator: all per-session state lives in
// the store and is reconstructed on every call, so any number of instances
// can serve the same sessions.
type Service struct {
	store      session.Store
	locker     lock.Locker
	gen        llm.Generator
	translator translate.Router
	retriever  retrieval.Retriever
	log        *logger.Logger
	cfg        Config
}

// New creates a turn orchestrator.
func New(store session.Store, locker lock.Locker, gen llm.Generator, translator translate.Router, retriever retrieval.Retriever, cfg Config, log *logger.Logger) *Service {
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 60 * time.Second
	}
	if cfg.HistoryTokenLimit <= 0 {
		cfg.HistoryTokenLimit = 8000
	}
	if cfg.HistoryMessageLimit <= 0 {
		cfg.HistoryMessageLimit = 40
	}
	return &Service{
		store:      store,
		locker:     locker,
		gen:        gen,
		translator: translator,
		retriever:  retriever,
		log:        log.With("service", "Chat"),
		cfg:        cfg,
	}
}

// Answer runs one full turn for the session. Turns on the same token are
// serialized; turns on different tokens run concurrently.
//
// Generation failure is recovered locally: the user message and a fixed
// fallback assistant message are persisted and the fallback is returned
// with an empty player list. Persistence failure propagates; the user's
// message is never silently dropped once accepted.
func (s *Service) Answer(ctx context.Context, req Request) (*Response, error) {
	release, err := s.locker.Acquire(ctx, req.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire session lock: %w", err)
	}
	defer release()

	sess, err := s.store.Load(ctx, req.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	language := req.Language
	if sess != nil && sess.Language != "" {
		language = sess.Language
	}
	if language == "" {
		language = "en"
	}

	if err := s.store.UpsertActive(ctx, req.Token, req.UserRef, language); err != nil {
		return nil, fmt.Errorf("failed to upsert session: %w", err)
	}

	var history []session.Message
	if sess != nil {
		history = sess.Messages
	}

	// The seen set is derived from the history as loaded, before this
	// turn's messages are appended.
	seen := blocks.SeenNames(history)
	preamble := prompt.Compose(language, req.Strategy, seen, req.Question)

	pivotQuestion := s.translator.ToPivot(ctx, req.Question, language)

	system := prompt.SystemMessage + "\n\n" + preamble
	docs, err := s.retriever.Retrieve(ctx, pivotQuestion)
	if err != nil {
		// Retrieval is optional grounding; the turn proceeds without it.
		s.log.Warn("retrieval failed, generating without documents", "token", req.Token, "error", err.Error())
	} else if docs != "" {
		system += "\n\nPlayer documents:\n" + docs
	}

	genHistory := toLLMHistory(session.TruncateHistory(history, s.cfg.HistoryTokenLimit, s.cfg.HistoryMessageLimit))

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.GenerateTimeout)
	raw, err := s.gen.Complete(genCtx, system, genHistory, pivotQuestion)
	cancel()
	if err != nil {
		s.log.Warn("generation failed, using fallback", "token", req.Token, "error", err.Error())
		if perr := s.persistTurn(ctx, req.Token, req.Question, prompt.FallbackNarrative); perr != nil {
			return nil, perr
		}
		return &Response{
			Answer: prompt.FallbackNarrative,
			Data:   Data{Players: []blocks.Player{}},
		}, nil
	}

	players := blocks.FilterSeen(blocks.Parse(raw), seen)
	narrative := blocks.StripNarrative(raw)

	// Persist the raw pre-translation, pre-stripped assistant text, so
	// future turns can re-scan it for profile blocks. The narrative
	// returned to the caller is a non-persisted projection.
	if err := s.persistTurn(ctx, req.Token, req.Question, raw); err != nil {
		return nil, err
	}

	answer := s.translator.FromPivot(ctx, narrative, language)

	s.log.Info("turn complete", "token", req.Token, "new_players", len(players))
	return &Response{
		Answer: answer,
		Data:   Data{Players: players},
	}, nil
}

// StartSession creates or re-activates a session with the given language.
func (s *Service) StartSession(ctx context.Context, token, userRef, language string) error {
	release, err := s.locker.Acquire(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to acquire session lock: %w", err)
	}
	defer release()

	if language == "" {
		language = "en"
	}
	if err := s.store.UpsertActive(ctx, token, userRef, language); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	return nil
}

// ResetSession deletes the session's message log and re-activates the
// token. Previously seen players become eligible again.
func (s *Service) ResetSession(ctx context.Context, token string) error {
	release, err := s.locker.Acquire(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to acquire session lock: %w", err)
	}
	defer release()

	if err := s.store.Reset(ctx, token); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	return nil
}

// EndSession marks the session ended. Messages are kept.
func (s *Service) EndSession(ctx context.Context, token string) error {
	release, err := s.locker.Acquire(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to acquire session lock: %w", err)
	}
	defer release()

	if err := s.store.End(ctx, token); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// persistTurn appends the user's message and the assistant's text, in that
// order, exactly once per turn.
func (s *Service) persistTurn(ctx context.Context, token, question, assistantText string) error {
	if err := s.store.Append(ctx, token, session.RoleUser, question); err != nil {
		return fmt.Errorf("failed to persist user message: %w", err)
	}
	if err := s.store.Append(ctx, token, session.RoleAssistant, assistantText); err != nil {
		return fmt.Errorf("failed to persist assistant message: %w", err)
	}
	return nil
}

func toLLMHistory(msgs []session.Message) []llm.Message {
	out := make([]llm.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, llm.Message{Role: m.Role, Content: m.Content})
	}
	return out
}
