// Package scoutchat wires the conversation core together from
// configuration: durable sessions in Supabase, per-session turn locks in
// Redis, grounding search in Qdrant, and generation, translation, and
// embeddings through an OpenAI-compatible endpoint.
package scoutchat

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/supabase-community/supabase-go"

	"github.com/creastat/scoutchat/chat"
	"github.com/creastat/scoutchat/config"
	"github.com/creastat/scoutchat/llm"
	"github.com/creastat/scoutchat/lock"
	"github.com/creastat/scoutchat/logger"
	"github.com/creastat/scoutchat/retrieval"
	"github.com/creastat/scoutchat/session"
	"github.com/creastat/scoutchat/translate"
	"github.com/creastat/scoutchat/vectorstore"
	"github.com/creastat/scoutchat/vectorstore/qdrant"
)

// App holds the assembled conversation core and its closable resources.
type App struct {
	Chat   *chat.Service
	Log    *logger.Logger
	store  session.Store
	locker lock.Locker
	vs     vectorstore.VectorStore
}

// New assembles the core from configuration.
func New(cfg *config.Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	supabaseClient, err := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.APIKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	store, err := session.NewStore(session.StoreTypeSupabase, session.WithSupabaseClient(supabaseClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	var locker lock.Locker
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		locker, err = lock.NewLocker(lock.LockTypeRedis,
			lock.WithRedisClient(redisClient),
			lock.WithTTL(cfg.TurnLockTTL))
	} else {
		// Single-instance deployments can serialize in process.
		locker, err = lock.NewLocker(lock.LockTypeMemory)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create turn locker: %w", err)
	}

	llmClient, err := llm.New(llm.Config{
		BaseURL:    cfg.OpenAI.BaseURL,
		APIKey:     cfg.OpenAI.APIKey,
		ChatModel:  cfg.OpenAI.ChatModel,
		EmbedModel: cfg.OpenAI.EmbedModel,
		MaxRetries: cfg.OpenAI.MaxRetries,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	vs, err := qdrant.New(qdrant.Config{
		URL:            cfg.Qdrant.URL,
		CollectionName: cfg.Qdrant.CollectionName,
		APIKey:         cfg.Qdrant.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vector store: %w", err)
	}

	retriever := retrieval.New(llmClient, vs, retrieval.Config{
		TopK:     cfg.Retrieval.TopK,
		MinScore: cfg.Retrieval.MinScore,
	}, log)

	router := translate.New(llmClient, cfg.PivotLanguage, cfg.OpenAI.TranslateTimeout, log)

	svc := chat.New(store, locker, llmClient, router, retriever, chat.Config{
		GenerateTimeout:     cfg.OpenAI.GenerateTimeout,
		HistoryTokenLimit:   cfg.HistoryTokenLimit,
		HistoryMessageLimit: cfg.HistoryMessageLimit,
	}, log)

	return &App{
		Chat:   svc,
		Log:    log,
		store:  store,
		locker: locker,
		vs:     vs,
	}, nil
}

// Close releases the app's resources.
func (a *App) Close() error {
	var firstErr error
	if err := a.vs.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := a.locker.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := a.store.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	a.Log.Sync()
	return firstErr
}
