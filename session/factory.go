package session

// StoreType represents the type of session store.
type StoreType string

const (
	StoreTypeMemory   StoreType = "memory"
	StoreTypeSupabase StoreType = "supabase"
)

// NewStore creates a new session Store of the given type.
// Supports "memory" and "supabase" driver types.
// For Supabase, requires the WithSupabaseClient option.
func NewStore(storeType StoreType, opts ...StoreOption) (Store, error) {
	config := &storeConfig{
		sessionTable: "chat_sessions",
		messageTable: "chat_messages",
	}

	// Apply options
	for _, opt := range opts {
		opt(config)
	}

	switch storeType {
	case StoreTypeMemory:
		return newMemoryStore(), nil

	case StoreTypeSupabase:
		if config.supabaseClient == nil {
			return nil, ErrInvalidConfig
		}
		return &supabaseStore{
			client:       config.supabaseClient,
			sessionTable: config.sessionTable,
			messageTable: config.messageTable,
		}, nil

	default:
		return nil, ErrInvalidStoreType
	}
}
