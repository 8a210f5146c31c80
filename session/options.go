package session

import (
	"github.com/supabase-community/supabase-go"
)

// StoreOption is a functional option for configuring a session store.
type StoreOption func(*storeConfig)

// storeConfig holds configuration for session stores.
type storeConfig struct {
	supabaseClient *supabase.Client
	sessionTable   string
	messageTable   string
}

// WithSupabaseClient sets the Supabase client for the Supabase store.
func WithSupabaseClient(client *supabase.Client) StoreOption {
	return func(c *storeConfig) {
		c.supabaseClient = client
	}
}

// WithTables overrides the default table names ("chat_sessions",
// "chat_messages") used by the Supabase store.
func WithTables(sessionTable, messageTable string) StoreOption {
	return func(c *storeConfig) {
		c.sessionTable = sessionTable
		c.messageTable = messageTable
	}
}
