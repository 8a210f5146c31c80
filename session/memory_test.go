package session

import (
	"context"
	"testing"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	store, err := NewStore(StoreTypeMemory)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestLoadMissingSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.Load(ctx, "nope")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Fatalf("Load of missing session = %+v, want nil", got)
	}
}

func TestUpsertActiveIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.UpsertActive(ctx, "tok", "user-1", "en"); err != nil {
		t.Fatalf("UpsertActive: %v", err)
	}
	if err := store.End(ctx, "tok"); err != nil {
		t.Fatalf("End: %v", err)
	}

	// Upserting again updates language and clears the end timestamp.
	if err := store.UpsertActive(ctx, "tok", "user-1", "tr"); err != nil {
		t.Fatalf("UpsertActive again: %v", err)
	}

	sess, err := store.Load(ctx, "tok")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sess.Language != "tr" {
		t.Errorf("Language = %q, want %q", sess.Language, "tr")
	}
	if !sess.Active() {
		t.Error("session should be active after upsert")
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.UpsertActive(ctx, "tok", "user-1", "en"); err != nil {
		t.Fatalf("UpsertActive: %v", err)
	}
	turns := []struct{ role, content string }{
		{RoleUser, "first question"},
		{RoleAssistant, "first answer"},
		{RoleUser, "second question"},
		{RoleAssistant, "second answer"},
	}
	for _, turn := range turns {
		if err := store.Append(ctx, "tok", turn.role, turn.content); err != nil {
			t.Fatalf("Append(%q): %v", turn.content, err)
		}
	}

	sess, err := store.Load(ctx, "tok")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sess.Messages) != len(turns) {
		t.Fatalf("got %d messages, want %d", len(sess.Messages), len(turns))
	}
	for i, msg := range sess.Messages {
		if msg.Role != turns[i].role || msg.Content != turns[i].content {
			t.Errorf("message %d = {%s %q}, want {%s %q}",
				i, msg.Role, msg.Content, turns[i].role, turns[i].content)
		}
		if i > 0 && msg.Seq <= sess.Messages[i-1].Seq {
			t.Errorf("seq not monotonic at index %d: %d <= %d", i, msg.Seq, sess.Messages[i-1].Seq)
		}
	}
}

func TestAppendToMissingSession(t *testing.T) {
	store := newTestStore(t)

	err := store.Append(context.Background(), "nope", RoleUser, "hello")
	if err != ErrNotFound {
		t.Fatalf("Append = %v, want ErrNotFound", err)
	}
}

func TestEndKeepsMessages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_ = store.UpsertActive(ctx, "tok", "user-1", "en")
	_ = store.Append(ctx, "tok", RoleUser, "hello")

	if err := store.End(ctx, "tok"); err != nil {
		t.Fatalf("End: %v", err)
	}
	sess, _ := store.Load(ctx, "tok")
	if sess.Active() {
		t.Error("session should not be active after End")
	}
	if len(sess.Messages) != 1 {
		t.Errorf("End deleted messages: got %d, want 1", len(sess.Messages))
	}
}

func TestResetClearsMessages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_ = store.UpsertActive(ctx, "tok", "user-1", "en")
	_ = store.Append(ctx, "tok", RoleUser, "hello")
	_ = store.Append(ctx, "tok", RoleAssistant, "hi")
	_ = store.End(ctx, "tok")

	if err := store.Reset(ctx, "tok"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	sess, _ := store.Load(ctx, "tok")
	if len(sess.Messages) != 0 {
		t.Errorf("Reset kept %d messages, want 0", len(sess.Messages))
	}
	if !sess.Active() {
		t.Error("session should be active after Reset")
	}
}
