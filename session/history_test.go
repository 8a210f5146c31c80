package session

import "testing"

func msg(content string, tokens int) Message {
	return Message{Content: content, TokenCount: tokens}
}

func TestTruncateHistoryMessageLimit(t *testing.T) {
	history := []Message{
		msg("a", 1), msg("b", 1), msg("c", 1), msg("d", 1),
	}
	got := TruncateHistory(history, 1000, 2)
	if len(got) != 2 {
		t.Fatalf("got %d messages, want 2", len(got))
	}
	if got[0].Content != "c" || got[1].Content != "d" {
		t.Errorf("kept %q,%q; want most recent c,d", got[0].Content, got[1].Content)
	}
}

func TestTruncateHistoryTokenLimit(t *testing.T) {
	history := []Message{
		msg("a", 50), msg("b", 50), msg("c", 50),
	}
	got := TruncateHistory(history, 100, 10)
	if len(got) != 2 {
		t.Fatalf("got %d messages, want 2", len(got))
	}
	if got[0].Content != "b" {
		t.Errorf("oldest kept = %q, want b", got[0].Content)
	}
}

func TestTruncateHistoryEmpty(t *testing.T) {
	if got := TruncateHistory(nil, 10, 10); len(got) != 0 {
		t.Fatalf("got %d messages, want 0", len(got))
	}
}

func TestEstimateTokens(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abcd", 1},
		{"abcdefgh", 2},
		{"ab", 1},       // rounds up
		{"日本", 2},       // non-ASCII weighted 1 char -> 1 token
		{"ab日", 2},      // mixed: 2 + 4 = 6 weight -> 2 tokens
	}
	for _, tc := range cases {
		if got := EstimateTokens(tc.text); got != tc.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}
