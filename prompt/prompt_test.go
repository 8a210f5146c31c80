package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeOrderIsFixed(t *testing.T) {
	out := Compose("tr", "high press", map[string]bool{"john doe": true}, "anyone else?")

	iLang := strings.Index(out, `language "tr"`)
	iStrategy := strings.Index(out, "high press")
	iSeen := strings.Index(out, "john doe")
	iNudge := strings.Index(out, "Introduce your selected new player")

	assert.True(t, iLang >= 0 && iStrategy > iLang && iSeen > iStrategy && iNudge > iSeen,
		"sections out of order: %d %d %d %d\n%s", iLang, iStrategy, iSeen, iNudge, out)
}

func TestComposeOmitsEmptyStrategy(t *testing.T) {
	out := Compose("en", "   ", nil, "suggest a winger")
	assert.NotContains(t, out, "strategy preference")
}

func TestComposeDefaultsLanguage(t *testing.T) {
	out := Compose("", "", nil, "q")
	assert.Contains(t, out, `language "en"`)
}

func TestComposeNudgeReferBackWhenSeenNameInQuestion(t *testing.T) {
	seen := map[string]bool{"john doe": true}

	out := Compose("en", "", seen, "Tell me more about John Doe's finishing")
	assert.Contains(t, out, "refer back")
	assert.NotContains(t, out, "Introduce your selected new player")
}

func TestComposeNudgeNewSelectionWhenNoSeenNameInQuestion(t *testing.T) {
	seen := map[string]bool{"john doe": true}

	out := Compose("en", "", seen, "suggest another winger")
	assert.Contains(t, out, "Introduce your selected new player")
	assert.NotContains(t, out, "refer back")
}

// The heuristic is substring-based on purpose: a partial-name hit still
// counts as a mention.
func TestComposeNudgeSubstringBoundary(t *testing.T) {
	seen := map[string]bool{"ali": true}

	out := Compose("en", "", seen, "what about quality wingers?")
	assert.Contains(t, out, "refer back", "substring 'ali' in 'quality' triggers the mention nudge")
}

func TestComposeSeenNamesSortedAndListed(t *testing.T) {
	seen := map[string]bool{"zed mora": true, "ann pole": true}

	out := Compose("en", "", seen, "next")
	assert.Less(t, strings.Index(out, "ann pole"), strings.Index(out, "zed mora"))
}

func TestComposeEmptySeenSet(t *testing.T) {
	out := Compose("en", "", nil, "suggest a striker")
	assert.Contains(t, out, "No players have been introduced")
}
