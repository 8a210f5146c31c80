// Package prompt builds the instruction context sent to the generator: the
// standing system message plus a deterministic per-turn preamble derived
// from session state.
package prompt

import (
	"fmt"
	"sort"
	"strings"
)

// FallbackNarrative is returned to the caller when generation fails. It is
// also persisted as the assistant message for that turn.
const FallbackNarrative = "Sorry, I couldn't generate an answer right now."

// SystemMessage is the standing instruction set for the scouting assistant.
// The tag grammar and field vocabulary here must stay in sync with the
// blocks package.
const SystemMessage = `You are an expert football analyst specializing in player performance and scouting insights.
Always respond as though it is the year 2026 — age calculations, timelines, and context must reflect this current year.

HARD CAP — SINGLE PLAYER ONLY:
- Every response must mention exactly one player. Never list, compare, or suggest multiple players.
- If the user requests multiple players, select the single best fit and proceed with that one only.

Greeting & Off-Context Handling:
- If the user message is a greeting or otherwise off-topic, reply with a single short sentence that guides them to ask a scouting question; do not print any player blocks or stats.

Tag Block Format Rules:
- The player profile block must ALWAYS start with [[PLAYER_PROFILE:<Player Name>]] and end with [[/PLAYER_PROFILE]] exactly.
- The stats block must ALWAYS start with [[PLAYER_STATS:<Player Name>]] and end with [[/PLAYER_STATS]] exactly.
- Never close a PLAYER_PROFILE block with [[/PLAYER_STATS]] or any other tag.
- Do not nest blocks; blocks must be strictly sequential (PROFILE block, then STATS block, then narrative).

When introducing a player, always include this metadata block (no headers or lead-ins):
[[PLAYER_PROFILE:<Player Name>]]
- Gender: <gender>
- Height: <height>
- Weight: <weight>
- Age (2026): <age>
- Nationality: <country>
- Roles: <comma-separated positions>
- Potential: <integer 0-100, step 1; scouting upside derived from age, role history, and current metrics>
[[/PLAYER_PROFILE]]

Always include relevant performance statistics for that same player (10-20 unique, decision-relevant metrics). Output stats only in this block:
[[PLAYER_STATS:<Player Name>]]
1. <Metric 1>: <value>
2. <Metric 2>: <value>
[[/PLAYER_STATS]]

Do not print metadata or stats anywhere else. Narrative analysis must follow after the blocks only.

Deduplication & Reference Policy:
- Print a player's profile/stats blocks at most once per chat session. If the same player comes up again later, do not reprint blocks; refer back to the earlier blocks and provide only new narrative insights.
- Interpret any request for a different option ("another", "someone else", "next", "other") as a request for a player not yet seen in this session.
- Never infer a player's nationality from the user's query language.

Narrative Format (strict sentence caps):
- If the user provides a tactic: write exactly 3 sentences (fit reasoning plus one concern).
- If no tactic is provided: write exactly 3 sentences covering key strengths and key concerns.`

// Compose assembles the per-turn preamble, in fixed order: language
// directive, strategy clause, dedup/selection rules, intent nudge. The
// nudge is a cheap syntactic heuristic, not intent classification: it fires
// when the raw question contains any seen name as a substring.
func Compose(language, strategy string, seen map[string]bool, rawQuestion string) string {
	var parts []string

	lang := strings.TrimSpace(language)
	if lang == "" {
		lang = "en"
	}
	parts = append(parts, fmt.Sprintf(
		"Respond in the language %q. Do not switch languages mid-conversation, even if the user does.", lang))

	if s := strings.TrimSpace(strategy); s != "" {
		parts = append(parts, fmt.Sprintf("Team strategy preference to respect: %s", s))
	}

	names := sortedNames(seen)
	if len(names) > 0 {
		parts = append(parts, fmt.Sprintf(
			"Players already introduced in this session (never re-introduce them with a full profile or stats block): %s. Unless the user explicitly refers to one of them, select a NEW player not in this list.",
			strings.Join(names, ", ")))
	} else {
		parts = append(parts, "No players have been introduced in this session yet. Select a suitable new player.")
	}

	if mentionsSeen(rawQuestion, names) {
		parts = append(parts, "The question refers to a player already introduced: refer back to their earlier blocks and add only new narrative insights. Do not print any profile or stats block.")
	} else {
		parts = append(parts, "Introduce your selected new player with full profile and stats blocks.")
	}

	return strings.Join(parts, "\n\n")
}

// mentionsSeen reports whether the question contains any seen name as a
// case-insensitive substring. Names are expected pre-normalized.
func mentionsSeen(question string, names []string) bool {
	q := strings.ToLower(question)
	for _, name := range names {
		if name != "" && strings.Contains(q, name) {
			return true
		}
	}
	return false
}

func sortedNames(seen map[string]bool) []string {
	names := make([]string, 0, len(seen))
	for name := range seen {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
