package blocks

import (
	"strings"

	"github.com/creastat/scoutchat/session"
)

// SeenNames computes the "seen" set for a session: the normalized names of
// every entity introduced with a well-formed profile block in a persisted
// assistant message, oldest to newest.
//
// The set is derived, never stored: it is recomputed from the durable
// message log on every turn, so any stateless instance that reads a
// fully-appended history computes the same set.
func SeenNames(history []session.Message) map[string]bool {
	seen := make(map[string]bool)
	for _, msg := range history {
		if msg.Role != session.RoleAssistant {
			continue
		}
		lines := strings.Split(msg.Content, "\n")
		for _, sp := range scan(lines).spans {
			if sp.kind != KindProfile {
				continue
			}
			if key := Normalize(sp.name); key != "" {
				seen[key] = true
			}
		}
	}
	return seen
}

// FilterSeen keeps only players whose normalized name is absent from the
// seen set. The generator is told not to re-introduce seen players, but it
// sometimes does anyway; the filter keeps re-emitted blocks out of the
// structured payload regardless.
func FilterSeen(players []Player, seen map[string]bool) []Player {
	filtered := []Player{}
	for _, p := range players {
		if seen[Normalize(p.Name)] {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}
