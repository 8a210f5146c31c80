package blocks

import (
	"regexp"
	"sort"
	"strings"
)

var (
	openRe  = regexp.MustCompile(`(?i)^\s*\[\[\s*(PLAYER_PROFILE|PLAYER_STATS)\s*:\s*([^\]]+?)\s*\]\]\s*$`)
	closeRe = regexp.MustCompile(`(?i)^\s*\[\[\s*/\s*(PLAYER_PROFILE|PLAYER_STATS)\s*(?::[^\]]*)?\]\]\s*$`)
)

// span is one well-formed block located in the line slice.
// start and end are inclusive line indexes of the open and close tags.
type span struct {
	kind  Kind
	name  string
	start int
	end   int
}

// scanResult is the tagged outcome of a block scan: well-formed spans plus
// the line indexes of open tags that never found a close (malformed).
type scanResult struct {
	spans   []span
	orphans []int
}

// scan walks the lines with a small state machine: searching-for-open, then
// searching-for-close. A close tag of ANY known kind terminates the block —
// existing generator prompts sometimes close a PLAYER_PROFILE block with
// [[/PLAYER_STATS]], and that output must keep parsing, so the cross-kind
// tolerance is deliberate (flagged for product confirmation, do not "fix").
// An open tag of the same kind, or end of text, aborts the pending block:
// it is discarded with no partial extraction.
func scan(lines []string) scanResult {
	var result scanResult

	i := 0
	for i < len(lines) {
		open := openRe.FindStringSubmatch(lines[i])
		if open == nil {
			i++
			continue
		}
		kind := Kind(strings.ToUpper(open[1]))

		closed := false
		j := i + 1
		for ; j < len(lines); j++ {
			if closeRe.MatchString(lines[j]) {
				closed = true
				break
			}
			if next := openRe.FindStringSubmatch(lines[j]); next != nil && Kind(strings.ToUpper(next[1])) == kind {
				break
			}
		}

		if closed {
			result.spans = append(result.spans, span{
				kind:  kind,
				name:  strings.TrimSpace(open[2]),
				start: i,
				end:   j,
			})
			i = j + 1
			continue
		}

		// No close before end-of-text or a same-kind open: the open line is
		// discarded and scanning resumes where it stopped.
		result.orphans = append(result.orphans, i)
		if j < len(lines) {
			i = j
		} else {
			i = len(lines)
		}
	}

	return result
}

// Parse extracts every well-formed block from raw generator output and
// assembles one Player per entity name. If the same name has multiple
// profile (or stats) blocks in one response, only the first occurrence of
// each kind is kept. Names are matched case-insensitively.
func Parse(raw string) []Player {
	lines := strings.Split(raw, "\n")
	result := scan(lines)

	profiles := make(map[string]Profile)
	stats := make(map[string][]Stat)
	display := make(map[string]string)
	var order []string

	for _, sp := range result.spans {
		key := Normalize(sp.name)
		if key == "" {
			continue
		}
		if _, known := display[key]; !known {
			display[key] = sp.name
			order = append(order, key)
		}

		body := lines[sp.start+1 : sp.end]
		switch sp.kind {
		case KindProfile:
			if _, dup := profiles[key]; dup {
				continue
			}
			profiles[key] = parseProfileBody(body)
		case KindStats:
			if _, dup := stats[key]; dup {
				continue
			}
			stats[key] = parseStatsBody(body)
		}
	}

	sort.SliceStable(order, func(a, b int) bool { return order[a] < order[b] })

	players := make([]Player, 0, len(order))
	for _, key := range order {
		meta, ok := profiles[key]
		if !ok {
			meta = Profile{Roles: []string{}}
		}
		st := stats[key]
		if st == nil {
			st = []Stat{}
		}
		players = append(players, Player{
			Name:  display[key],
			Meta:  meta,
			Stats: st,
		})
	}
	return players
}

// Normalize maps an entity name to its dedup key: trimmed and case-folded.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
