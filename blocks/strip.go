package blocks

import (
	"regexp"
	"strings"
)

var (
	legacyHeaderRe = regexp.MustCompile(`^\s*(?:\*\*.+?\*\*|#{1,6}\s+.+?)\s*:?\s*$`)
	blankRunRe     = regexp.MustCompile(`\n{3,}`)
)

// StripNarrative removes structured artifacts from raw generator output,
// leaving the user-facing prose:
//
//  1. every well-formed block, whether or not its entity survives dedup;
//  2. orphan open-tag lines from failed block scans;
//  3. the legacy pre-grammar pattern: a bolded or heading line followed by
//     "- Field: value" bullets with no enclosing tags;
//  4. runs of blank lines, collapsed.
//
// Stripping is a fixed point: stripping an already-stripped narrative
// returns it unchanged.
func StripNarrative(raw string) string {
	if raw == "" {
		return raw
	}

	lines := strings.Split(raw, "\n")
	lines = dropBlocks(lines)
	lines = dropLegacy(lines)

	cleaned := blankRunRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(cleaned)
}

// dropBlocks removes well-formed block spans and orphan open lines.
func dropBlocks(lines []string) []string {
	result := scan(lines)

	drop := make(map[int]bool)
	for _, sp := range result.spans {
		for i := sp.start; i <= sp.end; i++ {
			drop[i] = true
		}
	}
	for _, i := range result.orphans {
		drop[i] = true
	}

	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		if !drop[i] {
			kept = append(kept, line)
		}
	}
	return kept
}

// dropLegacy removes a header line plus the run of "- Field: value" bullets
// under it. Blank lines inside the run are consumed with it.
func dropLegacy(lines []string) []string {
	kept := make([]string, 0, len(lines))

	i := 0
	for i < len(lines) {
		if legacyHeaderRe.MatchString(lines[i]) {
			j := i + 1
			sawField := false
			for j < len(lines) && (strings.TrimSpace(lines[j]) == "" || fieldLineRe.MatchString(lines[j])) {
				if fieldLineRe.MatchString(lines[j]) {
					sawField = true
				}
				j++
			}
			if sawField {
				i = j
				continue
			}
		}
		kept = append(kept, lines[i])
		i++
	}
	return kept
}
