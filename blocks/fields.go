package blocks

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	fieldLineRe = regexp.MustCompile(`^\s*-\s*\**\s*([^:*\]]+?)\s*\**\s*:\s*(.+?)\s*$`)
	statLineRe  = regexp.MustCompile(`^\s*(?:\d+\s*[.)]\s*|-\s*)\**\s*([^:*\]]+?)\s*\**\s*:\s*(.+?)\s*$`)
	numberRe    = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)
)

// parseProfileBody parses "- <Field>: <value>" lines against the fixed field
// allow-list. Unrecognized field lines are ignored; numeric values that fail
// to parse are omitted from the record.
func parseProfileBody(body []string) Profile {
	p := Profile{Roles: []string{}}

	for _, line := range body {
		m := fieldLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(m[1]))
		value := strings.TrimSpace(m[2])

		switch {
		case strings.HasPrefix(key, "nationality"):
			p.Nationality = value
		case strings.HasPrefix(key, "age"):
			// Prompt variants emit "Age", "Age (2026)" etc.
			if n, ok := parseNumber(value); ok {
				age := int(n)
				p.Age = &age
			}
		case strings.HasPrefix(key, "role"):
			p.Roles = splitRoles(value)
		case strings.HasPrefix(key, "potential"):
			if n, ok := parseNumber(value); ok {
				pot := clampPotential(int(n))
				p.Potential = &pot
			}
		case strings.HasPrefix(key, "gender"):
			p.Gender = value
		case strings.HasPrefix(key, "height"):
			if n, ok := parseNumber(value); ok {
				p.Height = &n
			}
		case strings.HasPrefix(key, "weight"):
			if n, ok := parseNumber(value); ok {
				p.Weight = &n
			}
		case strings.HasPrefix(key, "team"):
			p.Team = value
		}
	}

	return p
}

// parseStatsBody parses numbered or bulleted "<metric>: <value>" lines into
// (metric, value) pairs. Non-numeric values drop the pair, not the block.
func parseStatsBody(body []string) []Stat {
	stats := []Stat{}
	for _, line := range body {
		m := statLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		value, ok := parseNumber(m[2])
		if !ok {
			continue
		}
		stats = append(stats, Stat{
			Metric: strings.TrimSpace(m[1]),
			Value:  value,
		})
	}
	return stats
}

// splitRoles parses a comma-separated role list, trimming each entry.
func splitRoles(value string) []string {
	roles := []string{}
	for _, r := range strings.Split(value, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

// parseNumber coerces a field value to a number. Values like "87%" or
// "183 cm" parse to their leading numeric part.
func parseNumber(value string) (float64, bool) {
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "%"))
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n, true
	}
	loc := numberRe.FindStringIndex(value)
	if loc == nil || loc[0] != 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(value[loc[0]:loc[1]], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// clampPotential keeps the scouting potential on its documented 0-100 scale.
func clampPotential(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
