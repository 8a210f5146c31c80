package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = "[[PLAYER_PROFILE:John Doe]]\n" +
	"- Nationality: X\n" +
	"[[/PLAYER_PROFILE]]\n" +
	"[[PLAYER_STATS:John Doe]]\n" +
	"1. Goals: 5\n" +
	"[[/PLAYER_STATS]]\n" +
	"John Doe is strong."

func TestParseProfileAndStats(t *testing.T) {
	players := Parse(sampleResponse)

	require.Len(t, players, 1)
	p := players[0]
	assert.Equal(t, "John Doe", p.Name)
	assert.Equal(t, "X", p.Meta.Nationality)
	assert.Equal(t, []string{}, p.Meta.Roles)
	require.Len(t, p.Stats, 1)
	assert.Equal(t, Stat{Metric: "Goals", Value: 5}, p.Stats[0])
}

func TestParseCrossKindClose(t *testing.T) {
	// A PLAYER_PROFILE block closed with [[/PLAYER_STATS]] still parses:
	// existing generator prompts emit this, so the tolerance must hold.
	raw := "[[PLAYER_PROFILE:Jude]]\n- Nationality: England\n[[/PLAYER_STATS]]"

	players := Parse(raw)
	require.Len(t, players, 1)
	assert.Equal(t, "Jude", players[0].Name)
	assert.Equal(t, "England", players[0].Meta.Nationality)
}

func TestParseUnterminatedBlockDiscarded(t *testing.T) {
	raw := "[[PLAYER_PROFILE:Jude]]\n- Nationality: England\nNo close anywhere."

	players := Parse(raw)
	assert.Empty(t, players)
}

func TestParseOpenAbortedBySameKindOpen(t *testing.T) {
	// The first open never finds a close before another open of the same
	// kind; it is discarded entirely, the second block parses normally.
	raw := "[[PLAYER_PROFILE:Lost]]\n" +
		"- Nationality: Nowhere\n" +
		"[[PLAYER_PROFILE:Kept]]\n" +
		"- Nationality: Spain\n" +
		"[[/PLAYER_PROFILE]]"

	players := Parse(raw)
	require.Len(t, players, 1)
	assert.Equal(t, "Kept", players[0].Name)
	assert.Equal(t, "Spain", players[0].Meta.Nationality)
}

func TestParseDuplicateBlocksFirstWins(t *testing.T) {
	raw := "[[PLAYER_PROFILE:Jude]]\n- Age: 21\n[[/PLAYER_PROFILE]]\n" +
		"[[PLAYER_PROFILE:jude]]\n- Age: 99\n[[/PLAYER_PROFILE]]"

	players := Parse(raw)
	require.Len(t, players, 1)
	require.NotNil(t, players[0].Meta.Age)
	assert.Equal(t, 21, *players[0].Meta.Age)
}

func TestParseAllFields(t *testing.T) {
	raw := "[[PLAYER_PROFILE:Ada]]\n" +
		"- Gender: female\n" +
		"- Height: 170.5\n" +
		"- Weight: 62\n" +
		"- Age (2026): 23\n" +
		"- Nationality: Norway\n" +
		"- Team: Arsenal\n" +
		"- Roles: Right Wing, Center Forward\n" +
		"- Potential: 91\n" +
		"- Shoe Size: 40\n" + // not in the allow-list, ignored
		"[[/PLAYER_PROFILE]]"

	players := Parse(raw)
	require.Len(t, players, 1)
	meta := players[0].Meta
	assert.Equal(t, "female", meta.Gender)
	require.NotNil(t, meta.Height)
	assert.Equal(t, 170.5, *meta.Height)
	require.NotNil(t, meta.Weight)
	assert.Equal(t, float64(62), *meta.Weight)
	require.NotNil(t, meta.Age)
	assert.Equal(t, 23, *meta.Age)
	assert.Equal(t, "Norway", meta.Nationality)
	assert.Equal(t, "Arsenal", meta.Team)
	assert.Equal(t, []string{"Right Wing", "Center Forward"}, meta.Roles)
	require.NotNil(t, meta.Potential)
	assert.Equal(t, 91, *meta.Potential)
}

func TestParseNumericCoercion(t *testing.T) {
	raw := "[[PLAYER_PROFILE:Ada]]\n" +
		"- Age: twenty-three\n" + // fails coercion: omitted, not an error
		"- Height: 183 cm\n" +
		"- Potential: 140\n" + // clamped to the 0-100 scale
		"[[/PLAYER_PROFILE]]"

	players := Parse(raw)
	require.Len(t, players, 1)
	meta := players[0].Meta
	assert.Nil(t, meta.Age)
	require.NotNil(t, meta.Height)
	assert.Equal(t, float64(183), *meta.Height)
	require.NotNil(t, meta.Potential)
	assert.Equal(t, 100, *meta.Potential)
}

func TestParseStatsVariants(t *testing.T) {
	raw := "[[PLAYER_STATS:Jude]]\n" +
		"1. stat_goals: 12\n" +
		"2) stat_accurate-passes-percentage: 89%\n" +
		"- stat_key-passes: 2.4\n" +
		"3. stat_form: excellent\n" + // non-numeric value dropped individually
		"some commentary line\n" +
		"[[/PLAYER_STATS]]"

	players := Parse(raw)
	require.Len(t, players, 1)
	assert.Equal(t, []Stat{
		{Metric: "stat_goals", Value: 12},
		{Metric: "stat_accurate-passes-percentage", Value: 89},
		{Metric: "stat_key-passes", Value: 2.4},
	}, players[0].Stats)
}

func TestParseStatsOnlyPlayer(t *testing.T) {
	raw := "[[PLAYER_STATS:Jude]]\n1. stat_goals: 12\n[[/PLAYER_STATS]]"

	players := Parse(raw)
	require.Len(t, players, 1)
	assert.Equal(t, "Jude", players[0].Name)
	assert.Equal(t, []string{}, players[0].Meta.Roles)
	require.Len(t, players[0].Stats, 1)
}

func TestParseNoBlocks(t *testing.T) {
	assert.Empty(t, Parse("Just a narrative answer with no tags."))
	assert.Empty(t, Parse(""))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "john doe", Normalize("  John Doe "))
	assert.Equal(t, "", Normalize("   "))
}
