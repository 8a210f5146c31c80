// Package blocks extracts tagged entity blocks from raw generator output.
//
// The generator is instructed to emit structured data inside delimited
// blocks:
//
//	[[PLAYER_PROFILE:<Name>]]
//	- Nationality: <country>
//	- Age: <age>
//	[[/PLAYER_PROFILE]]
//	[[PLAYER_STATS:<Name>]]
//	1. <Metric>: <value>
//	[[/PLAYER_STATS]]
//
// Parsing is tolerant: unrecognized field lines are ignored, non-numeric
// values are dropped, and a block whose open tag never finds a close tag is
// discarded in its entirety.
package blocks

// Kind identifies a block type in the generator's tag grammar.
type Kind string

// Known block kinds.
const (
	KindProfile Kind = "PLAYER_PROFILE"
	KindStats   Kind = "PLAYER_STATS"
)

// Stat is one (metric, value) pair parsed from a stats block.
type Stat struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
}

// Profile holds the typed fields parsed from a profile block. Fields the
// generator omitted, or whose values failed numeric coercion, stay unset.
type Profile struct {
	Nationality string   `json:"nationality,omitempty"`
	Age         *int     `json:"age,omitempty"`
	Roles       []string `json:"roles"`
	Potential   *int     `json:"potential,omitempty"`
	Gender      string   `json:"gender,omitempty"`
	Height      *float64 `json:"height,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	Team        string   `json:"team,omitempty"`
}

// Player is one entity assembled from its profile and stats blocks within a
// single generator response. It exists only for the duration of one turn;
// the raw assistant text in the message log is the durable form.
type Player struct {
	Name  string  `json:"name"`
	Meta  Profile `json:"meta"`
	Stats []Stat  `json:"stats"`
}
