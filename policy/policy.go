// Package policy holds the tournament-mode business rules: how many players a
// mode needs, what it costs to enter and whether a team name is mandatory.
package policy

// Game and mode identifiers accepted by the registration form.
const (
	GamePUBG     = "pubg"
	GameFreeFire = "freefire"
	GameCOD      = "cod"

	ModeSolo  = "solo"
	ModeDuo   = "duo"
	ModeSquad = "squad"
)

// Games lists every supported game in display order.
var Games = []string{GamePUBG, GameFreeFire, GameCOD}

// Modes lists every supported mode in display order.
var Modes = []string{ModeSolo, ModeDuo, ModeSquad}

type modeRule struct {
	players      int
	entryFee     int
	teamRequired bool
}

var modeRules = map[string]modeRule{
	ModeSolo:  {players: 1, entryFee: 5, teamRequired: false},
	ModeDuo:   {players: 2, entryFee: 10, teamRequired: true},
	ModeSquad: {players: 4, entryFee: 20, teamRequired: true},
}

// IsKnownMode reports whether mode has a rule.
func IsKnownMode(mode string) bool {
	_, ok := modeRules[mode]
	return ok
}

// IsKnownGame reports whether game is supported.
func IsKnownGame(game string) bool {
	for _, g := range Games {
		if g == game {
			return true
		}
	}
	return false
}

// EntryFeeFor returns the entry fee for mode, or 0 for an unknown mode.
func EntryFeeFor(mode string) int {
	return modeRules[mode].entryFee
}

// RequiredPlayerCountFor returns the roster size mode needs, or 0 for an unknown mode.
func RequiredPlayerCountFor(mode string) int {
	return modeRules[mode].players
}

// TeamNameRequired reports whether mode needs a team name.
func TeamNameRequired(mode string) bool {
	return modeRules[mode].teamRequired
}
