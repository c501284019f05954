package model

import (
	"fmt"
)

// Player is one entry in the canonical player index loaded from sleeper.
// The ID is the stable identifier every other record in the system references;
// the valuation pipeline resolves its own slugs to these IDs.
type Player struct {
	ID        string
	FirstName string
	LastName  string
	Position  Position
	Team      *NFLTeam
	YearsExp  int
	Active    bool
}

func (p *Player) FullName() string {
	return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
}

// PlayerIndex is the canonical player index keyed by player ID.
type PlayerIndex map[string]Player
