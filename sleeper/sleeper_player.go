package sleeper

import (
	"github.com/jkap86/thelabbackground2026/model"
)

type sleeperPlayer struct {
	ID        string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
	YearsExp  int    `json:"years_exp"`
	Active    bool   `json:"active"`
}

func (p *sleeperPlayer) toPlayer() *model.Player {
	return &model.Player{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Position:  model.ParsePosition(p.Position),
		Team:      model.ParseTeam(p.Team),
		YearsExp:  p.YearsExp,
		Active:    p.Active,
	}
}
