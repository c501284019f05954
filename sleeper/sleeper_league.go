package sleeper

import (
	"fmt"

	"github.com/jkap86/thelabbackground2026/model"
)

type sleeperLeague struct {
	LeagueID         string               `json:"league_id"`
	PreviousLeagueID *string              `json:"previous_league_id"`
	Name             string               `json:"name"`
	Avatar           *string              `json:"avatar"`
	RosterPositions  []string             `json:"roster_positions"`
	ScoringSettings  map[string]float64   `json:"scoring_settings"`
	Settings         model.LeagueSettings `json:"settings"`
	Status           string               `json:"status"`
	Season           string               `json:"season"`
}

func (l *sleeperLeague) toLeague() *model.League {
	prev := ""
	if l.PreviousLeagueID != nil {
		prev = *l.PreviousLeagueID
	}
	return &model.League{
		LeagueID:         l.LeagueID,
		Name:             l.Name,
		Avatar:           l.Avatar,
		Season:           l.Season,
		Status:           l.Status,
		PreviousLeagueID: prev,
		RosterPositions:  l.RosterPositions,
		ScoringSettings:  l.ScoringSettings,
		Settings:         l.Settings,
	}
}

type sleeperUser struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Avatar      *string `json:"avatar"`
}

type sleeperRoster struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Players  []string `json:"players"`
	Starters []string `json:"starters"`
	Taxi     []string `json:"taxi"`
	Reserve  []string `json:"reserve"`
	Settings struct {
		Wins               int `json:"wins"`
		Losses             int `json:"losses"`
		Ties               int `json:"ties"`
		Fpts               int `json:"fpts"`
		FptsDecimal        int `json:"fpts_decimal"`
		FptsAgainst        int `json:"fpts_against"`
		FptsAgainstDecimal int `json:"fpts_against_decimal"`
	} `json:"settings"`
}

func (r *sleeperRoster) toRoster() *model.Roster {
	return &model.Roster{
		RosterID:      r.RosterID,
		UserID:        r.OwnerID,
		Players:       orEmpty(r.Players),
		Starters:      orEmpty(r.Starters),
		Taxi:          orEmpty(r.Taxi),
		Reserve:       orEmpty(r.Reserve),
		Wins:          r.Settings.Wins,
		Losses:        r.Settings.Losses,
		Ties:          r.Settings.Ties,
		PointsFor:     joinPoints(r.Settings.Fpts, r.Settings.FptsDecimal),
		PointsAgainst: joinPoints(r.Settings.FptsAgainst, r.Settings.FptsAgainstDecimal),
	}
}

type sleeperDraft struct {
	DraftID        string         `json:"draft_id"`
	LeagueID       string         `json:"league_id"`
	Season         string         `json:"season"`
	Type           string         `json:"type"`
	Status         string         `json:"status"`
	StartTime      int64          `json:"start_time"`
	LastPicked     int64          `json:"last_picked"`
	DraftOrder     map[string]int `json:"draft_order"`
	SlotToRosterID map[string]int `json:"slot_to_roster_id"`
	Settings       struct {
		Rounds int `json:"rounds"`
	} `json:"settings"`
}

func (d *sleeperDraft) toDraft() *model.Draft {
	return &model.Draft{
		DraftID:        d.DraftID,
		LeagueID:       d.LeagueID,
		Season:         d.Season,
		Type:           d.Type,
		Status:         d.Status,
		Rounds:         d.Settings.Rounds,
		StartTime:      d.StartTime,
		LastPicked:     d.LastPicked,
		DraftOrder:     d.DraftOrder,
		SlotToRosterID: d.SlotToRosterID,
	}
}

type sleeperDraftSelection struct {
	DraftID   string `json:"draft_id"`
	PlayerID  string `json:"player_id"`
	PickedBy  string `json:"picked_by"`
	RosterID  int    `json:"roster_id"`
	Round     int    `json:"round"`
	DraftSlot int    `json:"draft_slot"`
	PickNo    int    `json:"pick_no"`
	IsKeeper  *bool  `json:"is_keeper"`
	Metadata  *struct {
		Amount string `json:"amount"`
	} `json:"metadata"`
}

func (p *sleeperDraftSelection) toDraftSelection() *model.DraftSelection {
	s := &model.DraftSelection{
		DraftID:   p.DraftID,
		PlayerID:  p.PlayerID,
		PickedBy:  p.PickedBy,
		RosterID:  p.RosterID,
		Round:     p.Round,
		DraftSlot: p.DraftSlot,
		PickNo:    p.PickNo,
	}
	if p.IsKeeper != nil {
		s.IsKeeper = *p.IsKeeper
	}
	if p.Metadata != nil && p.Metadata.Amount != "" {
		var amount int
		if _, err := fmt.Sscanf(p.Metadata.Amount, "%d", &amount); err == nil {
			s.Amount = &amount
		}
	}
	return s
}

// Sleeper reports fantasy points as separate integer and decimal parts.
func joinPoints(whole, decimal int) float64 {
	return float64(whole) + float64(decimal)/100.0
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
