package model

const (
	LeagueStatusPreDraft = "pre_draft"
	LeagueStatusComplete = "complete"
)

// OrphanUsername is used for rosters that have no user attached.
const OrphanUsername = "Orphan"

// League is the snapshot of a sleeper league for one sync pass. It is
// replaced wholesale every time the league is synced. When embedded in a
// Trade record the Rosters field is left empty.
type League struct {
	LeagueID         string             `json:"league_id"`
	Name             string             `json:"name"`
	Avatar           *string            `json:"avatar"`
	Season           string             `json:"season"`
	Status           string             `json:"status"`
	PreviousLeagueID string             `json:"previous_league_id,omitempty"`
	RosterPositions  []string           `json:"roster_positions"`
	ScoringSettings  map[string]float64 `json:"scoring_settings"`
	Settings         LeagueSettings     `json:"settings"`
	Rosters          []Roster           `json:"rosters,omitempty"`
}

type LeagueSettings struct {
	Type               int `json:"type"`
	DraftRounds        int `json:"draft_rounds"`
	DisableTrades      int `json:"disable_trades"`
	TradeDeadline      int `json:"trade_deadline"`
	TaxiSlots          int `json:"taxi_slots"`
	ReserveSlots       int `json:"reserve_slots"`
	ReserveAllowNA     int `json:"reserve_allow_na"`
	BestBall           int `json:"best_ball,omitempty"`
	PlayoffWeekStart   int `json:"playoff_week_start"`
	LeagueAverageMatch int `json:"league_average_match"`
	DailyWaivers       int `json:"daily_waivers"`
}

// Roster is one team in a league together with everything it currently
// holds: player IDs and the draft picks it owns after the traded-picks
// overlay has been applied.
type Roster struct {
	RosterID      int         `json:"roster_id"`
	UserID        string      `json:"user_id"`
	Username      string      `json:"username"`
	Avatar        *string     `json:"avatar"`
	Players       []string    `json:"players"`
	Starters      []string    `json:"starters,omitempty"`
	Taxi          []string    `json:"taxi,omitempty"`
	Reserve       []string    `json:"reserve,omitempty"`
	DraftPicks    []DraftPick `json:"draft_picks"`
	Wins          int         `json:"wins"`
	Losses        int         `json:"losses"`
	Ties          int         `json:"ties"`
	PointsFor     float64     `json:"fp"`
	PointsAgainst float64     `json:"fpa"`
}

const (
	// UserTypeSuperuser marks accounts elevated outside of the sync path.
	// The league sync never writes this value and never overwrites it.
	UserTypeSuperuser = "S"
	// UserTypeLeagueManager is the default for users discovered on rosters.
	UserTypeLeagueManager = "LM"
)

type User struct {
	UserID   string  `json:"user_id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar"`
	Type     string  `json:"type"`
}

// NFLState is the live season/week marker from sleeper.
type NFLState struct {
	Season string `json:"season"`
	Week   int    `json:"week"`
	Leg    int    `json:"leg"`
}
