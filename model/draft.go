package model

const DraftStatusComplete = "complete"

// Draft is the metadata for one sleeper draft. DraftOrder maps user IDs to
// their slot once the order has been published.
type Draft struct {
	DraftID        string         `json:"draft_id"`
	LeagueID       string         `json:"league_id"`
	Season         string         `json:"season"`
	Type           string         `json:"type"`
	Status         string         `json:"status"`
	Rounds         int            `json:"rounds"`
	StartTime      int64          `json:"start_time"`
	LastPicked     int64          `json:"last_picked"`
	DraftOrder     map[string]int `json:"draft_order"`
	SlotToRosterID map[string]int `json:"slot_to_roster_id,omitempty"`
}

// DraftPick is a future pick owned by a roster. RosterID names the roster the
// slot originally belonged to and never changes; which roster's DraftPicks
// set the pick sits in is its current owner. Order is only known for the
// upcoming draft season once the draft order has been published.
type DraftPick struct {
	Season           int    `json:"season"`
	Round            int    `json:"round"`
	RosterID         int    `json:"roster_id"`
	OriginalUsername string `json:"original_username"`
	Order            *int   `json:"order,omitempty"`
}

// Same returns true when the two picks refer to the same original slot.
func (p DraftPick) Same(season, round, rosterID int) bool {
	return p.Season == season && p.Round == round && p.RosterID == rosterID
}

// TradedPick is one entry of a league's traded-picks feed. OwnerID is the
// roster currently holding the pick, PreviousOwnerID the roster that gave it
// up, RosterID the roster whose original slot it is.
type TradedPick struct {
	Season          string `json:"season"`
	Round           int    `json:"round"`
	RosterID        int    `json:"roster_id"`
	OwnerID         int    `json:"owner_id"`
	PreviousOwnerID int    `json:"previous_owner_id"`
}

// DraftSelection is a single selection made in a completed draft.
type DraftSelection struct {
	DraftID   string `json:"draft_id"`
	PlayerID  string `json:"player_id"`
	PickedBy  string `json:"picked_by"`
	RosterID  int    `json:"roster_id"`
	Round     int    `json:"round"`
	DraftSlot int    `json:"draft_slot"`
	PickNo    int    `json:"pick_no"`
	Amount    *int   `json:"amount"`
	IsKeeper  bool   `json:"is_keeper"`
}
