package model

const (
	TransactionStatusComplete = "complete"
	TransactionTypeTrade      = "trade"
)

// Transaction is one entry of a league's transaction log. Once its status is
// complete it is an immutable historical fact. Adds and Drops map player IDs
// to the roster that gained or lost them; either map may be absent.
type Transaction struct {
	TransactionID string            `json:"transaction_id"`
	Type          string            `json:"type"`
	Status        string            `json:"status"`
	StatusUpdated int64             `json:"status_updated"`
	Adds          map[string]int    `json:"adds"`
	Drops         map[string]int    `json:"drops"`
	DraftPicks    []TransactionPick `json:"draft_picks"`
}

// TransactionPick is a draft-pick ownership transfer inside a transaction.
// RosterID is the original slot, PreviousOwnerID the roster giving the pick
// up and OwnerID the roster receiving it.
type TransactionPick struct {
	Season          string `json:"season"`
	Round           int    `json:"round"`
	RosterID        int    `json:"roster_id"`
	OwnerID         int    `json:"owner_id"`
	PreviousOwnerID int    `json:"previous_owner_id"`
}

// Trade is a completed trade transaction enriched with the league snapshot
// and, for each roster the trade touched, that roster's holdings as they
// stood immediately after the trade. It is recomputed on every sync and
// upserted by transaction ID.
type Trade struct {
	TransactionID string            `json:"transaction_id"`
	StatusUpdated int64             `json:"status_updated"`
	LeagueID      string            `json:"league_id"`
	League        League            `json:"league"`
	Adds          map[string]string `json:"adds"`
	Drops         map[string]string `json:"drops"`
	DraftPicks    []TradePick       `json:"draft_picks"`
	Rosters       []Roster          `json:"rosters"`
}

// TradePick describes one pick changing hands in a trade, with the user IDs
// of the old and new owners and the username of the original slot holder.
type TradePick struct {
	Season           string `json:"season"`
	Round            int    `json:"round"`
	Order            *int   `json:"order"`
	OriginalUsername string `json:"original"`
	OldOwner         string `json:"old"`
	NewOwner         string `json:"new"`
}
