package model

// LeagueDataBatch is everything one league sync pass produced. The whole
// batch is committed in a single transaction; a failure anywhere leaves the
// previously committed state untouched.
type LeagueDataBatch struct {
	Users           []User
	Leagues         []League
	Trades          []Trade
	Drafts          []Draft
	DraftSelections []DraftSelection
}

// UpsertCounts reports how many rows of each kind were newly inserted by a
// batch commit, as opposed to updating rows that already existed.
type UpsertCounts struct {
	NewUsers           int
	NewLeagues         int
	NewTrades          int
	NewDrafts          int
	NewDraftSelections int
}
