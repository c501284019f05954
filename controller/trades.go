package controller

import (
	"slices"
	"sort"
	"strconv"

	"github.com/jkap86/thelabbackground2026/model"
)

// holdings is a roster's players and draft picks at one point in time.
// Values are immutable; undoTransaction returns a new holdings per step.
type holdings struct {
	players []string
	picks   []model.DraftPick
}

// undoTransaction reverses the effect one transaction had on a roster. A
// player added after the reference trade was not yet held, so it is removed;
// a player dropped after it was still held, so it is put back. A pick gained
// after it is removed and a pick given away after it is restored, attributed
// to the roster's own username with its draft-slot order left unresolved
// since historical order is not reliably recoverable. A transaction missing
// any of its fields simply contributes nothing for that field.
func undoTransaction(h holdings, rosterID int, username string, txn model.Transaction) holdings {
	next := holdings{
		players: slices.Clone(h.players),
		picks:   slices.Clone(h.picks),
	}

	for playerID, rID := range txn.Adds {
		if rID == rosterID {
			next.players = slices.DeleteFunc(next.players, func(p string) bool {
				return p == playerID
			})
		}
	}

	for _, playerID := range sortedKeys(txn.Drops) {
		if txn.Drops[playerID] == rosterID && !slices.Contains(next.players, playerID) {
			next.players = append(next.players, playerID)
		}
	}

	for _, dp := range txn.DraftPicks {
		season, err := strconv.Atoi(dp.Season)
		if err != nil {
			continue
		}
		if dp.OwnerID == rosterID {
			next.picks = slices.DeleteFunc(next.picks, func(p model.DraftPick) bool {
				return p.Same(season, dp.Round, dp.RosterID)
			})
		}
		if dp.PreviousOwnerID == rosterID {
			next.picks = append(next.picks, model.DraftPick{
				Season:           season,
				Round:            dp.Round,
				RosterID:         dp.RosterID,
				OriginalUsername: username,
			})
		}
	}

	return next
}

// reconstructHoldings folds undoTransaction over the subsequent transactions
// in the order given, starting from the roster's current holdings. With no
// subsequent transactions the roster comes back exactly as it is today.
func reconstructHoldings(roster model.Roster, subsequent []model.Transaction) model.Roster {
	h := holdings{players: roster.Players, picks: roster.DraftPicks}
	for _, txn := range subsequent {
		h = undoTransaction(h, roster.RosterID, roster.Username, txn)
	}
	roster.Players = h.players
	roster.DraftPicks = h.picks
	return roster
}

// buildTrades turns a league's transaction log into trade records. Only
// transactions completed after the startup cutoff count as trade history;
// for each trade, every transaction that completed after it is undone, most
// recent first, to reconstruct how the participating rosters stood
// immediately after the trade. A league with trades disabled, or with no
// usable cutoff, produces no records.
func buildTrades(league *model.League, rosters []model.Roster, transactions []model.Transaction, draftOrder map[string]int, cutoff int64) []model.Trade {
	if league.Settings.DisableTrades != 0 || cutoff == 0 {
		return nil
	}

	completed := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Status == model.TransactionStatusComplete && t.StatusUpdated > cutoff {
			completed = append(completed, t)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].StatusUpdated < completed[j].StatusUpdated
	})

	rostersByID := make(map[int]model.Roster, len(rosters))
	for _, r := range rosters {
		rostersByID[r.RosterID] = r
	}
	userIDOf := func(rosterID int) string {
		if r, ok := rostersByID[rosterID]; ok && r.UserID != "" {
			return r.UserID
		}
		return "0"
	}

	leagueSnapshot := *league
	leagueSnapshot.Rosters = nil

	var trades []model.Trade
	for _, t := range completed {
		if t.Type != model.TransactionTypeTrade {
			continue
		}

		subsequent := make([]model.Transaction, 0)
		for _, txn := range completed {
			if txn.StatusUpdated > t.StatusUpdated {
				subsequent = append(subsequent, txn)
			}
		}
		sort.Slice(subsequent, func(i, j int) bool {
			return subsequent[i].StatusUpdated > subsequent[j].StatusUpdated
		})

		trade := model.Trade{
			TransactionID: t.TransactionID,
			StatusUpdated: t.StatusUpdated,
			LeagueID:      league.LeagueID,
			League:        leagueSnapshot,
			Adds:          make(map[string]string),
			Drops:         make(map[string]string),
			DraftPicks:    make([]model.TradePick, 0, len(t.DraftPicks)),
		}

		participants := make([]int, 0, 4)
		for playerID, rosterID := range t.Adds {
			trade.Adds[playerID] = userIDOf(rosterID)
			participants = appendUniqueInt(participants, rosterID)
		}
		for playerID, rosterID := range t.Drops {
			trade.Drops[playerID] = userIDOf(rosterID)
			participants = appendUniqueInt(participants, rosterID)
		}

		for _, dp := range t.DraftPicks {
			original := rostersByID[dp.RosterID]

			var order *int
			if dp.Season == league.Season {
				if o, ok := draftOrder[original.UserID]; ok {
					order = &o
				}
			}

			originalUsername := original.Username
			if originalUsername == "" {
				originalUsername = model.OrphanUsername
			}

			trade.DraftPicks = append(trade.DraftPicks, model.TradePick{
				Season:           dp.Season,
				Round:            dp.Round,
				Order:            order,
				OriginalUsername: originalUsername,
				OldOwner:         userIDOf(dp.PreviousOwnerID),
				NewOwner:         userIDOf(dp.OwnerID),
			})
			participants = appendUniqueInt(participants, dp.RosterID)
			participants = appendUniqueInt(participants, dp.OwnerID)
			participants = appendUniqueInt(participants, dp.PreviousOwnerID)
		}

		sort.Ints(participants)
		for _, rosterID := range participants {
			roster, ok := rostersByID[rosterID]
			if !ok {
				continue
			}
			trade.Rosters = append(trade.Rosters, reconstructHoldings(roster, subsequent))
		}

		trades = append(trades, trade)
	}

	return trades
}

func appendUniqueInt(s []int, v int) []int {
	if slices.Contains(s, v) {
		return s
	}
	return append(s, v)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
