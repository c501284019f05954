package controller

import (
	"strconv"

	"github.com/jkap86/thelabbackground2026/model"
)

// projectionHorizon is how many seasons past the next draft a roster's
// future picks are projected.
const projectionHorizon = 2

// draftProjection is the result of projecting a league's draft-pick
// ownership from its rosters and traded-picks feed.
type draftProjection struct {
	// picksByRoster holds, per roster ID, every future pick that roster
	// currently owns.
	picksByRoster map[int][]model.DraftPick
	// draftOrder maps user IDs to their slot in the upcoming draft, nil
	// when no order has been published.
	draftOrder map[string]int
	// startupCutoff is the completion time of the league's startup draft.
	// Transactions before it are not meaningful trade history. It is 1 for
	// continuation leagues and 0 when no startup draft has completed yet.
	startupCutoff int64
}

// projectDraftPicks computes current draft-pick ownership for every roster.
// Each roster starts with its own original slot for every (season, round) in
// the horizon, minus slots it has traded away, then every traded-pick record
// is overlaid onto its current owner. The overlay is idempotent: a pick is
// added to exactly one owner and the matching original entry is removed at
// most once.
func projectDraftPicks(league *model.League, rosters []model.Roster, users []model.User, drafts []model.Draft, tradedPicks []model.TradedPick) draftProjection {
	season, _ := strconv.Atoi(league.Season)

	// The draft for the current season has already happened or is underway
	// unless the league is still pre draft, so new trades concern next
	// year's draft.
	draftSeason := season
	if league.Status != model.LeagueStatusPreDraft {
		draftSeason = season + 1
	}

	var draftOrder map[string]int
	for _, d := range drafts {
		if d.Season == strconv.Itoa(draftSeason) && d.Rounds == league.Settings.DraftRounds {
			draftOrder = d.DraftOrder
			break
		}
	}

	proj := draftProjection{
		picksByRoster: make(map[int][]model.DraftPick, len(rosters)),
		draftOrder:    draftOrder,
		startupCutoff: startupCutoff(league, drafts),
	}

	usernames := make(map[string]string, len(users))
	for _, u := range users {
		usernames[u.UserID] = u.Username
	}
	username := func(userID string) string {
		if name, ok := usernames[userID]; ok {
			return name
		}
		return model.OrphanUsername
	}
	ownerOf := make(map[int]string, len(rosters))
	for _, r := range rosters {
		ownerOf[r.RosterID] = r.UserID
	}
	orderFor := func(season int, userID string) *int {
		if season != draftSeason || userID == "" {
			return nil
		}
		if o, ok := draftOrder[userID]; ok {
			return &o
		}
		return nil
	}

	for _, roster := range rosters {
		picks := make([]model.DraftPick, 0, (projectionHorizon+1)*league.Settings.DraftRounds)

		for season := draftSeason; season <= draftSeason+projectionHorizon; season++ {
			for round := 1; round <= league.Settings.DraftRounds; round++ {
				if pickTraded(tradedPicks, season, round, roster.RosterID) {
					continue
				}
				picks = append(picks, model.DraftPick{
					Season:           season,
					Round:            round,
					RosterID:         roster.RosterID,
					OriginalUsername: username(roster.UserID),
					Order:            orderFor(season, roster.UserID),
				})
			}
		}

		proj.picksByRoster[roster.RosterID] = picks
	}

	for _, tp := range tradedPicks {
		season, err := strconv.Atoi(tp.Season)
		if err != nil || season < draftSeason {
			continue
		}

		originalUserID := ownerOf[tp.RosterID]
		proj.picksByRoster[tp.OwnerID] = append(proj.picksByRoster[tp.OwnerID], model.DraftPick{
			Season:           season,
			Round:            tp.Round,
			RosterID:         tp.RosterID,
			OriginalUsername: username(originalUserID),
			Order:            orderFor(season, originalUserID),
		})

		prev := proj.picksByRoster[tp.PreviousOwnerID]
		for i, pick := range prev {
			if pick.Same(season, tp.Round, tp.RosterID) {
				proj.picksByRoster[tp.PreviousOwnerID] = append(prev[:i], prev[i+1:]...)
				break
			}
		}
	}

	return proj
}

// startupCutoff finds the timestamp gating legitimate trade history. A
// league linked to a predecessor has no startup draft this season and is
// always post startup, so it gets a sentinel of 1. Otherwise the cutoff is
// the completion time of a finished draft with more rounds than the league's
// configured count, the signal that it was the initial startup draft. Zero
// means no startup draft has completed and the league has no usable trade
// history yet.
func startupCutoff(league *model.League, drafts []model.Draft) int64 {
	if prev, err := strconv.Atoi(league.PreviousLeagueID); err == nil && prev > 0 {
		return 1
	}
	for _, d := range drafts {
		if d.Status == model.DraftStatusComplete && d.Rounds > league.Settings.DraftRounds {
			return d.LastPicked
		}
	}
	return 0
}

func pickTraded(tradedPicks []model.TradedPick, season, round, rosterID int) bool {
	for _, tp := range tradedPicks {
		s, err := strconv.Atoi(tp.Season)
		if err != nil {
			continue
		}
		if s == season && tp.Round == round && tp.RosterID == rosterID {
			return true
		}
	}
	return false
}
