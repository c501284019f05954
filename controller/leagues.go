package controller

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jkap86/thelabbackground2026/model"
)

const (
	// leagueBatchSize is how many leagues are fetched concurrently.
	leagueBatchSize = 5
	// leagueQueueLimit caps how many leagues one pass will sync.
	leagueQueueLimit = 250
	// userScanLimit is how many unscanned users league discovery looks at
	// per pass.
	userScanLimit = 100
	// userBatchSize is how many users are scanned concurrently.
	userBatchSize = 10
)

func (c *controller) SyncLeagues(ctx context.Context, leagueIDs []string) (*model.UpsertCounts, error) {
	state, err := c.sleeper.GetNFLState()
	if err != nil {
		return nil, fmt.Errorf("error getting nfl state: %w", err)
	}
	week := weekFor(state, c.season)

	batch := &model.LeagueDataBatch{}
	var mu sync.Mutex

	for i := 0; i < len(leagueIDs); i += leagueBatchSize {
		var wg sync.WaitGroup
		for _, id := range leagueIDs[i:min(i+leagueBatchSize, len(leagueIDs))] {
			wg.Add(1)
			go func(leagueID string) {
				defer wg.Done()
				part, err := c.syncLeague(ctx, leagueID, week)
				if err != nil {
					log.Printf("error syncing league %s: %v", leagueID, err)
					return
				}
				mu.Lock()
				mergeBatches(batch, part)
				mu.Unlock()
			}(id)
		}
		wg.Wait()
	}

	counts, err := c.db.UpsertLeagueData(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("error committing league data: %w", err)
	}
	return counts, nil
}

// syncLeague fetches one league's snapshot and assembles its contribution to
// the pass: the league with rosters and projected picks attached, its users,
// its reconstructed trades and any newly completed draft with its
// selections.
func (c *controller) syncLeague(ctx context.Context, leagueID string, week int) (*model.LeagueDataBatch, error) {
	league, err := c.sleeper.GetLeague(leagueID)
	if err != nil {
		return nil, fmt.Errorf("error getting league: %w", err)
	}
	rosters, err := c.sleeper.GetRosters(leagueID)
	if err != nil {
		return nil, fmt.Errorf("error getting rosters: %w", err)
	}
	users, err := c.sleeper.GetLeagueUsers(leagueID)
	if err != nil {
		return nil, fmt.Errorf("error getting users: %w", err)
	}
	drafts, err := c.sleeper.GetDrafts(leagueID)
	if err != nil {
		return nil, fmt.Errorf("error getting drafts: %w", err)
	}
	tradedPicks, err := c.sleeper.GetTradedPicks(leagueID)
	if err != nil {
		return nil, fmt.Errorf("error getting traded picks: %w", err)
	}

	proj := projectDraftPicks(league, rosters, users, drafts, tradedPicks)
	rosters = attachOwners(rosters, users, proj.picksByRoster)

	batch := &model.LeagueDataBatch{}

	if err := c.captureCompletedDrafts(ctx, drafts, batch); err != nil {
		return nil, err
	}

	for _, r := range rosters {
		if r.UserID == "" {
			continue
		}
		batch.Users = append(batch.Users, model.User{
			UserID:   r.UserID,
			Username: r.Username,
			Avatar:   r.Avatar,
			Type:     model.UserTypeLeagueManager,
		})
	}

	if league.Settings.DisableTrades == 0 && proj.startupCutoff != 0 {
		transactions, err := c.sleeper.GetTransactions(leagueID, week)
		if err != nil {
			return nil, fmt.Errorf("error getting transactions: %w", err)
		}
		batch.Trades = buildTrades(league, rosters, transactions, proj.draftOrder, proj.startupCutoff)
	}

	league.Rosters = rosters
	batch.Leagues = append(batch.Leagues, *league)
	return batch, nil
}

// captureCompletedDrafts adds any current-season draft that has completed
// but is not recorded as complete yet, along with its selections. Drafts
// already recorded complete are never re-fetched.
func (c *controller) captureCompletedDrafts(ctx context.Context, drafts []model.Draft, batch *model.LeagueDataBatch) error {
	completed := make([]model.Draft, 0, len(drafts))
	ids := make([]string, 0, len(drafts))
	for _, d := range drafts {
		if d.Status == model.DraftStatusComplete && d.Season == c.season {
			completed = append(completed, d)
			ids = append(ids, d.DraftID)
		}
	}
	if len(completed) == 0 {
		return nil
	}

	known, err := c.db.ListCompletedDraftIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("error checking recorded drafts: %w", err)
	}

	for _, d := range completed {
		if known[d.DraftID] {
			continue
		}
		selections, err := c.sleeper.GetDraftSelections(d.DraftID)
		if err != nil {
			return fmt.Errorf("error getting selections for draft %s: %w", d.DraftID, err)
		}
		batch.Drafts = append(batch.Drafts, d)
		batch.DraftSelections = append(batch.DraftSelections, selections...)
	}
	return nil
}

// attachOwners fills in each roster's username and avatar from the league's
// user list, marking ownerless rosters as orphans, and attaches the
// projected draft picks.
func attachOwners(rosters []model.Roster, users []model.User, picksByRoster map[int][]model.DraftPick) []model.Roster {
	usersByID := make(map[string]model.User, len(users))
	for _, u := range users {
		usersByID[u.UserID] = u
	}

	result := make([]model.Roster, 0, len(rosters))
	for _, r := range rosters {
		if u, ok := usersByID[r.UserID]; ok {
			r.Username = u.Username
			r.Avatar = u.Avatar
		} else {
			r.Username = model.OrphanUsername
		}
		r.DraftPicks = picksByRoster[r.RosterID]
		result = append(result, r)
	}
	return result
}

func (c *controller) UpdateLeagues(ctx context.Context) (*model.UpsertCounts, error) {
	queue := c.takeLeagueQueue()

	if len(queue) < leagueQueueLimit {
		discovered, err := c.discoverLeagues(ctx)
		if err != nil {
			log.Printf("error discovering leagues: %v", err)
		}
		for _, id := range discovered {
			queue = appendUnique(queue, id)
		}
	}

	toUpdate := queue[:min(leagueQueueLimit, len(queue))]

	if len(toUpdate) < leagueQueueLimit {
		stale, err := c.db.ListStaleLeagueIDs(ctx, leagueQueueLimit-len(toUpdate))
		if err != nil {
			c.putLeagueQueue(queue)
			return nil, fmt.Errorf("error listing stale leagues: %w", err)
		}
		for _, id := range stale {
			toUpdate = appendUnique(toUpdate, id)
		}
	}

	counts, err := c.SyncLeagues(ctx, toUpdate)
	if err != nil {
		c.putLeagueQueue(queue)
		return nil, err
	}

	c.putLeagueQueue(queue[min(leagueQueueLimit, len(queue)):])
	log.Printf("league pass complete: %+v, queued: %d", *counts, len(queue)-min(leagueQueueLimit, len(queue)))
	return counts, nil
}

// discoverLeagues scans the users that have gone the longest without a
// scan, fetches the leagues each belongs to this season and returns the
// league IDs not in the store yet. Scanned users are touched so the next
// pass moves on to others.
func (c *controller) discoverLeagues(ctx context.Context) ([]string, error) {
	userIDs, err := c.db.ListStaleUserIDs(ctx, userScanLimit)
	if err != nil {
		return nil, fmt.Errorf("error listing users to scan: %w", err)
	}

	var found []string
	var mu sync.Mutex

	for i := 0; i < len(userIDs); i += userBatchSize {
		var wg sync.WaitGroup
		scanned := make([]string, 0, userBatchSize)
		for _, id := range userIDs[i:min(i+userBatchSize, len(userIDs))] {
			wg.Add(1)
			go func(userID string) {
				defer wg.Done()
				leagues, err := c.sleeper.GetLeaguesForUser(userID, c.season)
				if err != nil {
					log.Printf("error getting leagues for user %s: %v", userID, err)
					return
				}
				mu.Lock()
				for _, l := range leagues {
					found = appendUnique(found, l.LeagueID)
				}
				scanned = append(scanned, userID)
				mu.Unlock()
			}(id)
		}
		wg.Wait()

		if len(scanned) > 0 {
			if err := c.db.TouchUsers(ctx, scanned); err != nil {
				return nil, fmt.Errorf("error touching users: %w", err)
			}
		}
	}

	if len(found) == 0 {
		return nil, nil
	}
	return c.db.FilterUnknownLeagueIDs(ctx, found)
}

func (c *controller) RunPeriodicLeagueUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			if _, err := c.UpdateLeagues(ctx); err != nil {
				log.Printf("%v", err)
			}
			cancel()
		}
	}
}

// weekFor picks the transaction week to fetch. Outside of the configured
// season only week 1 exists to ask about.
func weekFor(state *model.NFLState, season string) int {
	if state.Season != season {
		return 1
	}
	week := min(state.Week, state.Leg)
	if week < 1 {
		week = 1
	}
	return week
}

func (c *controller) takeLeagueQueue() []string {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()
	queue := c.leagueQueue
	c.leagueQueue = nil
	return queue
}

func (c *controller) putLeagueQueue(queue []string) {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()
	c.leagueQueue = append(queue, c.leagueQueue...)
}

func mergeBatches(dst, src *model.LeagueDataBatch) {
	for _, u := range src.Users {
		exists := false
		for _, existing := range dst.Users {
			if existing.UserID == u.UserID {
				exists = true
				break
			}
		}
		if !exists {
			dst.Users = append(dst.Users, u)
		}
	}
	dst.Leagues = append(dst.Leagues, src.Leagues...)
	dst.Trades = append(dst.Trades, src.Trades...)
	dst.Drafts = append(dst.Drafts, src.Drafts...)
	dst.DraftSelections = append(dst.DraftSelections, src.DraftSelections...)
}

func appendUnique(s []string, v string) []string {
	for _, existing := range s {
		if existing == v {
			return s
		}
	}
	return append(s, v)
}
