package controller

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/jkap86/thelabbackground2026/model"
)

const (
	// aliasStateName keys the persisted resolution state in the common
	// table.
	aliasStateName = "ktc_dynasty"
	// playerIndexMaxAge is how long the in-memory player index is reused
	// before it is reloaded.
	playerIndexMaxAge = 12 * time.Hour
	// valuationStaleAfter marks a player's history stale once its last sync
	// is older than this.
	valuationStaleAfter = 12 * time.Hour
	// historyBatchSize bounds how many player histories one run fetches,
	// leaving the rest of the backlog for the next run.
	historyBatchSize = 10
	// maxInitRetries bounds how often an empty alias map is rebuilt via a
	// current sync before the history sync gives up.
	maxInitRetries = 3
	// historyRetryDelay is how soon the periodic runner comes back while
	// the history backlog is non-empty.
	historyRetryDelay = 10 * time.Second
)

// playerIndex returns the canonical player index, reloading it from sleeper
// when the cached copy is older than playerIndexMaxAge.
func (c *controller) playerIndex(ctx context.Context) (model.PlayerIndex, error) {
	c.playerMu.Lock()
	defer c.playerMu.Unlock()

	now := c.clock.Now()
	if c.players != nil && now.Sub(c.playersLoaded) < playerIndexMaxAge {
		return c.players, nil
	}

	players, err := c.sleeper.LoadPlayers()
	if err != nil {
		return nil, fmt.Errorf("error loading players: %w", err)
	}

	index := make(model.PlayerIndex, len(players))
	for _, p := range players {
		index[p.ID] = p
	}
	c.players = index
	c.playersLoaded = now
	return index, nil
}

func (c *controller) SyncCurrentValuations(ctx context.Context) (int, error) {
	players, err := c.playerIndex(ctx)
	if err != nil {
		return 0, err
	}
	state, err := c.db.GetAliasState(ctx, aliasStateName)
	if err != nil {
		return 0, err
	}

	scraped, err := c.ktc.GetRankings(ctx)
	if err != nil {
		return 0, fmt.Errorf("error getting rankings: %w", err)
	}

	date := c.clock.Now().UTC().Format(time.DateOnly)
	points := make([]model.ValuationPoint, 0, len(scraped))
	for _, sp := range scraped {
		id, ok := resolvePlayer(sp, players, state)
		if !ok {
			state.AddUnmatched(sp.Slug)
			continue
		}
		points = append(points, model.ValuationPoint{
			PlayerID:     id,
			Date:         date,
			Value:        sp.Value,
			OverallRank:  sp.OverallRank,
			PositionRank: sp.PositionRank,
		})
	}

	if err := c.db.SaveAliasState(ctx, aliasStateName, state); err != nil {
		return 0, err
	}

	n, err := c.db.UpsertValuations(ctx, points)
	if err != nil {
		return 0, err
	}
	log.Printf("current valuations: %d points upserted, %d new, %d unmatched", len(points), n, len(state.Unmatched))
	return len(points), nil
}

func (c *controller) SyncValuationHistory(ctx context.Context) (int, error) {
	return c.syncValuationHistory(ctx, 0)
}

func (c *controller) syncValuationHistory(ctx context.Context, retries int) (int, error) {
	state, err := c.db.GetAliasState(ctx, aliasStateName)
	if err != nil {
		return 0, err
	}

	// An empty alias map means no current sync has run yet; do one to
	// build it, a bounded number of times.
	if len(state.Aliases) == 0 {
		if retries >= maxInitRetries {
			return 0, fmt.Errorf("alias map still empty after %d attempts", maxInitRetries)
		}
		if _, err := c.SyncCurrentValuations(ctx); err != nil {
			return 0, err
		}
		return c.syncValuationHistory(ctx, retries+1)
	}

	cutoff := c.clock.Now().Add(-valuationStaleAfter).UnixMilli()
	stale := state.StaleSlugs(cutoff)
	log.Printf("%d players with stale valuation history", len(stale))

	for _, slug := range stale[:min(historyBatchSize, len(stale))] {
		alias := state.Aliases[slug]

		history, err := c.ktc.GetPlayerHistory(ctx, slug)
		if err != nil {
			log.Printf("error getting history for %s: %v", slug, err)
			continue
		}

		points := mergeHistory(alias.PlayerID, history)
		if _, err := c.db.UpsertValuations(ctx, points); err != nil {
			log.Printf("error upserting history for %s: %v", slug, err)
			continue
		}

		alias.SyncedAt = c.clock.Now().UnixMilli()
	}

	if err := c.db.SaveAliasState(ctx, aliasStateName, state); err != nil {
		return 0, err
	}
	return len(state.StaleSlugs(cutoff)), nil
}

// mergeHistory aligns the three parallel date-coded series into one
// valuation point per calendar date. Ranks are nil for dates the rank series
// do not cover. Later entries for the same date win, so merging the same
// payload twice produces the same set.
func mergeHistory(playerID string, history *model.ScrapedHistory) []model.ValuationPoint {
	overall := rankByDate(history.OverallRanks)
	positional := rankByDate(history.PositionRanks)

	byDate := make(map[string]model.ValuationPoint, len(history.Values))
	for _, pt := range history.Values {
		date, err := expandDateCode(pt.DateCode)
		if err != nil {
			log.Printf("skipping history point for %s: %v", playerID, err)
			continue
		}

		point := model.ValuationPoint{
			PlayerID: playerID,
			Date:     date,
			Value:    pt.Value,
		}
		if rank, ok := overall[pt.DateCode]; ok {
			r := rank
			point.OverallRank = &r
		}
		if rank, ok := positional[pt.DateCode]; ok {
			r := rank
			point.PositionRank = &r
		}
		byDate[date] = point
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	points := make([]model.ValuationPoint, 0, len(dates))
	for _, date := range dates {
		points = append(points, byDate[date])
	}
	return points
}

func rankByDate(series []model.ScrapedSeriesPoint) map[string]int {
	result := make(map[string]int, len(series))
	for _, pt := range series {
		result[pt.DateCode] = pt.Value
	}
	return result
}

// expandDateCode converts the site's compact YYMMDD date code into a
// calendar date like 2025-08-29.
func expandDateCode(code string) (string, error) {
	if len(code) != 6 {
		return "", fmt.Errorf("invalid date code %q", code)
	}
	date := fmt.Sprintf("20%s-%s-%s", code[0:2], code[2:4], code[4:6])
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return "", fmt.Errorf("invalid date code %q", code)
	}
	return date, nil
}

func (c *controller) RunPeriodicValuationUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	defer wg.Done()

	timer := time.NewTimer(frequency)
	defer timer.Stop()

	for {
		select {
		case <-shutdown:
			return
		case <-timer.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			remaining, err := c.SyncValuationHistory(ctx)
			if err != nil {
				log.Printf("%v", err)
			} else if remaining == 0 {
				if _, err := c.SyncCurrentValuations(ctx); err != nil {
					log.Printf("%v", err)
				}
			}
			cancel()

			// Work through the history backlog quickly, then settle back
			// into the regular cadence.
			if remaining > 0 {
				timer.Reset(historyRetryDelay)
			} else {
				timer.Reset(frequency)
			}
		}
	}
}
