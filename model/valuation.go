package model

import (
	"slices"
	"sort"
)

// ValuationPoint is one scraped trade-value observation for a player on a
// calendar date. Ranks are nil when the rank series had no entry for that
// date. The upsert key is (PlayerID, Date).
type ValuationPoint struct {
	PlayerID     string `json:"player_id"`
	Date         string `json:"date"` // YYYY-MM-DD
	Value        int    `json:"value"`
	OverallRank  *int   `json:"overall_rank"`
	PositionRank *int   `json:"position_rank"`
}

// ScrapedPlayer is one player record from the valuation site's rankings
// page. Slug is the site's own identifier and is unrelated to the sleeper ID.
type ScrapedPlayer struct {
	Slug         string
	Name         string
	Position     string
	Team         string
	Value        int
	OverallRank  *int
	PositionRank *int
}

// ScrapedSeriesPoint is a single entry of a date-coded series. DateCode is
// the site's compact YYMMDD form.
type ScrapedSeriesPoint struct {
	DateCode string `json:"d"`
	Value    int    `json:"v"`
}

// ScrapedHistory carries the three parallel series found on a player's page.
// The series are independently keyed by date code and are not guaranteed to
// cover the same dates.
type ScrapedHistory struct {
	Values        []ScrapedSeriesPoint
	OverallRanks  []ScrapedSeriesPoint
	PositionRanks []ScrapedSeriesPoint
}

// Alias is a committed slug-to-player mapping. SyncedAt is the last time the
// player's valuation history was fetched, in unix milliseconds; zero means
// never.
type Alias struct {
	PlayerID string `json:"sleeper_id"`
	SyncedAt int64  `json:"sync"`
}

// AliasState is the persistent identity-resolution state for one valuation
// source: the alias cache plus the backlog of slugs that have not resolved
// yet. It is loaded at the start of a sync pass, threaded through it, and
// saved at the end. A slug, once mapped, is never remapped.
type AliasState struct {
	Aliases   map[string]*Alias `json:"aliases"`
	Unmatched []string          `json:"unmatched"`
}

func NewAliasState() *AliasState {
	return &AliasState{Aliases: make(map[string]*Alias)}
}

// AddAlias records a resolved slug and clears it from the unmatched
// backlog. An existing mapping is trusted permanently and left untouched.
func (s *AliasState) AddAlias(slug, playerID string) {
	if i := slices.Index(s.Unmatched, slug); i >= 0 {
		s.Unmatched = slices.Delete(s.Unmatched, i, i+1)
	}
	if _, ok := s.Aliases[slug]; ok {
		return
	}
	s.Aliases[slug] = &Alias{PlayerID: playerID}
}

// AddUnmatched records a slug that failed resolution. The backlog is a set;
// duplicates are ignored. Entries only leave the backlog through a later
// successful match.
func (s *AliasState) AddUnmatched(slug string) {
	if slices.Contains(s.Unmatched, slug) {
		return
	}
	s.Unmatched = append(s.Unmatched, slug)
}

// StaleSlugs returns every aliased slug whose history has never been synced
// or was last synced before cutoff. The result is sorted so that repeated
// scans walk the backlog in a stable order.
func (s *AliasState) StaleSlugs(cutoff int64) []string {
	stale := make([]string, 0, len(s.Aliases))
	for slug, a := range s.Aliases {
		if a.SyncedAt == 0 || a.SyncedAt < cutoff {
			stale = append(stale, slug)
		}
	}
	sort.Strings(stale)
	return stale
}
