package controller

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jkap86/thelabbackground2026/model"
)

// nameAliases maps nicknames that the valuation site uses to the name the
// player index carries.
var nameAliases = map[string]string{
	"marquise brown": "hollywood brown",
}

// suffixRegex matches a generational suffix, only at the end of the name.
var suffixRegex = regexp.MustCompile(`\s+(jr\.?|sr\.?|ii|iii|iv|v)$`)

var nonAlphaRegex = regexp.MustCompile(`[^a-z]`)

// Draft picks are listed on the rankings page as pseudo players with slugs
// like "2026-mid-1st". They are not matched against the player index.
var pickSlugMarkers = []string{"-early-", "-mid-", "-late-"}

// resolvePlayer maps a scraped record to a player ID. A slug already in the
// alias cache short-circuits and is never re-evaluated. A single surviving
// candidate is committed to the cache permanently; zero or multiple
// survivors return false and the caller records the slug as unmatched.
// The result is a pure function of the record, the index and the cache.
func resolvePlayer(p model.ScrapedPlayer, players model.PlayerIndex, state *model.AliasState) (string, bool) {
	if a, ok := state.Aliases[p.Slug]; ok {
		return a.PlayerID, true
	}

	for _, marker := range pickSlugMarkers {
		if strings.Contains(p.Slug, marker) {
			return formatPickSlug(p.Slug), true
		}
	}

	name := matchName(p.Name)
	pos := model.ParsePosition(p.Position)

	matches := make([]string, 0, 1)
	for id, candidate := range players {
		if candidate.Position != pos {
			continue
		}
		if !strings.HasPrefix(name, matchName(firstRunes(candidate.FirstName, 3))) {
			continue
		}
		if !strings.Contains(name, matchName(candidate.LastName)) {
			continue
		}
		matches = append(matches, id)
	}

	if len(matches) > 1 {
		// The site uses its own team abbreviation dialect for several
		// teams, which ParseTeam also understands.
		team := model.ParseTeam(p.Team)
		narrowed := make([]string, 0, 1)
		for _, id := range matches {
			if players[id].Team == team {
				narrowed = append(narrowed, id)
			}
		}
		matches = narrowed
	}

	if len(matches) != 1 {
		return "", false
	}

	state.AddAlias(p.Slug, matches[0])
	return matches[0], true
}

// formatPickSlug turns a pick pseudo-player slug like "2026-mid-1st" into
// the label "2026 Mid 1st" used as its ID.
func formatPickSlug(slug string) string {
	parts := strings.SplitN(slug, "-", 3)
	if len(parts) != 3 {
		return slug
	}
	tier := parts[1]
	if tier != "" {
		tier = strings.ToUpper(tier[:1]) + tier[1:]
	}
	return fmt.Sprintf("%s %s %s", parts[0], tier, parts[2])
}

// matchName normalizes a name for comparison: lower-case, known nickname
// aliases applied, a trailing generational suffix removed, and everything
// that is not a letter stripped.
func matchName(name string) string {
	n := strings.ToLower(name)
	for from, to := range nameAliases {
		n = strings.Replace(n, from, to, 1)
	}
	n = suffixRegex.ReplaceAllString(n, "")
	return nonAlphaRegex.ReplaceAllString(n, "")
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}
