package sleeper

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jkap86/thelabbackground2026/model"
)

const SleeperURL = "https://api.sleeper.app"

// Client is the external league source. Every method is a single read-only
// API call; no state is kept between calls.
type Client interface {
	LoadPlayers() ([]model.Player, error)
	GetNFLState() (*model.NFLState, error)
	GetLeague(leagueID string) (*model.League, error)
	GetLeaguesForUser(userID, season string) ([]model.League, error)
	GetRosters(leagueID string) ([]model.Roster, error)
	GetLeagueUsers(leagueID string) ([]model.User, error)
	GetDrafts(leagueID string) ([]model.Draft, error)
	GetTradedPicks(leagueID string) ([]model.TradedPick, error)
	GetTransactions(leagueID string, week int) ([]model.Transaction, error)
	GetDraftSelections(draftID string) ([]model.DraftSelection, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

func New() (Client, error) {
	c := &client{
		url: SleeperURL,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
	return c, nil
}

func NewForTest(url string) Client {
	return &client{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *client) LoadPlayers() ([]model.Player, error) {
	var parsed map[string]sleeperPlayer
	if err := c.getJSON("/v1/players/nfl", &parsed); err != nil {
		return nil, err
	}

	// Convert the players into model.Players
	result := make([]model.Player, 0, len(parsed))
	for _, p := range parsed {
		pos := model.ParsePosition(p.Position)
		if pos == model.POS_UNKNOWN || (p.FirstName == "Player" && p.LastName == "Invalid") {
			continue
		}
		result = append(result, *p.toPlayer())
	}

	return result, nil
}

func (c *client) GetNFLState() (*model.NFLState, error) {
	var state model.NFLState
	if err := c.getJSON("/v1/state/nfl", &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *client) GetLeague(leagueID string) (*model.League, error) {
	var l sleeperLeague
	if err := c.getJSON(fmt.Sprintf("/v1/league/%s", leagueID), &l); err != nil {
		return nil, err
	}
	return l.toLeague(), nil
}

func (c *client) GetLeaguesForUser(userID, season string) ([]model.League, error) {
	var parsed []sleeperLeague
	if err := c.getJSON(fmt.Sprintf("/v1/user/%s/leagues/nfl/%s", userID, season), &parsed); err != nil {
		return nil, err
	}

	result := make([]model.League, 0, len(parsed))
	for _, l := range parsed {
		result = append(result, *l.toLeague())
	}
	return result, nil
}

func (c *client) GetRosters(leagueID string) ([]model.Roster, error) {
	var parsed []sleeperRoster
	if err := c.getJSON(fmt.Sprintf("/v1/league/%s/rosters", leagueID), &parsed); err != nil {
		return nil, err
	}

	result := make([]model.Roster, 0, len(parsed))
	for _, r := range parsed {
		result = append(result, *r.toRoster())
	}
	return result, nil
}

func (c *client) GetLeagueUsers(leagueID string) ([]model.User, error) {
	var parsed []sleeperUser
	if err := c.getJSON(fmt.Sprintf("/v1/league/%s/users", leagueID), &parsed); err != nil {
		return nil, err
	}

	result := make([]model.User, 0, len(parsed))
	for _, u := range parsed {
		result = append(result, model.User{
			UserID:   u.UserID,
			Username: u.DisplayName,
			Avatar:   u.Avatar,
		})
	}
	return result, nil
}

func (c *client) GetDrafts(leagueID string) ([]model.Draft, error) {
	var parsed []sleeperDraft
	if err := c.getJSON(fmt.Sprintf("/v1/league/%s/drafts", leagueID), &parsed); err != nil {
		return nil, err
	}

	result := make([]model.Draft, 0, len(parsed))
	for _, d := range parsed {
		result = append(result, *d.toDraft())
	}
	return result, nil
}

func (c *client) GetTradedPicks(leagueID string) ([]model.TradedPick, error) {
	var parsed []model.TradedPick
	if err := c.getJSON(fmt.Sprintf("/v1/league/%s/traded_picks", leagueID), &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

func (c *client) GetTransactions(leagueID string, week int) ([]model.Transaction, error) {
	var parsed []model.Transaction
	if err := c.getJSON(fmt.Sprintf("/v1/league/%s/transactions/%d", leagueID, week), &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

func (c *client) GetDraftSelections(draftID string) ([]model.DraftSelection, error) {
	var parsed []sleeperDraftSelection
	if err := c.getJSON(fmt.Sprintf("/v1/draft/%s/picks", draftID), &parsed); err != nil {
		return nil, err
	}

	result := make([]model.DraftSelection, 0, len(parsed))
	for _, p := range parsed {
		result = append(result, *p.toDraftSelection())
	}
	return result, nil
}

func (c *client) getJSON(path string, v any) error {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s%s", c.url, path), nil)
	if err != nil {
		return fmt.Errorf("error creating http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code from %s: %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("error parsing response from sleeper: %w", err)
	}
	return nil
}
