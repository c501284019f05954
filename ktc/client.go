package ktc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/jkap86/thelabbackground2026/model"
	"golang.org/x/time/rate"
)

const KTCURL = "https://keeptradecut.com"

const rankingsPath = "/dynasty-rankings?page=0&filters=QB|WR|RB|TE|RDP&format=2"

// The valuation data is not served as an API. Both pages embed the data as
// javascript literals inside a script tag and these expressions pull the
// JSON back out.
var (
	playersArrayRegex  = regexp.MustCompile(`(?s)var playersArray\s*=\s*(\[.*?\]);`)
	playerHistoryRegex = regexp.MustCompile(`(?s)var playerSuperflex\s*=\s*(\{.*?\});`)
)

// Client is the external valuation source. Fetches are rate limited because
// the source is a scraped website, not an API meant for polling.
type Client interface {
	// GetRankings returns the current valuation of every ranked player from
	// the rankings page.
	GetRankings(ctx context.Context) ([]model.ScrapedPlayer, error)
	// GetPlayerHistory returns the three parallel date-coded series from a
	// player's page.
	GetPlayerHistory(ctx context.Context, slug string) (*model.ScrapedHistory, error)
}

type client struct {
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func New() (Client, error) {
	return newClient(KTCURL, rate.NewLimiter(rate.Every(2*time.Second), 1)), nil
}

func NewForTest(url string) Client {
	return newClient(url, rate.NewLimiter(rate.Inf, 1))
}

func newClient(url string, limiter *rate.Limiter) *client {
	return &client{
		url: url,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
		limiter: limiter,
	}
}

type ktcPlayer struct {
	PlayerName      string `json:"playerName"`
	Slug            string `json:"slug"`
	Position        string `json:"position"`
	Team            string `json:"team"`
	SuperflexValues struct {
		TEPP struct {
			Value          int  `json:"value"`
			Rank           *int `json:"rank"`
			PositionalRank *int `json:"positionalRank"`
		} `json:"tepp"`
	} `json:"superflexValues"`
}

func (c *client) GetRankings(ctx context.Context) ([]model.ScrapedPlayer, error) {
	body, err := c.getPage(ctx, rankingsPath)
	if err != nil {
		return nil, err
	}

	m := playersArrayRegex.FindSubmatch(body)
	if m == nil {
		return nil, fmt.Errorf("no players array found in rankings page")
	}

	var parsed []ktcPlayer
	if err := json.Unmarshal(m[1], &parsed); err != nil {
		return nil, fmt.Errorf("error parsing players array: %w", err)
	}

	result := make([]model.ScrapedPlayer, 0, len(parsed))
	for _, p := range parsed {
		result = append(result, model.ScrapedPlayer{
			Slug:         p.Slug,
			Name:         p.PlayerName,
			Position:     p.Position,
			Team:         p.Team,
			Value:        p.SuperflexValues.TEPP.Value,
			OverallRank:  p.SuperflexValues.TEPP.Rank,
			PositionRank: p.SuperflexValues.TEPP.PositionalRank,
		})
	}
	return result, nil
}

type ktcPlayerPage struct {
	OverallValue          []model.ScrapedSeriesPoint `json:"overallValue"`
	OverallRankHistory    []model.ScrapedSeriesPoint `json:"overallRankHistory"`
	PositionalRankHistory []model.ScrapedSeriesPoint `json:"positionalRankHistory"`
	TEPP                  struct {
		History []model.ScrapedSeriesPoint `json:"history"`
	} `json:"tepp"`
	AdjacentPositionalPlayers []struct {
		Position string `json:"position"`
	} `json:"adjacentPositionalPlayers"`
}

func (c *client) GetPlayerHistory(ctx context.Context, slug string) (*model.ScrapedHistory, error) {
	body, err := c.getPage(ctx, fmt.Sprintf("/dynasty-rankings/players/%s", slug))
	if err != nil {
		return nil, err
	}

	m := playerHistoryRegex.FindSubmatch(body)
	if m == nil {
		return nil, fmt.Errorf("no history object found on page for %s", slug)
	}

	var page ktcPlayerPage
	if err := json.Unmarshal(m[1], &page); err != nil {
		return nil, fmt.Errorf("error parsing history for %s: %w", slug, err)
	}

	// Tight ends get their value history from the TE-premium series, every
	// other position from the overall series.
	values := page.OverallValue
	if len(page.AdjacentPositionalPlayers) > 0 &&
		model.ParsePosition(page.AdjacentPositionalPlayers[0].Position) == model.POS_TE {
		values = page.TEPP.History
	}

	return &model.ScrapedHistory{
		Values:        values,
		OverallRanks:  page.OverallRankHistory,
		PositionRanks: page.PositionalRankHistory,
	}, nil
}

func (c *client) getPage(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s%s", c.url, path), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from %s: %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	return body, nil
}
