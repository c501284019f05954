package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

//go:embed sleeperdata
var sleeperdata embed.FS

// IDs used throughout the sleeperdata fixtures.
const (
	TestLeagueID    = "111111111111111111"
	TestNewLeagueID = "222222222222222222"
	TestUserAlpha   = "100001"
	TestUserBravo   = "100002"
	TestDraft2025ID = "d-2025"
)

type FakeSleeperServer struct {
	s *httptest.Server
}

func NewFakeSleeperServer() *FakeSleeperServer {
	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Get("/players/nfl", nflPlayersHandler)
		r.Get("/state/nfl", nflStateHandler)

		r.Route("/league/{leagueID}", func(r chi.Router) {
			r.Get("/", leagueHandler)
			r.Get("/rosters", leagueFileHandler("rosters.json"))
			r.Get("/users", leagueFileHandler("users.json"))
			r.Get("/drafts", leagueFileHandler("drafts.json"))
			r.Get("/traded_picks", leagueFileHandler("traded_picks.json"))
			r.Get("/transactions/{week}", leagueFileHandler("transactions.json"))
		})

		r.Get("/draft/{draftID}/picks", draftSelectionsHandler)
		r.Get("/user/{userID}/leagues/nfl/{year}", userLeaguesHandler)
	})

	return &FakeSleeperServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

func (f *FakeSleeperServer) URL() string {
	return f.s.URL
}

func nflPlayersHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, "players.json")
}

func nflStateHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, "state.json")
}

func leagueHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueID") == TestLeagueID {
		serveFile(w, "league.json")
	} else {
		w.WriteHeader(http.StatusNotFound)
	}
}

func leagueFileHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "leagueID") == TestLeagueID {
			serveFile(w, name)
		} else {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("[]"))
		}
	}
}

func draftSelectionsHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "draftID") == TestDraft2025ID {
		serveFile(w, "draft_selections.json")
	} else {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
	}
}

func userLeaguesHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	year := chi.URLParam(r, "year")

	if userID == TestUserAlpha && year == "2025" {
		serveFile(w, "user_leagues.json")
	} else {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
	}
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := sleeperdata.ReadFile(fmt.Sprintf("sleeperdata/%s", name))
	if err != nil {
		log.Printf("error reading sleeperdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
