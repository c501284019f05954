package testutils

import (
	"context"
	"log"

	"github.com/itbasis/go-clock"
	"github.com/jkap86/thelabbackground2026/containers"
	"github.com/jkap86/thelabbackground2026/db"
	"github.com/jkap86/thelabbackground2026/model"
)

// Players matching the sleeperdata fixtures, for tests that build their own
// player index instead of loading one from the fake server.
var (
	JustinJefferson = model.Player{
		ID:        "6794",
		FirstName: "Justin",
		LastName:  "Jefferson",
		Position:  model.POS_WR,
		Team:      model.TEAM_MIN,
		YearsExp:  5,
		Active:    true,
	}
	JoshAllen = model.Player{
		ID:        "4984",
		FirstName: "Josh",
		LastName:  "Allen",
		Position:  model.POS_QB,
		Team:      model.TEAM_BUF,
		YearsExp:  8,
		Active:    true,
	}
	BreeceHall = model.Player{
		ID:        "8155",
		FirstName: "Breece",
		LastName:  "Hall",
		Position:  model.POS_RB,
		Team:      model.TEAM_NYJ,
		YearsExp:  3,
		Active:    true,
	}
	MikeWilliamsLAC = model.Player{
		ID:        "5045",
		FirstName: "Mike",
		LastName:  "Williams",
		Position:  model.POS_WR,
		Team:      model.TEAM_LAC,
		YearsExp:  8,
		Active:    true,
	}
	MikeWilliamsNYJ = model.Player{
		ID:        "5046",
		FirstName: "Mike",
		LastName:  "Williams",
		Position:  model.POS_WR,
		Team:      model.TEAM_NYJ,
		YearsExp:  2,
	}
)

// NewPlayerIndex builds a canonical index from the given players.
func NewPlayerIndex(players ...model.Player) model.PlayerIndex {
	index := make(model.PlayerIndex, len(players))
	for _, p := range players {
		index[p.ID] = p
	}
	return index
}

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}
