package model

import "testing"

func TestParseTeam(t *testing.T) {
	tests := []struct {
		input    string
		expected *NFLTeam
	}{
		{input: "FA", expected: TEAM_FA},
		{input: "FA*", expected: TEAM_FA},

		// NFC
		{input: "ARI", expected: TEAM_ARI},
		{input: "ATL", expected: TEAM_ATL},
		{input: "CAR", expected: TEAM_CAR},
		{input: "CHI", expected: TEAM_CHI},
		{input: "DAL", expected: TEAM_DAL},
		{input: "DET", expected: TEAM_DET},
		{input: "GBP", expected: TEAM_GBP},
		{input: "LAR", expected: TEAM_LAR},
		{input: "MIN", expected: TEAM_MIN},
		{input: "NOS", expected: TEAM_NOS},
		{input: "NYG", expected: TEAM_NYG},
		{input: "PHI", expected: TEAM_PHI},
		{input: "SFO", expected: TEAM_SFO},
		{input: "SEA", expected: TEAM_SEA},
		{input: "TBB", expected: TEAM_TBB},
		{input: "WAS", expected: TEAM_WAS},

		// AFC
		{input: "BAL", expected: TEAM_BAL},
		{input: "BUF", expected: TEAM_BUF},
		{input: "CIN", expected: TEAM_CIN},
		{input: "CLE", expected: TEAM_CLE},
		{input: "DEN", expected: TEAM_DEN},
		{input: "HOU", expected: TEAM_HOU},
		{input: "IND", expected: TEAM_IND},
		{input: "JAC", expected: TEAM_JAC},
		{input: "KCC", expected: TEAM_KCC},
		{input: "LVR", expected: TEAM_LVR},
		{input: "LAC", expected: TEAM_LAC},
		{input: "MIA", expected: TEAM_MIA},
		{input: "NEP", expected: TEAM_NEP},
		{input: "NYJ", expected: TEAM_NYJ},
		{input: "PIT", expected: TEAM_PIT},
		{input: "TEN", expected: TEAM_TEN},

		// Short names, as used by one of the two sources
		{input: "GB", expected: TEAM_GBP},
		{input: "NO", expected: TEAM_NOS},
		{input: "SF", expected: TEAM_SFO},
		{input: "TB", expected: TEAM_TBB},
		{input: "JAX", expected: TEAM_JAC},
		{input: "KC", expected: TEAM_KCC},
		{input: "LV", expected: TEAM_LVR},
		{input: "NE", expected: TEAM_NEP},

		// Mixed case and nicknames
		{input: "min", expected: TEAM_MIN},
		{input: "Vikings", expected: TEAM_MIN},
		{input: "jags", expected: TEAM_JAC},
		{input: "Niners", expected: TEAM_SFO},

		// Anything unknown falls back to a free agent
		{input: "", expected: TEAM_FA},
		{input: "XYZ", expected: TEAM_FA},
	}

	for _, tc := range tests {
		result := ParseTeam(tc.input)
		if result != tc.expected {
			t.Errorf("input: '%s', expected: '%s', got '%s'", tc.input, tc.expected, result)
		}
	}
}

func TestTeamEquals(t *testing.T) {
	if !TEAM_MIN.Equals(TEAM_MIN) {
		t.Error("expected a team to equal itself")
	}
	if TEAM_MIN.Equals(TEAM_NYJ) {
		t.Error("expected different teams to not be equal")
	}
	if TEAM_MIN.Equals(nil) {
		t.Error("expected a team to not equal nil")
	}
}
