package arena

import (
	"strings"
	"testing"
)

// --- FFA ---

func TestFFACornerSpawns(t *testing.T) {
	h := NewSimHarness(WithBots(4))
	m := h.M
	want := map[Point]bool{
		{ffaCornerMargin, ffaCornerMargin}:             true,
		{m.W - ffaCornerMargin, ffaCornerMargin}:       true,
		{ffaCornerMargin, m.H - ffaCornerMargin}:       true,
		{m.W - ffaCornerMargin, m.H - ffaCornerMargin}: true,
	}
	for i, tank := range m.Tanks {
		if !want[Point{tank.X, tank.Y}] {
			t.Errorf("tank %d at (%.0f,%.0f), not a corner", i, tank.X, tank.Y)
		}
		delete(want, Point{tank.X, tank.Y})
	}
	if len(want) != 0 {
		t.Errorf("%d corners unused", len(want))
	}
}

func TestFFAPerimeterSpawnsBeyondFour(t *testing.T) {
	h := NewSimHarness(WithBots(7))
	seen := map[Point]bool{}
	for _, tank := range h.M.Tanks {
		p := Point{tank.X, tank.Y}
		if seen[p] {
			t.Errorf("duplicate spawn at (%.0f,%.0f)", p.X, p.Y)
		}
		seen[p] = true
		onPerimeter := tank.X == ffaCornerMargin || tank.X == h.M.W-ffaCornerMargin ||
			tank.Y == ffaCornerMargin || tank.Y == h.M.H-ffaCornerMargin
		if !onPerimeter {
			t.Errorf("spawn (%.0f,%.0f) not on the inset perimeter", p.X, p.Y)
		}
	}
}

func TestFFADrawWhenAllDie(t *testing.T) {
	h := NewSimHarness(WithBots(2))
	for _, tank := range h.M.Tanks {
		tank.Alive = false
	}
	h.Step()
	if h.M.End == nil || h.M.End.Outcome != OutcomeDraw {
		t.Errorf("end = %+v, want draw", h.M.End)
	}
}

// --- TDM ---

func TestTDMExplicitTeamsHonoured(t *testing.T) {
	h := NewSimHarness(
		WithMode(ModeTDM),
		WithBots(4),
		WithTeams(TeamRed, TeamRed, TeamBlue, TeamBlue),
	)
	got := []Team{}
	for _, tank := range h.M.Tanks {
		got = append(got, tank.Team)
	}
	want := []Team{TeamRed, TeamRed, TeamBlue, TeamBlue}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tank %d team = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTDMSpawnColumns(t *testing.T) {
	h := NewSimHarness(WithMode(ModeTDM), WithBots(4))
	for i, tank := range h.M.Tanks {
		wantX := tdmEdgeMargin
		if tank.Team == TeamBlue {
			wantX = h.M.W - tdmEdgeMargin
		}
		if tank.X != wantX {
			t.Errorf("tank %d (%s) X = %.0f, want %.0f", i, tank.Team, tank.X, wantX)
		}
	}
}

func TestTDMTankColorsFollowTeams(t *testing.T) {
	h := NewSimHarness(WithMode(ModeTDM), WithBots(2))
	for i, tank := range h.M.Tanks {
		if tank.Color != tank.Team.String() {
			t.Errorf("tank %d color = %q for team %s", i, tank.Color, tank.Team)
		}
	}
}

func TestTDMBlueVictoryAndDraw(t *testing.T) {
	h := NewSimHarness(WithMode(ModeTDM), WithBots(4))
	for _, tank := range h.M.Tanks {
		if tank.Team == TeamRed {
			tank.Alive = false
		}
	}
	h.Step()
	if h.M.End == nil || h.M.End.Outcome != OutcomeBlueVictory || h.M.End.WinnerTeam != TeamBlue {
		t.Errorf("end = %+v, want blue victory", h.M.End)
	}

	h2 := NewSimHarness(WithMode(ModeTDM), WithBots(4))
	for _, tank := range h2.M.Tanks {
		tank.Alive = false
	}
	h2.Step()
	if h2.M.End == nil || h2.M.End.Outcome != OutcomeDraw {
		t.Errorf("end = %+v, want draw", h2.M.End)
	}
}

// --- HUD and registry ---

func TestHUDInfoPerMode(t *testing.T) {
	cases := []struct {
		mode ModeID
		want string
	}{
		{ModeFFA, "FREE FOR ALL"},
		{ModeTDM, "TEAM DEATHMATCH"},
		{ModeCampaign, "LEVEL 1/5"},
	}
	for _, tc := range cases {
		h := NewSimHarness(WithMode(tc.mode), WithBots(2))
		lines := h.M.HUDInfo()
		if len(lines) == 0 || !strings.Contains(lines[0], tc.want) {
			t.Errorf("%s HUD = %v, want first line containing %q", tc.mode, lines, tc.want)
		}
	}
}

func TestModeRegistryCoversAllModes(t *testing.T) {
	registry := NewModeRegistry()
	for _, id := range []ModeID{ModeFFA, ModeTDM, ModeCampaign} {
		mode, ok := registry[id]
		if !ok {
			t.Fatalf("mode %s missing from registry", id)
		}
		if mode.ID() != id {
			t.Errorf("registry key %s maps to mode %s", id, mode.ID())
		}
	}
}

// --- Difficulty ---

func TestParseDifficulty(t *testing.T) {
	cases := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"easy", DifficultyEasy, false},
		{"medium", DifficultyMedium, false},
		{"", DifficultyMedium, false},
		{"hard", DifficultyHard, false},
		{"nightmare", DifficultyMedium, true},
	}
	for _, tc := range cases {
		got, err := ParseDifficulty(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseDifficulty(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestDifficultyScalesPullApart(t *testing.T) {
	if !(DifficultyEasy.healthScale() < DifficultyMedium.healthScale() &&
		DifficultyMedium.healthScale() < DifficultyHard.healthScale()) {
		t.Error("health scale not monotonic")
	}
	if !(DifficultyEasy.fireIntervalScale() > DifficultyMedium.fireIntervalScale() &&
		DifficultyMedium.fireIntervalScale() > DifficultyHard.fireIntervalScale()) {
		t.Error("fire interval scale not monotonic (shorter = harder)")
	}
}
