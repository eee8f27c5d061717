package arena

import (
	"testing"
)

// dumpLog prints the full SimLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, h *SimHarness) {
	t.Helper()
	entries := h.Log.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// --- Scenario: Point-Blank Shot ---

func TestScenario_PointBlankShot(t *testing.T) {
	t.Log("=== TestScenario_PointBlankShot ===")
	t.Log("--- Setup: two idle humans 100px apart, one aimed shot ---")

	h := NewSimHarness(
		WithHumans(2),
		WithBots(0),
		WithNoObstacles(),
		WithTankAt(0, 400, 400),
		WithTankAt(1, 500, 400),
	)
	shooter := h.M.Tanks[0]
	victim := h.M.Tanks[1]
	shooter.Turret = 0 // straight at the victim
	h.M.fireBullet(shooter)

	h.RunTicks(20)
	dumpLog(t, h)

	if victim.Health != tankMaxHealth-bulletDamage {
		t.Errorf("victim health = %d, want %d", victim.Health, tankMaxHealth-bulletDamage)
	}
	if shooter.Stats.ShotsFired != 1 || shooter.Stats.ShotsHit != 1 {
		t.Errorf("shooter stats fired=%d hit=%d, want 1/1",
			shooter.Stats.ShotsFired, shooter.Stats.ShotsHit)
	}
	if got := len(h.Log.Filter("cue", "hit")); got != 1 {
		t.Errorf("hit cues = %d, want 1", got)
	}
	// The victim is human, so a hurt cue accompanies the hit.
	if got := len(h.Log.Filter("cue", "hurt")); got != 1 {
		t.Errorf("hurt cues = %d, want 1", got)
	}
	if len(h.M.Bullets) != 0 {
		t.Errorf("bullet survived the hit: %d live bullets", len(h.M.Bullets))
	}
}

// --- Scenario: Human Controls ---

func TestScenario_HumanDrivesAndShoots(t *testing.T) {
	t.Log("=== TestScenario_HumanDrivesAndShoots ===")
	t.Log("--- Setup: human holds move-right and shoot for 40 ticks ---")

	h := NewSimHarness(
		WithHumans(2),
		WithBots(0),
		WithNoObstacles(),
		WithTankAt(0, 400, 400),
		WithTankAt(1, 400, 700),
	)
	player := h.M.Tanks[0]

	h.M.SetControlActive(0, ControlMoveRight, true)
	h.M.SetControlActive(0, ControlShoot, true)
	h.RunTicks(40) // ~667ms of sim time
	dumpLog(t, h)

	if player.X <= 440 {
		t.Errorf("player barely moved: X = %.1f", player.X)
	}
	// One shot on the first tick, one more when the 500ms cooldown elapses.
	if player.Stats.ShotsFired != 2 {
		t.Errorf("shots fired = %d, want 2 (cooldown gating)", player.Stats.ShotsFired)
	}

	h.M.SetControlActive(0, ControlMoveRight, false)
	h.M.SetControlActive(0, ControlShoot, false)
	before := player.X
	h.RunTicks(10)
	if player.X != before {
		t.Errorf("player moved after release: %.1f -> %.1f", before, player.X)
	}
}

func TestScenario_TurretAimIndependentOfHull(t *testing.T) {
	h := NewSimHarness(
		WithHumans(2),
		WithBots(0),
		WithNoObstacles(),
		WithTankAt(0, 600, 400),
		WithTankAt(1, 600, 700),
	)
	player := h.M.Tanks[0]
	facing := player.Facing
	turret := player.Turret

	h.M.SetControlActive(0, ControlAimRight, true)
	h.RunTicks(10)

	if player.Facing != facing {
		t.Errorf("hull rotated with the turret: %.3f -> %.3f", facing, player.Facing)
	}
	if player.Turret == turret {
		t.Error("turret never rotated")
	}
}

// --- Scenario: TDM Elimination ---

func TestScenario_TDMRedVictory(t *testing.T) {
	t.Log("=== TestScenario_TDMRedVictory ===")
	t.Log("--- Setup: 1v1 TDM, blue tank eliminated ---")

	h := NewSimHarness(
		WithMode(ModeTDM),
		WithHumans(2),
		WithBots(0),
	)
	if h.M.Tanks[0].Team != TeamRed || h.M.Tanks[1].Team != TeamBlue {
		t.Fatalf("alternating assignment broken: %s / %s",
			h.M.Tanks[0].Team, h.M.Tanks[1].Team)
	}

	h.M.Tanks[1].Alive = false
	h.Step()
	dumpLog(t, h)

	if !h.M.Over || h.M.End == nil {
		t.Fatal("match did not end after the blue roster died")
	}
	if h.M.End.Outcome != OutcomeRedVictory {
		t.Errorf("outcome = %s, want red_victory", h.M.End.Outcome)
	}
	if h.M.End.WinnerTeam != TeamRed {
		t.Errorf("winner team = %s, want red", h.M.End.WinnerTeam)
	}
	if got := len(h.Log.Filter("end", "red_victory")); got != 1 {
		t.Errorf("end log entries = %d, want 1", got)
	}
}

// --- Scenario: FFA Bots Fight To The End ---

func TestScenario_FFABotsFightToTheEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("full-match scenario")
	}
	t.Log("=== TestScenario_FFABotsFightToTheEnd ===")

	h := NewSimHarness(WithBots(3), WithSeed(7))
	finished := h.RunUntilOver(36000) // 10 minutes of sim time
	if !finished {
		t.Fatalf("match never ended; log:\n%s", h.Log.Dump())
	}

	end := h.M.End
	if end.Outcome != OutcomeLastTankStanding && end.Outcome != OutcomeDraw {
		t.Fatalf("outcome = %s", end.Outcome)
	}
	if end.Outcome == OutcomeLastTankStanding {
		winner := 0
		for _, tank := range h.M.Tanks {
			if tank.Alive {
				winner++
				if tank.Name != end.Winner {
					t.Errorf("survivor %q is not the declared winner %q", tank.Name, end.Winner)
				}
			}
		}
		if winner != 1 {
			t.Errorf("last_tank_standing with %d survivors", winner)
		}
	}
	t.Logf("outcome=%s winner=%q after %d ticks", end.Outcome, end.Winner, h.Tick)
}
