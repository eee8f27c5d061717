package arena

import (
	"math"
	"strings"
	"testing"
)

func campaignHarness(opts ...SimOption) *SimHarness {
	base := []SimOption{WithMode(ModeCampaign), WithBots(2), WithSeed(5)}
	return NewSimHarness(append(base, opts...)...)
}

func killAllEnemies(m *Match) {
	for _, e := range m.Enemies {
		e.Alive = false
	}
}

func TestCampaignLevelOneRoster(t *testing.T) {
	h := campaignHarness()
	if len(h.M.Enemies) != 4 {
		t.Fatalf("level 1 spawned %d enemies, want 4", len(h.M.Enemies))
	}
	for _, e := range h.M.Enemies {
		if e.Type != EnemyChaser {
			t.Errorf("level 1 spawned a %s", e.Type)
		}
	}
}

func TestCampaignBotsBecomeAllies(t *testing.T) {
	h := campaignHarness()
	for i, tank := range h.M.Tanks {
		if tank.Role != RoleAlly {
			t.Errorf("tank %d role = %s, want ally", i, tank.Role)
		}
	}
}

func TestCampaignEnemiesSpawnAwayFromSquad(t *testing.T) {
	h := campaignHarness()
	for _, e := range h.M.Enemies {
		for _, tank := range h.M.Tanks {
			if d := math.Hypot(tank.X-e.X, tank.Y-e.Y); d < campaignEnemyMinSpawnDist {
				t.Errorf("%s spawned %.0fpx from a tank", e.Type, d)
			}
		}
	}
}

func TestCampaignLevelCompleteThenAdvance(t *testing.T) {
	h := campaignHarness()
	killAllEnemies(h.M)
	h.Step()

	if h.M.End == nil || h.M.End.Outcome != OutcomeLevelComplete {
		t.Fatalf("end = %+v, want level_complete", h.M.End)
	}
	if h.M.End.Level != 1 {
		t.Errorf("end level = %d", h.M.End.Level)
	}

	h.M.Tanks[0].Health = 5
	if err := h.M.AdvanceLevel(); err != nil {
		t.Fatal(err)
	}
	if h.M.Level != 2 {
		t.Errorf("level = %d, want 2", h.M.Level)
	}
	wantW := defaultMapW * (1 + campaignMapGrowth)
	if math.Abs(h.M.W-wantW) > 1e-9 {
		t.Errorf("map width = %.0f, want %.0f", h.M.W, wantW)
	}
	if h.M.Over || h.M.End != nil {
		t.Error("advanced match still marked over")
	}
	if h.M.Tanks[0].Health != tankMaxHealth {
		t.Errorf("tank not healed between levels: %d", h.M.Tanks[0].Health)
	}
	// Level 2 roster: 5 chasers + 2 spread shooters.
	if len(h.M.Enemies) != 7 {
		t.Errorf("level 2 spawned %d enemies, want 7", len(h.M.Enemies))
	}
}

func TestCampaignLevelFailed(t *testing.T) {
	h := campaignHarness()
	for _, tank := range h.M.Tanks {
		tank.Alive = false
	}
	h.Step()
	if h.M.End == nil || h.M.End.Outcome != OutcomeLevelFailed {
		t.Errorf("end = %+v, want level_failed", h.M.End)
	}
}

func TestCampaignCompleteOnFinalLevel(t *testing.T) {
	h := campaignHarness(WithLevel(5))
	killAllEnemies(h.M)
	h.Step()
	if h.M.End == nil || h.M.End.Outcome != OutcomeCampaignComplete {
		t.Fatalf("end = %+v, want campaign_complete", h.M.End)
	}
	if err := h.M.AdvanceLevel(); err == nil {
		t.Error("AdvanceLevel past the final level did not error")
	}
}

func TestAdvanceLevelRejectsOtherModes(t *testing.T) {
	h := NewSimHarness(WithBots(2))
	if err := h.M.AdvanceLevel(); err == nil {
		t.Error("AdvanceLevel on an FFA match did not error")
	}
}

func TestCampaignFinalLevelIncludesBoss(t *testing.T) {
	h := campaignHarness(WithLevel(5))
	bosses := 0
	for _, e := range h.M.Enemies {
		if e.Type == EnemyBoss {
			bosses++
		}
	}
	if bosses != 1 {
		t.Errorf("level 5 has %d bosses, want 1", bosses)
	}
}

func TestBossEnragesAtLowHealth(t *testing.T) {
	h := campaignHarness()
	m := h.M
	boss := newEnemy(900, EnemyBoss, 700, 500, DifficultyMedium)
	m.Enemies = append(m.Enemies, boss)
	baseSpeed := boss.Speed
	baseInterval := boss.fireEveryMs

	boss.Health = int(float64(boss.MaxHealth)*bossEnrageFraction) - 1
	h.Step()

	if !boss.Enraged {
		t.Fatal("boss below the enrage threshold never enraged")
	}
	if boss.Speed <= baseSpeed {
		t.Errorf("enraged speed %.0f not above base %.0f", boss.Speed, baseSpeed)
	}
	if boss.fireEveryMs >= baseInterval {
		t.Errorf("enraged fire interval %.0f not below base %.0f", boss.fireEveryMs, baseInterval)
	}
}

func TestBossPresenceSwitchesMusic(t *testing.T) {
	h := campaignHarness()
	m := h.M
	if got := m.Mode.MusicTrack(m); got != "campaign_level_1" {
		t.Errorf("track = %q", got)
	}
	m.Enemies = append(m.Enemies, newEnemy(901, EnemyBoss, 700, 500, DifficultyMedium))
	if got := m.Mode.MusicTrack(m); got != "boss_theme" {
		t.Errorf("track with a live boss = %q", got)
	}
}

func TestEnemyHealthScalesWithDifficulty(t *testing.T) {
	cases := []struct {
		diff Difficulty
		want int // chaser base health 3
	}{
		{DifficultyEasy, 2},
		{DifficultyMedium, 3},
		{DifficultyHard, 4},
	}
	for _, tc := range cases {
		e := newEnemy(1, EnemyChaser, 0, 0, tc.diff)
		if e.Health != tc.want {
			t.Errorf("%s chaser health = %d, want %d", tc.diff, e.Health, tc.want)
		}
	}
}

func TestTurretArchetypeNeverMoves(t *testing.T) {
	h := campaignHarness()
	m := h.M
	turret := newEnemy(902, EnemyTurret, 900, 600, DifficultyMedium)
	m.Enemies = append(m.Enemies, turret)
	h.RunTicks(30)
	if turret.X != 900 || turret.Y != 600 {
		t.Errorf("turret moved to (%.0f,%.0f)", turret.X, turret.Y)
	}
}

func TestEnemyKillCountsTowardLevelStats(t *testing.T) {
	h := campaignHarness()
	m := h.M
	ally := m.Tanks[0]
	victim := m.Enemies[0]
	victim.Health = 1

	b := &Bullet{OwnerID: ally.ID, OwnerClass: OwnerAIAlly, Damage: 1, Alive: true}
	m.hitEnemy(b, victim)

	if victim.Alive {
		t.Fatal("enemy survived a lethal hit")
	}
	if m.levelStats.EnemiesKilled != 1 {
		t.Errorf("EnemiesKilled = %d", m.levelStats.EnemiesKilled)
	}
	if m.levelStats.KillsByTank[ally.ID] != 1 {
		t.Errorf("KillsByTank = %v", m.levelStats.KillsByTank)
	}
	if ally.Stats.Kills != 1 {
		t.Errorf("ally kill stat = %d", ally.Stats.Kills)
	}
}

func TestCampaignHUDShowsDifficulty(t *testing.T) {
	h := campaignHarness(WithDifficulty(DifficultyHard))
	lines := h.M.HUDInfo()
	if len(lines) == 0 || !strings.Contains(lines[0], "hard") {
		t.Errorf("HUD = %v, want difficulty shown", lines)
	}
}
