package arena

import (
	"fmt"
	"math"
)

const (
	campaignLevelCount = 5

	campaignGridOrigin  = 90.0 // players/allies grid corner offset
	campaignGridSpacing = 70.0
	campaignGridCols    = 3

	campaignMapGrowth          = 0.15  // map dimension growth per level
	campaignEnemyMinSpawnDist  = 300.0 // enemies spawn no closer to any player
	campaignEnemyPlaceAttempts = 100
)

// campaignLevels maps level (1-based index-1) to the enemy roster it spawns.
var campaignLevels = [campaignLevelCount]map[EnemyType]int{
	{EnemyChaser: 4},
	{EnemyChaser: 5, EnemySpreadShooter: 2},
	{EnemyChaser: 6, EnemySpreadShooter: 3, EnemyTurret: 2},
	{EnemyChaser: 8, EnemySpreadShooter: 4, EnemyTurret: 3},
	{EnemyChaser: 10, EnemySpreadShooter: 5, EnemyTurret: 4, EnemyBoss: 1},
}

// campaignMapSize scales the base map dimensions up per level.
func campaignMapSize(baseW, baseH float64, level int) (float64, float64) {
	scale := 1.0 + campaignMapGrowth*float64(level-1)
	return baseW * scale, baseH * scale
}

// levelStatsRecord tracks per-level campaign bookkeeping.
type levelStatsRecord struct {
	EnemiesKilled int
	KillsByTank   map[int]int
}

func newLevelStats() levelStatsRecord {
	return levelStatsRecord{KillsByTank: make(map[int]int)}
}

// CampaignMode: sequential wave-based levels against scripted enemy
// archetypes. Players and AI allies share one side; the enemy roster is a
// separate entity kind owned by the match.
type CampaignMode struct{}

func (*CampaignMode) ID() ModeID { return ModeCampaign }

func (*CampaignMode) AssignTeams(m *Match) {
	for _, t := range m.Tanks {
		t.Team = TeamNone
	}
}

// SpawnPositions lays players and allies out in a grid near the top-left
// corner.
func (*CampaignMode) SpawnPositions(m *Match) []Point {
	spawns := make([]Point, len(m.Tanks))
	for i := range m.Tanks {
		col := i % campaignGridCols
		row := i / campaignGridCols
		spawns[i] = Point{
			campaignGridOrigin + float64(col)*campaignGridSpacing,
			campaignGridOrigin + float64(row)*campaignGridSpacing,
		}
	}
	return spawns
}

// CheckGameEnd: win when the whole enemy roster is dead, lose when every
// player and ally is dead.
func (*CampaignMode) CheckGameEnd(m *Match) {
	enemiesAlive := 0
	for _, e := range m.Enemies {
		if e.Alive {
			enemiesAlive++
		}
	}
	tanksAlive := 0
	for _, t := range m.Tanks {
		if t.Alive {
			tanksAlive++
		}
	}

	switch {
	case tanksAlive == 0:
		m.finish(EndEvent{Outcome: OutcomeLevelFailed, Level: m.Level})
	case enemiesAlive == 0:
		if m.Level >= campaignLevelCount {
			m.finish(EndEvent{Outcome: OutcomeCampaignComplete, Level: m.Level})
		} else {
			m.finish(EndEvent{Outcome: OutcomeLevelComplete, Level: m.Level})
		}
	}
}

func (*CampaignMode) MusicTrack(m *Match) string {
	for _, e := range m.Enemies {
		if e.Alive && e.Type == EnemyBoss {
			return "boss_theme"
		}
	}
	return fmt.Sprintf("campaign_level_%d", m.Level)
}

func (*CampaignMode) HUDInfo(m *Match) []string {
	enemiesAlive := 0
	for _, e := range m.Enemies {
		if e.Alive {
			enemiesAlive++
		}
	}
	tanksAlive := 0
	for _, t := range m.Tanks {
		if t.Alive {
			tanksAlive++
		}
	}
	return []string{
		fmt.Sprintf("LEVEL %d/%d (%s)", m.Level, campaignLevelCount, m.Config.Difficulty),
		formatCount("enemies left", enemiesAlive),
		formatCount("squad alive", tanksAlive),
	}
}

// spawnCampaignEnemies builds the level's roster at random positions a
// minimum distance from every player/ally. Exhausted placement attempts
// skip that enemy rather than fail the level.
func (m *Match) spawnCampaignEnemies() {
	table := campaignLevels[m.Level-1]
	// Fixed archetype order keeps spawn layout deterministic per seed.
	for _, et := range []EnemyType{EnemyChaser, EnemySpreadShooter, EnemyTurret, EnemyBoss} {
		for i := 0; i < table[et]; i++ {
			if p, ok := m.findEnemySpawn(enemyProfiles[et].radius); ok {
				m.Enemies = append(m.Enemies, newEnemy(m.nextID, et, p.X, p.Y, m.Config.Difficulty))
				m.nextID++
			}
		}
	}
}

func (m *Match) findEnemySpawn(radius float64) (Point, bool) {
	for attempt := 0; attempt < campaignEnemyPlaceAttempts; attempt++ {
		x := radius + m.rng.Float64()*(m.W-2*radius)
		y := radius + m.rng.Float64()*(m.H-2*radius)
		if m.tankCollidesAt(x, y, radius) {
			continue
		}
		tooClose := false
		for _, t := range m.Tanks {
			if math.Hypot(t.X-x, t.Y-y) < campaignEnemyMinSpawnDist {
				tooClose = true
				break
			}
		}
		if !tooClose {
			return Point{x, y}, true
		}
	}
	return Point{}, false
}

// AdvanceLevel moves a completed campaign match to the next level: a larger
// map, fresh obstacles and enemy roster, healed tanks, carried-over stats.
// Advancing past the last level reports campaign completion, not an error.
func (m *Match) AdvanceLevel() error {
	if m.Config.Mode != ModeCampaign {
		return fmt.Errorf("advance level: match mode is %s, not campaign", m.Config.Mode)
	}
	if m.Level >= campaignLevelCount {
		return fmt.Errorf("advance level: campaign already complete at level %d", m.Level)
	}

	m.Level++
	m.W, m.H = campaignMapSize(m.Config.MapW, m.Config.MapH, m.Level)
	m.Over = false
	m.End = nil
	m.Bullets = m.Bullets[:0]
	m.Powerups = m.Powerups[:0]
	m.Enemies = m.Enemies[:0]
	m.levelStats = newLevelStats()

	spawns := m.Mode.SpawnPositions(m)
	for i, t := range m.Tanks {
		t.Alive = true
		t.Health = t.MaxHealth
		t.X = spawns[i].X
		t.Y = spawns[i].Y
		t.ai = newAIState()
		for k := range t.stacks {
			t.stacks[k] = nil
		}
	}
	m.Obstacles = generateObstacles(m.rng, m.W, m.H, spawns)
	m.spawnCampaignEnemies()
	m.scheduleNextPowerup()
	m.emitCue(CueTrackChange, m.Mode.MusicTrack(m))
	return nil
}
