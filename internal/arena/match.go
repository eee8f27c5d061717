package arena

import (
	"fmt"
	"math"

	"github.com/Garsondee/Tank-Arena/internal/queue"
)

const (
	defaultMapW = 1200.0
	defaultMapH = 800.0
	maxPlayers  = 4

	// TickMs is the reference frame duration at 60 TPS. Hosts may pass any
	// dt; the constant exists for fixed-step callers like the harness.
	TickMs = 1000.0 / 60.0
)

var humanColors = [maxPlayers]string{"cyan", "magenta", "lime", "white"}

// MatchConfig is the caller-facing match setup.
type MatchConfig struct {
	Mode       ModeID
	Humans     int
	Bots       int
	MapW, MapH float64
	Teams      []Team // optional explicit TDM assignment, tank index order
	Level      int    // campaign starting level, 1-based
	Difficulty Difficulty
	Seed       int64
	Names      []string // optional human player names
}

func (c *MatchConfig) applyDefaults() {
	if c.MapW == 0 {
		c.MapW = defaultMapW
	}
	if c.MapH == 0 {
		c.MapH = defaultMapH
	}
	if c.Level == 0 {
		c.Level = 1
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
}

func (c *MatchConfig) validate() error {
	if c.Humans < 0 || c.Humans > maxPlayers {
		return fmt.Errorf("humans must be 0..%d, got %d", maxPlayers, c.Humans)
	}
	if c.Bots < 0 {
		return fmt.Errorf("bots must be >= 0, got %d", c.Bots)
	}
	total := c.Humans + c.Bots
	switch c.Mode {
	case ModeCampaign:
		if total < 1 {
			return fmt.Errorf("campaign needs at least 1 tank")
		}
		if c.Level < 1 || c.Level > campaignLevelCount {
			return fmt.Errorf("campaign level must be 1..%d, got %d", campaignLevelCount, c.Level)
		}
	default:
		if total < 2 {
			return fmt.Errorf("%s needs at least 2 tanks, got %d", c.Mode, total)
		}
	}
	if len(c.Teams) != 0 && len(c.Teams) != total {
		return fmt.Errorf("teams list has %d entries for %d tanks", len(c.Teams), total)
	}
	return nil
}

// Match owns every entity collection and advances the simulation in fixed
// per-frame order. All components receive it explicitly; there is no global
// game state.
type Match struct {
	Config MatchConfig
	Mode   Mode
	W, H   float64

	Tanks     []*Tank
	Bullets   []*Bullet
	Obstacles []Obstacle
	Powerups  []*Powerup
	Enemies   []*Enemy

	// Clock is the simulation time in ms. It is the sole time source for
	// every timer in the core.
	Clock  float64
	Paused bool
	Over   bool
	End    *EndEvent
	Level  int // campaign level, 1 otherwise

	players  []*Tank // humans in player-index order
	controls [maxPlayers][controlCount]bool
	intents  *queue.Queue[controlIntent]
	cues     *queue.Queue[Cue]

	rng           *Rand
	nextID        int
	nextPowerupID int
	nextPowerupAt float64
	levelStats    levelStatsRecord
}

// NewMatch builds a ready-to-run match: tanks, teams, spawn layout,
// obstacles, and (in campaign) the enemy roster.
func NewMatch(cfg MatchConfig, registry ModeRegistry) (*Match, error) {
	cfg.applyDefaults()
	mode, ok := registry[cfg.Mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("match config: %w", err)
	}

	m := &Match{
		Config:     cfg,
		Mode:       mode,
		W:          cfg.MapW,
		H:          cfg.MapH,
		Level:      1,
		intents:    queue.New[controlIntent](),
		cues:       queue.New[Cue](),
		rng:        NewRand(uint64(cfg.Seed)),
		levelStats: newLevelStats(),
	}
	if cfg.Mode == ModeCampaign {
		m.Level = cfg.Level
		m.W, m.H = campaignMapSize(cfg.MapW, cfg.MapH, m.Level)
	}

	m.createTanks()
	mode.AssignTeams(m)
	if cfg.Mode == ModeTDM {
		for _, t := range m.Tanks {
			t.Color = t.Team.String()
		}
	}

	spawns := mode.SpawnPositions(m)
	for i, t := range m.Tanks {
		t.X = spawns[i].X
		t.Y = spawns[i].Y
		t.Facing = math.Atan2(m.H/2-t.Y, m.W/2-t.X)
		t.Turret = t.Facing
	}
	m.Obstacles = generateObstacles(m.rng, m.W, m.H, spawns)
	if cfg.Mode == ModeCampaign {
		m.spawnCampaignEnemies()
	}
	m.scheduleNextPowerup()

	m.emitCue(CueGameStart, string(cfg.Mode))
	m.emitCue(CueTrackChange, mode.MusicTrack(m))
	return m, nil
}

func (m *Match) createTanks() {
	botRole := RoleBot
	if m.Config.Mode == ModeCampaign {
		botRole = RoleAlly
	}
	for i := 0; i < m.Config.Humans; i++ {
		name := fmt.Sprintf("Player %d", i+1)
		if i < len(m.Config.Names) && m.Config.Names[i] != "" {
			name = m.Config.Names[i]
		}
		t := newTank(m.nextID, name, RoleHuman, TeamNone, humanColors[i])
		m.nextID++
		m.Tanks = append(m.Tanks, t)
		m.players = append(m.players, t)
	}
	for i := 0; i < m.Config.Bots; i++ {
		t := newTank(m.nextID, fmt.Sprintf("Bot %d", i+1), botRole, TeamNone, "gray")
		m.nextID++
		m.Tanks = append(m.Tanks, t)
	}
}

// Update advances the simulation one frame. The phase order is a hard
// contract: tank/enemy movement, then bullet advancement, then powerups,
// then combat resolution, then the win check. Collision and combat assume
// post-movement positions.
func (m *Match) Update(dtMs float64) {
	if m.Paused || m.Over {
		return
	}
	m.Clock += dtMs

	m.drainControlIntents()

	player := 0
	for _, t := range m.Tanks {
		idx := player
		if t.Role == RoleHuman {
			player++
		}
		if !t.Alive {
			continue
		}
		t.Stats.TimeAliveMs += dtMs
		if t.Role == RoleHuman {
			m.applyHumanControls(t, idx, dtMs)
		} else {
			m.updateAI(t, dtMs)
		}
	}
	m.updateEnemies(dtMs)

	for _, b := range m.Bullets {
		if b.Alive {
			b.advance(dtMs, m.W, m.H, m.Clock)
		}
	}
	m.compactBullets()

	m.updatePowerups(dtMs)

	m.resolveCombat()

	m.Mode.CheckGameEnd(m)
}

// Step advances one reference frame. Fixed-step callers (harness, batch
// runners) use this.
func (m *Match) Step() {
	m.Update(TickMs)
}

// SetPaused toggles the coarse pause gate. While paused no entity state
// changes.
func (m *Match) SetPaused(p bool) {
	m.Paused = p
}

// Stop discards the entity collections outright. The match cannot be
// resumed; build a new one to restart.
func (m *Match) Stop() {
	m.Over = true
	m.Tanks = nil
	m.Bullets = nil
	m.Obstacles = nil
	m.Powerups = nil
	m.Enemies = nil
	m.cues.Clear()
	m.intents.Clear()
}

func (m *Match) finish(ev EndEvent) {
	if m.Over {
		return
	}
	ev.DurationMs = m.Clock
	m.End = &ev
	m.Over = true
	m.emitCue(CueTrackChange, "results")
}

// HUDInfo returns the mode's current display lines.
func (m *Match) HUDInfo() []string {
	return m.Mode.HUDInfo(m)
}

func (m *Match) tankByID(id int) *Tank {
	for _, t := range m.Tanks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
