package arena

import "fmt"

// SimHarness is a headless deterministic wrapper around a Match, used by
// tests and the batch report runner. It steps the simulation at the fixed
// reference tick and drains every emitted cue into a structured log.
type SimHarness struct {
	M    *Match
	Log  *SimLog
	Tick int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptConfig simOptionKind = iota // mutate MatchConfig, applied before NewMatch
	simOptPost                        // mutate the built match, applied after
)

// SimOption is a builder function applied to a SimHarness during
// construction.
type SimOption struct {
	kind simOptionKind
	cfg  func(*MatchConfig)
	post func(*Match)
}

// WithMode selects the game mode (default FFA).
func WithMode(id ModeID) SimOption {
	return SimOption{kind: simOptConfig, cfg: func(c *MatchConfig) { c.Mode = id }}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{kind: simOptConfig, cfg: func(c *MatchConfig) { c.Seed = seed }}
}

// WithMapSize sets the playfield dimensions.
func WithMapSize(w, h float64) SimOption {
	return SimOption{kind: simOptConfig, cfg: func(c *MatchConfig) { c.MapW, c.MapH = w, h }}
}

// WithHumans sets the human player count.
func WithHumans(n int) SimOption {
	return SimOption{kind: simOptConfig, cfg: func(c *MatchConfig) { c.Humans = n }}
}

// WithBots sets the AI tank count.
func WithBots(n int) SimOption {
	return SimOption{kind: simOptConfig, cfg: func(c *MatchConfig) { c.Bots = n }}
}

// WithTeams supplies explicit TDM team assignments in tank index order.
func WithTeams(teams ...Team) SimOption {
	return SimOption{kind: simOptConfig, cfg: func(c *MatchConfig) { c.Teams = teams }}
}

// WithDifficulty sets the campaign difficulty.
func WithDifficulty(d Difficulty) SimOption {
	return SimOption{kind: simOptConfig, cfg: func(c *MatchConfig) { c.Difficulty = d }}
}

// WithLevel sets the campaign starting level.
func WithLevel(level int) SimOption {
	return SimOption{kind: simOptConfig, cfg: func(c *MatchConfig) { c.Level = level }}
}

// WithNoObstacles clears generated obstacles for geometry-sensitive
// scenarios.
func WithNoObstacles() SimOption {
	return SimOption{kind: simOptPost, post: func(m *Match) { m.Obstacles = nil }}
}

// WithObstacleRock places a rock, replacing nothing.
func WithObstacleRock(x, y, r float64) SimOption {
	return SimOption{kind: simOptPost, post: func(m *Match) {
		m.Obstacles = append(m.Obstacles, Obstacle{Kind: ObstacleRock, X: x, Y: y, Radius: r})
	}}
}

// WithObstacleRect places a rectangle obstacle.
func WithObstacleRect(x, y, w, h float64) SimOption {
	return SimOption{kind: simOptPost, post: func(m *Match) {
		m.Obstacles = append(m.Obstacles, Obstacle{Kind: ObstacleRect, X: x, Y: y, W: w, H: h})
	}}
}

// WithTankAt overrides a tank's spawn position.
func WithTankAt(index int, x, y float64) SimOption {
	return SimOption{kind: simOptPost, post: func(m *Match) {
		t := m.Tanks[index]
		t.X, t.Y = x, y
	}}
}

// WithTankHealth overrides a tank's starting health.
func WithTankHealth(index, health int) SimOption {
	return SimOption{kind: simOptPost, post: func(m *Match) {
		m.Tanks[index].Health = health
	}}
}

// WithPowerupAt places a live powerup directly.
func WithPowerupAt(x, y float64, pt PowerupType) SimOption {
	return SimOption{kind: simOptPost, post: func(m *Match) {
		m.Powerups = append(m.Powerups, &Powerup{ID: m.nextPowerupID, X: x, Y: y, Type: pt, Alive: true})
		m.nextPowerupID++
	}}
}

// WithEffect grants a tank a timed effect stack entry directly.
func WithEffect(index int, k EffectKind, durationMs float64) SimOption {
	return SimOption{kind: simOptPost, post: func(m *Match) {
		t := m.Tanks[index]
		t.stacks[k] = append(t.stacks[k], durationMs)
	}}
}

// NewSimHarness builds a harness in two passes: config options first, then
// NewMatch, then post options that poke the built match into shape.
// Construction failure is a test-authoring error and panics.
func NewSimHarness(opts ...SimOption) *SimHarness {
	cfg := MatchConfig{Mode: ModeFFA, Bots: 2, Seed: 1}
	for _, o := range opts {
		if o.kind == simOptConfig {
			o.cfg(&cfg)
		}
	}

	m, err := NewMatch(cfg, NewModeRegistry())
	if err != nil {
		panic(fmt.Sprintf("harness: %v", err))
	}
	for _, o := range opts {
		if o.kind == simOptPost {
			o.post(m)
		}
	}
	// Construction cues (gameStart, trackChange) are not part of any run.
	m.DrainCues()

	return &SimHarness{M: m, Log: NewSimLog()}
}

// Step advances one reference tick and logs the cues it produced.
func (h *SimHarness) Step() {
	h.M.Step()
	h.Tick++
	for _, c := range h.M.DrainCues() {
		h.Log.Add(h.Tick, c.Detail, "cue", c.Kind.String(), "", c.At)
	}
	if h.M.Over && h.M.End != nil && len(h.Log.Filter("end", "")) == 0 {
		h.Log.Add(h.Tick, "--", "end", h.M.End.Outcome.String(), h.M.End.Winner, h.M.End.DurationMs)
	}
}

// RunTicks advances n ticks (stopping early if the match ends).
func (h *SimHarness) RunTicks(n int) {
	for i := 0; i < n && !h.M.Over; i++ {
		h.Step()
	}
}

// RunUntilOver steps until the match ends or maxTicks elapse. Returns true
// if the match ended.
func (h *SimHarness) RunUntilOver(maxTicks int) bool {
	for i := 0; i < maxTicks; i++ {
		h.Step()
		if h.M.Over {
			return true
		}
	}
	return h.M.Over
}
