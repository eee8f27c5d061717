package arena

import (
	"fmt"

	"github.com/Garsondee/Tank-Arena/internal/queue"
)

// AISnapshot mirrors the per-tank AI scratchpad. It is part of the snapshot
// surface so a restored match makes the same decisions as the original;
// no engine-only state hides outside the snapshot.
type AISnapshot struct {
	TargetID           int     `json:"targetId"`
	TargetLockUntil    float64 `json:"targetLockUntil"`
	LastTargetID       int     `json:"lastTargetId"`
	LastTargetX        float64 `json:"lastTargetX"`
	LastTargetY        float64 `json:"lastTargetY"`
	HasLastTarget      bool    `json:"hasLastTarget"`
	OrbitDir           float64 `json:"orbitDir"`
	OrbitAngle         float64 `json:"orbitAngle"`
	RetreatUntil       float64 `json:"retreatUntil"`
	ChasePowerupID     int     `json:"chasePowerupId"`
	ChaseStartedAt     float64 `json:"chaseStartedAt"`
	ChaseCooldownUntil float64 `json:"chaseCooldownUntil"`
}

// TankSnapshot is the full serializable state of one tank.
type TankSnapshot struct {
	ID         int                    `json:"id"`
	Name       string                 `json:"name"`
	X          float64                `json:"x"`
	Y          float64                `json:"y"`
	Facing     float64                `json:"facing"`
	Turret     float64                `json:"turret"`
	Health     int                    `json:"health"`
	MaxHealth  int                    `json:"maxHealth"`
	BaseSpeed  float64                `json:"baseSpeed"`
	Radius     float64                `json:"radius"`
	Team       Team                   `json:"team"`
	Role       Role                   `json:"role"`
	Alive      bool                   `json:"alive"`
	Color      string                 `json:"color"`
	LastShotAt float64                `json:"lastShotAt"`
	Stacks     [effectCount][]float64 `json:"stacks"`
	AI         AISnapshot             `json:"ai"`
	Stats      TankStats              `json:"stats"`
}

// EnemySnapshot is the full serializable state of one campaign enemy.
type EnemySnapshot struct {
	ID            int       `json:"id"`
	Type          EnemyType `json:"type"`
	X             float64   `json:"x"`
	Y             float64   `json:"y"`
	Facing        float64   `json:"facing"`
	Health        int       `json:"health"`
	MaxHealth     int       `json:"maxHealth"`
	Speed         float64   `json:"speed"`
	Radius        float64   `json:"radius"`
	Alive         bool      `json:"alive"`
	Enraged       bool      `json:"enraged"`
	FireEveryMs   float64   `json:"fireEveryMs"`
	LastShotAt    float64   `json:"lastShotAt"`
	LastContactAt float64   `json:"lastContactAt"`
}

// MatchSnapshot is a read-only, JSON-serializable view of the whole match.
// Rendering collaborators draw from it; RestoreMatch rebuilds an equivalent
// match whose next frame behaves identically (RNG state included).
type MatchSnapshot struct {
	Config   MatchConfig `json:"config"`
	W        float64     `json:"w"`
	H        float64     `json:"h"`
	Clock    float64     `json:"clock"`
	Paused   bool        `json:"paused"`
	Over     bool        `json:"over"`
	End      *EndEvent   `json:"end,omitempty"`
	Level    int         `json:"level"`
	RngState uint64      `json:"rngState"`

	NextID        int     `json:"nextId"`
	NextPowerupID int     `json:"nextPowerupId"`
	NextPowerupAt float64 `json:"nextPowerupAt"`

	Controls [maxPlayers][controlCount]bool `json:"controls"`

	Tanks     []TankSnapshot  `json:"tanks"`
	Bullets   []Bullet        `json:"bullets"`
	Obstacles []Obstacle      `json:"obstacles"`
	Powerups  []Powerup       `json:"powerups"`
	Enemies   []EnemySnapshot `json:"enemies"`

	EnemiesKilled int         `json:"enemiesKilled"`
	KillsByTank   map[int]int `json:"killsByTank,omitempty"`

	HUD []string `json:"hud"`
}

// copyKillCounts detaches the campaign kill map so snapshots and restored
// matches never alias the live one.
func copyKillCounts(src map[int]int) map[int]int {
	if src == nil {
		return nil
	}
	dst := make(map[int]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Snapshot captures the complete match state.
func (m *Match) Snapshot() MatchSnapshot {
	s := MatchSnapshot{
		Config:        m.Config,
		W:             m.W,
		H:             m.H,
		Clock:         m.Clock,
		Paused:        m.Paused,
		Over:          m.Over,
		End:           m.End,
		Level:         m.Level,
		RngState:      m.rng.State(),
		NextID:        m.nextID,
		NextPowerupID: m.nextPowerupID,
		NextPowerupAt: m.nextPowerupAt,
		Controls:      m.controls,
		Obstacles:     append([]Obstacle(nil), m.Obstacles...),
		EnemiesKilled: m.levelStats.EnemiesKilled,
		KillsByTank:   copyKillCounts(m.levelStats.KillsByTank),
		HUD:           m.HUDInfo(),
	}

	for _, t := range m.Tanks {
		ts := TankSnapshot{
			ID:         t.ID,
			Name:       t.Name,
			X:          t.X,
			Y:          t.Y,
			Facing:     t.Facing,
			Turret:     t.Turret,
			Health:     t.Health,
			MaxHealth:  t.MaxHealth,
			BaseSpeed:  t.BaseSpeed,
			Radius:     t.Radius,
			Team:       t.Team,
			Role:       t.Role,
			Alive:      t.Alive,
			Color:      t.Color,
			LastShotAt: t.lastShotAt,
			AI: AISnapshot{
				TargetID:           t.ai.targetID,
				TargetLockUntil:    t.ai.targetLockUntil,
				LastTargetID:       t.ai.lastTargetID,
				LastTargetX:        t.ai.lastTargetX,
				LastTargetY:        t.ai.lastTargetY,
				HasLastTarget:      t.ai.hasLastTarget,
				OrbitDir:           t.ai.orbitDir,
				OrbitAngle:         t.ai.orbitAngle,
				RetreatUntil:       t.ai.retreatUntil,
				ChasePowerupID:     t.ai.chasePowerupID,
				ChaseStartedAt:     t.ai.chaseStartedAt,
				ChaseCooldownUntil: t.ai.chaseCooldownUntil,
			},
			Stats: t.Stats,
		}
		for k := range t.stacks {
			ts.Stacks[k] = append([]float64(nil), t.stacks[k]...)
		}
		s.Tanks = append(s.Tanks, ts)
	}

	for _, b := range m.Bullets {
		s.Bullets = append(s.Bullets, *b)
	}
	for _, p := range m.Powerups {
		s.Powerups = append(s.Powerups, *p)
	}
	for _, e := range m.Enemies {
		s.Enemies = append(s.Enemies, EnemySnapshot{
			ID:            e.ID,
			Type:          e.Type,
			X:             e.X,
			Y:             e.Y,
			Facing:        e.Facing,
			Health:        e.Health,
			MaxHealth:     e.MaxHealth,
			Speed:         e.Speed,
			Radius:        e.Radius,
			Alive:         e.Alive,
			Enraged:       e.Enraged,
			FireEveryMs:   e.fireEveryMs,
			LastShotAt:    e.lastShotAt,
			LastContactAt: e.lastContactAt,
		})
	}
	return s
}

// RestoreMatch reconstructs a match from a snapshot. The restored match's
// next Update is behaviourally identical to what the snapshotted match
// would have done.
func RestoreMatch(s MatchSnapshot, registry ModeRegistry) (*Match, error) {
	mode, ok := registry[s.Config.Mode]
	if !ok {
		return nil, fmt.Errorf("restore: unknown mode %q", s.Config.Mode)
	}

	m := &Match{
		Config:        s.Config,
		Mode:          mode,
		W:             s.W,
		H:             s.H,
		Clock:         s.Clock,
		Paused:        s.Paused,
		Over:          s.Over,
		End:           s.End,
		Level:         s.Level,
		intents:       queue.New[controlIntent](),
		cues:          queue.New[Cue](),
		rng:           NewRand(1),
		nextID:        s.NextID,
		nextPowerupID: s.NextPowerupID,
		nextPowerupAt: s.NextPowerupAt,
		controls:      s.Controls,
		Obstacles:     append([]Obstacle(nil), s.Obstacles...),
		levelStats:    levelStatsRecord{EnemiesKilled: s.EnemiesKilled, KillsByTank: copyKillCounts(s.KillsByTank)},
	}
	m.rng.SetState(s.RngState)
	if m.levelStats.KillsByTank == nil {
		m.levelStats.KillsByTank = make(map[int]int)
	}

	for _, ts := range s.Tanks {
		t := &Tank{
			ID:         ts.ID,
			Name:       ts.Name,
			X:          ts.X,
			Y:          ts.Y,
			Facing:     ts.Facing,
			Turret:     ts.Turret,
			Health:     ts.Health,
			MaxHealth:  ts.MaxHealth,
			BaseSpeed:  ts.BaseSpeed,
			Radius:     ts.Radius,
			Team:       ts.Team,
			Role:       ts.Role,
			Alive:      ts.Alive,
			Color:      ts.Color,
			lastShotAt: ts.LastShotAt,
			ai: aiState{
				targetID:           ts.AI.TargetID,
				targetLockUntil:    ts.AI.TargetLockUntil,
				lastTargetID:       ts.AI.LastTargetID,
				lastTargetX:        ts.AI.LastTargetX,
				lastTargetY:        ts.AI.LastTargetY,
				hasLastTarget:      ts.AI.HasLastTarget,
				orbitDir:           ts.AI.OrbitDir,
				orbitAngle:         ts.AI.OrbitAngle,
				retreatUntil:       ts.AI.RetreatUntil,
				chasePowerupID:     ts.AI.ChasePowerupID,
				chaseStartedAt:     ts.AI.ChaseStartedAt,
				chaseCooldownUntil: ts.AI.ChaseCooldownUntil,
			},
			Stats: ts.Stats,
		}
		for k := range ts.Stacks {
			t.stacks[k] = append([]float64(nil), ts.Stacks[k]...)
		}
		m.Tanks = append(m.Tanks, t)
		if t.Role == RoleHuman {
			m.players = append(m.players, t)
		}
	}

	for i := range s.Bullets {
		b := s.Bullets[i]
		m.Bullets = append(m.Bullets, &b)
	}
	for i := range s.Powerups {
		p := s.Powerups[i]
		m.Powerups = append(m.Powerups, &p)
	}
	for _, es := range s.Enemies {
		m.Enemies = append(m.Enemies, &Enemy{
			ID:            es.ID,
			Type:          es.Type,
			X:             es.X,
			Y:             es.Y,
			Facing:        es.Facing,
			Health:        es.Health,
			MaxHealth:     es.MaxHealth,
			Speed:         es.Speed,
			Radius:        es.Radius,
			Alive:         es.Alive,
			Enraged:       es.Enraged,
			fireEveryMs:   es.FireEveryMs,
			lastShotAt:    es.LastShotAt,
			lastContactAt: es.LastContactAt,
		})
	}
	return m, nil
}
