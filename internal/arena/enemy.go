package arena

import (
	"math"

	"github.com/Garsondee/Tank-Arena/internal/geom"
)

// --- Campaign enemy tuning ---

const (
	enemyContactDamage     = 2     // chaser/boss ram damage
	enemyContactCooldownMs = 800.0 // per-enemy ram cooldown
	bossEnrageFraction     = 0.35  // enrage below this health fraction
	bossEnrageFireScale    = 0.66  // fire interval multiplier once enraged
	bossEnrageSpeedScale   = 1.25  // speed multiplier once enraged
)

// EnemyType is a campaign enemy archetype.
type EnemyType int

const (
	EnemyChaser EnemyType = iota
	EnemySpreadShooter
	EnemyTurret
	EnemyBoss
)

func (e EnemyType) String() string {
	switch e {
	case EnemyChaser:
		return "chaser"
	case EnemySpreadShooter:
		return "spreadShooter"
	case EnemyTurret:
		return "turret"
	case EnemyBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// enemyProfile is the static per-archetype stat block, before difficulty
// scaling.
type enemyProfile struct {
	health       int
	speed        float64 // px per second; 0 = stationary
	radius       float64
	fireRangePx  float64 // 0 = never shoots
	fireEveryMs  float64
	fanBullets   int     // bullets per volley, fanned across spreadArc
	keepDistance float64 // back off inside this range; 0 = always close in
}

var enemyProfiles = map[EnemyType]enemyProfile{
	EnemyChaser:        {health: 3, speed: 115, radius: 14},
	EnemySpreadShooter: {health: 4, speed: 70, radius: 16, fireRangePx: 400, fireEveryMs: 1500, fanBullets: 3, keepDistance: 180},
	EnemyTurret:        {health: 6, speed: 0, radius: 18, fireRangePx: 520, fireEveryMs: 900, fanBullets: 1},
	EnemyBoss:          {health: 40, speed: 55, radius: 28, fireRangePx: 460, fireEveryMs: 1200, fanBullets: 5, keepDistance: 220},
}

// Enemy is a campaign-roster combatant, a separate entity kind from Tank.
type Enemy struct {
	ID        int
	Type      EnemyType
	X, Y      float64
	Facing    float64
	Health    int
	MaxHealth int
	Speed     float64
	Radius    float64
	Alive     bool
	Enraged   bool

	fireEveryMs   float64
	lastShotAt    float64
	lastContactAt float64
}

func newEnemy(id int, et EnemyType, x, y float64, diff Difficulty) *Enemy {
	p := enemyProfiles[et]
	health := int(math.Round(float64(p.health) * diff.healthScale()))
	if health < 1 {
		health = 1
	}
	return &Enemy{
		ID:            id,
		Type:          et,
		X:             x,
		Y:             y,
		Health:        health,
		MaxHealth:     health,
		Speed:         p.speed,
		Radius:        p.radius,
		Alive:         true,
		fireEveryMs:   p.fireEveryMs * diff.fireIntervalScale(),
		lastShotAt:    -1e9,
		lastContactAt: -1e9,
	}
}

// updateEnemies runs the archetype AI for every living enemy. Enemies move
// in the same frame phase as tanks, before bullets advance.
func (m *Match) updateEnemies(dtMs float64) {
	for _, e := range m.Enemies {
		if !e.Alive {
			continue
		}
		m.updateEnemy(e, dtMs)
	}
}

func (m *Match) updateEnemy(e *Enemy, dtMs float64) {
	target := m.nearestLivingTank(e.X, e.Y)
	if target == nil {
		return
	}
	p := enemyProfiles[e.Type]
	dist := geom.Dist(e.X, e.Y, target.X, target.Y)
	toTarget := math.Atan2(target.Y-e.Y, target.X-e.X)
	e.Facing = toTarget

	if e.Type == EnemyBoss && !e.Enraged &&
		float64(e.Health) < float64(e.MaxHealth)*bossEnrageFraction {
		e.Enraged = true
		e.Speed *= bossEnrageSpeedScale
		e.fireEveryMs *= bossEnrageFireScale
	}

	// Movement.
	if e.Speed > 0 {
		switch {
		case p.keepDistance > 0 && dist < p.keepDistance:
			m.moveEnemyToward(e, toTarget+math.Pi, dtMs)
		default:
			m.moveEnemyToward(e, toTarget, dtMs)
		}
	}

	// Ramming archetypes deal contact damage on overlap.
	if e.Type == EnemyChaser || e.Type == EnemyBoss {
		if geom.CircleOverlap(e.X, e.Y, e.Radius, target.X, target.Y, target.Radius) &&
			m.Clock-e.lastContactAt >= enemyContactCooldownMs {
			e.lastContactAt = m.Clock
			m.enemyContactHit(e, target)
		}
	}

	// Shooting.
	if p.fireRangePx > 0 && dist <= p.fireRangePx && m.Clock-e.lastShotAt >= e.fireEveryMs {
		e.lastShotAt = m.Clock
		m.fireEnemyVolley(e, toTarget, p.fanBullets)
	}
}

func (m *Match) moveEnemyToward(e *Enemy, angle, dtMs float64) {
	step := e.Speed * dtMs / 1000.0
	nx := e.X + math.Cos(angle)*step
	ny := e.Y + math.Sin(angle)*step
	if !m.tankCollidesAt(nx, ny, e.Radius) {
		e.X = nx
		e.Y = ny
	}
	e.X = geom.Clamp(e.X, e.Radius, m.W-e.Radius)
	e.Y = geom.Clamp(e.Y, e.Radius, m.H-e.Radius)
}

func (m *Match) enemyContactHit(e *Enemy, victim *Tank) {
	if victim.Invincible() {
		return
	}
	m.emitCue(CueHit, victim.Name)
	if victim.Role == RoleHuman {
		m.emitCue(CueHurt, victim.Name)
	}
	dmg := int(math.Round(enemyContactDamage * m.Config.Difficulty.damageScale()))
	if !victim.applyDamage(dmg) {
		return
	}
	victim.Alive = false
	victim.Stats.Deaths++
	victim.Stats.KilledBy = e.Type.String()
	m.emitCue(CueDeath, victim.Name)
}

// fireEnemyVolley fans count bullets across spreadArc centred on angle.
func (m *Match) fireEnemyVolley(e *Enemy, angle float64, count int) {
	dmg := int(math.Round(bulletDamage * m.Config.Difficulty.damageScale()))
	if dmg < 1 {
		dmg = 1
	}
	for i := 0; i < count; i++ {
		a := angle
		if count > 1 {
			a = angle - spreadArc/2 + spreadArc*float64(i)/float64(count-1)
		}
		m.Bullets = append(m.Bullets, &Bullet{
			X:          e.X + math.Cos(a)*(e.Radius+bulletRadius+1),
			Y:          e.Y + math.Sin(a)*(e.Radius+bulletRadius+1),
			Angle:      a,
			Speed:      bulletSpeed * 0.8,
			Radius:     bulletRadius,
			Damage:     dmg,
			OwnerID:    e.ID,
			OwnerClass: OwnerEnemy,
			OwnerTeam:  TeamNone,
			SpawnedAt:  m.Clock,
			Color:      bulletColors[OwnerEnemy],
			Alive:      true,
		})
	}
	m.emitCue(CueShoot, e.Type.String())
}

// nearestEnemy returns the closest living campaign enemy to (x,y), or nil.
// This is the mode's own lookup used by ally/bot targeting.
func (m *Match) nearestEnemy(x, y float64) *Enemy {
	var best *Enemy
	bestDist := math.Inf(1)
	for _, e := range m.Enemies {
		if !e.Alive {
			continue
		}
		d := geom.DistSq(x, y, e.X, e.Y)
		if d < bestDist {
			bestDist = d
			best = e
		}
	}
	return best
}

func (m *Match) enemyByID(id int) *Enemy {
	for _, e := range m.Enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (m *Match) nearestLivingTank(x, y float64) *Tank {
	var best *Tank
	bestDist := math.Inf(1)
	for _, t := range m.Tanks {
		if !t.Alive {
			continue
		}
		d := geom.DistSq(x, y, t.X, t.Y)
		if d < bestDist {
			bestDist = d
			best = t
		}
	}
	return best
}
