package arena

import (
	"math"

	"github.com/Garsondee/Tank-Arena/internal/geom"
)

// spreadArc is the total fan width of a spread shot, centred on the turret.
const spreadArc = 0.6 // radians

// ownerClassFor maps a tank role to its bullet owner tag.
func ownerClassFor(r Role) OwnerClass {
	switch r {
	case RoleHuman:
		return OwnerPlayer
	case RoleAlly:
		return OwnerAIAlly
	default:
		return OwnerAI
	}
}

var bulletColors = map[OwnerClass]string{
	OwnerPlayer: "yellow",
	OwnerAI:     "orange",
	OwnerAIAlly: "green",
	OwnerEnemy:  "purple",
}

// fireBullet performs one trigger pull for a tank: a single bullet along the
// turret, or a 3^n fan when n spread-shot stacks are active. The formula
// degenerates correctly at n=0.
func (m *Match) fireBullet(t *Tank) {
	t.lastShotAt = m.Clock

	n := t.StackCount(EffectSpreadShot)
	count := 1
	for i := 0; i < n; i++ {
		count *= 3
	}

	bounces := 0
	if t.StackCount(EffectBouncing) > 0 {
		bounces = bouncingBulletBounces
	}

	class := ownerClassFor(t.Role)
	for i := 0; i < count; i++ {
		angle := t.Turret
		if count > 1 {
			angle = t.Turret - spreadArc/2 + spreadArc*float64(i)/float64(count-1)
		}
		m.Bullets = append(m.Bullets, &Bullet{
			X:          t.X + math.Cos(angle)*(t.Radius+bulletRadius+1),
			Y:          t.Y + math.Sin(angle)*(t.Radius+bulletRadius+1),
			Angle:      angle,
			Speed:      bulletSpeed,
			Radius:     bulletRadius,
			Damage:     bulletDamage,
			OwnerID:    t.ID,
			OwnerClass: class,
			OwnerTeam:  t.Team,
			Bounces:    bounces,
			SpawnedAt:  m.Clock,
			Color:      bulletColors[class],
			Alive:      true,
		})
	}
	t.Stats.ShotsFired += count
	m.emitCue(CueShoot, t.Name)
}

// bulletCanHitTank applies owner, team, and campaign ownership filters.
func (m *Match) bulletCanHitTank(b *Bullet, victim *Tank) bool {
	if !victim.Alive {
		return false
	}
	if b.OwnerClass != OwnerEnemy && b.OwnerID == victim.ID {
		return false
	}
	switch m.Config.Mode {
	case ModeTDM:
		// Friendly fire is impossible by construction.
		return b.OwnerTeam != victim.Team
	case ModeCampaign:
		// Only the enemy roster hurts players and allies.
		return b.OwnerClass == OwnerEnemy
	default:
		return true
	}
}

// bulletCanHitEnemy filters bullet-vs-enemy: enemies never damage each other.
func (m *Match) bulletCanHitEnemy(b *Bullet, e *Enemy) bool {
	return e.Alive && b.OwnerClass != OwnerEnemy
}

// resolveCombat runs bullet-vs-tank, bullet-vs-enemy, then bullet-vs-obstacle
// for every live bullet. Positions are post-movement by the frame ordering
// contract.
func (m *Match) resolveCombat() {
	for _, b := range m.Bullets {
		if !b.Alive {
			continue
		}

		for _, t := range m.Tanks {
			if !m.bulletCanHitTank(b, t) {
				continue
			}
			if !geom.CircleOverlap(b.X, b.Y, b.Radius, t.X, t.Y, t.Radius) {
				continue
			}
			m.hitTank(b, t)
			break
		}
		if !b.Alive {
			continue
		}

		for _, e := range m.Enemies {
			if !m.bulletCanHitEnemy(b, e) {
				continue
			}
			if !geom.CircleOverlap(b.X, b.Y, b.Radius, e.X, e.Y, e.Radius) {
				continue
			}
			m.hitEnemy(b, e)
			break
		}
		if !b.Alive {
			continue
		}

		for _, o := range m.Obstacles {
			if !o.blocksCircle(b.X, b.Y, b.Radius) {
				continue
			}
			m.bulletHitsObstacle(b, o)
			break
		}
	}
	m.compactBullets()
}

// hitTank consumes the bullet and applies damage unless the victim holds an
// invincibility stack (the bullet is still absorbed).
func (m *Match) hitTank(b *Bullet, victim *Tank) {
	b.Alive = false
	if victim.Invincible() {
		return
	}

	shooter := m.shooterTank(b)
	if shooter != nil {
		shooter.Stats.ShotsHit++
	}
	m.emitCue(CueHit, victim.Name)
	if victim.Role == RoleHuman {
		m.emitCue(CueHurt, victim.Name)
	}

	if !victim.applyDamage(b.Damage) {
		return
	}
	victim.Alive = false
	victim.Stats.Deaths++
	victim.Stats.KilledBy = m.shooterName(b)
	if shooter != nil {
		shooter.Stats.Kills++
	}
	m.emitCue(CueDeath, victim.Name)
}

// hitEnemy mirrors hitTank for the campaign enemy roster.
func (m *Match) hitEnemy(b *Bullet, e *Enemy) {
	b.Alive = false

	shooter := m.shooterTank(b)
	if shooter != nil {
		shooter.Stats.ShotsHit++
	}
	m.emitCue(CueHit, e.Type.String())

	e.Health -= b.Damage
	if e.Health > 0 {
		return
	}
	e.Health = 0
	e.Alive = false
	m.levelStats.EnemiesKilled++
	if shooter != nil {
		shooter.Stats.Kills++
		m.levelStats.KillsByTank[shooter.ID]++
	}
	m.emitCue(CueEnemyDeath, e.Type.String())
}

// bulletHitsObstacle ricochets while bounces remain, else destroys the
// bullet. Rocks reflect off the surface normal; rectangles reflect off the
// nearest edge's axis.
func (m *Match) bulletHitsObstacle(b *Bullet, o Obstacle) {
	if b.Bounces <= 0 {
		b.Alive = false
		return
	}
	b.Bounces--

	if o.Kind == ObstacleRock {
		nx := b.X - o.X
		ny := b.Y - o.Y
		length := math.Hypot(nx, ny)
		if length < 1e-9 {
			b.Alive = false
			return
		}
		nx /= length
		ny /= length
		b.Angle = geom.ReflectVelocity(b.Angle, nx, ny)
		// Push the bullet to the surface so it does not re-collide.
		b.X = o.X + nx*(o.Radius+b.Radius)
		b.Y = o.Y + ny*(o.Radius+b.Radius)
		return
	}

	// Rectangle: pick the reflection axis from the nearest of the four edges.
	left := o.X - o.W/2
	right := o.X + o.W/2
	top := o.Y - o.H/2
	bottom := o.Y + o.H/2

	dLeft := math.Abs(b.X - left)
	dRight := math.Abs(b.X - right)
	dTop := math.Abs(b.Y - top)
	dBottom := math.Abs(b.Y - bottom)

	minH := math.Min(dLeft, dRight)
	minV := math.Min(dTop, dBottom)
	if minH <= minV {
		b.Angle = geom.ReflectAxis(b.Angle, geom.AxisVertical)
		if dLeft <= dRight {
			b.X = left - b.Radius
		} else {
			b.X = right + b.Radius
		}
	} else {
		b.Angle = geom.ReflectAxis(b.Angle, geom.AxisHorizontal)
		if dTop <= dBottom {
			b.Y = top - b.Radius
		} else {
			b.Y = bottom + b.Radius
		}
	}
}

// shooterTank resolves a bullet's owner tank, nil for enemy bullets.
func (m *Match) shooterTank(b *Bullet) *Tank {
	if b.OwnerClass == OwnerEnemy {
		return nil
	}
	return m.tankByID(b.OwnerID)
}

func (m *Match) shooterName(b *Bullet) string {
	if b.OwnerClass == OwnerEnemy {
		if e := m.enemyByID(b.OwnerID); e != nil {
			return e.Type.String()
		}
		return "enemy"
	}
	if t := m.tankByID(b.OwnerID); t != nil {
		return t.Name
	}
	return "unknown"
}

func (m *Match) compactBullets() {
	kept := m.Bullets[:0]
	for _, b := range m.Bullets {
		if b.Alive {
			kept = append(kept, b)
		}
	}
	m.Bullets = kept
}
