package arena

import (
	"math"

	"github.com/Garsondee/Tank-Arena/internal/geom"
)

const (
	bulletSpeed      = 420.0  // px per second
	bulletRadius     = 3.0    // collision radius
	bulletDamage     = 1      // health removed per hit
	bulletLifetimeMs = 5000.0 // hard cap regardless of bounces
)

// OwnerClass tags who fired a bullet; combat resolution uses it together
// with team fields to decide which victims a bullet may damage.
type OwnerClass int

const (
	OwnerPlayer OwnerClass = iota
	OwnerAI
	OwnerAIAlly
	OwnerEnemy
)

func (o OwnerClass) String() string {
	switch o {
	case OwnerPlayer:
		return "player"
	case OwnerAI:
		return "ai"
	case OwnerAIAlly:
		return "aiAlly"
	case OwnerEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Bullet is an ephemeral projectile. It dies on any non-bounced hit, on a
// boundary crossing with no bounces left, or when its lifetime expires.
type Bullet struct {
	X, Y       float64
	Angle      float64 // travel direction, radians
	Speed      float64 // px per second
	Radius     float64
	Damage     int
	OwnerID    int
	OwnerClass OwnerClass
	OwnerTeam  Team
	Bounces    int     // remaining wall/obstacle bounces
	SpawnedAt  float64 // sim ms
	Color      string
	Alive      bool
}

// advance moves the bullet and resolves map-edge crossings: bounce while
// bounces remain, otherwise die. Lifetime expiry always wins.
func (b *Bullet) advance(dtMs, mapW, mapH, now float64) {
	if now-b.SpawnedAt > bulletLifetimeMs {
		b.Alive = false
		return
	}

	step := b.Speed * dtMs / 1000.0
	b.X += math.Cos(b.Angle) * step
	b.Y += math.Sin(b.Angle) * step

	if b.X < b.Radius || b.X > mapW-b.Radius {
		if b.Bounces <= 0 {
			b.Alive = false
			return
		}
		b.Angle = geom.ReflectAxis(b.Angle, geom.AxisVertical)
		b.Bounces--
		b.X = geom.Clamp(b.X, b.Radius, mapW-b.Radius)
	}
	if b.Y < b.Radius || b.Y > mapH-b.Radius {
		if b.Bounces <= 0 {
			b.Alive = false
			return
		}
		b.Angle = geom.ReflectAxis(b.Angle, geom.AxisHorizontal)
		b.Bounces--
		b.Y = geom.Clamp(b.Y, b.Radius, mapH-b.Radius)
	}
}
