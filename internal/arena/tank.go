package arena

import "math"

const (
	tankRadius     = 16.0  // collision radius, px
	tankMaxHealth  = 30    // starting health
	tankBaseSpeed  = 130.0 // px per second before powerup scaling
	turretTurnRate = 4.0   // radians per second

	fireCooldownMs      = 500.0 // base ms between trigger pulls
	rapidFireMultiplier = 2.0   // cooldown divisor per rapid-fire stack

	speedStackMultiplier = 1.4 // speed multiplier per speed stack
)

// Team distinguishes the two TDM rosters. FFA and campaign tanks carry
// TeamNone.
type Team int

const (
	TeamNone Team = iota
	TeamRed
	TeamBlue
)

func (t Team) String() string {
	switch t {
	case TeamRed:
		return "red"
	case TeamBlue:
		return "blue"
	case TeamNone:
		return "none"
	default:
		return "unknown"
	}
}

// Role selects a tank's controller and, in campaign mode, its side.
// Exactly one role holds per tank.
type Role int

const (
	RoleHuman Role = iota // consumes control intents
	RoleBot               // AI-driven combatant
	RoleAlly              // campaign AI fighting alongside players
)

func (r Role) String() string {
	switch r {
	case RoleHuman:
		return "human"
	case RoleBot:
		return "bot"
	case RoleAlly:
		return "ally"
	default:
		return "unknown"
	}
}

// TankStats accumulates per-match bookkeeping for the end-of-match report.
type TankStats struct {
	ShotsFired        int
	ShotsHit          int
	Kills             int
	Deaths            int
	TimeAliveMs       float64
	KilledBy          string
	PowerupsCollected int
}

// aiState is the per-tank AI scratchpad. Every timer is a deadline on the
// match's simulation clock (ms); the AI never reads wall clock.
type aiState struct {
	targetID        int     // current combat target, -1 = none
	targetLockUntil float64 // keep targetID at least until this time
	lastTargetID    int     // whose position the velocity sample belongs to
	lastTargetX     float64 // target position last frame, for velocity estimate
	lastTargetY     float64
	hasLastTarget   bool

	orbitDir   float64 // +1 or -1, tangential direction
	orbitAngle float64 // anchor angle around the target

	retreatUntil float64 // retreat lock deadline, 0 = not retreating

	chasePowerupID     int     // powerup being chased, -1 = none
	chaseStartedAt     float64 // when the current chase began
	chaseCooldownUntil float64 // no chasing before this time
}

func newAIState() aiState {
	return aiState{targetID: -1, lastTargetID: -1, chasePowerupID: -1, orbitDir: 1}
}

// Tank is one combatant. Humans are driven by control intents, bots and
// allies by the AI controller. Dead tanks stay in the collection for
// statistics but are skipped by every update phase.
type Tank struct {
	ID        int
	Name      string
	X, Y      float64
	Facing    float64 // hull angle, radians
	Turret    float64 // turret angle, radians, independent of hull
	Health    int
	MaxHealth int
	BaseSpeed float64 // px per second
	Radius    float64
	Team      Team
	Role      Role
	Alive     bool
	Color     string

	lastShotAt float64 // sim ms of the last trigger pull, -inf before first shot

	// stacks[k] holds the remaining duration (ms) of each active instance
	// of timed effect k. Length is the stack count.
	stacks [effectCount][]float64

	ai    aiState
	Stats TankStats
}

func newTank(id int, name string, role Role, team Team, color string) *Tank {
	return &Tank{
		ID:         id,
		Name:       name,
		Health:     tankMaxHealth,
		MaxHealth:  tankMaxHealth,
		BaseSpeed:  tankBaseSpeed,
		Radius:     tankRadius,
		Team:       team,
		Role:       role,
		Alive:      true,
		Color:      color,
		lastShotAt: -1e9, // long before any cooldown window; JSON-safe unlike -Inf
		ai:         newAIState(),
	}
}

// StackCount returns the number of active instances of a timed effect.
func (t *Tank) StackCount(k EffectKind) int {
	return len(t.stacks[k])
}

// Speed returns the tank's current speed with speed stacks compounded
// multiplicatively.
func (t *Tank) Speed() float64 {
	return t.BaseSpeed * math.Pow(speedStackMultiplier, float64(t.StackCount(EffectSpeed)))
}

// fireCooldown returns the current ms between trigger pulls, shortened
// multiplicatively by rapid-fire stacks.
func (t *Tank) fireCooldown() float64 {
	return fireCooldownMs / math.Pow(rapidFireMultiplier, float64(t.StackCount(EffectRapidFire)))
}

// canFire reports whether the fire-rate cooldown has elapsed at sim time now.
func (t *Tank) canFire(now float64) bool {
	return now-t.lastShotAt >= t.fireCooldown()
}

// Invincible reports whether the tank currently absorbs all damage.
func (t *Tank) Invincible() bool {
	return t.StackCount(EffectInvincibility) > 0
}

// applyDamage reduces health, clamped to zero. Returns true if the hit
// was lethal. Callers handle death bookkeeping.
func (t *Tank) applyDamage(dmg int) bool {
	t.Health -= dmg
	if t.Health <= 0 {
		t.Health = 0
		return true
	}
	return false
}
