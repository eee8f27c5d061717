package arena

import "math"

const (
	powerupRadius        = 12.0
	powerupSpawnMinMs    = 5000.0
	powerupSpawnMaxMs    = 10000.0
	powerupPlaceAttempts = 50
	powerupClearance     = 30.0 // min gap to obstacles and tanks when spawning

	powerupHealAmount = 10
	powerupDurationMs = 6000.0

	// Bullets fired while a bouncing-bullets effect is active carry this
	// many wall/obstacle bounces.
	bouncingBulletBounces = 2
)

// PowerupType is one of the six pickup flavours.
type PowerupType int

const (
	PowerupHealth PowerupType = iota
	PowerupInvincibility
	PowerupSpeed
	PowerupRapidFire
	PowerupSpreadShot
	PowerupBouncingBullets

	powerupTypeCount
)

func (p PowerupType) String() string {
	switch p {
	case PowerupHealth:
		return "HEALTH"
	case PowerupInvincibility:
		return "INVINCIBILITY"
	case PowerupSpeed:
		return "SPEED"
	case PowerupRapidFire:
		return "RAPID_FIRE"
	case PowerupSpreadShot:
		return "SPREAD_SHOT"
	case PowerupBouncingBullets:
		return "BOUNCING_BULLETS"
	default:
		return "unknown"
	}
}

// EffectKind indexes a tank's timed-effect stacks. Health is instant and
// has no stack slot.
type EffectKind int

const (
	EffectInvincibility EffectKind = iota
	EffectSpeed
	EffectRapidFire
	EffectSpreadShot
	EffectBouncing

	effectCount
)

// stackPolicy controls what a second pickup of an already-active effect does.
type stackPolicy int

const (
	policyInstant stackPolicy = iota // no timed effect; applied on pickup
	policyStack                      // push another entry; effects compound
	policyExtend                     // extend the single entry's duration
)

// powerupDef is one row of the static effect-definition table. The extend
// policy on invincibility and bouncing bullets is deliberate: offensive
// effects may compound, immunity and ricochet may only be prolonged.
type powerupDef struct {
	weight     int
	policy     stackPolicy
	effect     EffectKind // meaningful unless policy is policyInstant
	durationMs float64
}

// powerupTable maps each PowerupType to its spawn weight and effect policy.
// Default weights skew toward SPREAD_SHOT and RAPID_FIRE.
var powerupTable = [powerupTypeCount]powerupDef{
	PowerupHealth:          {weight: 2, policy: policyInstant},
	PowerupInvincibility:   {weight: 1, policy: policyExtend, effect: EffectInvincibility, durationMs: powerupDurationMs},
	PowerupSpeed:           {weight: 2, policy: policyStack, effect: EffectSpeed, durationMs: powerupDurationMs},
	PowerupRapidFire:       {weight: 4, policy: policyStack, effect: EffectRapidFire, durationMs: powerupDurationMs},
	PowerupSpreadShot:      {weight: 4, policy: policyStack, effect: EffectSpreadShot, durationMs: powerupDurationMs},
	PowerupBouncingBullets: {weight: 1, policy: policyExtend, effect: EffectBouncing, durationMs: powerupDurationMs},
}

// Powerup is a pickup on the map. Destroyed (Alive=false) on collection.
type Powerup struct {
	ID    int
	X, Y  float64
	Type  PowerupType
	Alive bool
}

// rollPowerupType draws a type from the weighted table.
func (m *Match) rollPowerupType() PowerupType {
	total := 0
	for _, def := range powerupTable {
		total += def.weight
	}
	roll := m.rng.Intn(total)
	for t, def := range powerupTable {
		roll -= def.weight
		if roll < 0 {
			return PowerupType(t)
		}
	}
	return PowerupSpreadShot // unreachable
}

// updatePowerups runs the per-frame powerup phase: tick down stacks, run
// the spawn timer, and resolve pickups in tank iteration order.
func (m *Match) updatePowerups(dtMs float64) {
	for _, t := range m.Tanks {
		if !t.Alive {
			continue
		}
		tickStacks(t, dtMs)
	}

	if m.Clock >= m.nextPowerupAt {
		m.spawnPowerup()
		m.scheduleNextPowerup()
	}

	// First tank in iteration order wins a contested pickup; the second
	// tank's overlap check sees Alive=false.
	for _, t := range m.Tanks {
		if !t.Alive {
			continue
		}
		for _, p := range m.Powerups {
			if !p.Alive {
				continue
			}
			if !m.tankTouchesPowerup(t, p) {
				continue
			}
			p.Alive = false
			m.applyPowerup(t, p.Type)
			t.Stats.PowerupsCollected++
			m.emitCue(CuePowerUp, t.Name)
		}
	}
	m.compactPowerups()
}

func tickStacks(t *Tank, dtMs float64) {
	for k := range t.stacks {
		kept := t.stacks[k][:0]
		for _, remaining := range t.stacks[k] {
			remaining -= dtMs
			if remaining > 0 {
				kept = append(kept, remaining)
			}
		}
		t.stacks[k] = kept
	}
}

func (m *Match) tankTouchesPowerup(t *Tank, p *Powerup) bool {
	dx := t.X - p.X
	dy := t.Y - p.Y
	r := t.Radius + powerupRadius
	return dx*dx+dy*dy < r*r
}

// applyPowerup applies one pickup's effect per its table row.
func (m *Match) applyPowerup(t *Tank, pt PowerupType) {
	def := powerupTable[pt]
	switch def.policy {
	case policyInstant:
		t.Health += powerupHealAmount
		if t.Health > t.MaxHealth {
			t.Health = t.MaxHealth
		}
	case policyStack:
		t.stacks[def.effect] = append(t.stacks[def.effect], def.durationMs)
	case policyExtend:
		if len(t.stacks[def.effect]) > 0 {
			t.stacks[def.effect][0] += def.durationMs
		} else {
			t.stacks[def.effect] = append(t.stacks[def.effect], def.durationMs)
		}
	}
}

func (m *Match) scheduleNextPowerup() {
	interval := powerupSpawnMinMs + m.rng.Float64()*(powerupSpawnMaxMs-powerupSpawnMinMs)
	m.nextPowerupAt = m.Clock + interval
}

// spawnPowerup rejection-samples a position clear of obstacles and tanks.
// On exhaustion the spawn is skipped; the game stays playable either way.
func (m *Match) spawnPowerup() {
	for attempt := 0; attempt < powerupPlaceAttempts; attempt++ {
		x := powerupRadius + m.rng.Float64()*(m.W-2*powerupRadius)
		y := powerupRadius + m.rng.Float64()*(m.H-2*powerupRadius)
		if !m.powerupSpotClear(x, y) {
			continue
		}
		m.Powerups = append(m.Powerups, &Powerup{
			ID:    m.nextPowerupID,
			X:     x,
			Y:     y,
			Type:  m.rollPowerupType(),
			Alive: true,
		})
		m.nextPowerupID++
		return
	}
}

func (m *Match) powerupSpotClear(x, y float64) bool {
	for _, o := range m.Obstacles {
		if o.blocksCircle(x, y, powerupRadius+powerupClearance) {
			return false
		}
	}
	for _, t := range m.Tanks {
		if !t.Alive {
			continue
		}
		dx := t.X - x
		dy := t.Y - y
		r := t.Radius + powerupRadius + powerupClearance
		if dx*dx+dy*dy < r*r {
			return false
		}
	}
	return true
}

func (m *Match) compactPowerups() {
	kept := m.Powerups[:0]
	for _, p := range m.Powerups {
		if p.Alive {
			kept = append(kept, p)
		}
	}
	m.Powerups = kept
}

// nearestAlivePowerup returns the closest living powerup to (x,y), or nil.
func (m *Match) nearestAlivePowerup(x, y float64) *Powerup {
	var best *Powerup
	bestDist := math.Inf(1)
	for _, p := range m.Powerups {
		if !p.Alive {
			continue
		}
		dx := p.X - x
		dy := p.Y - y
		d := dx*dx + dy*dy
		if d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}
