package arena

import (
	"math"

	"github.com/Garsondee/Tank-Arena/internal/geom"
)

// --- AI tuning constants ---

const (
	aiApproachDist     = 280.0 // beyond this: close in on the target
	aiMinOrbitDist     = 110.0 // inside this: break off and retreat
	aiOrbitRadius      = 190.0 // preferred circling distance
	aiOrbitFlipChance  = 0.02  // per-frame chance to reverse orbit direction
	aiOrbitAngularRate = 1.1   // radians per second the orbit anchor advances

	aiRetreatDurationMs = 800.0  // retreat lock once triggered
	aiTargetLockMs      = 1000.0 // minimum commitment to a chosen target

	aiPowerupChaseDist = 260.0  // only chase powerups closer than this
	aiChaseTimeoutMs   = 4000.0 // abandon a chase after this long
	aiChaseCooldownMs  = 3000.0 // no new chase for this long after abandoning

	aiTurretDeadZone = 0.04 // radians; inside this the turret snaps on
	aiFireCone       = 0.2  // radians; fire when aligned within this
	aiLeadFactor     = 0.9  // fraction of full linear lead applied
)

// combatTarget is what the AI aims and manoeuvres against: a tank in
// FFA/TDM, an enemy in campaign. IDs share one space across both kinds.
type combatTarget struct {
	id   int
	x, y float64
}

// updateAI runs one tank's full decision pass: powerup chase, target
// acquisition, movement, then turret aim and fire. Movement priorities never
// preempt turret work; a chasing tank still shoots at its locked target.
func (m *Match) updateAI(t *Tank, dtMs float64) {
	now := m.Clock

	chasing := m.updatePowerupChase(t, now)
	target, hasTarget := m.acquireTarget(t, now)

	switch {
	case chasing:
		p := m.powerupByID(t.ai.chasePowerupID)
		if p != nil {
			m.moveTankToward(t, math.Atan2(p.Y-t.Y, p.X-t.X), dtMs)
		}
	case hasTarget:
		m.combatMovement(t, target, now, dtMs)
	}

	if hasTarget {
		m.aimAndFire(t, target, now, dtMs)
	} else {
		t.ai.hasLastTarget = false
	}
}

// updatePowerupChase maintains the chase state machine and reports whether a
// chase currently owns movement.
func (m *Match) updatePowerupChase(t *Tank, now float64) bool {
	ai := &t.ai

	if ai.chasePowerupID != -1 {
		p := m.powerupByID(ai.chasePowerupID)
		if p == nil || now-ai.chaseStartedAt > aiChaseTimeoutMs {
			// Picked up, gone, or took too long. Back off for a while.
			if p != nil {
				ai.chaseCooldownUntil = now + aiChaseCooldownMs
			}
			ai.chasePowerupID = -1
			return false
		}
		return true
	}

	if now < ai.chaseCooldownUntil {
		return false
	}
	p := m.nearestAlivePowerup(t.X, t.Y)
	if p == nil || geom.Dist(t.X, t.Y, p.X, p.Y) > aiPowerupChaseDist {
		return false
	}
	ai.chasePowerupID = p.ID
	ai.chaseStartedAt = now
	return true
}

func (m *Match) powerupByID(id int) *Powerup {
	for _, p := range m.Powerups {
		if p.ID == id && p.Alive {
			return p
		}
	}
	return nil
}

// acquireTarget picks the tank's combat target under mode filters. In FFA
// and TDM a lock keeps the chosen target for a minimum duration even if a
// nearer one appears, which stops thrashing between equidistant targets.
func (m *Match) acquireTarget(t *Tank, now float64) (combatTarget, bool) {
	ai := &t.ai

	if m.Config.Mode == ModeCampaign {
		// Bots and allies fight the campaign enemy roster, found through the
		// mode's own nearest-enemy lookup rather than the tank list.
		e := m.nearestEnemy(t.X, t.Y)
		if e == nil {
			ai.targetID = -1
			return combatTarget{}, false
		}
		ai.targetID = e.ID
		return combatTarget{id: e.ID, x: e.X, y: e.Y}, true
	}

	// Honour an unexpired lock on a still-living target.
	if ai.targetID != -1 && now < ai.targetLockUntil {
		if cur := m.tankByID(ai.targetID); cur != nil && cur.Alive && m.validTarget(t, cur) {
			return combatTarget{id: cur.ID, x: cur.X, y: cur.Y}, true
		}
	}

	var best *Tank
	bestDist := math.Inf(1)
	for _, other := range m.Tanks {
		if other == t || !other.Alive || !m.validTarget(t, other) {
			continue
		}
		d := geom.DistSq(t.X, t.Y, other.X, other.Y)
		if d < bestDist {
			bestDist = d
			best = other
		}
	}
	if best == nil {
		ai.targetID = -1
		return combatTarget{}, false
	}
	if best.ID != ai.targetID {
		ai.targetID = best.ID
		ai.targetLockUntil = now + aiTargetLockMs
	}
	return combatTarget{id: best.ID, x: best.X, y: best.Y}, true
}

// validTarget applies the mode's target filter.
func (m *Match) validTarget(t, other *Tank) bool {
	if m.Config.Mode == ModeTDM {
		return other.Team != t.Team
	}
	return true
}

// combatMovement runs the distance-gated approach/retreat/orbit machine.
func (m *Match) combatMovement(t *Tank, target combatTarget, now, dtMs float64) {
	ai := &t.ai
	toTarget := math.Atan2(target.y-t.Y, target.x-t.X)
	dist := geom.Dist(t.X, t.Y, target.x, target.y)

	if now < ai.retreatUntil {
		m.moveTankToward(t, toTarget+math.Pi, dtMs)
		return
	}

	switch {
	case dist > aiApproachDist:
		m.moveTankToward(t, toTarget, dtMs)
	case dist < aiMinOrbitDist:
		ai.retreatUntil = now + aiRetreatDurationMs
		m.moveTankToward(t, toTarget+math.Pi, dtMs)
	default:
		if m.rng.Float64() < aiOrbitFlipChance {
			ai.orbitDir = -ai.orbitDir
		}
		ai.orbitAngle += ai.orbitDir * aiOrbitAngularRate * dtMs / 1000.0
		ox := target.x + math.Cos(ai.orbitAngle)*aiOrbitRadius
		oy := target.y + math.Sin(ai.orbitAngle)*aiOrbitRadius
		m.moveTankToward(t, math.Atan2(oy-t.Y, ox-t.X), dtMs)
	}
}

// aimAndFire rotates the turret toward a lead-predicted aim point and pulls
// the trigger when aligned within the firing cone and off cooldown.
func (m *Match) aimAndFire(t *Tank, target combatTarget, now, dtMs float64) {
	ai := &t.ai

	// Linear lead: estimate target velocity from its position delta over the
	// frame, then aim where it will be when the bullet arrives. The sample is
	// tagged with the target it was taken from so a target switch never feeds
	// the old target's position into the new one's velocity.
	aimX, aimY := target.x, target.y
	if ai.hasLastTarget && ai.lastTargetID == target.id && dtMs > 0 {
		vx := (target.x - ai.lastTargetX) / dtMs * 1000.0
		vy := (target.y - ai.lastTargetY) / dtMs * 1000.0
		travel := geom.Dist(t.X, t.Y, target.x, target.y) / bulletSpeed
		aimX += vx * travel * aiLeadFactor
		aimY += vy * travel * aiLeadFactor
	}
	ai.lastTargetID = target.id
	ai.lastTargetX = target.x
	ai.lastTargetY = target.y
	ai.hasLastTarget = true

	desired := math.Atan2(aimY-t.Y, aimX-t.X)
	delta := geom.AngleDiff(t.Turret, desired)
	step := turretTurnRate * dtMs / 1000.0
	if math.Abs(delta) <= aiTurretDeadZone {
		t.Turret = desired
	} else if delta > 0 {
		t.Turret = geom.NormalizeAngle(t.Turret + math.Min(step, delta))
	} else {
		t.Turret = geom.NormalizeAngle(t.Turret + math.Max(-step, delta))
	}

	if math.Abs(geom.AngleDiff(t.Turret, desired)) <= aiFireCone && t.canFire(now) {
		m.fireBullet(t)
	}
}
