package arena

import (
	"fmt"
	"math"

	"github.com/Garsondee/Tank-Arena/internal/geom"
)

// Control is one discrete player input. The input-translation collaborator
// (MIDI or keyboard) reduces raw device events to these.
type Control int

const (
	ControlMoveUp Control = iota
	ControlMoveLeft
	ControlMoveDown
	ControlMoveRight
	ControlAimLeft
	ControlAimRight
	ControlShoot

	controlCount
)

func (c Control) String() string {
	switch c {
	case ControlMoveUp:
		return "moveUp"
	case ControlMoveLeft:
		return "moveLeft"
	case ControlMoveDown:
		return "moveDown"
	case ControlMoveRight:
		return "moveRight"
	case ControlAimLeft:
		return "aimLeft"
	case ControlAimRight:
		return "aimRight"
	case ControlShoot:
		return "shoot"
	default:
		return "unknown"
	}
}

// controlIntent is one queued control-state change. The queue preserves
// single-threaded determinism: collaborators push at any time, the loop
// drains exactly once per frame.
type controlIntent struct {
	player  int
	control Control
	active  bool
}

// SetControlActive enqueues a control-state change for a human player.
// An out-of-range player index or unknown control is a programmer error in
// the input-translation layer and panics immediately.
func (m *Match) SetControlActive(player int, control Control, active bool) {
	if player < 0 || player >= len(m.players) {
		panic(fmt.Sprintf("arena: player index %d out of range (have %d players)", player, len(m.players)))
	}
	if control < 0 || control >= controlCount {
		panic(fmt.Sprintf("arena: unknown control %d", control))
	}
	m.intents.Push(controlIntent{player: player, control: control, active: active})
}

// drainControlIntents folds all queued intents into the current active sets.
func (m *Match) drainControlIntents() {
	for _, in := range m.intents.Drain() {
		m.controls[in.player][in.control] = in.active
	}
}

// applyHumanControls consumes a player's current active set for one frame:
// hull movement through the sliding resolver, turret rotation, and firing.
func (m *Match) applyHumanControls(t *Tank, player int, dtMs float64) {
	active := &m.controls[player]

	dx, dy := 0.0, 0.0
	if active[ControlMoveUp] {
		dy--
	}
	if active[ControlMoveDown] {
		dy++
	}
	if active[ControlMoveLeft] {
		dx--
	}
	if active[ControlMoveRight] {
		dx++
	}
	if dx != 0 || dy != 0 {
		m.moveTankToward(t, math.Atan2(dy, dx), dtMs)
	}

	step := turretTurnRate * dtMs / 1000.0
	if active[ControlAimLeft] {
		t.Turret = geom.NormalizeAngle(t.Turret - step)
	}
	if active[ControlAimRight] {
		t.Turret = geom.NormalizeAngle(t.Turret + step)
	}

	if active[ControlShoot] && t.canFire(m.Clock) {
		m.fireBullet(t)
	}
}
