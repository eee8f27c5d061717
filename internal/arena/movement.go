package arena

import (
	"math"

	"github.com/Garsondee/Tank-Arena/internal/geom"
)

// slideSpeedFactor reduces movement speed during a perpendicular slide.
const slideSpeedFactor = 0.6

// Point is a map position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// tankCollidesAt reports whether a tank-sized circle at (x,y) overlaps any
// obstacle. Other tanks do not block movement.
func (m *Match) tankCollidesAt(x, y, radius float64) bool {
	for _, o := range m.Obstacles {
		if o.blocksCircle(x, y, radius) {
			return true
		}
	}
	return false
}

// constrainToMap clamps a tank into the playfield. Applied after every
// movement, AI or player.
func (m *Match) constrainToMap(t *Tank) {
	t.X = geom.Clamp(t.X, t.Radius, m.W-t.Radius)
	t.Y = geom.Clamp(t.Y, t.Radius, m.H-t.Radius)
}

// moveTankSliding attempts a move to (desiredX, desiredY), falling back in
// order: full move, horizontal only, vertical only, +90° slide at reduced
// speed, -90° slide. The first non-colliding candidate wins and updates
// position and facing; if all collide the tank holds position this frame.
// This ordering approximates wall sliding without real physics.
func (m *Match) moveTankSliding(t *Tank, desiredX, desiredY, moveAngle float64) {
	dist := geom.Dist(t.X, t.Y, desiredX, desiredY)
	slideDist := dist * slideSpeedFactor

	candidates := [5]Point{
		{desiredX, desiredY},
		{desiredX, t.Y},
		{t.X, desiredY},
		{t.X + math.Cos(moveAngle+math.Pi/2)*slideDist, t.Y + math.Sin(moveAngle+math.Pi/2)*slideDist},
		{t.X + math.Cos(moveAngle-math.Pi/2)*slideDist, t.Y + math.Sin(moveAngle-math.Pi/2)*slideDist},
	}

	for _, c := range candidates {
		if m.tankCollidesAt(c.X, c.Y, t.Radius) {
			continue
		}
		t.X = c.X
		t.Y = c.Y
		t.Facing = moveAngle
		break
	}
	m.constrainToMap(t)
}

// moveTankToward moves a tank one frame's distance toward an angle through
// the sliding resolver.
func (m *Match) moveTankToward(t *Tank, angle, dtMs float64) {
	step := t.Speed() * dtMs / 1000.0
	m.moveTankSliding(t, t.X+math.Cos(angle)*step, t.Y+math.Sin(angle)*step, angle)
}
