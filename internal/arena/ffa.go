package arena

const (
	ffaCornerMargin  = 80.0 // corner spawn inset
	ffaPerimeterStep = 40.0 // spacing of candidate perimeter spawn points
)

// FFAMode: every tank for itself, last one standing wins.
type FFAMode struct{}

func (*FFAMode) ID() ModeID { return ModeFFA }

func (*FFAMode) AssignTeams(m *Match) {
	for _, t := range m.Tanks {
		t.Team = TeamNone
	}
}

// SpawnPositions uses the four corners for up to four tanks; beyond that it
// samples evenly strided points around the map perimeter.
func (*FFAMode) SpawnPositions(m *Match) []Point {
	n := len(m.Tanks)
	if n <= 4 {
		corners := []Point{
			{ffaCornerMargin, ffaCornerMargin},
			{m.W - ffaCornerMargin, ffaCornerMargin},
			{ffaCornerMargin, m.H - ffaCornerMargin},
			{m.W - ffaCornerMargin, m.H - ffaCornerMargin},
		}
		return corners[:n]
	}

	points := perimeterPoints(m.W, m.H, ffaCornerMargin, ffaPerimeterStep)
	stride := len(points) / n
	if stride < 1 {
		stride = 1
	}
	spawns := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		spawns = append(spawns, points[(i*stride)%len(points)])
	}
	return spawns
}

// perimeterPoints walks the inset map boundary clockwise from the top-left
// at a fixed step.
func perimeterPoints(w, h, inset, step float64) []Point {
	var pts []Point
	left, right := inset, w-inset
	top, bottom := inset, h-inset

	for x := left; x < right; x += step {
		pts = append(pts, Point{x, top})
	}
	for y := top; y < bottom; y += step {
		pts = append(pts, Point{right, y})
	}
	for x := right; x > left; x -= step {
		pts = append(pts, Point{x, bottom})
	}
	for y := bottom; y > top; y -= step {
		pts = append(pts, Point{left, y})
	}
	return pts
}

// CheckGameEnd finishes when at most one tank remains alive.
func (*FFAMode) CheckGameEnd(m *Match) {
	var last *Tank
	alive := 0
	for _, t := range m.Tanks {
		if t.Alive {
			alive++
			last = t
		}
	}
	if alive > 1 {
		return
	}
	if alive == 1 {
		m.finish(EndEvent{Outcome: OutcomeLastTankStanding, Winner: last.Name})
		return
	}
	m.finish(EndEvent{Outcome: OutcomeDraw})
}

func (*FFAMode) MusicTrack(*Match) string { return "ffa_battle" }

func (*FFAMode) HUDInfo(m *Match) []string {
	alive := 0
	for _, t := range m.Tanks {
		if t.Alive {
			alive++
		}
	}
	return []string{
		"FREE FOR ALL",
		formatCount("tanks alive", alive),
	}
}
