package arena

import "github.com/Garsondee/Tank-Arena/internal/geom"

const (
	obstacleCountMin = 6
	obstacleCountMax = 12
	rockRadiusMin    = 18.0
	rockRadiusMax    = 42.0
	rectSideMin      = 40.0
	rectSideMax      = 110.0

	// Obstacles must not land on spawn points or crowd the map edge.
	obstacleSpawnClearance = 90.0
	obstacleEdgeMargin     = 50.0
	obstaclePlaceAttempts  = 100
)

// ObstacleKind selects the obstacle geometry.
type ObstacleKind int

const (
	ObstacleRock ObstacleKind = iota // circle
	ObstacleRect                     // axis-aligned rectangle
)

func (k ObstacleKind) String() string {
	switch k {
	case ObstacleRock:
		return "rock"
	case ObstacleRect:
		return "rectangle"
	default:
		return "unknown"
	}
}

// Obstacle is static map geometry, generated once at match init.
// Rocks use Radius; rectangles use W and H. X,Y is always the centre.
type Obstacle struct {
	Kind   ObstacleKind
	X, Y   float64
	Radius float64
	W, H   float64
}

// blocksCircle reports whether a circle at (x,y,r) overlaps this obstacle,
// using the simplified half-extent test for rectangles.
func (o Obstacle) blocksCircle(x, y, r float64) bool {
	if o.Kind == ObstacleRock {
		return geom.CircleOverlap(x, y, r, o.X, o.Y, o.Radius)
	}
	return geom.CircleRectOverlap(x, y, r, o.X, o.Y, o.W, o.H)
}

// generateObstacles scatters rocks and rectangles by rejection sampling
// against the spawn points. Exhausting the attempt budget just yields a
// sparser map, never an error.
func generateObstacles(rng *Rand, mapW, mapH float64, spawns []Point) []Obstacle {
	count := obstacleCountMin + rng.Intn(obstacleCountMax-obstacleCountMin+1)
	obstacles := make([]Obstacle, 0, count)

	for i := 0; i < count; i++ {
		var o Obstacle
		placed := false
		for attempt := 0; attempt < obstaclePlaceAttempts; attempt++ {
			if rng.Intn(2) == 0 {
				o = Obstacle{
					Kind:   ObstacleRock,
					Radius: rockRadiusMin + rng.Float64()*(rockRadiusMax-rockRadiusMin),
				}
			} else {
				o = Obstacle{
					Kind: ObstacleRect,
					W:    rectSideMin + rng.Float64()*(rectSideMax-rectSideMin),
					H:    rectSideMin + rng.Float64()*(rectSideMax-rectSideMin),
				}
			}
			o.X = obstacleEdgeMargin + rng.Float64()*(mapW-2*obstacleEdgeMargin)
			o.Y = obstacleEdgeMargin + rng.Float64()*(mapH-2*obstacleEdgeMargin)

			if obstacleClearOfSpawns(o, spawns) {
				placed = true
				break
			}
		}
		if placed {
			obstacles = append(obstacles, o)
		}
	}
	return obstacles
}

func obstacleClearOfSpawns(o Obstacle, spawns []Point) bool {
	for _, p := range spawns {
		if o.blocksCircle(p.X, p.Y, obstacleSpawnClearance) {
			return false
		}
	}
	return true
}
