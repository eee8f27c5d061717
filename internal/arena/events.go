package arena

// CueKind names an audio event. The core never touches audio APIs; an audio
// collaborator drains the cue queue and maps kinds to playback.
type CueKind int

const (
	CueShoot CueKind = iota
	CueHit
	CueHurt
	CueEnemyDeath
	CueDeath
	CuePowerUp
	CueGameStart
	CueTrackChange
)

func (k CueKind) String() string {
	switch k {
	case CueShoot:
		return "shoot"
	case CueHit:
		return "hit"
	case CueHurt:
		return "hurt"
	case CueEnemyDeath:
		return "enemyDeath"
	case CueDeath:
		return "death"
	case CuePowerUp:
		return "powerUp"
	case CueGameStart:
		return "gameStart"
	case CueTrackChange:
		return "trackChange"
	default:
		return "unknown"
	}
}

// Cue is one emitted audio event. Detail names the subject (tank name,
// enemy type, or track identifier for trackChange).
type Cue struct {
	Kind   CueKind
	Detail string
	At     float64 // sim ms
}

func (m *Match) emitCue(kind CueKind, detail string) {
	m.cues.Push(Cue{Kind: kind, Detail: detail, At: m.Clock})
}

// DrainCues returns and clears all cues emitted since the last drain.
// The audio collaborator calls this between frames.
func (m *Match) DrainCues() []Cue {
	return m.cues.Drain()
}
