package arena

import "fmt"

// ModeID identifies a game mode in configuration and the registry.
type ModeID string

const (
	ModeFFA      ModeID = "ffa"
	ModeTDM      ModeID = "tdm"
	ModeCampaign ModeID = "campaign"
)

// Mode is the pluggable per-mode behaviour set. Implementations are
// stateless; all match state lives on the Match they receive.
type Mode interface {
	ID() ModeID
	// AssignTeams stamps team membership onto the match's tanks.
	AssignTeams(m *Match)
	// SpawnPositions returns one spawn point per tank, in tank index order.
	SpawnPositions(m *Match) []Point
	// CheckGameEnd finishes the match when the mode's win condition holds.
	CheckGameEnd(m *Match)
	// MusicTrack names the track the audio collaborator should play.
	MusicTrack(m *Match) string
	// HUDInfo returns display lines for the rendering collaborator.
	HUDInfo(m *Match) []string
}

// ModeRegistry maps mode identifiers to implementations. Built once at
// startup and injected, never looked up through ambient globals.
type ModeRegistry map[ModeID]Mode

// NewModeRegistry returns a registry with the three standard modes.
func NewModeRegistry() ModeRegistry {
	return ModeRegistry{
		ModeFFA:      &FFAMode{},
		ModeTDM:      &TDMMode{},
		ModeCampaign: &CampaignMode{},
	}
}

// Difficulty scales campaign enemies.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty maps a config string to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return DifficultyEasy, nil
	case "medium", "":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DifficultyMedium, fmt.Errorf("unknown difficulty %q", s)
	}
}

func (d Difficulty) healthScale() float64 {
	switch d {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.35
	default:
		return 1.0
	}
}

func (d Difficulty) damageScale() float64 {
	switch d {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.35
	default:
		return 1.0
	}
}

func (d Difficulty) fireIntervalScale() float64 {
	switch d {
	case DifficultyEasy:
		return 1.3
	case DifficultyHard:
		return 0.7
	default:
		return 1.0
	}
}

// Outcome classifies how a match (or campaign level) ended.
type Outcome int

const (
	OutcomeInconclusive Outcome = iota
	OutcomeLastTankStanding
	OutcomeDraw
	OutcomeRedVictory
	OutcomeBlueVictory
	OutcomeLevelComplete
	OutcomeLevelFailed
	OutcomeCampaignComplete
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLastTankStanding:
		return "last_tank_standing"
	case OutcomeDraw:
		return "draw"
	case OutcomeRedVictory:
		return "red_victory"
	case OutcomeBlueVictory:
		return "blue_victory"
	case OutcomeLevelComplete:
		return "level_complete"
	case OutcomeLevelFailed:
		return "level_failed"
	case OutcomeCampaignComplete:
		return "campaign_complete"
	case OutcomeInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

// EndEvent is emitted once when a mode's win condition is met. Entity
// collections are frozen afterwards for the statistics display.
type EndEvent struct {
	Outcome    Outcome
	Winner     string // winning tank name, or empty
	WinnerTeam Team   // winning roster, or TeamNone
	Level      int    // campaign level, 0 otherwise
	DurationMs float64
}
