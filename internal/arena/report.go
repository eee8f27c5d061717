package arena

import (
	"fmt"
	"strings"
)

// ParticipantReport is one tank's end-of-match statistics line.
type ParticipantReport struct {
	Name              string  `json:"name"`
	Team              string  `json:"team"`
	Kills             int     `json:"kills"`
	Deaths            int     `json:"deaths"`
	ShotsFired        int     `json:"shotsFired"`
	ShotsHit          int     `json:"shotsHit"`
	AccuracyPct       float64 `json:"accuracyPct"`
	TimeAlivePct      float64 `json:"timeAlivePct"`
	PowerupsCollected int     `json:"powerupsCollected"`
	KilledBy          string  `json:"killedBy,omitempty"`
}

// MatchReport is the structured record handed to the statistics-display
// collaborator when a match or level ends.
type MatchReport struct {
	Mode          ModeID              `json:"mode"`
	Outcome       string              `json:"outcome"`
	Winner        string              `json:"winner,omitempty"`
	WinnerTeam    string              `json:"winnerTeam,omitempty"`
	Level         int                 `json:"level,omitempty"`
	EnemiesKilled int                 `json:"enemiesKilled,omitempty"`
	DurationMs    float64             `json:"durationMs"`
	Participants  []ParticipantReport `json:"participants"`
}

// Report builds the statistics record for the current match state. Normally
// called once the match is over; safe to call mid-match for live displays.
func (m *Match) Report() MatchReport {
	r := MatchReport{
		Mode:       m.Config.Mode,
		Outcome:    OutcomeInconclusive.String(),
		DurationMs: m.Clock,
	}
	if m.End != nil {
		r.Outcome = m.End.Outcome.String()
		r.Winner = m.End.Winner
		if m.End.WinnerTeam != TeamNone {
			r.WinnerTeam = m.End.WinnerTeam.String()
		}
		r.DurationMs = m.End.DurationMs
	}
	if m.Config.Mode == ModeCampaign {
		r.Level = m.Level
		r.EnemiesKilled = m.levelStats.EnemiesKilled
	}

	for _, t := range m.Tanks {
		p := ParticipantReport{
			Name:              t.Name,
			Team:              t.Team.String(),
			Kills:             t.Stats.Kills,
			Deaths:            t.Stats.Deaths,
			ShotsFired:        t.Stats.ShotsFired,
			ShotsHit:          t.Stats.ShotsHit,
			PowerupsCollected: t.Stats.PowerupsCollected,
			KilledBy:          t.Stats.KilledBy,
		}
		if t.Stats.ShotsFired > 0 {
			p.AccuracyPct = 100.0 * float64(t.Stats.ShotsHit) / float64(t.Stats.ShotsFired)
		}
		if r.DurationMs > 0 {
			p.TimeAlivePct = 100.0 * t.Stats.TimeAliveMs / r.DurationMs
			if p.TimeAlivePct > 100 {
				p.TimeAlivePct = 100
			}
		}
		r.Participants = append(r.Participants, p)
	}
	return r
}

// String renders the report as a fixed-width table for terminal display.
func (r MatchReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Match Report (%s) ===\n", r.Mode)
	fmt.Fprintf(&b, "outcome=%s", r.Outcome)
	if r.Winner != "" {
		fmt.Fprintf(&b, " winner=%s", r.Winner)
	}
	if r.WinnerTeam != "" {
		fmt.Fprintf(&b, " winner_team=%s", r.WinnerTeam)
	}
	if r.Level > 0 {
		fmt.Fprintf(&b, " level=%d enemies_killed=%d", r.Level, r.EnemiesKilled)
	}
	fmt.Fprintf(&b, " duration=%.1fs\n\n", r.DurationMs/1000.0)

	fmt.Fprintf(&b, "%-12s %-5s %5s %6s %6s %5s %6s %7s %5s\n",
		"name", "team", "kills", "deaths", "fired", "hit", "acc%", "alive%", "pwr")
	for _, p := range r.Participants {
		fmt.Fprintf(&b, "%-12s %-5s %5d %6d %6d %5d %6.1f %7.1f %5d\n",
			p.Name, p.Team, p.Kills, p.Deaths, p.ShotsFired, p.ShotsHit,
			p.AccuracyPct, p.TimeAlivePct, p.PowerupsCollected)
	}
	return b.String()
}
