package arena

import "fmt"

const tdmEdgeMargin = 80.0 // spawn column inset from the left/right edges

// TDMMode: two rosters, eliminate the opposing one. Friendly fire is
// impossible (enforced in combat resolution by team comparison).
type TDMMode struct{}

func (*TDMMode) ID() ModeID { return ModeTDM }

// AssignTeams honours caller-supplied assignments when present; otherwise
// tanks alternate red/blue in index order, which splits both humans and
// bots evenly.
func (*TDMMode) AssignTeams(m *Match) {
	if len(m.Config.Teams) == len(m.Tanks) {
		for i, t := range m.Tanks {
			t.Team = m.Config.Teams[i]
		}
		return
	}
	for i, t := range m.Tanks {
		if i%2 == 0 {
			t.Team = TeamRed
		} else {
			t.Team = TeamBlue
		}
	}
}

// SpawnPositions lines red up along the left edge and blue along the right,
// each roster evenly spaced vertically.
func (*TDMMode) SpawnPositions(m *Match) []Point {
	redCount, blueCount := 0, 0
	for _, t := range m.Tanks {
		if t.Team == TeamRed {
			redCount++
		} else {
			blueCount++
		}
	}

	spawns := make([]Point, len(m.Tanks))
	redIdx, blueIdx := 0, 0
	for i, t := range m.Tanks {
		if t.Team == TeamRed {
			spawns[i] = Point{tdmEdgeMargin, m.H * float64(redIdx+1) / float64(redCount+1)}
			redIdx++
		} else {
			spawns[i] = Point{m.W - tdmEdgeMargin, m.H * float64(blueIdx+1) / float64(blueCount+1)}
			blueIdx++
		}
	}
	return spawns
}

// CheckGameEnd finishes when either roster has zero living members.
func (*TDMMode) CheckGameEnd(m *Match) {
	redAlive, blueAlive := m.rosterAlive()
	switch {
	case redAlive == 0 && blueAlive == 0:
		m.finish(EndEvent{Outcome: OutcomeDraw})
	case blueAlive == 0:
		m.finish(EndEvent{Outcome: OutcomeRedVictory, WinnerTeam: TeamRed})
	case redAlive == 0:
		m.finish(EndEvent{Outcome: OutcomeBlueVictory, WinnerTeam: TeamBlue})
	}
}

func (m *Match) rosterAlive() (red, blue int) {
	for _, t := range m.Tanks {
		if !t.Alive {
			continue
		}
		if t.Team == TeamRed {
			red++
		} else if t.Team == TeamBlue {
			blue++
		}
	}
	return red, blue
}

func (*TDMMode) MusicTrack(*Match) string { return "tdm_battle" }

func (*TDMMode) HUDInfo(m *Match) []string {
	red, blue := m.rosterAlive()
	return []string{
		"TEAM DEATHMATCH",
		fmt.Sprintf("red %d vs blue %d", red, blue),
	}
}

func formatCount(label string, n int) string {
	return fmt.Sprintf("%s: %d", label, n)
}
