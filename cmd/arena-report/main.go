package main

import (
	"flag"
	"fmt"
	"sort"

	"github.com/Garsondee/Tank-Arena/internal/arena"
)

type runStats struct {
	runIndex int
	seed     int64

	finished   bool
	ticks      int
	durationMs float64
	outcome    string
	winner     string

	firstShotTick  int
	firstHitTick   int
	firstDeathTick int
	firstPowerTick int

	shootCues   int
	hitCues     int
	deathCues   int
	powerupCues int

	report arena.MatchReport
}

func main() {
	var runs int
	var maxTicks int
	var seedBase int64
	var seedStep int64
	var mode string
	var bots int
	var difficulty string

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.IntVar(&maxTicks, "max-ticks", 36000, "tick cap per match (60 ticks per second)")
	flag.Int64Var(&seedBase, "seed-base", 42, "RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&mode, "mode", "ffa", "match mode: ffa, tdm, campaign")
	flag.IntVar(&bots, "bots", 4, "bot tanks per match")
	flag.StringVar(&difficulty, "difficulty", "medium", "campaign difficulty: easy, medium, hard")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if maxTicks <= 0 {
		fmt.Println("error: -max-ticks must be > 0")
		return
	}
	diff, err := arena.ParseDifficulty(difficulty)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	modeID := arena.ModeID(mode)
	switch modeID {
	case arena.ModeFFA, arena.ModeTDM, arena.ModeCampaign:
	default:
		fmt.Printf("error: unsupported mode %q (supported: ffa, tdm, campaign)\n", mode)
		return
	}

	fmt.Printf("=== Arena Batch Report ===\n")
	fmt.Printf("mode=%s bots=%d runs=%d max_ticks=%d seed_base=%d seed_step=%d\n\n",
		modeID, bots, runs, maxTicks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runMatch(i+1, seed, modeID, bots, diff, maxTicks)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runMatch(runIndex int, seed int64, mode arena.ModeID, bots int, diff arena.Difficulty, maxTicks int) runStats {
	h := arena.NewSimHarness(
		arena.WithMode(mode),
		arena.WithBots(bots),
		arena.WithSeed(seed),
		arena.WithDifficulty(diff),
	)
	finished := h.RunUntilOver(maxTicks)

	entries := h.Log.Entries()
	rs := runStats{
		runIndex:       runIndex,
		seed:           seed,
		finished:       finished,
		ticks:          h.Tick,
		durationMs:     h.M.Clock,
		firstShotTick:  firstTick(entries, "cue", "shoot"),
		firstHitTick:   firstTick(entries, "cue", "hit"),
		firstDeathTick: firstTick(entries, "cue", "death"),
		firstPowerTick: firstTick(entries, "cue", "powerUp"),
		shootCues:      len(h.Log.Filter("cue", "shoot")),
		hitCues:        len(h.Log.Filter("cue", "hit")),
		deathCues:      len(h.Log.Filter("cue", "death")),
		powerupCues:    len(h.Log.Filter("cue", "powerUp")),
		report:         h.M.Report(),
	}
	if ends := h.Log.Filter("end", ""); len(ends) > 0 {
		rs.outcome = ends[0].Key
		rs.winner = ends[0].Value
	}
	return rs
}

func firstTick(entries []arena.SimLogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	status := "finished"
	if !rs.finished {
		status = "tick_cap"
	}
	fmt.Printf("result: status=%s outcome=%s winner=%s ticks=%d sim_time=%.1fs\n",
		status, rs.outcome, orDash(rs.winner), rs.ticks, rs.durationMs/1000)
	fmt.Printf("phase_markers: first_shot=%d first_hit=%d first_death=%d first_powerup=%d\n",
		rs.firstShotTick, rs.firstHitTick, rs.firstDeathTick, rs.firstPowerTick)
	fmt.Printf("cue_totals: shoot=%d hit=%d death=%d powerup=%d\n",
		rs.shootCues, rs.hitCues, rs.deathCues, rs.powerupCues)
	fmt.Print(rs.report.String())
	fmt.Println()
}

func printAggregate(all []runStats) {
	finished := 0
	totalShoot := 0
	totalHit := 0
	totalDeath := 0
	totalPowerup := 0
	durations := make([]float64, 0, len(all))
	outcomes := map[string]int{}
	wins := map[string]int{}

	type tankAgg struct {
		shots    int
		hits     int
		kills    int
		deaths   int
		powerups int
		survived int
		runs     int
	}
	tankAggs := map[string]*tankAgg{}

	for _, rs := range all {
		if rs.finished {
			finished++
			durations = append(durations, rs.durationMs)
		}
		totalShoot += rs.shootCues
		totalHit += rs.hitCues
		totalDeath += rs.deathCues
		totalPowerup += rs.powerupCues
		if rs.outcome != "" {
			outcomes[rs.outcome]++
		}
		if rs.winner != "" {
			wins[rs.winner]++
		}
		for _, p := range rs.report.Participants {
			ag, ok := tankAggs[p.Name]
			if !ok {
				ag = &tankAgg{}
				tankAggs[p.Name] = ag
			}
			ag.shots += p.ShotsFired
			ag.hits += p.ShotsHit
			ag.kills += p.Kills
			ag.deaths += p.Deaths
			ag.powerups += p.PowerupsCollected
			if p.Deaths == 0 {
				ag.survived++
			}
			ag.runs++
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d finished=%d\n", len(all), finished)
	fmt.Printf("avg_cues_per_run: shoot=%.1f hit=%.1f death=%.1f powerup=%.1f\n",
		avg(totalShoot, len(all)), avg(totalHit, len(all)), avg(totalDeath, len(all)), avg(totalPowerup, len(all)))
	fmt.Printf("avg_finished_duration=%s\n", avgDurationString(durations))
	fmt.Printf("outcomes: %s\n", formatCounts(outcomes))
	fmt.Printf("wins: %s\n", formatCounts(wins))

	fmt.Println("\n=== Aggregate Tank Performance ===")
	names := make([]string, 0, len(tankAggs))
	for name := range tankAggs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ag := tankAggs[name]
		acc := 0.0
		if ag.shots > 0 {
			acc = float64(ag.hits) / float64(ag.shots) * 100
		}
		surv := 0.0
		if ag.runs > 0 {
			surv = float64(ag.survived) / float64(ag.runs) * 100
		}
		fmt.Printf("  %-10s shots=%-5d acc=%5.1f%%  kills=%-3d deaths=%-3d powerups=%-3d survival=%.0f%%\n",
			name, ag.shots, acc, ag.kills, ag.deaths, ag.powerups, surv)
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgDurationString(vals []float64) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1fs", sum/float64(len(vals))/1000)
}

func formatCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%d", k, m[k])
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
