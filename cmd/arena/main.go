package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/Garsondee/Tank-Arena/internal/arena"
	"github.com/Garsondee/Tank-Arena/internal/stream"
)

// snapshotEveryTicks is how often a frame is pushed to connected
// renderers when streaming is enabled (every tick is wasteful for
// spectating).
const snapshotEveryTicks = 2

func main() {
	loadConfig()

	var cfgFile string
	flag.StringVar(&cfgFile, "config", "", "explicit config file path")
	flag.String("mode", viper.GetString("match.mode"), "match mode: ffa, tdm, campaign")
	flag.Int("bots", viper.GetInt("match.bots"), "number of bot tanks")
	flag.Int("humans", viper.GetInt("match.humans"), "number of human slots (idle when headless)")
	flag.Int64("seed", viper.GetInt64("match.seed"), "RNG seed")
	flag.String("difficulty", viper.GetString("match.difficulty"), "campaign difficulty: easy, medium, hard")
	flag.Int("level", viper.GetInt("match.level"), "campaign starting level (1-5)")
	flag.String("listen", viper.GetString("stream.listen"), "address for the snapshot WebSocket server (empty = off)")
	flag.Bool("realtime", viper.GetBool("run.realtime"), "pace the simulation at 60 ticks per second")
	flag.Float64("max-seconds", viper.GetFloat64("run.maxSeconds"), "abort the match after this much simulated time")
	flag.Parse()
	bindFlags()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal("cannot read config file", "path", cfgFile, "error", err)
		}
	}

	switch strings.ToLower(viper.GetString("log.level")) {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	if err := run(); err != nil {
		log.Fatal("match failed", "error", err)
	}
}

func loadConfig() {
	viper.SetDefault("match.mode", "ffa")
	viper.SetDefault("match.bots", 3)
	viper.SetDefault("match.humans", 0)
	viper.SetDefault("match.seed", time.Now().UnixNano())
	viper.SetDefault("match.difficulty", "medium")
	viper.SetDefault("match.level", 1)
	viper.SetDefault("match.mapWidth", 0)
	viper.SetDefault("match.mapHeight", 0)

	viper.SetDefault("stream.listen", "")
	viper.SetDefault("run.realtime", false)
	viper.SetDefault("run.maxSeconds", 300.0)
	viper.SetDefault("log.level", "info")

	viper.SetConfigName("arena")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetEnvPrefix("arena")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("config file ignored", "error", err)
		}
	}
}

func bindFlags() {
	keys := map[string]string{
		"mode":        "match.mode",
		"bots":        "match.bots",
		"humans":      "match.humans",
		"seed":        "match.seed",
		"difficulty":  "match.difficulty",
		"level":       "match.level",
		"listen":      "stream.listen",
		"realtime":    "run.realtime",
		"max-seconds": "run.maxSeconds",
	}
	flag.Visit(func(f *flag.Flag) {
		if key, ok := keys[f.Name]; ok {
			viper.Set(key, f.Value.String())
		}
	})
}

func run() error {
	diff, err := arena.ParseDifficulty(viper.GetString("match.difficulty"))
	if err != nil {
		return err
	}
	cfg := arena.MatchConfig{
		Mode:       arena.ModeID(viper.GetString("match.mode")),
		Humans:     viper.GetInt("match.humans"),
		Bots:       viper.GetInt("match.bots"),
		MapW:       viper.GetFloat64("match.mapWidth"),
		MapH:       viper.GetFloat64("match.mapHeight"),
		Level:      viper.GetInt("match.level"),
		Difficulty: diff,
		Seed:       viper.GetInt64("match.seed"),
	}
	m, err := arena.NewMatch(cfg, arena.NewModeRegistry())
	if err != nil {
		return err
	}
	log.Info("match starting",
		"mode", cfg.Mode,
		"bots", cfg.Bots,
		"humans", cfg.Humans,
		"seed", cfg.Seed,
		"map", fmt.Sprintf("%.0fx%.0f", m.W, m.H),
	)

	var bc *stream.Broadcaster
	if addr := viper.GetString("stream.listen"); addr != "" {
		bc = stream.NewBroadcaster()
		defer bc.Close()
		mux := http.NewServeMux()
		mux.Handle("/stream", bc)
		go func() {
			log.Info("snapshot stream listening", "addr", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Error("snapshot stream server stopped", "error", err)
			}
		}()
	}

	realtime := viper.GetBool("run.realtime")
	maxMs := viper.GetFloat64("run.maxSeconds") * 1000
	var ticker *time.Ticker
	if realtime {
		ticker = time.NewTicker(time.Second / 60)
		defer ticker.Stop()
	}

	tick := 0
	for !m.Over && m.Clock < maxMs {
		m.Step()
		tick++
		for _, cue := range m.DrainCues() {
			log.Debug("cue", "kind", cue.Kind, "detail", cue.Detail, "at", cue.At)
		}
		if bc != nil && tick%snapshotEveryTicks == 0 {
			if err := bc.Publish(m.Snapshot()); err != nil {
				log.Warn("snapshot publish failed", "error", err)
			}
		}
		if m.Over && m.Config.Mode == arena.ModeCampaign &&
			m.End != nil && m.End.Outcome == arena.OutcomeLevelComplete {
			log.Info("level cleared", "level", m.Level)
			if err := m.AdvanceLevel(); err != nil {
				return err
			}
		}
		if realtime {
			<-ticker.C
		}
	}

	if m.End != nil {
		log.Info("match over",
			"outcome", m.End.Outcome,
			"winner", m.End.Winner,
			"team", m.End.WinnerTeam,
			"duration", fmt.Sprintf("%.1fs", m.End.DurationMs/1000),
		)
	} else {
		log.Warn("match hit the time limit without a result", "simulated", fmt.Sprintf("%.1fs", m.Clock/1000))
	}
	fmt.Print(m.Report().String())
	return nil
}
