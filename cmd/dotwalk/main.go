// Command dotwalk exercises the display: it walks every dot of every cell
// through brake, positive and negative, or runs a quick all-cells smoke
// pattern. Useful on the bench and in sim mode.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-tactilus/internal/config"
	"github.com/coreman2200/funtimes-tactilus/internal/dot"
	"github.com/coreman2200/funtimes-tactilus/internal/frame"
	"github.com/coreman2200/funtimes-tactilus/internal/hw"
	"github.com/coreman2200/funtimes-tactilus/internal/preview"
	"github.com/coreman2200/funtimes-tactilus/internal/shiftreg"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		simOnly    = flag.Bool("sim-only", false, "force simulation (no hardware output)")
		mode       = flag.String("mode", "walk", "pattern: walk | smoke")
		dwell      = flag.Duration("dwell", 1500*time.Millisecond, "time each step stays applied")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with defaults")
		cfg = config.Default()
	}
	if *simOnly {
		cfg.Driver = "sim"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}

	var handles *hw.Handles
	if cfg.Driver == "gpio" {
		if _, err := host.Init(); err != nil {
			log.Fatal().Err(err).Msg("host init failed")
		}
		handles, err = hw.FromConfig(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("GPIO resolution failed")
		}
	} else {
		handles = hw.Sim()
	}

	link, err := shiftreg.New(handles.Shift(), frame.Bits(cfg.Cells), cfg.Timing.Settle(), log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("link setup failed")
	}
	if err := link.Init(); err != nil {
		log.Fatal().Err(err).Msg("chain init failed")
	}

	var show *preview.Renderer
	if cfg.Driver == "sim" {
		show = preview.New(cfg.Cells, log.Logger)
	}
	push := func(f frame.Frame) {
		if show != nil {
			show.Observe(f)
		}
		if err := link.PushFrame(f); err != nil {
			log.Fatal().Err(err).Msg("push failed")
		}
		time.Sleep(*dwell)
	}

	switch *mode {
	case "walk":
		for ci := 0; ci < cfg.Cells; ci++ {
			for di := 0; di < frame.DotsPerCell; di++ {
				for _, s := range []dot.State{dot.Brake, dot.Positive, dot.Negative} {
					addr := dot.Address{Cell: ci, Dot: di}
					log.Info().Stringer("addr", addr).Stringer("state", s).Msg("step")
					f, err := frame.BuildSingleDot(cfg.Cells, addr, s)
					if err != nil {
						log.Fatal().Err(err).Msg("build failed")
					}
					push(f)
				}
			}
		}
	case "smoke":
		for _, s := range []dot.State{dot.HighImpedance, dot.Positive, dot.Negative} {
			log.Info().Stringer("state", s).Msg("all cells")
			f, err := frame.Uniform(cfg.Cells, s)
			if err != nil {
				log.Fatal().Err(err).Msg("build failed")
			}
			push(f)
		}
	default:
		log.Fatal().Str("mode", *mode).Msg("unknown mode")
	}

	// Leave the drivers unpowered on exit.
	off, err := frame.Uniform(cfg.Cells, dot.HighImpedance)
	if err != nil {
		log.Fatal().Err(err).Msg("build failed")
	}
	if err := link.PushFrame(off); err != nil {
		log.Fatal().Err(err).Msg("final release failed")
	}
	log.Info().Msg("done")
}
