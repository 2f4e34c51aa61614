package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-tactilus/internal/config"
	"github.com/coreman2200/funtimes-tactilus/internal/controller"
	"github.com/coreman2200/funtimes-tactilus/internal/frame"
	"github.com/coreman2200/funtimes-tactilus/internal/hw"
	"github.com/coreman2200/funtimes-tactilus/internal/input"
	"github.com/coreman2200/funtimes-tactilus/internal/preview"
	"github.com/coreman2200/funtimes-tactilus/internal/shiftreg"
)

func main() {
	// ---- Flags (remain usable; config.yaml can override most) ----
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		driver     = flag.String("driver", "", "driver: gpio | sim (overrides config)")
		simOnly    = flag.Bool("sim-only", false, "force simulation (no hardware output)")
		cells      = flag.Int("cells", 0, "fitted cell count (overrides config)")
		debug      = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// ---- Load config.yaml (optional) ----
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with defaults")
		cfg = config.Default()
	}
	if *cells > 0 {
		cfg.Cells = *cells
	}
	if *driver != "" {
		cfg.Driver = *driver
	}
	if *simOnly {
		cfg.Driver = "sim"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}

	// ---- Hardware handles ----
	var handles *hw.Handles
	switch cfg.Driver {
	case "gpio":
		if _, err := host.Init(); err != nil {
			log.Fatal().Err(err).Msg("host init failed")
		}
		handles, err = hw.FromConfig(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("GPIO resolution failed; falling back to sim")
			cfg.Driver = "sim"
			handles = hw.Sim()
		}
	default:
		handles = hw.Sim()
	}
	log.Info().Str("driver", cfg.Driver).Int("cells", cfg.Cells).Msg("starting")

	// ---- Wire the stack ----
	link, err := shiftreg.New(handles.Shift(), frame.Bits(cfg.Cells), cfg.Timing.Settle(), log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("link setup failed")
	}
	sampler, err := input.New(handles.Input())
	if err != nil {
		log.Fatal().Err(err).Msg("sampler setup failed")
	}
	timing := controller.Timing{
		Poll:     cfg.Timing.Poll(),
		Hold:     cfg.Timing.Hold(),
		Cooldown: cfg.Timing.Cooldown(),
	}
	ctrl := controller.New(link, sampler, cfg.Cells, timing, log.Logger)
	if cfg.Driver == "sim" {
		ctrl.Observe(preview.New(cfg.Cells, log.Logger).Observe)
	}

	// ---- Trap signals and run ----
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-c
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		cancel()
	}()
	defer func() {
		signal.Stop(c)
		cancel()
	}()

	sup := controller.NewSupervisor(ctrl, cfg.MaxRestarts, log.Logger)
	if err := sup.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("control loop failed")
	}
}
