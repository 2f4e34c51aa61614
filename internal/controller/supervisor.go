package controller

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Supervisor owns the outer retry loop. A fault in one control cycle
// degrades to a logged reinitialization instead of a hang: the chain is
// re-cleared, the indicators are switched off, and sampling resumes.
type Supervisor struct {
	ctrl        *Controller
	maxRestarts int // 0 retries forever; a bound is for tests
	log         zerolog.Logger
}

// NewSupervisor wraps ctrl. maxRestarts of 0 means unbounded, which is the
// production configuration.
func NewSupervisor(ctrl *Controller, maxRestarts int, log zerolog.Logger) *Supervisor {
	return &Supervisor{ctrl: ctrl, maxRestarts: maxRestarts, log: log}
}

// Run initializes the link and cycles the controller until ctx is
// cancelled. Each cycle error re-runs Init and counts one restart.
func (s *Supervisor) Run(ctx context.Context) error {
	if err := s.ctrl.link.Init(); err != nil {
		return fmt.Errorf("controller: init: %w", err)
	}
	restarts := 0
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("control loop stopping")
			return ctx.Err()
		default:
		}
		err := s.ctrl.RunCycle()
		if err == nil {
			continue
		}
		restarts++
		s.log.Error().Err(err).Int("restart", restarts).Msg("control cycle fault, reinitializing")
		if cerr := s.ctrl.sampler.ClearIndicators(); cerr != nil {
			s.log.Warn().Err(cerr).Msg("indicator clear failed during restart")
		}
		if s.maxRestarts > 0 && restarts >= s.maxRestarts {
			return fmt.Errorf("controller: restart budget exhausted after %d faults: %w", restarts, err)
		}
		if ierr := s.ctrl.link.Init(); ierr != nil {
			return fmt.Errorf("controller: reinit: %w", ierr)
		}
	}
}
