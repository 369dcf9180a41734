package main

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sweeney/fwc-sim/internal/config"
	"github.com/sweeney/fwc-sim/internal/fwc"
	"github.com/sweeney/fwc-sim/internal/scenario"
)

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	s, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	logger.Debug("replaying scenario",
		zap.String("path", args[0]),
		zap.Int("steps", len(s.Steps)),
		zap.Duration("tolerance", cfg.TransientPowerTolerance))

	failed, err := replay(cmd.OutOrStdout(), s, cfg.TransientPowerTolerance, replayQuiet)
	if err != nil {
		return err
	}
	if failed > 0 {
		return errors.Errorf("%d of %d steps failed", failed, len(s.Steps))
	}
	return nil
}

// replay prints every change of the combined frame followed by one line per
// step, and returns the number of failed steps.
func replay(w io.Writer, s *scenario.Scenario, tolerance time.Duration, quiet bool) (int, error) {
	var (
		elapsed time.Duration
		prev    *fwc.Frame
	)
	observe := func(t scenario.Tick, f fwc.Frame) {
		elapsed += t.Delta
		if quiet {
			return
		}
		if prev == nil || prev.State != f.State || prev.FlightPhase != f.FlightPhase ||
			prev.ToMemo != f.ToMemo || prev.LdgMemo != f.LdgMemo {
			fmt.Fprintf(w, "%10v  %-16s phase %d  to_memo=%t ldg_memo=%t\n",
				elapsed, f.State, f.FlightPhase, f.ToMemo, f.LdgMemo)
		}
		prev = &f
	}

	results, err := scenario.Replay(s, tolerance, observe)
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, r := range results {
		if r.Passed() {
			fmt.Fprintf(w, "ok    step %d %s\n", r.Step, r.Name)
			continue
		}
		failed++
		fmt.Fprintf(w, "FAIL  step %d %s\n", r.Step, r.Name)
		for _, msg := range r.Failures {
			fmt.Fprintf(w, "        %s\n", msg)
		}
	}
	return failed, nil
}
