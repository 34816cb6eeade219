/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dualclock/dualclock/clocksync"
	"github.com/dualclock/dualclock/config"
	"github.com/dualclock/dualclock/display"
	"github.com/dualclock/dualclock/display/console"
	"github.com/dualclock/dualclock/display/tui"
	"github.com/dualclock/dualclock/stats"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

var (
	noTUI              bool
	logFile            string
	tickFlag           time.Duration
	monitoringPortFlag int
)

func init() {
	RootCmd.AddCommand(runCmd)
	// running the bare binary is the same as "dualclock run"
	addRunFlags(RootCmd.Flags())
	addRunFlags(runCmd.Flags())
}

func addRunFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&noTUI, "no-tui", false, "print plain lines instead of the terminal widget")
	fs.StringVar(&logFile, "log-file", "dualclock.log", "log destination while the terminal widget is shown")
	fs.DurationVar(&tickFlag, "tick", 50*time.Millisecond, "display refresh interval")
	fs.IntVar(&monitoringPortFlag, "monitoringport", 0, "port to serve JSON and prometheus stats on, 0 disables")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the clock until interrupted",
	RunE:  runClock,
}

func runClock(cmd *cobra.Command, _ []string) error {
	ConfigureVerbosity()
	cfg, err := loadConfig(cmd)
	if err != nil {
		log.Fatal(err)
	}

	useTUI := !noTUI && term.IsTerminal(int(os.Stdout.Fd()))
	if useTUI {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	tracker, st, loop := newClock(cfg, newQuerier(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if useTUI {
		ui := tui.New(cfg.Server, tracker, sampleProcess)
		loop.Presenter = ui
		g.Go(func() error {
			// quitting the widget stops everything else
			defer cancel()
			return ui.Run(ctx)
		})
	} else {
		loop.Presenter = console.New(os.Stdout)
	}
	g.Go(func() error {
		return loop.Run(ctx)
	})
	if cfg.MonitoringPort > 0 {
		g.Go(func() error {
			return st.Start(ctx, cfg.MonitoringPort)
		})
	}

	log.Infof("dualclock started, syncing with %s every %v", cfg.Server, cfg.SyncInterval)
	// a sync still in flight is abandoned, its context times out on its own
	return g.Wait()
}

// newClock wires the tracker, its stats and the refresh loop. The
// presenter is left for the caller to set
func newClock(cfg *config.Config, q clocksync.Querier) (*clocksync.Tracker, *stats.Stats, *display.RefreshLoop) {
	var tracker *clocksync.Tracker
	st := stats.New(func() clocksync.Snapshot { return tracker.State() })
	tracker = clocksync.NewTracker(q, cfg.SyncInterval, cfg.SyncTimeout, st)
	loop := &display.RefreshLoop{
		Tracker:      tracker,
		Converter:    newConverter(cfg),
		Zones:        cfg.Zones,
		TickInterval: cfg.TickInterval,
		Stats:        st,
	}
	return tracker, st, loop
}

func sampleProcess() map[string]float64 {
	m, err := stats.ProcessStats()
	if err != nil {
		log.Debugf("failed to collect process stats: %v", err)
	}
	return m
}
