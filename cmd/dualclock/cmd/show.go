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
	"io"
	"os"
	"time"

	"github.com/dualclock/dualclock/calendar"
	"github.com/dualclock/dualclock/clocksync"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	showAt   string
	showSync bool
)

func init() {
	RootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVarP(&showAt, "at", "a", "", "RFC3339 instant to show instead of now")
	showCmd.Flags().BoolVarP(&showSync, "sync", "s", false, "correct the local clock with one NTP query first")
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print one instant in every configured zone",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ConfigureVerbosity()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		instant := time.Now()
		if showAt != "" {
			instant, err = time.Parse(time.RFC3339Nano, showAt)
			if err != nil {
				return fmt.Errorf("parsing --at: %w", err)
			}
		} else if showSync {
			tracker := clocksync.NewTracker(newQuerier(cfg), cfg.SyncInterval, cfg.SyncTimeout, nil)
			if err := tracker.SyncNow(context.Background(), instant); err != nil {
				log.Warningf("sync failed, showing local time: %v", err)
			}
			instant = time.Now().Add(tracker.Offset())
		}
		return show(os.Stdout, newConverter(cfg), cfg.Zones, instant)
	},
}

func show(w io.Writer, conv *calendar.Converter, zones []calendar.Zone, instant time.Time) error {
	table := tablewriter.NewWriter(w)
	table.Header("zone", "calendar", "date", "time")
	for _, z := range zones {
		r, err := conv.Render(instant, z)
		if err != nil {
			return fmt.Errorf("rendering %q: %w", z.Label, err)
		}
		if err := table.Append([]string{z.Label, z.Calendar.String(), r.Date, r.Time}); err != nil {
			return fmt.Errorf("adding %q: %w", z.Label, err)
		}
	}
	return table.Render()
}
