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
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dualclock/dualclock/clocksync"
	"github.com/dualclock/dualclock/ntp/client"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var dumpPacket bool

func init() {
	RootCmd.AddCommand(queryCmd)
	queryCmd.Flags().BoolVarP(&dumpPacket, "dump", "d", false, "dump the raw response packet")
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the NTP server once and print the offset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ConfigureVerbosity()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return query(newQuerier(cfg), cfg.Server, cfg.SyncTimeout)
	},
}

// recorder keeps the last response for printing
type recorder struct {
	clocksync.Querier
	last *client.Response
}

func (r *recorder) Query(ctx context.Context) (*client.Response, error) {
	resp, err := r.Querier.Query(ctx)
	r.last = resp
	return resp, err
}

func query(q clocksync.Querier, server string, timeout time.Duration) error {
	rec := &recorder{Querier: q}
	tracker := clocksync.NewTracker(rec, 0, timeout, nil)
	if err := tracker.SyncNow(context.Background(), time.Now()); err != nil {
		return fmt.Errorf("querying %s: %w", server, err)
	}
	state := tracker.State()
	resp := rec.last

	fmt.Printf("Server: %s, Stratum: %d, Reference ID: %s\n", server, state.Stratum, resp.ReferenceID)
	fmt.Printf("Offset: %s | Delay: %v\n", offsetString(state.Offset), state.RTT)
	leap := state.Leap.String()
	if state.Leap.Pending() {
		leap = color.YellowString(leap)
	}
	fmt.Printf("Leap: %s\n", leap)
	fmt.Printf("Correct Time is %s\n", resp.Time.UTC().Format(time.RFC3339Nano))
	if dumpPacket {
		if resp.Packet == nil {
			log.Warning("backend doesn't expose the raw packet")
			return nil
		}
		spew.Dump(resp.Packet)
	}
	return nil
}

// offsetString colors offsets by how far off the local clock is
func offsetString(d time.Duration) string {
	s := fmt.Sprintf("%fs", d.Seconds())
	abs := d
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < 100*time.Millisecond:
		return color.GreenString(s)
	case abs < time.Second:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}
