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
	"fmt"
	"os"

	"github.com/dualclock/dualclock/calendar"
	"github.com/dualclock/dualclock/clocksync"
	"github.com/dualclock/dualclock/config"
	"github.com/dualclock/dualclock/leapsectz"
	"github.com/dualclock/dualclock/ntp/client"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RootCmd is a main entry point. It's exported so the binary can be extended
var RootCmd = &cobra.Command{
	Use:   "dualclock",
	Short: "Earth and Mars wall clock corrected by NTP",
	RunE:  runClock,
}

var (
	verbose     bool
	cfgPath     string
	serverFlag  string
	backendFlag string
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	RootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to the config")
	RootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "S", "", "NTP server to sync with")
	RootCmd.PersistentFlags().StringVarP(&backendFlag, "backend", "b", string(config.BackendNative), "NTP client implementation: native or beevik")
}

// ConfigureVerbosity configures log verbosity based on parsed flags. Needs to be called by any subcommand
func ConfigureVerbosity() {
	log.SetLevel(log.InfoLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// Execute is the main entry point for CLI interface
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfig merges config file and the flags explicitly set on the command line
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	setFlags := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		setFlags[f.Name] = true
	})
	return config.PrepareConfig(cfgPath, serverFlag, backendFlag, tickFlag, monitoringPortFlag, setFlags)
}

func newQuerier(cfg *config.Config) clocksync.Querier {
	if cfg.Backend == config.BackendBeevik {
		return client.NewBeevik(cfg.Server, cfg.SyncTimeout)
	}
	c := client.New(cfg.Server, cfg.SyncTimeout)
	c.DSCP = cfg.DSCP
	c.LocalAddr = cfg.LocalAddr
	return c
}

// newConverter loads the leap second table. Without it every instant
// is converted with the fallback TAI-UTC difference
func newConverter(cfg *config.Config) *calendar.Converter {
	leaps, err := leapsectz.Parse(cfg.LeapFile)
	if err != nil {
		log.Warningf("failed to load leap seconds from %s, assuming TAI-UTC=%ds: %v", cfg.LeapFile, leapsectz.FallbackTAIMinusUTC, err)
		leaps = nil
	}
	return calendar.NewConverter(leaps)
}
