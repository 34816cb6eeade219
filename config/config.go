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

// Package config holds the static dualclock configuration
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/dualclock/dualclock/calendar"
	"github.com/dualclock/dualclock/leapsectz"
	log "github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"
)

// Backend selects the NTP client implementation
type Backend string

// Supported backends
const (
	BackendNative Backend = "native"
	BackendBeevik Backend = "beevik"
)

// Config specifies dualclock run options
type Config struct {
	Server         string          `yaml:"server"`
	Backend        Backend         `yaml:"backend"`
	SyncInterval   time.Duration   `yaml:"sync_interval"`
	SyncTimeout    time.Duration   `yaml:"sync_timeout"`
	TickInterval   time.Duration   `yaml:"tick_interval"`
	DSCP           int             `yaml:"dscp"`
	LocalAddr      string          `yaml:"local_addr"`
	LeapFile       string          `yaml:"leapfile"`
	MonitoringPort int             `yaml:"monitoring_port"`
	Zones          []calendar.Zone `yaml:"zones"`
}

// DefaultZones shows UTC and Coordinated Mars Time
func DefaultZones() []calendar.Zone {
	return []calendar.Zone{
		{Label: "UTC", Calendar: calendar.Terrestrial},
		{Label: "MTC", Calendar: calendar.Planetary},
	}
}

// DefaultConfig returns Config initialized with default values
func DefaultConfig() *Config {
	return &Config{
		Server:       "pool.ntp.org",
		Backend:      BackendNative,
		SyncInterval: 300 * time.Second,
		SyncTimeout:  5 * time.Second,
		TickInterval: 50 * time.Millisecond,
		LeapFile:     leapsectz.DefaultLeapFile,
		Zones:        DefaultZones(),
	}
}

// Validate config is sane
func (c *Config) Validate() error {
	if c.Server == "" {
		return fmt.Errorf("server must be specified")
	}
	if c.Backend != BackendNative && c.Backend != BackendBeevik {
		return fmt.Errorf("backend must be %q or %q, got %q", BackendNative, BackendBeevik, c.Backend)
	}
	if c.SyncInterval <= 0 {
		return fmt.Errorf("sync_interval must be greater than zero")
	}
	if c.SyncTimeout <= 0 || c.SyncTimeout >= c.SyncInterval {
		return fmt.Errorf("sync_timeout must be greater than zero but less than sync_interval")
	}
	if c.TickInterval <= 0 || c.TickInterval > time.Second {
		return fmt.Errorf("tick_interval must be greater than zero and at most 1s")
	}
	if c.DSCP < 0 || c.DSCP > 63 {
		return fmt.Errorf("dscp must be between 0 and 63")
	}
	if c.LocalAddr != "" && net.ParseIP(c.LocalAddr) == nil {
		return fmt.Errorf("local_addr must be an IP address, got %q", c.LocalAddr)
	}
	if c.MonitoringPort < 0 {
		return fmt.Errorf("monitoring_port must be 0 or positive")
	}
	if err := calendar.Validate(c.Zones); err != nil {
		return fmt.Errorf("invalid zones: %w", err)
	}
	return nil
}

// ReadConfig reads config from the file
func ReadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	cData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// zones from the file replace the defaults instead of merging into them
	c.Zones = nil
	if err := yaml.UnmarshalStrict(cData, c); err != nil {
		return nil, err
	}
	if c.Zones == nil {
		c.Zones = DefaultZones()
	}
	return c, nil
}

// PrepareConfig reads config from cfgPath, applies CLI overrides and validates the result.
// setFlags holds names of the flags set explicitly on the command line
func PrepareConfig(cfgPath string, server string, backend string, tickInterval time.Duration, monitoringPort int, setFlags map[string]bool) (*Config, error) {
	cfg := DefaultConfig()
	var err error
	warn := func(name string) {
		log.Warningf("overriding %s from CLI flag", name)
	}
	if cfgPath != "" {
		cfg, err = ReadConfig(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("reading config from %q: %w", cfgPath, err)
		}
	}
	if setFlags["server"] {
		warn("server")
		cfg.Server = server
	}
	if setFlags["backend"] {
		warn("backend")
		cfg.Backend = Backend(backend)
	}
	if setFlags["tick"] {
		warn("tick_interval")
		cfg.TickInterval = tickInterval
	}
	if setFlags["monitoringport"] {
		warn("monitoring_port")
		cfg.MonitoringPort = monitoringPort
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	log.Debugf("config: %+v", cfg)
	return cfg, nil
}
