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

/*
Package calendar renders one instant for an ordered list of display zones.
A zone is either terrestrial (Gregorian calendar, IANA location or fixed UTC
offset) or planetary (Darian calendar, fixed offset from MTC).
*/
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dualclock/dualclock/calendar/darian"
	"github.com/dualclock/dualclock/leapsectz"
)

// ErrUnsupportedCalendar is returned for zones which can't be rendered
var ErrUnsupportedCalendar = errors.New("unsupported calendar")

// Kind tells which calendar a zone uses
type Kind int

// Supported calendars
const (
	Terrestrial Kind = iota
	Planetary
)

var kindNames = map[string]Kind{
	"terrestrial": Terrestrial,
	"gregorian":   Terrestrial,
	"earth":       Terrestrial,
	"planetary":   Planetary,
	"darian":      Planetary,
	"mars":        Planetary,
}

// ParseKind converts a calendar name to Kind
func ParseKind(s string) (Kind, error) {
	k, ok := kindNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedCalendar, s)
	}
	return k, nil
}

func (k Kind) String() string {
	switch k {
	case Terrestrial:
		return "terrestrial"
	case Planetary:
		return "planetary"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// UnmarshalYAML implements yaml.Unmarshaler
func (k *Kind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Default layouts per calendar
const (
	TerrestrialDateLayout = "2006-01-02"
	TerrestrialTimeLayout = "15:04:05"
	PlanetaryDateLayout   = "%Y-%m-%d"
	PlanetaryTimeLayout   = "%H:%M:%S"
	// PlanetaryLongDateLayout spells out the month name
	PlanetaryLongDateLayout = "%d %B %Y"
)

// Zone is one configured display zone
type Zone struct {
	Label    string        `yaml:"label"`
	Calendar Kind          `yaml:"calendar"`
	Location string        `yaml:"location,omitempty"`
	Offset   time.Duration `yaml:"offset,omitempty"`
	// DateLayout overrides the default date layout of the calendar
	DateLayout string `yaml:"date_layout,omitempty"`
}

// Representation is a zone specific rendering of one instant
type Representation struct {
	Date string
	Time string
}

// Validate checks that every zone can be rendered
func Validate(zones []Zone) error {
	if len(zones) == 0 {
		return fmt.Errorf("%w: no zones configured", ErrUnsupportedCalendar)
	}
	for i, z := range zones {
		if err := z.validate(); err != nil {
			return fmt.Errorf("zone #%d %q: %w", i, z.Label, err)
		}
	}
	return nil
}

func (z Zone) validate() error {
	if strings.TrimSpace(z.Label) == "" {
		return fmt.Errorf("%w: empty label", ErrUnsupportedCalendar)
	}
	switch z.Calendar {
	case Terrestrial:
		if z.Location != "" {
			if _, err := time.LoadLocation(z.Location); err != nil {
				return fmt.Errorf("%w: %w", ErrUnsupportedCalendar, err)
			}
			if z.Offset != 0 {
				return fmt.Errorf("%w: both location and offset set", ErrUnsupportedCalendar)
			}
		}
		if z.Offset <= -24*time.Hour || z.Offset >= 24*time.Hour {
			return fmt.Errorf("%w: utc offset %v", ErrUnsupportedCalendar, z.Offset)
		}
	case Planetary:
		if z.Location != "" {
			return fmt.Errorf("%w: location %q on planetary zone", ErrUnsupportedCalendar, z.Location)
		}
		if _, err := darian.FixedZone(z.Offset); err != nil {
			return fmt.Errorf("%w: %w", ErrUnsupportedCalendar, err)
		}
		if z.DateLayout != "" {
			sample, _ := darian.New(0, 1, 1, 0, 0, 0, 0, darian.MTC)
			if _, err := sample.Format(z.DateLayout); err != nil {
				return fmt.Errorf("%w: %w", ErrUnsupportedCalendar, err)
			}
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedCalendar, z.Calendar)
	}
	return nil
}

// Converter renders instants for zones
type Converter struct {
	leaps []leapsectz.LeapSecond

	mu        sync.Mutex
	locations map[string]*time.Location
}

// NewConverter returns a Converter using leaps for TAI-UTC. Nil leaps
// fall back to the current TAI-UTC
func NewConverter(leaps []leapsectz.LeapSecond) *Converter {
	return &Converter{leaps: leaps, locations: map[string]*time.Location{}}
}

// Render converts instant for zone z
func (c *Converter) Render(instant time.Time, z Zone) (Representation, error) {
	switch z.Calendar {
	case Terrestrial:
		return c.renderTerrestrial(instant, z)
	case Planetary:
		return c.renderPlanetary(instant, z)
	}
	return Representation{}, fmt.Errorf("%w: %v", ErrUnsupportedCalendar, z.Calendar)
}

func (c *Converter) location(z Zone) (*time.Location, error) {
	if z.Location == "" {
		return fixedLocation(z.Offset), nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if loc, ok := c.locations[z.Location]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(z.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedCalendar, err)
	}
	c.locations[z.Location] = loc
	return loc, nil
}

func fixedLocation(offset time.Duration) *time.Location {
	if offset == 0 {
		return time.UTC
	}
	sign := '+'
	abs := offset
	if offset < 0 {
		sign = '-'
		abs = -offset
	}
	name := fmt.Sprintf("UTC%c%02d:%02d", sign, int(abs/time.Hour), int(abs%time.Hour/time.Minute))
	return time.FixedZone(name, int(offset/time.Second))
}

func (c *Converter) renderTerrestrial(instant time.Time, z Zone) (Representation, error) {
	loc, err := c.location(z)
	if err != nil {
		return Representation{}, err
	}
	layout := z.DateLayout
	if layout == "" {
		layout = TerrestrialDateLayout
	}
	local := instant.In(loc)
	return Representation{
		Date: local.Format(layout),
		Time: local.Format(TerrestrialTimeLayout),
	}, nil
}

func (c *Converter) renderPlanetary(instant time.Time, z Zone) (Representation, error) {
	zone, err := darian.FixedZone(z.Offset)
	if err != nil {
		return Representation{}, fmt.Errorf("%w: %w", ErrUnsupportedCalendar, err)
	}
	mtc, err := darian.FromTime(instant, leapsectz.TAIMinusUTC(c.leaps, instant))
	if err != nil {
		return Representation{}, err
	}
	local, err := mtc.In(zone)
	if err != nil {
		return Representation{}, err
	}
	layout := z.DateLayout
	if layout == "" {
		layout = PlanetaryDateLayout
	}
	date, err := local.Format(layout)
	if err != nil {
		return Representation{}, fmt.Errorf("%w: %w", ErrUnsupportedCalendar, err)
	}
	tod, err := local.Format(PlanetaryTimeLayout)
	if err != nil {
		return Representation{}, err
	}
	return Representation{Date: date, Time: tod}, nil
}
