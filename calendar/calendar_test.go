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

package calendar

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/dualclock/dualclock/leapsectz"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

var sample = time.Date(2021, 4, 29, 5, 25, 35, 132504000, time.UTC)

// leap seconds up to 2015 only
var old = []leapsectz.LeapSecond{
	{Tleap: 78796800, Nleap: 1},
	{Tleap: 1435708825, Nleap: 26},
}

func TestParseKind(t *testing.T) {
	for name, want := range map[string]Kind{
		"gregorian":   Terrestrial,
		"Terrestrial": Terrestrial,
		" darian ":    Planetary,
		"MARS":        Planetary,
	} {
		k, err := ParseKind(name)
		require.NoError(t, err, name)
		require.Equal(t, want, k, name)
	}
	_, err := ParseKind("julian")
	require.ErrorIs(t, err, ErrUnsupportedCalendar)

	require.Equal(t, "terrestrial", Terrestrial.String())
	require.Equal(t, "planetary", Planetary.String())
	require.Equal(t, "Kind(5)", Kind(5).String())
}

func TestZoneYAML(t *testing.T) {
	var zones []Zone
	err := yaml.Unmarshal([]byte(`
- label: Tokyo
  calendar: gregorian
  location: Asia/Tokyo
- label: Olympus
  calendar: darian
  offset: 3h30m
`), &zones)
	require.NoError(t, err)
	require.Equal(t, []Zone{
		{Label: "Tokyo", Calendar: Terrestrial, Location: "Asia/Tokyo"},
		{Label: "Olympus", Calendar: Planetary, Offset: 3*time.Hour + 30*time.Minute},
	}, zones)

	out, err := yaml.Marshal(zones[1])
	require.NoError(t, err)
	require.Contains(t, string(out), "calendar: planetary")

	err = yaml.Unmarshal([]byte("- label: x\n  calendar: julian\n"), &zones)
	require.ErrorIs(t, err, ErrUnsupportedCalendar)
}

func TestRenderTerrestrial(t *testing.T) {
	c := NewConverter(nil)
	tests := []struct {
		name string
		zone Zone
		want Representation
	}{
		{"utc", Zone{Label: "UTC"}, Representation{"2021-04-29", "05:25:35"}},
		{"location", Zone{Label: "Tokyo", Location: "Asia/Tokyo"}, Representation{"2021-04-29", "14:25:35"}},
		{"fixed offset", Zone{Label: "West", Offset: -6 * time.Hour}, Representation{"2021-04-28", "23:25:35"}},
		{"layout", Zone{Label: "UTC", DateLayout: "Mon 2 Jan 2006"}, Representation{"Thu 29 Apr 2021", "05:25:35"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := c.Render(sample, tt.zone)
			require.NoError(t, err)
			require.Equal(t, tt.want, r)
		})
	}
}

func TestRenderPlanetary(t *testing.T) {
	c := NewConverter(nil)
	r, err := c.Render(sample, Zone{Label: "MTC", Calendar: Planetary})
	require.NoError(t, err)
	require.Equal(t, Representation{"0219-03-24", "22:52:59"}, r)

	r, err = c.Render(sample, Zone{Label: "MTC", Calendar: Planetary, DateLayout: PlanetaryLongDateLayout})
	require.NoError(t, err)
	require.Equal(t, "24 Capricornus 0219", r.Date)

	r, err = c.Render(time.Unix(1700000000, 0), Zone{Label: "Olympus", Calendar: Planetary, Offset: 3*time.Hour + 30*time.Minute})
	require.NoError(t, err)
	require.Equal(t, Representation{"0220-12-09", "22:11:04"}, r)

	_, err = c.Render(sample, Zone{Label: "bad", Calendar: Planetary, Offset: 25 * time.Hour})
	require.ErrorIs(t, err, ErrUnsupportedCalendar)
	_, err = c.Render(sample, Zone{Label: "bad", Calendar: Kind(9)})
	require.ErrorIs(t, err, ErrUnsupportedCalendar)
}

func TestRenderPlanetaryUsesLeapTable(t *testing.T) {
	c := NewConverter(nil)
	full, err := c.Render(time.Unix(1700000000, 0), Zone{Label: "MTC", Calendar: Planetary})
	require.NoError(t, err)
	require.Equal(t, "18:41:04", full.Time)

	c = NewConverter(old)
	stale, err := c.Render(time.Unix(1700000000, 0), Zone{Label: "MTC", Calendar: Planetary})
	require.NoError(t, err)
	require.Equal(t, "18:41:03", stale.Time)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate([]Zone{
		{Label: "UTC"},
		{Label: "Tokyo", Location: "Asia/Tokyo"},
		{Label: "MTC", Calendar: Planetary, Offset: -23 * time.Hour},
		{Label: "Long", Calendar: Planetary, DateLayout: PlanetaryLongDateLayout},
	}))

	bad := map[string][]Zone{
		"empty":               nil,
		"no label":            {{Label: " "}},
		"unknown kind":        {{Label: "x", Calendar: Kind(3)}},
		"unknown location":    {{Label: "x", Location: "Mars/Olympus"}},
		"location and offset": {{Label: "x", Location: "UTC", Offset: time.Hour}},
		"terrestrial offset":  {{Label: "x", Offset: 30 * time.Hour}},
		"planetary offset":    {{Label: "x", Calendar: Planetary, Offset: 24 * time.Hour}},
		"planetary location":  {{Label: "x", Calendar: Planetary, Location: "UTC"}},
		"planetary layout":    {{Label: "x", Calendar: Planetary, DateLayout: "%C"}},
	}
	for name, zones := range bad {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, Validate(zones), ErrUnsupportedCalendar)
		})
	}
}
