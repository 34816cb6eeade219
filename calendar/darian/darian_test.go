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

package darian

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIsLeapAndSolsBeforeYear(t *testing.T) {
	tests := []struct {
		year   int
		leap   bool
		before int
	}{
		{0, true, 0},
		{1, true, 669},
		{10, true, 6686},
		{99, true, 66191},
		{100, false, 66860},
		{1000, true, 668591},
		{1999, true, 1336513},
		{2000, true, 1337182},
		{2001, true, 1337851},
		{4799, true, 3208575},
		{4800, false, 3209244},
		{4801, true, 3209912},
		{6800, false, 4546434},
		{6801, true, 4547102},
		{8400, false, 5616188},
		{8401, true, 5616856},
		{9999, true, 6685276},
	}
	for _, tt := range tests {
		require.Equal(t, tt.leap, IsLeap(tt.year), "year %d", tt.year)
		require.Equal(t, tt.before, solsBeforeYear(tt.year), "year %d", tt.year)
	}
	require.False(t, IsLeap(2))
	require.False(t, IsLeap(4802))
}

func TestSolsInMonth(t *testing.T) {
	require.Equal(t, 28, SolsInMonth(1, 1))
	require.Equal(t, 27, SolsInMonth(1, 6))
	require.Equal(t, 27, SolsInMonth(1, 12))
	require.Equal(t, 27, SolsInMonth(1, 18))
	require.Equal(t, 28, SolsInMonth(1, 24))
	require.Equal(t, 27, SolsInMonth(2, 24))

	total := 0
	for m := 1; m <= 24; m++ {
		total += SolsInMonth(2, m)
	}
	require.Equal(t, 668, total)
	require.Equal(t, 641, solsBeforeMonth(24))
}

func TestOrdinal(t *testing.T) {
	tests := []struct {
		ordinal          int
		year, month, sol int
	}{
		{1, 0, 1, 1},
		{669, 0, 24, 28},
		{670, 1, 1, 1},
		{146501, 219, 3, 24},
		{1337852, 2001, 1, 1},
		{MaxOrdinal, 9999, 24, 28},
	}
	for _, tt := range tests {
		y, m, s, err := FromOrdinal(tt.ordinal)
		require.NoError(t, err)
		require.Equal(t, []int{tt.year, tt.month, tt.sol}, []int{y, m, s}, "ordinal %d", tt.ordinal)

		n, err := Ordinal(tt.year, tt.month, tt.sol)
		require.NoError(t, err)
		require.Equal(t, tt.ordinal, n)
	}
}

func TestOrdinalRoundTripAcrossEras(t *testing.T) {
	for _, y := range []int{0, 1, 2, 99, 100, 1999, 2000, 2001, 4799, 4800, 4801, 6799, 6800, 6801, 8399, 8400, 8401, 9998, 9999} {
		for m := 1; m <= 24; m++ {
			for _, s := range []int{1, SolsInMonth(y, m)} {
				n, err := Ordinal(y, m, s)
				require.NoError(t, err)
				yy, mm, ss, err := FromOrdinal(n)
				require.NoError(t, err)
				require.Equal(t, []int{y, m, s}, []int{yy, mm, ss})
			}
		}
	}
}

func TestOrdinalOutOfRange(t *testing.T) {
	_, _, _, err := FromOrdinal(0)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, _, _, err = FromOrdinal(MaxOrdinal + 1)
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = Ordinal(10000, 1, 1)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = Ordinal(1, 25, 1)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = Ordinal(2, 24, 28)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = Ordinal(1, 6, 28)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestFromTime(t *testing.T) {
	tests := []struct {
		unix                 int64
		year, month, sol     int
		hour, minute, second int
		micro                int
		weeksol              int
		ordinal              int
	}{
		{0, 191, 20, 26, 7, 6, 0, 833719, 3, 128257},
		{946684800, 207, 19, 22, 3, 12, 22, 628128, 6, 138921},
		{1234567890, 212, 16, 3, 23, 8, 37, 911183, 1, 142163},
		{1609459200, 218, 23, 20, 21, 22, 27, 22117, 4, 146386},
		{1700000000, 220, 12, 9, 18, 41, 4, 185475, 0, 147406},
		{2000000000, 225, 13, 19, 2, 22, 33, 12256, 3, 150786},
	}
	for _, tt := range tests {
		d, err := FromTime(time.Unix(tt.unix, 0), 37)
		require.NoError(t, err)
		require.Equal(t,
			[]int{tt.year, tt.month, tt.sol, tt.hour, tt.minute, tt.second, tt.weeksol, tt.ordinal},
			[]int{d.Year(), d.Month(), d.Sol(), d.Hour(), d.Minute(), d.Second(), d.Weeksol(), d.Ordinal()},
			"unix %d", tt.unix)
		require.InDelta(t, tt.micro, d.Microsecond(), 3, "unix %d", tt.unix)
		require.Equal(t, MTC, d.Zone())
	}
}

func TestFromTimeSubSecond(t *testing.T) {
	at := time.Date(2021, 4, 29, 5, 25, 35, 132504000, time.UTC)
	d, err := FromTime(at, 37)
	require.NoError(t, err)
	s, err := d.Format("%F %T")
	require.NoError(t, err)
	require.Equal(t, "0219-03-24 22:52:59", s)
	require.InDelta(t, 725889, d.Microsecond(), 3)
	require.Equal(t, 1, d.Weeksol())
}

func TestFromTimeLeapSeconds(t *testing.T) {
	at := time.Unix(1700000000, 0)
	d37, err := FromTime(at, 37)
	require.NoError(t, err)
	d36, err := FromTime(at, 36)
	require.NoError(t, err)
	// one more SI second is a bit less than a Martian second
	diff := d37.micros - d36.micros
	require.InDelta(t, 973244, diff, 5)
}

func TestTimeRoundTrip(t *testing.T) {
	at := time.Date(2026, 10, 19, 12, 34, 56, 789000000, time.UTC)
	d, err := FromTime(at, 37)
	require.NoError(t, err)
	back := d.Time(37)
	require.WithinDuration(t, at, back, 10*time.Microsecond)

	z, err := FixedZone(-7 * time.Hour)
	require.NoError(t, err)
	local, err := d.In(z)
	require.NoError(t, err)
	require.WithinDuration(t, at, local.Time(37), 10*time.Microsecond)
}

func TestNew(t *testing.T) {
	d, err := New(219, 3, 24, 22, 52, 59, 725889, MTC)
	require.NoError(t, err)
	require.Equal(t, 146501, d.Ordinal())
	require.Equal(t, 22, d.Hour())
	require.Equal(t, 52, d.Minute())
	require.Equal(t, 59, d.Second())
	require.Equal(t, 725889, d.Microsecond())
	require.Equal(t, "0219-03-24 22:52:59.725889 MTC", d.String())

	_, err = New(219, 3, 24, 24, 0, 0, 0, MTC)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = New(219, 6, 28, 0, 0, 0, 0, MTC)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestZones(t *testing.T) {
	d, err := FromTime(time.Unix(1700000000, 0), 37)
	require.NoError(t, err)

	west, err := FixedZone(-5 * time.Hour)
	require.NoError(t, err)
	w, err := d.In(west)
	require.NoError(t, err)
	s, err := w.Format("%F %T|%Z %z")
	require.NoError(t, err)
	require.Equal(t, "0220-12-09 13:41:04|MTC-05:00 -0500", s)

	east, err := FixedZone(3*time.Hour + 30*time.Minute)
	require.NoError(t, err)
	e, err := d.In(east)
	require.NoError(t, err)
	s, err = e.Format("%Z|%z|%c|%I %p|%e|%G %g %y|%h|%j")
	require.NoError(t, err)
	require.Equal(t, "MTC+03:30|+0330|Lu Ris  9 22:11:04  220|10 PM| 9|0220 20 20|Ris|316", s)

	// crossing midnight moves the date
	late, err := FixedZone(6 * time.Hour)
	require.NoError(t, err)
	l, err := d.In(late)
	require.NoError(t, err)
	require.Equal(t, 10, l.Sol())
	require.Equal(t, 0, l.Hour())

	back, err := l.In(MTC)
	require.NoError(t, err)
	require.Equal(t, d, back)
}

func TestFixedZone(t *testing.T) {
	_, err := FixedZone(24 * time.Hour)
	require.ErrorIs(t, err, ErrBadOffset)
	_, err = FixedZone(-24 * time.Hour)
	require.ErrorIs(t, err, ErrBadOffset)

	z, err := FixedZone(23*time.Hour + 59*time.Minute)
	require.NoError(t, err)
	require.Equal(t, "MTC+23:59", z.Name())

	z, err = FixedZone(-(time.Hour + 2*time.Minute + 3*time.Second))
	require.NoError(t, err)
	require.Equal(t, "MTC-01:02:03", z.Name())
	require.Equal(t, "-010203", z.numeric())

	z, err = FixedZone(time.Second + time.Microsecond)
	require.NoError(t, err)
	require.Equal(t, "MTC+00:00:01.000001", z.Name())
	require.Equal(t, "+000001.000001", z.numeric())

	require.Equal(t, "MTC", MTC.String())
	require.Equal(t, "+0000", MTC.numeric())
}

func TestFormat(t *testing.T) {
	d, err := FromTime(time.Unix(1700000000, 0), 37)
	require.NoError(t, err)

	s, err := d.Format("%A %a %B %b %c|%D|%F|%j|%U|%W|%w|%p|%x")
	require.NoError(t, err)
	require.Equal(t, "Lunae Lu Rishabha Ris Lu Ris  9 18:41:04  220|12/09/20|0220-12-09|316|46|46|1|PM|12/09/20", s)

	s, err = d.Format("%H:%M:%S %R %X %r %d %m %Y%n100%%")
	require.NoError(t, err)
	require.Equal(t, "18:41:04 18:41 18:41:04 06:41:04 PM 09 12 0220\n100%", s)
}

func TestFormatWeeks(t *testing.T) {
	first, err := New(220, 1, 1, 0, 0, 0, 0, MTC)
	require.NoError(t, err)
	s, err := first.Format("%U %W %A %j")
	require.NoError(t, err)
	require.Equal(t, "01 96 Solis 001", s)

	second, err := New(220, 1, 2, 0, 0, 0, 0, MTC)
	require.NoError(t, err)
	s, err = second.Format("%U %W %A %w %I %p")
	require.NoError(t, err)
	require.Equal(t, "01 01 Lunae 1 12 AM", s)

	last, err := New(221, 24, 28, 12, 0, 0, 1, MTC)
	require.NoError(t, err)
	s, err = last.Format("%j %f %I %p")
	require.NoError(t, err)
	require.Equal(t, "669 000001 12 PM", s)
}

func TestFormatErrors(t *testing.T) {
	d, err := New(220, 1, 1, 0, 0, 0, 0, MTC)
	require.NoError(t, err)
	_, err = d.Format("%C")
	require.ErrorIs(t, err, ErrBadFormat)
	_, err = d.Format("%Y%")
	require.ErrorIs(t, err, ErrBadFormat)
}
