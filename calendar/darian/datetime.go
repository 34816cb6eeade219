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
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrBadOffset is returned for zone offsets of 24 Martian hours or more
var ErrBadOffset = errors.New("mtc offset must be strictly within 24 hours")

// Zone is a fixed offset from MTC. Offset is measured in Martian time units:
// time.Hour stands for one Martian hour, 1/24 of a sol
type Zone struct {
	Offset time.Duration
}

// MTC is Coordinated Mars Time
var MTC = Zone{}

// FixedZone returns a zone offset from MTC by offset Martian time
func FixedZone(offset time.Duration) (Zone, error) {
	if offset <= -24*time.Hour || offset >= 24*time.Hour {
		return Zone{}, fmt.Errorf("%w: %v", ErrBadOffset, offset)
	}
	return Zone{Offset: offset.Truncate(time.Microsecond)}, nil
}

// splitOffset returns the sign and absolute components of the zone offset
func (z Zone) splitOffset() (sign byte, h, m, s, us int) {
	off := z.Offset
	sign = '+'
	if off < 0 {
		sign = '-'
		off = -off
	}
	h = int(off / time.Hour)
	m = int(off % time.Hour / time.Minute)
	s = int(off % time.Minute / time.Second)
	us = int(off % time.Second / time.Microsecond)
	return
}

// Name returns "MTC" or "MTC+hh:mm" style zone name
func (z Zone) Name() string {
	if z.Offset == 0 {
		return "MTC"
	}
	sign, h, m, s, us := z.splitOffset()
	switch {
	case us != 0:
		return fmt.Sprintf("MTC%c%02d:%02d:%02d.%06d", sign, h, m, s, us)
	case s != 0:
		return fmt.Sprintf("MTC%c%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("MTC%c%02d:%02d", sign, h, m)
}

// numeric returns "+hhmm" style offset as used by %z
func (z Zone) numeric() string {
	sign, h, m, s, us := z.splitOffset()
	switch {
	case us != 0:
		return fmt.Sprintf("%c%02d%02d%02d.%06d", sign, h, m, s, us)
	case s != 0:
		return fmt.Sprintf("%c%02d%02d%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%c%02d%02d", sign, h, m)
}

func (z Zone) String() string {
	return z.Name()
}

// DateTime is a Darian date and time of sol in a zone
type DateTime struct {
	ordinal int
	// Martian microseconds since midnight
	micros int64
	zone   Zone

	year, month, sol int
}

// New returns the DateTime for the given fields in zone
func New(year, month, sol, hour, minute, second, microsecond int, zone Zone) (DateTime, error) {
	n, err := Ordinal(year, month, sol)
	if err != nil {
		return DateTime{}, err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 ||
		microsecond < 0 || microsecond > 999999 {
		return DateTime{}, fmt.Errorf("%w: time %02d:%02d:%02d.%06d", ErrOutOfRange, hour, minute, second, microsecond)
	}
	micros := ((int64(hour)*60+int64(minute))*60+int64(second))*1000000 + int64(microsecond)
	return DateTime{ordinal: n, micros: micros, zone: zone, year: year, month: month, sol: sol}, nil
}

func fromMicros(ordinal int, micros int64, zone Zone) (DateTime, error) {
	ordinal += int(micros / microsPerSol)
	micros %= microsPerSol
	if micros < 0 {
		micros += microsPerSol
		ordinal--
	}
	y, m, s, err := FromOrdinal(ordinal)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{ordinal: ordinal, micros: micros, zone: zone, year: y, month: m, sol: s}, nil
}

// FromTime converts t to Darian date and time in MTC.
// taiMinusUTC is the TAI-UTC difference in seconds at t
func FromTime(t time.Time, taiMinusUTC int) (DateTime, error) {
	unix := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	ordF := (unix+float64(taiMinusUTC))/SolSeconds + epochOrdinal
	whole, frac := math.Modf(ordF)
	if ordF < 0 {
		whole--
		frac++
	}
	return fromMicros(int(whole), int64(math.Round(frac*microsPerSol)), MTC)
}

// Time converts d back to a terrestrial instant
func (d DateTime) Time(taiMinusUTC int) time.Time {
	mtc := float64(d.micros-int64(d.zone.Offset/time.Microsecond)) / microsPerSol
	secs := (float64(d.ordinal)+mtc-epochOrdinal)*SolSeconds - float64(taiMinusUTC)
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(math.Round(frac*1e9))).UTC()
}

// In returns the same instant in zone z
func (d DateTime) In(z Zone) (DateTime, error) {
	micros := d.micros + int64((z.Offset-d.zone.Offset)/time.Microsecond)
	return fromMicros(d.ordinal, micros, z)
}

// Year returns the Darian year
func (d DateTime) Year() int { return d.year }

// Month returns the month, 1 to 24
func (d DateTime) Month() int { return d.month }

// Sol returns the sol of the month
func (d DateTime) Sol() int { return d.sol }

// Hour returns the Martian hour
func (d DateTime) Hour() int { return int(d.micros / 3600000000) }

// Minute returns the Martian minute
func (d DateTime) Minute() int { return int(d.micros / 60000000 % 60) }

// Second returns the Martian second
func (d DateTime) Second() int { return int(d.micros / 1000000 % 60) }

// Microsecond returns the Martian microsecond
func (d DateTime) Microsecond() int { return int(d.micros % 1000000) }

// Zone returns the zone of d
func (d DateTime) Zone() Zone { return d.zone }

// Ordinal returns the ordinal of the date
func (d DateTime) Ordinal() int { return d.ordinal }

// Weeksol returns the sol of the week, Lunae is 0 and Solis is 6
func (d DateTime) Weeksol() int { return (d.sol + 5) % 7 }

// YearSol returns the sol of the year, 1 based
func (d DateTime) YearSol() int { return solsBeforeMonth(d.month) + d.sol }

// String returns "YYYY-MM-DD HH:MM:SS[.ffffff] ZONE"
func (d DateTime) String() string {
	s, _ := d.Format("%F %T")
	if us := d.Microsecond(); us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s + " " + d.zone.Name()
}
