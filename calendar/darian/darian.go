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
Package darian implements the Darian calendar for Mars.

A Darian year has 24 months of 27 or 28 sols. Sagittarius 1 of year 0
is ordinal 1. Time of sol is Coordinated Mars Time (MTC) split into
24 Martian hours of 60 minutes of 60 seconds.
*/
package darian

import (
	"errors"
	"fmt"
	"math"
)

// SolSeconds is the length of one sol in SI seconds
const SolSeconds = 88775.244147

// epochOrdinal maps (unix + TAI-UTC) / SolSeconds onto the Darian ordinal
const epochOrdinal = 128257.2954262

// Supported range
const (
	MinYear    = 0
	MaxYear    = 9999
	MaxOrdinal = 6685945
)

// microsPerSol is the number of Martian microseconds in a sol
const microsPerSol = 24 * 60 * 60 * 1000000

// ErrOutOfRange is returned for dates outside of years MinYear..MaxYear
var ErrOutOfRange = errors.New("darian date out of range")

// floorDiv divides rounding towards negative infinity
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// IsLeap reports whether year has 669 sols. The rule changes with the era
func IsLeap(y int) bool {
	var never int
	switch {
	case y <= 2000:
		if y%1000 == 0 {
			return true
		}
		never = 100
	case y <= 4800:
		never = 150
	case y <= 6800:
		never = 200
	case y <= 8400:
		never = 300
	default:
		never = 600
	}
	if y%never == 0 {
		return false
	}
	return y%10 == 0 || y%2 == 1
}

// solsBeforeYear returns the number of sols before Sagittarius 1 of year y
func solsBeforeYear(y int) int {
	x := y - 1
	base := y*669 - floorDiv(x, 2) + floorDiv(x, 10)
	switch {
	case y <= 2000:
		return base - floorDiv(x, 100) + floorDiv(x, 1000)
	case y <= 4800:
		return base - floorDiv(x, 150) - 5
	case y <= 6800:
		return base - floorDiv(x, 200) - 13
	case y <= 8400:
		return base - floorDiv(x, 300) - 25
	}
	return base - floorDiv(x, 600) - 39
}

// SolsInMonth returns the length of month m of year y.
// The leap sol is the last sol of Vrishika
func SolsInMonth(y, m int) int {
	switch {
	case m%6 == 0 && m < 24:
		return 27
	case m == 24 && !IsLeap(y):
		return 27
	}
	return 28
}

// solsBeforeMonth returns the number of sols of the year preceding month m
func solsBeforeMonth(m int) int {
	return (m-1)*28 - (m-1)/6
}

func checkDate(y, m, s int) error {
	if y < MinYear || y > MaxYear {
		return fmt.Errorf("%w: year %d", ErrOutOfRange, y)
	}
	if m < 1 || m > 24 {
		return fmt.Errorf("%w: month %d", ErrOutOfRange, m)
	}
	if n := SolsInMonth(y, m); s < 1 || s > n {
		return fmt.Errorf("%w: sol %d not in 1..%d", ErrOutOfRange, s, n)
	}
	return nil
}

// Ordinal returns the ordinal of the date, Sagittarius 1 of year 0 being 1
func Ordinal(y, m, s int) (int, error) {
	if err := checkDate(y, m, s); err != nil {
		return 0, err
	}
	return solsBeforeYear(y) + solsBeforeMonth(m) + s, nil
}

// FromOrdinal is the inverse of Ordinal
func FromOrdinal(n int) (y, m, s int, err error) {
	if n < 1 || n > MaxOrdinal {
		return 0, 0, 0, fmt.Errorf("%w: ordinal %d", ErrOutOfRange, n)
	}
	// the mean year is slightly shorter than 668.59 sols, so the estimate is off by one at most
	y = int(math.Floor(float64(n) / 668.59))
	if n <= solsBeforeYear(y) {
		y--
	} else if n > solsBeforeYear(y+1) {
		y++
	}
	n -= solsBeforeYear(y)
	m = n/28 + 1
	if m > 24 || n <= solsBeforeMonth(m) {
		m--
	} else if m < 24 && n > solsBeforeMonth(m+1) {
		m++
	}
	return y, m, n - solsBeforeMonth(m), nil
}
