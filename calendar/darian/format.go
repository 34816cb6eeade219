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
	"strconv"
	"strings"
)

// ErrBadFormat is returned by Format for unknown verbs
var ErrBadFormat = errors.New("invalid darian format")

var monthNames = [...]string{
	"Sagittarius", "Dhanus", "Capricornus", "Makara", "Aquarius", "Kumbha",
	"Pisces", "Mina", "Aries", "Mesha", "Taurus", "Rishabha",
	"Gemini", "Mithuna", "Cancer", "Karka", "Leo", "Simha",
	"Virgo", "Kanya", "Libra", "Tula", "Scorpius", "Vrishika",
}

var monthShortNames = [...]string{
	"Sag", "Dha", "Cap", "Mak", "Aqu", "Kum",
	"Pis", "Min", "Ari", "Mes", "Tau", "Ris",
	"Gem", "Mit", "Can", "Kar", "Leo", "Sim",
	"Vir", "Kan", "Lib", "Tul", "Sco", "Vri",
}

var solNames = [...]string{"Lunae", "Martis", "Mercurii", "Jovis", "Veneris", "Saturni", "Solis"}

var solShortNames = [...]string{"Lu", "Ma", "Me", "Jo", "Ve", "Sa", "So"}

// hour12 returns the hour on a 12 hour clock
func (d DateTime) hour12() int {
	h := d.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

func (d DateTime) ampm() string {
	if d.Hour() < 12 {
		return "AM"
	}
	return "PM"
}

/*
Format renders d according to a strftime style layout:

	%A %a  sol of the week, full and short
	%B %b %h  month name, full and short
	%c  "Lu Ris  9 18:41:04  220"
	%D %x  mm/dd/yy
	%d %e  sol of the month, zero and space padded
	%F  YYYY-MM-DD
	%f  microseconds
	%G %Y  year, %g %y  year of the century
	%H %I  hour on 24 and 12 hour clock, %p AM or PM
	%j  sol of the year
	%M %m %S  minute, month, second
	%R  HH:MM, %T %X  HH:MM:SS, %r  hh:MM:SS AM
	%U %W  week of the year starting on Lunae or Solis, %w sol of the week with Solis as 0
	%Z %z  zone name and numeric offset
	%n %%  newline and percent
*/
func (d DateTime) Format(layout string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(layout); i++ {
		c := layout[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		i++
		if i == len(layout) {
			return "", fmt.Errorf("%w: dangling %% in %q", ErrBadFormat, layout)
		}
		switch layout[i] {
		case 'A':
			b.WriteString(solNames[d.Weeksol()])
		case 'a':
			b.WriteString(solShortNames[d.Weeksol()])
		case 'B':
			b.WriteString(monthNames[d.month-1])
		case 'b', 'h':
			b.WriteString(monthShortNames[d.month-1])
		case 'c':
			fmt.Fprintf(&b, "%s %s %2d %02d:%02d:%02d %4d",
				solShortNames[d.Weeksol()], monthShortNames[d.month-1], d.sol,
				d.Hour(), d.Minute(), d.Second(), d.year)
		case 'D', 'x':
			fmt.Fprintf(&b, "%02d/%02d/%02d", d.month, d.sol, d.year%100)
		case 'd':
			fmt.Fprintf(&b, "%02d", d.sol)
		case 'e':
			fmt.Fprintf(&b, "%2d", d.sol)
		case 'F':
			fmt.Fprintf(&b, "%04d-%02d-%02d", d.year, d.month, d.sol)
		case 'f':
			fmt.Fprintf(&b, "%06d", d.Microsecond())
		case 'G', 'Y':
			fmt.Fprintf(&b, "%04d", d.year)
		case 'g', 'y':
			fmt.Fprintf(&b, "%02d", d.year%100)
		case 'H':
			fmt.Fprintf(&b, "%02d", d.Hour())
		case 'I':
			fmt.Fprintf(&b, "%02d", d.hour12())
		case 'j':
			fmt.Fprintf(&b, "%03d", d.YearSol())
		case 'M':
			fmt.Fprintf(&b, "%02d", d.Minute())
		case 'm':
			fmt.Fprintf(&b, "%02d", d.month)
		case 'n':
			b.WriteByte('\n')
		case 'p':
			b.WriteString(d.ampm())
		case 'R':
			fmt.Fprintf(&b, "%02d:%02d", d.Hour(), d.Minute())
		case 'r':
			fmt.Fprintf(&b, "%02d:%02d:%02d %s", d.hour12(), d.Minute(), d.Second(), d.ampm())
		case 'S':
			fmt.Fprintf(&b, "%02d", d.Second())
		case 'T', 'X':
			fmt.Fprintf(&b, "%02d:%02d:%02d", d.Hour(), d.Minute(), d.Second())
		case 'U':
			fmt.Fprintf(&b, "%02d", (d.month-1)*4+(d.sol-1)/7+1)
		case 'W':
			// Sagittarius 1 belongs to the last week of the previous year
			if d.month == 1 && d.sol == 1 {
				b.WriteString("96")
			} else {
				fmt.Fprintf(&b, "%02d", (d.month-1)*4+(d.sol+5)/7)
			}
		case 'w':
			b.WriteString(strconv.Itoa((d.Weeksol() + 1) % 7))
		case 'Z':
			b.WriteString(d.zone.Name())
		case 'z':
			b.WriteString(d.zone.numeric())
		case '%':
			b.WriteByte('%')
		default:
			return "", fmt.Errorf("%w: unsupported verb %%%c", ErrBadFormat, layout[i])
		}
	}
	return b.String(), nil
}
