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

// Package leapsectz reads leap second records from the system timezone
// database and derives TAI-UTC from them
package leapsectz

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
	"sort"
	"time"
)

// DefaultLeapFile is the tzdata file carrying leap second records
const DefaultLeapFile = "/usr/share/zoneinfo/right/UTC"

// FallbackTAIMinusUTC is TAI-UTC in seconds since 2017-01-01, used when no table is available
const FallbackTAIMinusUTC = 37

// initialTAIMinusUTC is TAI-UTC when leap seconds were introduced in 1972
const initialTAIMinusUTC = 10

var (
	errBadData            = errors.New("malformed time zone information")
	errUnsupportedVersion = errors.New("unsupported version")
	errNoLeapSeconds      = errors.New("no leap seconds information found")
)

// LeapSecond is one record of the leap second table
type LeapSecond struct {
	// Tleap is the transition time counted with all previous leap seconds included
	Tleap uint64
	// Nleap is the total number of leap seconds in effect after the transition
	Nleap int32
}

// Header represents the TZif file header. Fields names are copied from doc
type Header struct {
	// number of UTC/local indicators contained in the body
	IsUtcCnt uint32
	// number of standard/wall indicators contained in the body
	IsStdCnt uint32
	// number of leap second records contained in the body
	LeapCnt uint32
	// number of transition times contained in the body
	TimeCnt uint32
	// number of local time type records contained in the body, never zero
	TypeCnt uint32
	// number of octets used by time zone designations
	CharCnt uint32
}

// Time returns when the leap second takes effect, in UTC
func (l LeapSecond) Time() time.Time {
	return time.Unix(int64(l.Tleap-uint64(l.Nleap)+1), 0)
}

// Parse returns leap seconds from srcfile sorted by time. Pass "" to use the default file
func Parse(srcfile string) ([]LeapSecond, error) {
	if srcfile == "" {
		srcfile = DefaultLeapFile
	}
	f, err := os.Open(srcfile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parse(f)
}

// Latest returns the last leap second which took effect at or before t
func Latest(ls []LeapSecond, t time.Time) (LeapSecond, bool) {
	i := sort.Search(len(ls), func(i int) bool { return ls[i].Time().After(t) })
	if i == 0 {
		return LeapSecond{}, false
	}
	return ls[i-1], true
}

// TAIMinusUTC returns TAI-UTC in seconds at instant t according to ls.
// An empty table yields FallbackTAIMinusUTC
func TAIMinusUTC(ls []LeapSecond, t time.Time) int {
	if len(ls) == 0 {
		return FallbackTAIMinusUTC
	}
	l, ok := Latest(ls, t)
	if !ok {
		return initialTAIMinusUTC
	}
	return initialTAIMinusUTC + int(l.Nleap)
}

func parse(r io.Reader) ([]LeapSecond, error) {
	var ret []LeapSecond
	for block := byte(0); block < 2; block++ {
		// 4-byte magic "TZif", 1-byte version, 15 bytes of padding
		preamble := make([]byte, 20)
		if _, err := io.ReadFull(r, preamble); err != nil || string(preamble[:4]) != "TZif" {
			return nil, errBadData
		}
		version := preamble[4]
		if version != 0 && (version < '2' || version > '4') {
			return nil, errUnsupportedVersion
		}

		var hdr Header
		if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
			return nil, err
		}

		// transition times are 4 bytes wide in the v1 block and 8 bytes afterwards
		timeSize := 4
		if block > 0 {
			timeSize = 8
		}
		skip := int64(hdr.TimeCnt)*int64(timeSize+1) + int64(hdr.TypeCnt)*6 + int64(hdr.CharCnt)

		// v2+ files repeat everything with 64-bit times, only the second block matters
		if block == 0 && version != 0 {
			skip += int64(hdr.LeapCnt)*int64(timeSize+4) + int64(hdr.IsUtcCnt) + int64(hdr.IsStdCnt)
			if n, _ := io.CopyN(io.Discard, r, skip); n != skip {
				return nil, errBadData
			}
			continue
		}
		if n, _ := io.CopyN(io.Discard, r, skip); n != skip {
			return nil, errBadData
		}

		for i := 0; i < int(hdr.LeapCnt); i++ {
			var l LeapSecond
			if version == 0 {
				var rec [2]uint32
				if err := binary.Read(r, binary.BigEndian, &rec); err != nil {
					return nil, err
				}
				l = LeapSecond{Tleap: uint64(rec[0]), Nleap: int32(rec[1])}
			} else if err := binary.Read(r, binary.BigEndian, &l); err != nil {
				return nil, err
			}
			ret = append(ret, l)
		}
		break
	}
	if len(ret) == 0 {
		return nil, errNoLeapSeconds
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Tleap < ret[j].Tleap })
	return ret, nil
}
