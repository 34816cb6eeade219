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

package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// PacketSizeBytes sets the size of NTP packet
const PacketSizeBytes = 48

// Packet is an NTPv4 packet
/*
http://seriot.ch/ntp.php
https://tools.ietf.org/html/rfc958
   0                   1                   2                   3
   0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
0 +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
  |LI | VN  |Mode |    Stratum     |     Poll      |  Precision   |
4 +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
  |                         Root Delay                            |
8 +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
  |                         Root Dispersion                       |
12+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
  |                          Reference ID                         |
16+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
  |                                                               |
  +                     Reference Timestamp (64)                  +
  |                                                               |
24+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
  |                                                               |
  +                      Origin Timestamp (64)                    +
  |                                                               |
32+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
  |                                                               |
  +                      Receive Timestamp (64)                   +
  |                                                               |
40+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
  |                                                               |
  +                      Transmit Timestamp (64)                  +
  |                                                               |
48+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+

 0 1 2 3 4 5 6 7
+-+-+-+-+-+-+-+-+
|LI | VN  |Mode |
+-+-+-+-+-+-+-+-+
 0 0 1 0 0 0 1 1

Setting = LI | VN  |Mode. Client request example:
00 100 011 (or 0x23)
|  |   +-- client mode (3)
|  + ----- version (4)
+ -------- leap indicator, 0 no warning
*/
type Packet struct {
	Settings       uint8  // leap indicator, version number and mode
	Stratum        uint8  // stratum
	Poll           int8   // poll. Power of 2
	Precision      int8   // precision. Power of 2
	RootDelay      uint32 // total delay to the reference clock
	RootDispersion uint32 // total dispersion to the reference clock
	ReferenceID    uint32 // identifier of server or a reference clock
	RefTimeSec     uint32 // last time local clock was updated sec
	RefTimeFrac    uint32 // last time local clock was updated frac
	OrigTimeSec    uint32 // client time sec
	OrigTimeFrac   uint32 // client time frac
	RxTimeSec      uint32 // receive time sec
	RxTimeFrac     uint32 // receive time frac
	TxTimeSec      uint32 // transmit time sec
	TxTimeFrac     uint32 // transmit time frac
}

// LeapIndicator is the two-bit warning of an impending leap second
type LeapIndicator uint8

// Leap indicator values as defined in RFC 5905
const (
	LeapNoWarning       LeapIndicator = 0
	LeapInsertSecond    LeapIndicator = 1
	LeapDeleteSecond    LeapIndicator = 2
	LeapNotSynchronized LeapIndicator = 3
)

func (l LeapIndicator) String() string {
	switch l {
	case LeapNoWarning:
		return "none"
	case LeapInsertSecond:
		return "insert"
	case LeapDeleteSecond:
		return "delete"
	case LeapNotSynchronized:
		return "unsynchronized"
	}
	return fmt.Sprintf("unknown(%d)", uint8(l))
}

// Pending reports whether a leap second is announced for the end of the current day
func (l LeapIndicator) Pending() bool {
	return l == LeapInsertSecond || l == LeapDeleteSecond
}

// Mode is the association mode of the packet
type Mode uint8

// Modes we care about
const (
	ModeClient Mode = 3
	ModeServer Mode = 4
)

const (
	vnFirst    = 1
	vnLast     = 4
	vnCurrent  = 4
	maxStratum = 15
)

// Errors returned by response validation
var (
	ErrShortPacket     = errors.New("packet is shorter than 48 bytes")
	ErrWrongMode       = errors.New("unexpected packet mode")
	ErrWrongVersion    = errors.New("unsupported ntp version")
	ErrKissOfDeath     = errors.New("kiss-of-death response")
	ErrBadStratum      = errors.New("invalid stratum")
	ErrOriginMismatch  = errors.New("origin timestamp does not match request")
	ErrZeroTransmit    = errors.New("zero transmit timestamp")
	ErrNotSynchronized = errors.New("server clock is not synchronized")
)

// Leap returns leap indicator
func (p *Packet) Leap() LeapIndicator {
	return LeapIndicator(p.Settings >> 6)
}

// Version returns version number
func (p *Packet) Version() uint8 {
	return (p.Settings >> 3) & 0x7
}

// Mode returns packet mode
func (p *Packet) Mode() Mode {
	return Mode(p.Settings & 0x7)
}

// NewRequest builds a client mode request stamped with transmit time t
func NewRequest(t time.Time) *Packet {
	sec, frac := Time(t)
	return &Packet{
		Settings:   uint8(LeapNoWarning)<<6 | vnCurrent<<3 | uint8(ModeClient),
		TxTimeSec:  sec,
		TxTimeFrac: frac,
	}
}

// ValidSettingsFormat verifies that LI | VN  |Mode fields are set correctly
// for a client request:
// LN:must be 0 or 3
// VN:must be 1,2,3 or 4
// Mode:must be 3
func (p *Packet) ValidSettingsFormat() bool {
	l := p.Leap()
	v := p.Version()
	if l != LeapNoWarning && l != LeapNotSynchronized {
		return false
	}
	return v >= vnFirst && v <= vnLast && p.Mode() == ModeClient
}

// ValidResponse checks that p is a usable server answer to request
func (p *Packet) ValidResponse(request *Packet) error {
	if p.Mode() != ModeServer {
		return fmt.Errorf("%w: %d", ErrWrongMode, p.Mode())
	}
	if v := p.Version(); v < vnFirst || v > vnLast {
		return fmt.Errorf("%w: %d", ErrWrongVersion, v)
	}
	if p.Stratum == 0 {
		return fmt.Errorf("%w: %q", ErrKissOfDeath, refIDString(p.ReferenceID))
	}
	if p.Stratum > maxStratum {
		return fmt.Errorf("%w: %d", ErrBadStratum, p.Stratum)
	}
	if p.Leap() == LeapNotSynchronized {
		return ErrNotSynchronized
	}
	if request != nil && (p.OrigTimeSec != request.TxTimeSec || p.OrigTimeFrac != request.TxTimeFrac) {
		return ErrOriginMismatch
	}
	if p.TxTimeSec == 0 && p.TxTimeFrac == 0 {
		return ErrZeroTransmit
	}
	return nil
}

// MarshalBinary converts Packet to []bytes
func (p *Packet) MarshalBinary() ([]byte, error) {
	b := make([]byte, PacketSizeBytes)
	b[0] = p.Settings
	b[1] = p.Stratum
	b[2] = byte(p.Poll)
	b[3] = byte(p.Precision)
	binary.BigEndian.PutUint32(b[4:], p.RootDelay)
	binary.BigEndian.PutUint32(b[8:], p.RootDispersion)
	binary.BigEndian.PutUint32(b[12:], p.ReferenceID)
	binary.BigEndian.PutUint32(b[16:], p.RefTimeSec)
	binary.BigEndian.PutUint32(b[20:], p.RefTimeFrac)
	binary.BigEndian.PutUint32(b[24:], p.OrigTimeSec)
	binary.BigEndian.PutUint32(b[28:], p.OrigTimeFrac)
	binary.BigEndian.PutUint32(b[32:], p.RxTimeSec)
	binary.BigEndian.PutUint32(b[36:], p.RxTimeFrac)
	binary.BigEndian.PutUint32(b[40:], p.TxTimeSec)
	binary.BigEndian.PutUint32(b[44:], p.TxTimeFrac)
	return b, nil
}

// UnmarshalBinary fills Packet from []bytes. Extension fields are ignored
func (p *Packet) UnmarshalBinary(b []byte) error {
	if len(b) < PacketSizeBytes {
		return fmt.Errorf("%w: got %d", ErrShortPacket, len(b))
	}
	p.Settings = b[0]
	p.Stratum = b[1]
	p.Poll = int8(b[2])
	p.Precision = int8(b[3])
	p.RootDelay = binary.BigEndian.Uint32(b[4:])
	p.RootDispersion = binary.BigEndian.Uint32(b[8:])
	p.ReferenceID = binary.BigEndian.Uint32(b[12:])
	p.RefTimeSec = binary.BigEndian.Uint32(b[16:])
	p.RefTimeFrac = binary.BigEndian.Uint32(b[20:])
	p.OrigTimeSec = binary.BigEndian.Uint32(b[24:])
	p.OrigTimeFrac = binary.BigEndian.Uint32(b[28:])
	p.RxTimeSec = binary.BigEndian.Uint32(b[32:])
	p.RxTimeFrac = binary.BigEndian.Uint32(b[36:])
	p.TxTimeSec = binary.BigEndian.Uint32(b[40:])
	p.TxTimeFrac = binary.BigEndian.Uint32(b[44:])
	return nil
}

// BytesToPacket converts []bytes to Packet
func BytesToPacket(ntpPacketBytes []byte) (*Packet, error) {
	packet := &Packet{}
	err := packet.UnmarshalBinary(ntpPacketBytes)
	return packet, err
}

// ReferenceIDString returns reference id in a human readable form
func (p *Packet) ReferenceIDString() string {
	return FormatReferenceID(p.Stratum, p.ReferenceID)
}

// FormatReferenceID renders refID as IPv4 address for secondary servers
// and as ASCII code for primary servers and kiss-of-death packets
func FormatReferenceID(stratum uint8, refID uint32) string {
	if stratum > 1 {
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, refID)
		return fmt.Sprintf("%d.%d.%d.%d", b[0], b[1], b[2], b[3])
	}
	return refIDString(refID)
}

// refIDString decodes ASCII reference ids like "GPS" or kiss codes like "RATE"
func refIDString(refID uint32) string {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, refID)
	out := make([]byte, 0, 4)
	for _, c := range b {
		if c == 0 {
			break
		}
		if c < 0x20 || c > 0x7e {
			c = '.'
		}
		out = append(out, c)
	}
	return string(out)
}
