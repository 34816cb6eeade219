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
Package protocol implements the NTP packet and the basic arithmetic of a
client/server exchange.
It provides quick and transparent translation between 48 bytes and
simply accessible struct.
*/
package protocol

import (
	"time"
)

// NanosecondsToUnix is the difference between NTP and Unix epoch in NS
const NanosecondsToUnix = int64(2208988800000000000)

// Time is converting Unix time to sec and frac NTP format
func Time(t time.Time) (seconds uint32, fracions uint32) {
	nsec := t.UnixNano() + NanosecondsToUnix
	sec := nsec / time.Second.Nanoseconds()
	return uint32(sec), uint32((nsec - sec*time.Second.Nanoseconds()) << 32 / time.Second.Nanoseconds())
}

// Unix is converting NTP seconds and fractions into Unix time
func Unix(seconds, fractions uint32) time.Time {
	secs := int64(seconds) - NanosecondsToUnix/time.Second.Nanoseconds()
	nanos := (int64(fractions) * time.Second.Nanoseconds()) >> 32 // convert fractional to nanos
	return time.Unix(secs, nanos)
}

// abs returns the absolute value of x
func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// Offset returns the clock offset of the server relative to the client,
// ((T2 - T1) + (T3 - T4)) / 2 as per RFC 5905
func Offset(clientTransmitTime, serverReceiveTime, serverTransmitTime, clientReceiveTime time.Time) time.Duration {
	forward := serverReceiveTime.Sub(clientTransmitTime)
	back := serverTransmitTime.Sub(clientReceiveTime)
	return (forward + back) / 2
}

// RoundTripDelay returns (T4 - T1) - (T3 - T2). Server processing time is excluded
func RoundTripDelay(clientTransmitTime, serverReceiveTime, serverTransmitTime, clientReceiveTime time.Time) time.Duration {
	total := clientReceiveTime.Sub(clientTransmitTime).Nanoseconds()
	processing := serverTransmitTime.Sub(serverReceiveTime).Nanoseconds()
	return time.Duration(abs(total - processing))
}

// CorrectTime returns local time adjusted by the measured offset
func CorrectTime(clientReceiveTime time.Time, offset time.Duration) time.Time {
	return clientReceiveTime.Add(offset)
}
