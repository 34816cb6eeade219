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

package client

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/ntp"
	ntpproto "github.com/dualclock/dualclock/ntp/protocol"
)

// Beevik is a Client alternative backed by github.com/beevik/ntp
type Beevik struct {
	Server  string
	Timeout time.Duration
}

// NewBeevik returns a Beevik querier for server
func NewBeevik(server string, timeout time.Duration) *Beevik {
	return &Beevik{Server: server, Timeout: timeout}
}

// Query performs one exchange. The effective timeout is the smaller of
// the configured one and the time left before ctx deadline
func (b *Beevik) Query(ctx context.Context) (*Response, error) {
	timeout := b.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); timeout <= 0 || left < timeout {
			timeout = left
		}
	}
	if err := ctx.Err(); err != nil || timeout <= 0 {
		return nil, fmt.Errorf("%w: no time left for query", ErrTimeout)
	}

	r, err := ntp.QueryWithOptions(Address(b.Server), ntp.QueryOptions{Timeout: timeout})
	if err != nil {
		return nil, classify(fmt.Errorf("querying %s: %w", b.Server, err))
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	received := time.Now()
	return &Response{
		Offset:      r.ClockOffset,
		RTT:         r.RTT,
		Stratum:     r.Stratum,
		Leap:        ntpproto.LeapIndicator(r.Leap),
		ReferenceID: ntpproto.FormatReferenceID(r.Stratum, r.ReferenceID),
		Time:        received.Add(r.ClockOffset),
	}, nil
}
