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
Package clocksync keeps track of the offset between the local clock and
network time. Measurements are taken in the background, at most one at
a time, and never block readers of the offset.
*/
package clocksync

//go:generate mockgen -source=tracker.go -destination=mock_tracker_test.go -package=clocksync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dualclock/dualclock/ntp/client"
	ntp "github.com/dualclock/dualclock/ntp/protocol"
	"github.com/eclesh/welford"
	log "github.com/sirupsen/logrus"
)

// ErrSyncInProgress is returned by SyncNow while another attempt is running
var ErrSyncInProgress = errors.New("sync already in progress")

// Querier measures the clock offset once
type Querier interface {
	Query(ctx context.Context) (*client.Response, error)
}

// Stats is a metric collection interface
type Stats interface {
	// IncSyncAttempts atomically add 1 to the counter
	IncSyncAttempts()
	// IncSyncSuccesses atomically add 1 to the counter
	IncSyncSuccesses()
	// IncSyncFailures atomically add 1 to the counter
	IncSyncFailures()
	// IncSyncSkipped atomically add 1 to the counter
	IncSyncSkipped()
}

// Snapshot is a consistent copy of the tracker state
type Snapshot struct {
	Offset     time.Duration
	LastSync   time.Time
	InProgress bool

	Attempts  int64
	Failures  int64
	Skipped   int64
	LastError error
	Leap      ntp.LeapIndicator
	Stratum   uint8
	RTT       time.Duration

	// running statistics over all successful measurements
	Samples      uint64
	OffsetMean   time.Duration
	OffsetStddev time.Duration
}

// Synced reports whether at least one measurement succeeded
func (s Snapshot) Synced() bool {
	return !s.LastSync.IsZero()
}

// Tracker owns the current clock offset
type Tracker struct {
	querier  Querier
	stats    Stats
	interval time.Duration
	timeout  time.Duration

	mu         sync.Mutex
	offset     time.Duration
	lastSync   time.Time
	inProgress bool
	// closed when the running attempt is over
	done chan struct{}

	attempts int64
	failures int64
	skipped  int64
	lastErr  error
	leap     ntp.LeapIndicator
	stratum  uint8
	rtt      time.Duration
	samples  uint64
	offsets  *welford.Stats
}

// NewTracker returns a Tracker which considers the offset stale after interval.
// Each attempt is bounded by timeout. stats may be nil
func NewTracker(querier Querier, interval, timeout time.Duration, stats Stats) *Tracker {
	if stats == nil {
		stats = noopStats{}
	}
	return &Tracker{
		querier:  querier,
		stats:    stats,
		interval: interval,
		timeout:  timeout,
		offsets:  welford.New(),
	}
}

// NeedsSync returns true when no attempt runs and the offset is missing or older than interval
func (t *Tracker) NeedsSync(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inProgress {
		return false
	}
	return t.lastSync.IsZero() || now.Sub(t.lastSync) > t.interval
}

// TriggerSync starts a background measurement unless one is already running.
// now is recorded as the sync time on success
func (t *Tracker) TriggerSync(now time.Time) {
	if !t.begin() {
		log.Debug("sync already in progress, skipping")
		return
	}
	go func() {
		_ = t.run(context.Background(), now)
	}()
}

// SyncNow performs one measurement synchronously
func (t *Tracker) SyncNow(ctx context.Context, now time.Time) error {
	if !t.begin() {
		return ErrSyncInProgress
	}
	return t.run(ctx, now)
}

// Offset returns network time minus local time as of the last successful sync
func (t *Tracker) Offset() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.offset
}

// State returns a copy of the tracker state
func (t *Tracker) State() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := Snapshot{
		Offset:     t.offset,
		LastSync:   t.lastSync,
		InProgress: t.inProgress,
		Attempts:   t.attempts,
		Failures:   t.failures,
		Skipped:    t.skipped,
		LastError:  t.lastErr,
		Leap:       t.leap,
		Stratum:    t.stratum,
		RTT:        t.rtt,
		Samples:    t.samples,
	}
	if s.Samples > 0 {
		s.OffsetMean = time.Duration(t.offsets.Mean())
	}
	if s.Samples > 1 {
		s.OffsetStddev = time.Duration(t.offsets.Stddev())
	}
	return s
}

// Wait blocks until the running attempt, if any, is over
func (t *Tracker) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done != nil {
		<-done
	}
}

// begin marks an attempt as started. It returns false if one is already running
func (t *Tracker) begin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inProgress {
		t.skipped++
		t.stats.IncSyncSkipped()
		return false
	}
	t.inProgress = true
	t.done = make(chan struct{})
	t.attempts++
	t.stats.IncSyncAttempts()
	return true
}

func (t *Tracker) run(ctx context.Context, now time.Time) error {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	resp, err := t.query(ctx)
	t.finish(now, resp, err)
	return err
}

func (t *Tracker) query(ctx context.Context) (resp *client.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, fmt.Errorf("query panicked: %v", r)
		}
	}()
	resp, err = t.querier.Query(ctx)
	if err == nil && resp == nil {
		err = fmt.Errorf("%w: empty response", client.ErrMalformed)
	}
	if err == nil && resp.Leap == ntp.LeapNotSynchronized {
		err = fmt.Errorf("%w: %w", client.ErrMalformed, ntp.ErrNotSynchronized)
	}
	return resp, err
}

// finish applies the outcome of an attempt and clears the in progress flag
func (t *Tracker) finish(now time.Time, resp *client.Response, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	defer func() {
		t.inProgress = false
		close(t.done)
		t.done = nil
	}()

	if err != nil {
		t.failures++
		t.lastErr = err
		t.stats.IncSyncFailures()
		log.Errorf("clock sync failed: %v", err)
		return
	}
	t.offset = resp.Offset
	t.lastSync = now
	t.lastErr = nil
	t.leap = resp.Leap
	t.stratum = resp.Stratum
	t.rtt = resp.RTT
	t.samples++
	t.offsets.Add(float64(resp.Offset))
	t.stats.IncSyncSuccesses()
	log.Infof("clock synced: offset %v, rtt %v, stratum %d, refid %s", resp.Offset, resp.RTT, resp.Stratum, resp.ReferenceID)
	if resp.Leap.Pending() {
		log.Warningf("server announces leap second: %s", resp.Leap)
	}
}

type noopStats struct{}

func (noopStats) IncSyncAttempts()  {}
func (noopStats) IncSyncSuccesses() {}
func (noopStats) IncSyncFailures()  {}
func (noopStats) IncSyncSkipped()   {}
