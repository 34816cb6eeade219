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

package display

import (
	"context"
	"time"

	"github.com/dualclock/dualclock/calendar"
	log "github.com/sirupsen/logrus"
)

// Placeholder is shown for a zone which failed to render
const Placeholder = "--"

// Converter renders an instant for a zone
type Converter interface {
	Render(instant time.Time, z calendar.Zone) (calendar.Representation, error)
}

// Stats is a metric collection interface
type Stats interface {
	// IncTicks atomically add 1 to the counter
	IncTicks()
	// IncRenderErrors atomically add 1 to the counter
	IncRenderErrors()
}

// RefreshLoop periodically renders corrected time for Zones
type RefreshLoop struct {
	Tracker      Tracker
	Converter    Converter
	Zones        []calendar.Zone
	Presenter    Presenter
	TickInterval time.Duration
	// Now returns local time, time.Now if nil
	Now   func() time.Time
	Stats Stats
}

// Tick renders the current corrected time once and returns the emitted rows.
// A sync is started in the background when the tracker asks for it
func (l *RefreshLoop) Tick() []Row {
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	corrected := now().Add(l.Tracker.Offset())
	if l.Tracker.NeedsSync(corrected) {
		l.Tracker.TriggerSync(corrected)
	}

	rows := make([]Row, 0, len(l.Zones))
	for _, z := range l.Zones {
		r, err := l.Converter.Render(corrected, z)
		if err != nil {
			log.Errorf("failed to render %q: %v", z.Label, err)
			if l.Stats != nil {
				l.Stats.IncRenderErrors()
			}
			r = calendar.Representation{Date: Placeholder, Time: Placeholder}
		}
		rows = append(rows, Row{Label: z.Label, Date: r.Date, Time: r.Time})
	}
	l.Presenter.Present(rows)
	if l.Stats != nil {
		l.Stats.IncTicks()
	}
	return rows
}

// Run ticks immediately and then every TickInterval until ctx is cancelled.
// In-flight syncs are not waited for
func (l *RefreshLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.TickInterval)
	defer ticker.Stop()
	log.Debugf("refreshing %d zones every %v", len(l.Zones), l.TickInterval)
	for {
		l.Tick()
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
