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
Package stats implements statistics collection and reporting.
It counts sync attempts and display ticks and exports them, together with
the tracker state and process statistics, as JSON and as Prometheus metrics.
*/
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dualclock/dualclock/clocksync"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const namespace = "dualclock"

// StateFunc returns the current tracker state
type StateFunc func() clocksync.Snapshot

// Stats implements clocksync.Stats and display.Stats
type Stats struct {
	// keep these aligned to 64-bit for sync/atomic
	syncAttempts  int64
	syncSuccesses int64
	syncFailures  int64
	syncSkipped   int64
	ticks         int64
	renderErrors  int64

	state    StateFunc
	registry *prometheus.Registry
}

// New returns Stats. state may be nil
func New(state StateFunc) *Stats {
	s := &Stats{state: state, registry: prometheus.NewRegistry()}
	s.registerMetrics()
	return s
}

// IncSyncAttempts atomically add 1 to the counter
func (s *Stats) IncSyncAttempts() {
	atomic.AddInt64(&s.syncAttempts, 1)
}

// IncSyncSuccesses atomically add 1 to the counter
func (s *Stats) IncSyncSuccesses() {
	atomic.AddInt64(&s.syncSuccesses, 1)
}

// IncSyncFailures atomically add 1 to the counter
func (s *Stats) IncSyncFailures() {
	atomic.AddInt64(&s.syncFailures, 1)
}

// IncSyncSkipped atomically add 1 to the counter
func (s *Stats) IncSyncSkipped() {
	atomic.AddInt64(&s.syncSkipped, 1)
}

// IncTicks atomically add 1 to the counter
func (s *Stats) IncTicks() {
	atomic.AddInt64(&s.ticks, 1)
}

// IncRenderErrors atomically add 1 to the counter
func (s *Stats) IncRenderErrors() {
	atomic.AddInt64(&s.renderErrors, 1)
}

func (s *Stats) counters() map[string]*int64 {
	return map[string]*int64{
		"sync_attempts":  &s.syncAttempts,
		"sync_successes": &s.syncSuccesses,
		"sync_failures":  &s.syncFailures,
		"sync_skipped":   &s.syncSkipped,
		"ticks":          &s.ticks,
		"render_errors":  &s.renderErrors,
	}
}

// gaugeNames lists the gauges derived from the tracker state
var gaugeNames = []string{
	"offset_ns",
	"offset_mean_ns",
	"offset_stddev_ns",
	"rtt_ns",
	"sync_in_progress",
	"synced",
	"last_sync",
	"leap",
	"stratum",
}

// gauges derived from the tracker state
func (s *Stats) gauges() map[string]float64 {
	if s.state == nil {
		return nil
	}
	return gaugesOf(s.state())
}

func gaugesOf(st clocksync.Snapshot) map[string]float64 {
	g := map[string]float64{
		"offset_ns":        float64(st.Offset),
		"offset_mean_ns":   float64(st.OffsetMean),
		"offset_stddev_ns": float64(st.OffsetStddev),
		"rtt_ns":           float64(st.RTT),
		"sync_in_progress": 0,
		"synced":           0,
		"last_sync":        0,
		"leap":             float64(st.Leap),
		"stratum":          float64(st.Stratum),
	}
	if st.InProgress {
		g["sync_in_progress"] = 1
	}
	if st.Synced() {
		g["synced"] = 1
		g["last_sync"] = float64(st.LastSync.Unix())
	}
	return g
}

// toMap converts counters and gauges to a flat map
func (s *Stats) toMap() map[string]float64 {
	export := make(map[string]float64)
	for k, v := range s.counters() {
		export[k] = float64(atomic.LoadInt64(v))
	}
	for k, v := range s.gauges() {
		export[k] = v
	}
	return export
}

func (s *Stats) registerMetrics() {
	for name, ptr := range s.counters() {
		ptr := ptr
		s.registry.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name + "_total",
			Help:      "Number of " + name,
		}, func() float64 { return float64(atomic.LoadInt64(ptr)) }))
	}
	if s.state != nil {
		s.registry.MustRegister(newTrackerCollector(s.state))
	}
	s.registry.MustRegister(&processCollector{})
}

// handleRequest is a handler used for JSON monitoring requests
func (s *Stats) handleRequest(w http.ResponseWriter, _ *http.Request) {
	js, err := json.Marshal(s.toMap())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(js); err != nil {
		log.Errorf("Failed to reply: %v", err)
	}
}

// Handler serves JSON on / and Prometheus metrics on /metrics
func (s *Stats) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRequest)
	mux.Handle("/metrics", promhttp.HandlerFor(
		s.registry,
		promhttp.HandlerOpts{
			// Opt into OpenMetrics to support exemplars.
			EnableOpenMetrics: true,
		},
	))
	return mux
}

// Start serves monitoring requests on port until ctx is cancelled
func (s *Stats) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Infof("Starting monitoring server on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("monitoring server: %w", err)
	}
	return nil
}

// trackerCollector exports the tracker gauges from one snapshot per scrape
type trackerCollector struct {
	state StateFunc
	descs map[string]*prometheus.Desc
}

func newTrackerCollector(state StateFunc) *trackerCollector {
	c := &trackerCollector{state: state, descs: make(map[string]*prometheus.Desc, len(gaugeNames))}
	for _, name := range gaugeNames {
		c.descs[name] = prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), "Clock tracker "+name, nil, nil)
	}
	return c
}

// Describe implements prometheus.Collector
func (c *trackerCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, name := range gaugeNames {
		ch <- c.descs[name]
	}
}

// Collect implements prometheus.Collector
func (c *trackerCollector) Collect(ch chan<- prometheus.Metric) {
	g := gaugesOf(c.state())
	for _, name := range gaugeNames {
		ch <- prometheus.MustNewConstMetric(c.descs[name], prometheus.GaugeValue, g[name])
	}
}
