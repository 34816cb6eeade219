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

package stats

import (
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/process"
)

var procStartTime = time.Now()

// ProcessStats gathers process and go runtime statistics
func ProcessStats() (map[string]float64, error) {
	stats := make(map[string]float64)
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	stats["process.uptime"] = time.Since(procStartTime).Round(time.Second).Seconds()

	if val, err := proc.MemoryInfo(); err == nil {
		stats["process.rss"] = float64(val.RSS)
		stats["process.vms"] = float64(val.VMS)
	}
	if val, err := proc.NumFDs(); err == nil {
		stats["process.num_fds"] = float64(val)
	}
	if val, err := proc.NumThreads(); err == nil {
		stats["process.num_threads"] = float64(val)
	}

	m := &runtime.MemStats{}
	runtime.ReadMemStats(m)
	stats["runtime.cpu.goroutines"] = float64(runtime.NumGoroutine())
	stats["runtime.mem.heap.alloc"] = float64(m.HeapAlloc)
	stats["runtime.mem.heap.objects"] = float64(m.HeapObjects)
	stats["runtime.mem.gc.count"] = float64(m.NumGC)
	return stats, nil
}

// processCollector exports ProcessStats to prometheus
type processCollector struct{}

// Describe implements prometheus.Collector. The collector is unchecked
func (c *processCollector) Describe(chan<- *prometheus.Desc) {}

// Collect implements prometheus.Collector
func (c *processCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := ProcessStats()
	if err != nil {
		return
	}
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		desc := prometheus.NewDesc(prometheus.BuildFQName(namespace, "", flattenKey(k)), k, nil, nil)
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, stats[k])
	}
}

func flattenKey(key string) string {
	return keyReplacer.Replace(key)
}

var keyReplacer = strings.NewReplacer(" ", "_", ".", "_", "-", "_", "=", "_", "/", "_")
