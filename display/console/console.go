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

// Package console prints clock rows as plain lines, once per rendered second
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dualclock/dualclock/display"
	"github.com/fatih/color"
)

var labelColor = color.New(color.FgCyan, color.Bold)

// Presenter writes one line per change of the rendered rows
type Presenter struct {
	mu      sync.Mutex
	w       io.Writer
	last    string
	printed bool
}

// New returns a Presenter writing to w
func New(w io.Writer) *Presenter {
	return &Presenter{w: w}
}

// Present implements display.Presenter
func (p *Presenter) Present(rows []display.Row) {
	width := 0
	for _, r := range rows {
		if len(r.Label) > width {
			width = len(r.Label)
		}
	}
	parts := make([]string, 0, len(rows))
	for _, r := range rows {
		label := fmt.Sprintf("%-*s", width, r.Label)
		parts = append(parts, fmt.Sprintf("%s  %s  %s", labelColor.Sprint(label), r.Date, r.Time))
	}
	line := strings.Join(parts, " | ")

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.printed && line == p.last {
		return
	}
	p.printed = true
	p.last = line
	fmt.Fprintln(p.w, line)
}
