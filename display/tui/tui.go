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
Package tui renders the clock widget in the terminal with bubbletea.
*/
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dualclock/dualclock/display"
	log "github.com/sirupsen/logrus"
)

// UI is a display.Presenter backed by a bubbletea program
type UI struct {
	program *tea.Program
	updates chan []display.Row
}

// New creates the widget. Options are passed to tea.NewProgram
func New(server string, tracker Tracker, sampler Sampler, opts ...tea.ProgramOption) *UI {
	return &UI{
		program: tea.NewProgram(NewModel(server, tracker, sampler), opts...),
		updates: make(chan []display.Row, 1),
	}
}

// Present implements display.Presenter. It never blocks: a pending
// update which the widget didn't pick up yet is replaced
func (u *UI) Present(rows []display.Row) {
	for {
		select {
		case u.updates <- rows:
			return
		default:
		}
		select {
		case <-u.updates:
		default:
		}
	}
}

// Run shows the widget until the user quits or ctx is cancelled
func (u *UI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				u.program.Quit()
				return
			case rows := <-u.updates:
				u.program.Send(RowsMsg(rows))
			}
		}
	}()
	_, err := u.program.Run()
	log.Debug("terminal ui stopped")
	return err
}
