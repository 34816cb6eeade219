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
Package display drives the clock widget: on every tick it corrects the
local time with the tracked offset, renders it for each configured zone
and hands the rows to a Presenter.
*/
package display

//go:generate mockgen -source=display.go -destination=mock_display_test.go -package=display

import (
	"time"
)

// Row is one rendered zone
type Row struct {
	Label string
	Date  string
	Time  string
}

// Presenter shows rows to the user. Present must return quickly
type Presenter interface {
	Present(rows []Row)
}

// Tracker is the part of clocksync.Tracker the loop needs
type Tracker interface {
	NeedsSync(now time.Time) bool
	TriggerSync(now time.Time)
	Offset() time.Duration
}

// PresenterFunc adapts a function to Presenter
type PresenterFunc func(rows []Row)

// Present calls f(rows)
func (f PresenterFunc) Present(rows []Row) {
	f(rows)
}
