// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glog

import "os"

// Ansi terminal color codes.
const (
	csi     = "\x1B["
	white   = "37m"
	byellow = "33;1m"
	bred    = "31;1m"
	bmagenta = "35;1m"
	green   = "32m"
)

var colorMap = map[int]string{
	DEBUG: white,
	INFO:  green,
	WARN:  byellow,
	ERROR: bred,
	FATAL: bmagenta,
}

// Console writes log events to stdout, optionally colored by level.
type Console struct {
	writer *os.File
	color  bool
}

// NewConsole creates a console writer. If color is true, Ansi codes tint
// each line by level.
func NewConsole(color bool) *Console {
	return &Console{os.Stdout, color}
}

func (w *Console) Write(event *Event) {
	if w.color {
		w.writer.Write([]byte(csi))
		w.writer.Write([]byte(colorMap[event.Level]))
	}
	w.writer.Write([]byte(event.FullMsg))
	if w.color {
		w.writer.Write([]byte(csi))
		w.writer.Write([]byte(white))
	}
}

func (w *Console) Close() {}

func (w *Console) Sync() {}
