// Copyright 2025 The urlendpoint authors.
// SPDX-License-Identifier: Apache-2.0

package urlendpoint

import "sync"

// logEntry is a message recorded by testLogger.
type logEntry struct {
	level  string
	fields Fields
	msg    string
}

// testLogger records every message it receives.
type testLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *testLogger) add(level string, f Fields, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level, f, msg})
}

func (l *testLogger) Info(f Fields, msg string)  { l.add("info", f, msg) }
func (l *testLogger) Warn(f Fields, msg string)  { l.add("warn", f, msg) }
func (l *testLogger) Error(f Fields, msg string) { l.add("error", f, msg) }
func (l *testLogger) Debug(f Fields, msg string) { l.add("debug", f, msg) }

// level returns the messages logged at the given level.
func (l *testLogger) level(level string) []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var entries []logEntry
	for _, e := range l.entries {
		if e.level == level {
			entries = append(entries, e)
		}
	}
	return entries
}

// panicLogger panics on every message.
type panicLogger struct{}

func (panicLogger) Info(Fields, string)  { panic("info") }
func (panicLogger) Warn(Fields, string)  { panic("warn") }
func (panicLogger) Error(Fields, string) { panic("error") }
func (panicLogger) Debug(Fields, string) { panic("debug") }

func testContext() (Context, *testLogger) {
	l := new(testLogger)
	return Context{
		Host:         "ik.imagekit.io",
		ClientNumber: "test-client-123",
		Logger:       l,
	}, l
}
