// Copyright 2025 The urlendpoint authors.
// SPDX-License-Identifier: Apache-2.0

// Package logadapter provides urlendpoint.Logger implementations backed by
// common structured logging packages.
package logadapter

import (
	"sort"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"willnorris.com/go/urlendpoint"
)

// Nop discards all log messages.
var Nop urlendpoint.Logger = nop{}

type nop struct{}

func (nop) Info(urlendpoint.Fields, string)  {}
func (nop) Warn(urlendpoint.Fields, string)  {}
func (nop) Error(urlendpoint.Fields, string) {}
func (nop) Debug(urlendpoint.Fields, string) {}

// Zap returns a Logger that writes to l.
func Zap(l *zap.Logger) urlendpoint.Logger {
	return zapLogger{l}
}

type zapLogger struct {
	l *zap.Logger
}

func (z zapLogger) Info(f urlendpoint.Fields, msg string)  { z.l.Info(msg, zapFields(f)...) }
func (z zapLogger) Warn(f urlendpoint.Fields, msg string)  { z.l.Warn(msg, zapFields(f)...) }
func (z zapLogger) Error(f urlendpoint.Fields, msg string) { z.l.Error(msg, zapFields(f)...) }
func (z zapLogger) Debug(f urlendpoint.Fields, msg string) { z.l.Debug(msg, zapFields(f)...) }

// zapFields converts f to zap fields in key order.
func zapFields(f urlendpoint.Fields) []zap.Field {
	fields := make([]zap.Field, 0, len(f))
	for _, k := range sortedKeys(f) {
		if err, ok := f[k].(error); ok {
			fields = append(fields, zap.NamedError(k, err))
			continue
		}
		fields = append(fields, zap.Any(k, f[k]))
	}
	return fields
}

// Logrus returns a Logger that writes to l.
func Logrus(l logrus.FieldLogger) urlendpoint.Logger {
	return logrusLogger{l}
}

type logrusLogger struct {
	l logrus.FieldLogger
}

func (r logrusLogger) Info(f urlendpoint.Fields, msg string)  { r.l.WithFields(logrus.Fields(f)).Info(msg) }
func (r logrusLogger) Warn(f urlendpoint.Fields, msg string)  { r.l.WithFields(logrus.Fields(f)).Warn(msg) }
func (r logrusLogger) Error(f urlendpoint.Fields, msg string) { r.l.WithFields(logrus.Fields(f)).Error(msg) }
func (r logrusLogger) Debug(f urlendpoint.Fields, msg string) { r.l.WithFields(logrus.Fields(f)).Debug(msg) }

func sortedKeys(f urlendpoint.Fields) []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
