// Copyright 2025 The urlendpoint authors.
// SPDX-License-Identifier: Apache-2.0

package logadapter

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"willnorris.com/go/urlendpoint"
)

func TestZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Zap(zap.New(core))

	l.Info(urlendpoint.Fields{"transformations": "w-100"}, "info message")
	l.Warn(urlendpoint.Fields{"path": "/private/a.jpg", "clientNumber": "123"}, "warn message")
	l.Error(urlendpoint.Fields{"error": errors.New("boom"), "url": "https://h/a"}, "error message")
	l.Debug(nil, "debug message")

	want := []struct {
		level  zapcore.Level
		msg    string
		fields map[string]any
	}{
		{zapcore.InfoLevel, "info message", map[string]any{"transformations": "w-100"}},
		{zapcore.WarnLevel, "warn message", map[string]any{"clientNumber": "123", "path": "/private/a.jpg"}},
		{zapcore.ErrorLevel, "error message", map[string]any{"error": "boom", "url": "https://h/a"}},
		{zapcore.DebugLevel, "debug message", map[string]any{}},
	}

	entries := logs.All()
	if len(entries) != len(want) {
		t.Fatalf("Zap logged %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Level != want[i].level || e.Message != want[i].msg {
			t.Errorf("entry %d is %v %q, want %v %q", i, e.Level, e.Message, want[i].level, want[i].msg)
		}
		if got := e.ContextMap(); !reflect.DeepEqual(got, want[i].fields) {
			t.Errorf("entry %d has fields %v, want %v", i, got, want[i].fields)
		}
	}
}

func TestZap_SortedFields(t *testing.T) {
	fields := zapFields(urlendpoint.Fields{"b": 1, "c": 2, "a": 3})
	var keys []string
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("zapFields returned keys %v, want %v", keys, want)
	}
}

func TestLogrus(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	l := Logrus(logger)

	tests := []struct {
		log   func(urlendpoint.Fields, string)
		level logrus.Level
	}{
		{l.Info, logrus.InfoLevel},
		{l.Warn, logrus.WarnLevel},
		{l.Error, logrus.ErrorLevel},
		{l.Debug, logrus.DebugLevel},
	}

	for _, tt := range tests {
		hook.Reset()
		tt.log(urlendpoint.Fields{"path": "/a.jpg"}, "message")

		e := hook.LastEntry()
		if e == nil {
			t.Errorf("Logrus did not log at level %v", tt.level)
			continue
		}
		if e.Level != tt.level || e.Message != "message" {
			t.Errorf("Logrus logged %v %q, want %v %q", e.Level, e.Message, tt.level, "message")
		}
		if got, want := e.Data, (logrus.Fields{"path": "/a.jpg"}); !reflect.DeepEqual(got, want) {
			t.Errorf("Logrus logged fields %v, want %v", got, want)
		}
	}
}

func TestNop(t *testing.T) {
	ctx := urlendpoint.Context{Logger: Nop, IsDebug: true}
	u := "https://h/w_100/a.jpg"
	if got, want := (urlendpoint.PathParams{}).Handle(u, "demo", ctx), (urlendpoint.Rewrite{URL: "https://h/a.jpg?tr=w-100", SignURL: true}); got != want {
		t.Errorf("PathParams(%q) returned %#v, want %#v", u, got, want)
	}
}
