package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	wailslogger "github.com/wailsapp/wails/v2/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"info":    zapcore.InfoLevel,
		"DEBUG":   zapcore.DebugLevel,
		"trace":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		" warn ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestWailsLevel(t *testing.T) {
	assert.Equal(t, wailslogger.DEBUG, WailsLevel("debug"))
	assert.Equal(t, wailslogger.WARNING, WailsLevel("warn"))
	assert.Equal(t, wailslogger.INFO, WailsLevel("whatever"))
}

func TestWailsLoggerRoutesToZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	wl := NewWailsLogger(zap.New(core))

	wl.Info("started")
	wl.Warning("slow")
	wl.Error("broken")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "started", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "wails", entries[2].LoggerName)
}

func TestNew(t *testing.T) {
	l, err := New("debug", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = New("nope", false)
	assert.Error(t, err)
}
