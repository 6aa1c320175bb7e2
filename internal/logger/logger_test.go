package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestFromLevelString(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"info":  zerolog.InfoLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
	}
	for name, want := range cases {
		if got := FromLevelString(name).GetLevel(); got != want {
			t.Fatalf("level %q: expected %v, got %v", name, want, got)
		}
	}
}

func TestFromLevelString_UnknownFallsBackToInfo(t *testing.T) {
	for _, name := range []string{"", "verbose", "LOUD"} {
		if got := FromLevelString(name).GetLevel(); got != zerolog.InfoLevel {
			t.Fatalf("level %q: expected info fallback, got %v", name, got)
		}
	}
}
