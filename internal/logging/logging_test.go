package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestComponentLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := Component(New(&buf, "info"), "loader")
	l.Debug().Msg("hidden")
	l.Info().Int("rows", 3).Msg("loaded")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked at info level: %q", out)
	}
	if !strings.Contains(out, "loaded") || !strings.Contains(out, "component=loader") {
		t.Fatalf("missing structured fields: %q", out)
	}
}
