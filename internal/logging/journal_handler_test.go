package logging

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestJournalKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"zone", "ZONE"},
		{"remote_addr", "REMOTE_ADDR"},
		{"animation.ceiling", "ANIMATION_CEILING"},
		{"_hidden", "HIDDEN"},
		{"zone-count", "ZONE_COUNT"},
	}
	for _, tt := range tests {
		if got := journalKey(tt.in); got != tt.want {
			t.Errorf("journalKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJournalFields(t *testing.T) {
	fields := map[string]string{}
	attrs := []slog.Attr{
		slog.Int("zone", 2),
		slog.Bool("pulse", true),
		slog.Float64("ratio", 0.5),
		slog.Duration("ceiling", 2*time.Minute),
		slog.Group("driver", slog.String("type", "sysfs"), slog.Int("channels", 33)),
		slog.Any("channels", []int{2, 3}),
		{},
	}
	for _, a := range attrs {
		addJournalField(fields, "", a)
	}

	want := map[string]string{
		"ZONE":            "2",
		"PULSE":           "true",
		"RATIO":           "0.5",
		"CEILING":         "2m0s",
		"DRIVER_TYPE":     "sysfs",
		"DRIVER_CHANNELS": "33",
		"CHANNELS":        "[2 3]",
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestJournalHandlerDerive(t *testing.T) {
	base := NewJournalHandler(slog.LevelInfo)
	h := base.WithAttrs([]slog.Attr{slog.String("module", "glyph")}).
		WithGroup("task").(*JournalHandler)

	if h.fields["MODULE"] != "glyph" {
		t.Errorf("MODULE = %q, want glyph", h.fields["MODULE"])
	}
	if len(base.fields) != 0 {
		t.Errorf("base handler mutated: %v", base.fields)
	}
	if h.prefix != "TASK_" {
		t.Errorf("prefix = %q, want TASK_", h.prefix)
	}

	fields := map[string]string{}
	addJournalField(fields, h.prefix, slog.String("outcome", "completed"))
	if fields["TASK_OUTCOME"] != "completed" {
		t.Errorf("grouped field = %v", fields)
	}
}

func TestJournalPriority(t *testing.T) {
	if journalPriority(slog.LevelDebug) <= journalPriority(slog.LevelError) {
		t.Error("debug should map to a lower journal priority than error")
	}
}
