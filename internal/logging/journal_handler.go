package logging

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/coreos/go-systemd/v22/journal"
)

const journalIdentifier = "glyphd"

// JournalHandler is a slog.Handler that sends logs to the systemd journal.
// Attributes become journal fields named after their upper-cased key, with
// groups joined by underscores.
type JournalHandler struct {
	level  slog.Leveler
	fields map[string]string // rendered WithAttrs fields
	prefix string            // group prefix, upper case, with trailing underscore
}

// NewJournalHandler creates a new journal handler.
func NewJournalHandler(level slog.Leveler) *JournalHandler {
	return &JournalHandler{
		level:  level,
		fields: map[string]string{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *JournalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle sends the record to the journal.
func (h *JournalHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]string, len(h.fields)+r.NumAttrs()+1)
	maps.Copy(fields, h.fields)
	fields["SYSLOG_IDENTIFIER"] = journalIdentifier

	r.Attrs(func(attr slog.Attr) bool {
		addJournalField(fields, h.prefix, attr)
		return true
	})

	if err := journal.Send(r.Message, journalPriority(r.Level), fields); err != nil {
		fmt.Fprintf(os.Stderr, "journal send failed: %v\n", err)
		return err
	}
	return nil
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *JournalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := maps.Clone(h.fields)
	for _, attr := range attrs {
		addJournalField(fields, h.prefix, attr)
	}
	return &JournalHandler{level: h.level, fields: fields, prefix: h.prefix}
}

// WithGroup returns a handler that prefixes later attributes with name.
func (h *JournalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &JournalHandler{
		level:  h.level,
		fields: h.fields,
		prefix: h.prefix + journalKey(name) + "_",
	}
}

func journalPriority(level slog.Level) journal.Priority {
	switch {
	case level >= slog.LevelError:
		return journal.PriErr
	case level >= slog.LevelWarn:
		return journal.PriWarning
	case level >= slog.LevelInfo:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}

// addJournalField renders attr into fields under prefix.
func addJournalField(fields map[string]string, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	if attr.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix += journalKey(attr.Key) + "_"
		}
		for _, a := range attr.Value.Group() {
			addJournalField(fields, groupPrefix, a)
		}
		return
	}

	key := prefix + journalKey(attr.Key)
	if key == "" {
		return
	}
	fields[key] = journalValue(attr.Value)
}

func journalValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v.Any())
	}
}

// journalKey upper-cases key and replaces characters journald rejects.
// Field names may not start with an underscore, which marks trusted fields.
func journalKey(key string) string {
	var b strings.Builder
	for _, c := range strings.ToUpper(key) {
		switch {
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			b.WriteRune(c)
		default:
			b.WriteByte('_')
		}
	}
	return strings.TrimLeft(b.String(), "_")
}

// IsJournalAvailable checks if systemd journal is available.
func IsJournalAvailable() bool {
	return journal.Enabled()
}
