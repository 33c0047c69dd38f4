package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smazurov/glyphd/internal/led"
)

const testMapping = `
[[zones]]
zone = 2
apps = ["com.whatsapp"]

[[zones]]
zone = 3
pulse = true
contacts = [42, 7]

[[zones]]
zone = 9
apps = ["com.example.mail"]

[[contacts]]
id = 42
name = "Alice"
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapping.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write mapping: %v", err)
	}
	return path
}

func TestValidateMapping(t *testing.T) {
	path := writeFile(t, testMapping)

	var out bytes.Buffer
	if err := validateMapping(&out, path, led.ModelPhone1); err != nil {
		t.Fatalf("validateMapping() error = %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "zone 9 does not exist on model 20111") {
		t.Errorf("missing skipped-zone warning in %q", got)
	}
	if !strings.Contains(got, "2 zones, 1 contacts OK") {
		t.Errorf("missing summary in %q", got)
	}

	out.Reset()
	if err := validateMapping(&out, path, led.ModelPhone2); err != nil {
		t.Fatalf("validateMapping(22111) error = %v", err)
	}
	if strings.Contains(out.String(), "warning") {
		t.Errorf("unexpected warning for 22111: %q", out.String())
	}
}

func TestValidateMappingErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"parse error", "[[zones]\nzone = "},
		{"negative zone", "[[zones]]\nzone = -1\n"},
		{"duplicate contact", "[[contacts]]\nid = 1\n[[contacts]]\nid = 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := validateMapping(&out, writeFile(t, tt.content), led.ModelPhone2); err == nil {
				t.Error("validateMapping() error = nil, want error")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		var out bytes.Buffer
		if err := validateMapping(&out, filepath.Join(t.TempDir(), "none.toml"), led.ModelPhone2); err == nil {
			t.Error("validateMapping() error = nil for missing file")
		}
	})
}

func TestShowMapping(t *testing.T) {
	var out bytes.Buffer
	if err := showMapping(&out, writeFile(t, testMapping), led.ModelPhone1); err != nil {
		t.Fatalf("showMapping() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[1], "2-5") || !strings.Contains(lines[1], "com.whatsapp") {
		t.Errorf("zone 2 line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "pulse") || !strings.Contains(lines[2], "Alice(42),7") {
		t.Errorf("zone 3 line = %q", lines[2])
	}
	if !strings.Contains(lines[3], " - ") {
		t.Errorf("zone 9 should have no channels on 20111: %q", lines[3])
	}
}

func TestFormatChannels(t *testing.T) {
	tests := []struct {
		in   []int
		want string
	}{
		{nil, "-"},
		{[]int{4}, "4"},
		{[]int{2, 3, 4, 5}, "2-5"},
		{[]int{1, 3}, "1,3"},
	}
	for _, tt := range tests {
		if got := formatChannels(tt.in); got != tt.want {
			t.Errorf("formatChannels(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestZonesCmd(t *testing.T) {
	c := CreateZonesCmd()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs([]string{"--model", "22111"})
	if err := c.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "model 22111: 11 zones, 33 channels") {
		t.Errorf("missing header in %q", got)
	}
	if !strings.Contains(got, "zone 9  -> 25-32") {
		t.Errorf("missing zone 9 range in %q", got)
	}
}
