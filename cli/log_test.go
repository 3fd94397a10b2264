package cli

import (
	"testing"

	"github.com/ardnew/wfm/log"
)

func TestScanBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		assigned bool
		negated  bool
		want     bool
		wantOK   bool
	}{
		{"bare", "", false, false, true, true},
		{"bare negated", "", false, true, false, true},
		{"assigned false", "false", true, false, false, true},
		{"assigned negated", "false", true, true, true, true},
		{"invalid", "maybe", true, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := scanBool(tt.value, tt.assigned, tt.negated)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("scanBool(%q, %v, %v) = %v, %v, want %v, %v",
					tt.value, tt.assigned, tt.negated, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLogConfigScan(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	var f logConfig

	f.scan([]string{
		"test", "--log-level", "debug", "--log-format=json",
		"--no-log-pretty", "--log-caller=true", "cdo",
	})

	if f.Level != "debug" || f.Format != "json" {
		t.Errorf("Level, Format = %q, %q, want debug, json", f.Level, f.Format)
	}

	if f.Pretty || !f.Caller {
		t.Errorf("Pretty, Caller = %v, %v, want false, true", f.Pretty, f.Caller)
	}

	if got := log.Default().Level(); got != log.LevelDebug {
		t.Errorf("default logger level = %v, want debug", got)
	}

	if got := log.Default().Format(); got != log.FormatJSON {
		t.Errorf("default logger format = %v, want json", got)
	}
}
