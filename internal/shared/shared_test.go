package shared

import (
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLogLevel(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want log.Level
	}{
		{name: "debug", in: "debug", want: log.DebugLevel},
		{name: "warn", in: "warn", want: log.WarnLevel},
		{name: "error", in: "error", want: log.ErrorLevel},
		{name: "info", in: "info", want: log.InfoLevel},
		{name: "mixed case", in: "DeBuG", want: log.DebugLevel},
		{name: "whitespace", in: "  warn  ", want: log.WarnLevel},
		{name: "unknown defaults to info", in: "verbose", want: log.InfoLevel},
		{name: "empty defaults to info", in: "", want: log.InfoLevel},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLogLevel(tt.in); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty IDs")
	}

	if a == b {
		t.Error("expected unique IDs")
	}
}
