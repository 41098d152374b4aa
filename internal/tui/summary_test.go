package tui

import (
	"strings"
	"testing"
)

func TestRenderSummaryAlignsValues(t *testing.T) {
	out := RenderSummary([]SummaryRow{
		{Label: "Images converted", Value: "2"},
		{Label: "Bytes saved", Value: "1.2 MiB"},
	})

	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected rule + 2 rows + rule, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "|       2") {
		t.Errorf("short value not right-aligned: %q", lines[1])
	}
	if !strings.Contains(lines[2], "| 1.2 MiB") {
		t.Errorf("wide value misaligned: %q", lines[2])
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, c := range cases {
		if got := FormatBytes(c.in); got != c.want {
			t.Errorf("FormatBytes(%d): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestFormatBytesDelta(t *testing.T) {
	if got := FormatBytesDelta(-2048); got != "-2.0 KiB" {
		t.Errorf("negative delta: got %q", got)
	}
	if got := FormatBytesDelta(100); got != "100 B" {
		t.Errorf("positive delta: got %q", got)
	}
}
