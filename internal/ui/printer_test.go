package ui

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func newTestPrinter() (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewPrinter(&buf).WithWidth(80), &buf
}

func TestPrintHeader(t *testing.T) {
	p, buf := newTestPrinter()
	p.PrintHeader("Itinerary Validation", "legform validate trip.yaml",
		Detail{Key: "File", Value: "trip.yaml"},
		Detail{Key: "Format", Value: "detailed"},
	)

	out := buf.String()
	for _, want := range []string{"ITINERARY VALIDATION", "legform validate trip.yaml", "File:", "trip.yaml", "─"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "File:") > strings.Index(out, "Format:") {
		t.Error("params should render in the order given")
	}
}

func TestPrintSuccess(t *testing.T) {
	p, buf := newTestPrinter()
	p.PrintSuccess("Itinerary is valid", Detail{Key: "Legs", Value: "3"})

	out := buf.String()
	if !strings.Contains(out, SuccessMarker+"  SUCCESS  ─  Itinerary is valid") {
		t.Errorf("unexpected success box:\n%s", out)
	}
	if !strings.Contains(out, "Legs:") || !strings.Contains(out, "3") {
		t.Errorf("success box missing details:\n%s", out)
	}
}

func TestPrintFailure(t *testing.T) {
	p, buf := newTestPrinter()
	p.PrintFailure("Itinerary is invalid", errors.New("submission rejected"), []string{
		"leg 1 arrivalLocation: required",
		"Dates must be in ascending order",
	})

	out := buf.String()
	for _, want := range []string{"FAILED", "Error: submission rejected", "Problems:", "• leg 1 arrivalLocation: required", "• Dates must be in ascending order"} {
		if !strings.Contains(out, want) {
			t.Errorf("failure box missing %q:\n%s", want, out)
		}
	}
}

func TestPrinterWidthClamped(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}).WithWidth(10)
	if p.Width() != MinTerminalWidth {
		t.Errorf("Width() = %d, want %d", p.Width(), MinTerminalWidth)
	}
	p.WithWidth(500)
	if p.Width() != MaxContentWidth {
		t.Errorf("Width() = %d, want %d", p.Width(), MaxContentWidth)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"exact phrase", "overwrite\n", true},
		{"case insensitive", "  OVERWRITE \n", true},
		{"no trailing newline", "overwrite", true},
		{"wrong phrase", "yes\n", false},
		{"empty input", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, buf := newTestPrinter()
			got := p.Confirm(strings.NewReader(tt.input), "Overwrite config", []string{"Existing settings will be lost"}, "overwrite")
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
			if !strings.Contains(buf.String(), "Existing settings will be lost") {
				t.Error("warnings should be printed before the prompt")
			}
			if !tt.want && tt.input != "" && !strings.Contains(buf.String(), "Operation cancelled") {
				t.Error("a refused confirmation should print a cancellation notice")
			}
		})
	}
}

func TestIsTerminalRedirected(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stdout")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	stdout := os.Stdout
	os.Stdout = f
	defer func() { os.Stdout = stdout }()

	if IsTerminal() {
		t.Error("IsTerminal() should be false when stdout is a file")
	}
	if got := GetTerminalWidth(); got != MinTerminalWidth {
		t.Errorf("GetTerminalWidth() = %d, want fallback %d", got, MinTerminalWidth)
	}
}
