package msg

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestPrinter_NoColor(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, WithNoColor(true))

	p.Info("Next version: %s", "1.2.4")
	p.Warn(errors.New("The release already exists"))
	p.Error(errors.New("The release version has not yet been set"))

	want := "Next version: 1.2.4\nThe release already exists\nThe release version has not yet been set\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPrinter_Colors(t *testing.T) {
	tests := []struct {
		name  string
		print func(*Printer)
		code  string
	}{
		{"info is cyan", func(p *Printer) { p.Info("hello") }, "36"},
		{"warn is yellow", func(p *Printer) { p.Warn(errors.New("hello")) }, "33"},
		{"error is red", func(p *Printer) { p.Error(errors.New("hello")) }, "31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := New(&buf, WithProfile(termenv.ANSI))
			tt.print(p)

			out := buf.String()
			if !strings.Contains(out, "\x1b["+tt.code+"m") {
				t.Errorf("output %q missing color code %s", out, tt.code)
			}
			if !strings.Contains(out, "hello") {
				t.Errorf("output %q missing text", out)
			}
		})
	}
}

func TestPrinter_NilErrors(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, WithNoColor(true))

	p.Warn(nil)
	p.Error(nil)

	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
}

func TestPrinter_MultiLine(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, WithProfile(termenv.ANSI))

	p.Print(LevelError, "first\n\nsecond\n")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q, want 3", lines)
	}
	if lines[1] != "" {
		t.Errorf("blank line styled: %q", lines[1])
	}
	for _, i := range []int{0, 2} {
		if !strings.HasPrefix(lines[i], "\x1b[31m") {
			t.Errorf("line %d = %q, want red", i, lines[i])
		}
	}
}

func TestLevel_String(t *testing.T) {
	for level, want := range map[Level]string{LevelInfo: "info", LevelWarn: "warn", LevelError: "error", Level(9): "info"} {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", int(level), got, want)
		}
	}
}
