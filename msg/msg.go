package msg

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ANSI colors of the message levels.
const (
	colorInfo  = lipgloss.Color("6")
	colorWarn  = lipgloss.Color("3")
	colorError = lipgloss.Color("1")
)

// Level is the severity of a console message.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Printer writes colored one-line messages. Info is cyan, warnings are
// yellow and errors red. It is safe for concurrent use.
type Printer struct {
	out    io.Writer
	styles map[Level]lipgloss.Style

	mu sync.Mutex
}

// Option configures a Printer.
type Option func(*printerConfig)

type printerConfig struct {
	noColor bool
	profile *termenv.Profile
}

// WithNoColor disables colors regardless of the terminal.
func WithNoColor(noColor bool) Option {
	return func(c *printerConfig) {
		c.noColor = noColor
	}
}

// WithProfile forces a termenv color profile instead of detecting one.
func WithProfile(p termenv.Profile) Option {
	return func(c *printerConfig) {
		c.profile = &p
	}
}

// New returns a printer writing to w. The color profile is detected from w
// unless an option overrides it.
func New(w io.Writer, opts ...Option) *Printer {
	var cfg printerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r := lipgloss.NewRenderer(w)
	switch {
	case cfg.noColor:
		r.SetColorProfile(termenv.Ascii)
	case cfg.profile != nil:
		r.SetColorProfile(*cfg.profile)
	}

	return &Printer{
		out: w,
		styles: map[Level]lipgloss.Style{
			LevelInfo:  r.NewStyle().Foreground(colorInfo),
			LevelWarn:  r.NewStyle().Foreground(colorWarn),
			LevelError: r.NewStyle().Foreground(colorError),
		},
	}
}

// Info prints a formatted informational message.
func (p *Printer) Info(format string, args ...any) {
	p.Print(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn prints err as a warning.
func (p *Printer) Warn(err error) {
	if err == nil {
		return
	}
	p.Print(LevelWarn, err.Error())
}

// Error prints err as an error.
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	p.Print(LevelError, err.Error())
}

// Print writes text at level. Multi-line text is styled line by line so
// every line carries its own color codes.
func (p *Printer) Print(level Level, text string) {
	style, ok := p.styles[level]
	if !ok {
		style = p.styles[LevelInfo]
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, strings.Join(lines, "\n"))
}
