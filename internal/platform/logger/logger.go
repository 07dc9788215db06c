// Package logger provides structured logging with colored output.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// New creates a structured logger writing to w at the given level.
// Uses colored text format by default, JSON if LOG_FORMAT=json env var is set.
// Colors can be disabled by setting NO_COLOR=1 or LOG_COLOR=false.
//
// Hooks log to stderr so that stdout carries only check output.
func New(level string, w io.Writer) *slog.Logger {
	l := ParseLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: l}))
	}
	return slog.New(newColoredTextHandler(w, l, shouldUseColor()))
}

// ParseLevel maps a LOG_LEVEL string to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// shouldUseColor determines if colored output should be used.
func shouldUseColor() bool {
	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if logColor := strings.ToLower(os.Getenv("LOG_COLOR")); logColor == "false" || logColor == "0" {
		return false
	}
	return true
}

type palette struct {
	time  *color.Color
	key   *color.Color
	debug *color.Color
	info  *color.Color
	warn  *color.Color
	err   *color.Color
}

func newPalette(useColor bool) *palette {
	p := &palette{
		time:  color.New(color.FgHiBlack),
		key:   color.New(color.FgHiBlack),
		debug: color.New(color.FgCyan),
		info:  color.New(color.FgBlue),
		warn:  color.New(color.FgYellow),
		err:   color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.time, p.key, p.debug, p.info, p.warn, p.err} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) level(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return p.err.Sprint("ERROR")
	case l >= slog.LevelWarn:
		return p.warn.Sprint("WARN ")
	case l >= slog.LevelInfo:
		return p.info.Sprint("INFO ")
	default:
		return p.debug.Sprint("DEBUG")
	}
}

// coloredTextHandler is a slog.Handler that outputs one colored line per record.
type coloredTextHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Level
	colors *palette
	attrs  []slog.Attr // pre-qualified with the group prefix in effect
	prefix string      // "group1.group2." for attrs added after WithGroup
}

func newColoredTextHandler(w io.Writer, level slog.Level, useColor bool) *coloredTextHandler {
	return &coloredTextHandler{
		mu:     &sync.Mutex{},
		w:      w,
		level:  level,
		colors: newPalette(useColor),
	}
}

func (h *coloredTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *coloredTextHandler) Handle(_ context.Context, r slog.Record) error {
	var buf strings.Builder

	buf.WriteString(h.colors.time.Sprint(r.Time.Format("2006-01-02 15:04:05")))
	buf.WriteString(" ")
	buf.WriteString(h.colors.level(r.Level))
	buf.WriteString(" ")
	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(&buf, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.prefix, a)
		return true
	})

	buf.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, buf.String())
	return err
}

func (h *coloredTextHandler) writeAttr(buf *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, p, ga)
		}
		return
	}
	buf.WriteString(" ")
	buf.WriteString(h.colors.key.Sprint(prefix + a.Key + "="))
	buf.WriteString(a.Value.String())
}

func (h *coloredTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(clone.attrs, h.attrs)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

func (h *coloredTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}
