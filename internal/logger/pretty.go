package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

const timeFormat = "15:04:05.000"

var (
	faint    = color.New(color.Faint)
	keyColor = color.New(color.FgCyan)
	errColor = color.New(color.FgRed)

	levelColors = map[slog.Level]*color.Color{
		slog.LevelDebug: color.New(color.BgCyan, color.FgHiWhite),
		slog.LevelInfo:  color.New(color.BgGreen, color.FgHiWhite),
		slog.LevelWarn:  color.New(color.BgYellow, color.FgHiWhite),
		slog.LevelError: color.New(color.BgRed, color.FgHiWhite),
	}
)

// PrettyHandler writes one colored line per record for local development.
type PrettyHandler struct {
	level  slog.Leveler
	prefix string
	attrs  []slog.Attr

	mu  *sync.Mutex
	out io.Writer
}

func NewPrettyHandler(out io.Writer, level slog.Leveler) *PrettyHandler {
	return &PrettyHandler{level: level, out: out, mu: &sync.Mutex{}}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		buf.WriteString(faint.Sprint(r.Time.Format(timeFormat)))
		buf.WriteByte(' ')
	}

	label := fmt.Sprintf("%-5s", r.Level.String())
	if c, ok := levelColors[r.Level]; ok {
		label = c.Sprint(label)
	}
	buf.WriteString(label)
	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(&buf, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.prefix, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *PrettyHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := prefix + a.Key
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, key+".", ga)
		}
		return
	}

	buf.WriteByte(' ')
	if strings.Contains(a.Key, "err") {
		buf.WriteString(errColor.Sprintf("%s=", key))
	} else {
		buf.WriteString(keyColor.Sprintf("%s=", key))
	}
	buf.WriteString(a.Value.String())
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}
