package modpipe

// Adapted from the bracketed-attrs text handler in the decoder's
// customLogger.go. Each module's logger carries a "module" attribute (added
// by Context.ForModule) instead of a single fixed subsystem name; see
// Handler for which output prints it.

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Handler is a slog.Handler that renders bracketed time + attrs + message
// to its writer, independent of the JSON handler used for error-level
// records. Handle prints only the record's own attributes: attributes added
// through Logger.With (such as the "module" tag) are passed to the inner
// handler but do not appear in this output. The JSON handler does print them.
type Handler struct {
	h   slog.Handler
	mu  *sync.Mutex
	out io.Writer
}

// NewHandler wraps o with the bracketed-text format.
func NewHandler(o io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &Handler{
		out: o,
		h: slog.NewTextHandler(o, &slog.HandlerOptions{
			Level:     opts.Level,
			AddSource: opts.AddSource,
		}),
		mu: &sync.Mutex{},
	}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{h: h.h.WithAttrs(attrs), out: h.out, mu: h.mu}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{h: h.h.WithGroup(name), out: h.out, mu: h.mu}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	formattedTime := r.Time.Format("[2006/01/02 15:04:05]")

	strs := []string{formattedTime}
	r.Attrs(func(a slog.Attr) bool {
		strs = append(strs, fmt.Sprintf("[%s=%s]", a.Key, a.Value.String()))
		return true
	})
	strs = append(strs, r.Message, "\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write([]byte(strings.Join(strs, " ")))
	return err
}

// NewLogger builds the ambient *slog.Logger: bracketed text to stdout,
// JSON to stderr for error-level-and-above records, matching the teacher's
// stdout/stderr split.
func NewLogger(stdout, stderr io.Writer) *slog.Logger {
	textHandler := NewHandler(stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	jsonHandler := slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: slog.LevelError})
	return slog.New(fanoutHandler{primary: textHandler, errors: jsonHandler})
}

type fanoutHandler struct {
	primary slog.Handler
	errors  slog.Handler
}

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return f.primary.Enabled(ctx, level) || f.errors.Enabled(ctx, level)
}

func (f fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if f.primary.Enabled(ctx, r.Level) {
		err = f.primary.Handle(ctx, r)
	}
	if f.errors.Enabled(ctx, r.Level) {
		if e := f.errors.Handle(ctx, r); e != nil && err == nil {
			err = e
		}
	}
	return err
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return fanoutHandler{primary: f.primary.WithAttrs(attrs), errors: f.errors.WithAttrs(attrs)}
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	return fanoutHandler{primary: f.primary.WithGroup(name), errors: f.errors.WithGroup(name)}
}
