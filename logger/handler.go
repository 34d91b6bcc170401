// SPDX-License-Identifier: GPL-3.0-or-later

package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/lmittmann/tint"
)

// newStderrHandler picks the handler for stderr. skip is the number of
// frames between the caller of a Logger method and slog.Logger.Log.
func newStderrHandler(skip int) slog.Handler {
	if isTerm {
		return &sourceHandler{skip: skip, next: newTerminalHandler(os.Stderr)}
	}
	return newTextHandler(os.Stderr, isJournal).WithAttrs([]slog.Attr{appAttr})
}

// newTextHandler writes logfmt records with lowercase level names. The journal
// stamps records itself, so dropTime removes the time attribute.
func newTextHandler(w io.Writer, dropTime bool) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level.lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch {
			case a.Key == slog.TimeKey && dropTime:
				return slog.Attr{}
			case a.Key == slog.LevelKey:
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					return slog.String(a.Key, levelName(lvl))
				}
			}
			return a
		},
	})
}

func newTerminalHandler(w io.Writer) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		NoColor:   runtime.GOOS == "windows",
		AddSource: true,
		Level:     Level.lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case slog.SourceKey:
				if !Level.Enabled(slog.LevelDebug) {
					return slog.Attr{}
				}
			case slog.LevelKey:
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					if s, ok := levelNameTerm(lvl); ok {
						return slog.String(a.Key, s)
					}
				}
			}
			return a
		},
	})
}

// sourceHandler points the record source at the code that called the Logger
// instead of at this package.
type sourceHandler struct {
	skip int
	next slog.Handler
}

func (h *sourceHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.next.Enabled(ctx, lvl)
}

func (h *sourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sourceHandler{skip: h.skip, next: h.next.WithAttrs(attrs)}
}

func (h *sourceHandler) WithGroup(name string) slog.Handler {
	return &sourceHandler{skip: h.skip, next: h.next.WithGroup(name)}
}

func (h *sourceHandler) Handle(ctx context.Context, r slog.Record) error {
	var pcs [1]uintptr
	// +2: runtime.Callers and Handle
	runtime.Callers(h.skip+2, pcs[:])
	r.PC = pcs[0]

	return h.next.Handle(ctx, r)
}
