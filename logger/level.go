// SPDX-License-Identifier: GPL-3.0-or-later

package logger

import (
	"log/slog"
	"strings"
)

const (
	levelNotice  = slog.Level(2)
	levelDisable = slog.Level(99)
)

// Level is the process-wide minimum level shared by every Logger.
var Level = &level{lvl: &slog.LevelVar{}}

type level struct {
	lvl *slog.LevelVar
}

func (l *level) Enabled(lvl slog.Level) bool { return lvl >= l.lvl.Level() }

func (l *level) Set(lvl slog.Level) { l.lvl.Set(lvl) }

// SetByName sets the level from its name and reports whether the name is known.
// An unknown name leaves the level unchanged.
func (l *level) SetByName(name string) bool {
	lvl, ok := ParseLevel(name)
	if ok {
		l.lvl.Set(lvl)
	}
	return ok
}

// ParseLevel accepts err|error, warn|warning, notice, info, debug and none|off.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "err", "error":
		return slog.LevelError, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "notice":
		return levelNotice, true
	case "info":
		return slog.LevelInfo, true
	case "debug":
		return slog.LevelDebug, true
	case "none", "off":
		return levelDisable, true
	}
	return 0, false
}

func levelName(lvl slog.Level) string {
	if lvl == levelNotice {
		return "notice"
	}
	return strings.ToLower(lvl.String())
}

func levelNameTerm(lvl slog.Level) (string, bool) {
	if lvl == levelNotice {
		return "\u001B[34mNTC\u001B[0m", true
	}
	return "", false
}
