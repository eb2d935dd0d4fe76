// Package mlog is a thin component-tagged logging façade. It mirrors the
// named-logger idiom of minimega's src/minilog (AddLogger/SetLevel per
// named logger) but is backed by zerolog instead of a hand-rolled
// wrapper around the stdlib log package.
package mlog

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	base   = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false}).With().Timestamp().Logger()
	levels = map[string]zerolog.Level{}
)

// Component returns a logger tagged with the given component name, e.g.
// "xlate" or "genome". Components may be leveled independently with
// SetComponentLevel; by default they inherit the global level.
func Component(name string) zerolog.Logger {
	mu.RLock()
	lvl, ok := levels[name]
	mu.RUnlock()

	l := base.With().Str("comp", name).Logger()
	if ok {
		l = l.Level(lvl)
	}
	return l
}

// SetLevel sets the global log level, the way minilog's SetLevel/LevelInt
// pair did for its default logger.
func SetLevel(lvl zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	zerolog.SetGlobalLevel(lvl)
}

// SetComponentLevel overrides the level for a single named component.
func SetComponentLevel(name string, lvl zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	levels[name] = lvl
}
