package mlog

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestComponentAppliesOverrideLevel(t *testing.T) {
	SetComponentLevel("widget", zerolog.ErrorLevel)
	l := Component("widget")
	if l.GetLevel() != zerolog.ErrorLevel {
		t.Fatalf("expected override level error, got %v", l.GetLevel())
	}
}

func TestComponentWithoutOverrideIsUsable(t *testing.T) {
	l := Component("unconfigured-component")
	// No override was set for this name: the logger must still work rather
	// than panic or silently drop every event.
	l.Info().Msg("probe")
}
