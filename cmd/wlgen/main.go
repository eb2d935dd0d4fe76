// Command wlgen is a minimal driver that wires internal/config,
// internal/gaadapter and internal/mlog together: load configuration, seed
// the PRNG, run a handful of generations of initialize/mutate/evaluate, and
// report the best fitness seen. It is deliberately not a full CLI (spec.md
// §1 non-goal "CLI/logging") — just enough surface to exercise the core
// from outside a test binary, in the spirit of minimega's small single-file
// commands (src/nfcat, src/minifuzzer).
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/gangstatracer/netwlgen/internal/config"
	"github.com/gangstatracer/netwlgen/internal/gaadapter"
	"github.com/gangstatracer/netwlgen/internal/mlog"
	"github.com/rs/zerolog"
)

var (
	configPath  = flag.String("config", "", "path to a YAML config file (optional)")
	generations = flag.Int("generations", 10, "number of mutate+evaluate rounds to run")
)

func levelFromString(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func run() error {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("wlgen: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("wlgen: %w", err)
	}

	mlog.SetLevel(levelFromString(cfg.Log.Level))
	for comp, lvl := range cfg.Log.Components {
		mlog.SetComponentLevel(comp, levelFromString(lvl))
	}
	log := mlog.Component("wlgen")

	if cfg.RNG.Seed != 0 {
		rand.Seed(cfg.RNG.Seed)
	}

	ind, err := gaadapter.NewIndividual()
	if err != nil {
		return fmt.Errorf("wlgen: initialize: %w", err)
	}

	best, err := ind.Evaluate()
	if err != nil {
		return fmt.Errorf("wlgen: evaluate: %w", err)
	}
	log.Info().Float64("fitness", best).Msg("initial individual")

	for i := 0; i < *generations; i++ {
		candidate := ind.Clone()
		if err := candidate.Mutate(gaadapter.MutateOpts{}); err != nil {
			log.Warn().Err(err).Int("generation", i).Msg("mutation rejected, skipping")
			continue
		}

		fitness, err := candidate.Evaluate()
		if err != nil {
			return fmt.Errorf("wlgen: evaluate generation %d: %w", i, err)
		}

		log.Info().Int("generation", i).Float64("fitness", fitness).Msg("candidate evaluated")
		if fitness > best {
			best = fitness
			ind = candidate
		}
	}

	log.Info().Float64("best_fitness", best).Msg("done")
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
