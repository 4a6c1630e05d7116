package main

import (
	"fmt"
	"log/slog"

	"github.com/hepsim/colreco/btag"
	"github.com/hepsim/colreco/calo"
	"github.com/hepsim/colreco/candidate"
	"github.com/hepsim/colreco/genreader"
	"github.com/hepsim/colreco/isolation"
	"github.com/hepsim/colreco/jetfinder"
	"github.com/hepsim/colreco/metbuilder"
	"github.com/hepsim/colreco/modpipe"
	"github.com/hepsim/colreco/pdgtable"
	"github.com/hepsim/colreco/pileup"
	"github.com/hepsim/colreco/propagator"
	"github.com/hepsim/colreco/reccfg"
	"github.com/hepsim/colreco/rng"
)

// moduleFactories maps a module's kind (the "Kind" scalar of its block, or
// its instance name from the YAML modules list when the block has no Kind)
// to a constructor. The generator
// ingestion step is wired separately since it owns an open file handle.
var moduleFactories = map[string]func(name string) modpipe.Module{
	"PileUpMerger":      func(n string) modpipe.Module { return pileup.New(n) },
	"ParticlePropagator": func(n string) modpipe.Module { return propagator.New(n) },
	"Calorimeter":        func(n string) modpipe.Module { return calo.New(n) },
	"FastJetFinder":      func(n string) modpipe.Module { return jetfinder.New(n) },
	"BTagging":           func(n string) modpipe.Module { return btag.New(n) },
	"Isolation":          func(n string) modpipe.Module { return isolation.New(n) },
	"MissingET":          func(n string) modpipe.Module { return metbuilder.New(n) },
}

// buildRunner wires every module doc declares (in declaration order) onto
// a fresh Runner, after the ingestion module genMod. The YAML "modules"
// list names module instances; each instance's block must carry a "Kind"
// scalar naming its constructor when the instance name doesn't match a
// factory key directly.
func buildRunner(doc *reccfg.Document, genMod *genreader.Module, logger *slog.Logger) (*modpipe.Runner, *modpipe.Registry, error) {
	registry := modpipe.NewRegistry()
	base := &modpipe.Context{
		Registry: registry,
		RNG:      rng.New(int64(doc.RandomSeed)),
		PDG:      pdgtable.Default(),
		Pool:     candidate.NewPool(),
		Logger:   logger,
	}

	runner := modpipe.NewRunner(base, doc.Blocks)
	runner.Add(genMod)

	for _, name := range doc.Modules {
		block := doc.Block(name)
		kind := block.GetString("Kind", name)
		factory, ok := moduleFactories[kind]
		if !ok {
			return nil, nil, fmt.Errorf("colreco: no module kind %q for instance %q", kind, name)
		}
		runner.Add(factory(name))
	}

	return runner, registry, nil
}
