// Profiling:
// go build ./profile/step
// ./step -mode cpu
// go tool pprof -http=":8000" -nodefraction=0.001 ./step cpu.pprof

package main

import (
	"flag"
	"log"
	"math/rand"

	nbody "github.com/Kolaer/ecs-nbody"
	"github.com/Kolaer/ecs-nbody/internal/scenario"
	"github.com/pkg/profile"
)

func main() {
	mode := flag.String("mode", "cpu", "profile mode: cpu, mem or trace")
	rounds := flag.Int("rounds", 5, "fresh worlds to simulate")
	steps := flag.Int("steps", 200, "steps per round")
	entities := flag.Int("n", nbody.DefaultEntities, "bodies per world")
	workers := flag.Int("workers", 0, "stage workers, 0 uses GOMAXPROCS")
	flag.Parse()

	var p interface{ Stop() }
	switch *mode {
	case "mem":
		p = profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	case "trace":
		p = profile.Start(profile.TraceProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		p = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	}
	if err := run(*rounds, *steps, *entities, *workers); err != nil {
		p.Stop()
		log.Fatal(err)
	}
	p.Stop()
}

func run(rounds, steps, numEntities, workers int) error {
	cfg := nbody.DefaultConfig().WithReferenceCutoff()
	cfg.Entities = numEntities
	cfg.Workers = workers
	for round := range rounds {
		sim, err := nbody.NewSimulation(cfg, nil)
		if err != nil {
			return err
		}
		sc := scenario.Random(rand.New(rand.NewSource(int64(round))), numEntities, scenario.DefaultExtent)
		if _, err := sc.Populate(sim.World); err != nil {
			return err
		}
		if err := sim.Run(steps); err != nil {
			return err
		}
	}
	return nil
}
