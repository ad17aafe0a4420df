// Command gravity runs the n-body simulation either headless, timing a fixed
// number of steps, or interactively in the terminal until Esc or q.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	nbody "github.com/Kolaer/ecs-nbody"
	"github.com/Kolaer/ecs-nbody/internal/scenario"
	"github.com/Kolaer/ecs-nbody/internal/view"
	"github.com/gdamore/tcell/v2"
)

type options struct {
	entities int
	delta    float64
	gravity  float64
	cutoff   float64
	workers  int
	steps    int
	seed     int64
	extent   float64
	fps      int
	scenario string
	dump     bool
	timing   bool
	verbose  bool
}

func parseFlags() options {
	var o options
	flag.IntVar(&o.entities, "n", nbody.DefaultEntities, "number of random bodies")
	flag.Float64Var(&o.delta, "dt", float64(nbody.DefaultDelta), "time-step size")
	flag.Float64Var(&o.gravity, "g", float64(nbody.DefaultGravity), "gravitational constant")
	flag.Float64Var(&o.cutoff, "cutoff", -1, "squared cutoff distance, negative disables (reference: 1e6)")
	flag.IntVar(&o.workers, "workers", 0, "stage workers, 0 uses GOMAXPROCS")
	flag.IntVar(&o.steps, "steps", 0, "run this many steps headless; 0 opens the viewer")
	flag.Int64Var(&o.seed, "seed", time.Now().UnixNano(), "random seed")
	flag.Float64Var(&o.extent, "extent", float64(scenario.DefaultExtent), "side of the square random bodies start in")
	flag.IntVar(&o.fps, "fps", 60, "viewer frame rate cap")
	flag.StringVar(&o.scenario, "scenario", "", "JSON scenario file instead of random bodies")
	flag.BoolVar(&o.dump, "dump", false, "print every body after a headless run")
	flag.BoolVar(&o.timing, "timing", false, "print the duration of every step")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Parse()
	return o
}

func main() {
	o := parseFlags()
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(o, logger); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(o options, logger *slog.Logger) error {
	cfg := nbody.DefaultConfig()
	cfg.Entities = o.entities
	cfg.Delta = float32(o.delta)
	cfg.Gravity = float32(o.gravity)
	cfg.Workers = o.workers
	if o.cutoff >= 0 {
		cfg = cfg.WithCutoff(float32(o.cutoff))
	}

	var sc scenario.Scenario
	if o.scenario != "" {
		var err error
		if sc, err = scenario.Load(o.scenario); err != nil {
			return err
		}
		cfg = sc.Apply(cfg)
	} else {
		sc = scenario.Random(rand.New(rand.NewSource(o.seed)), o.entities, float32(o.extent))
	}

	sim, err := nbody.NewSimulation(cfg, logger)
	if err != nil {
		return err
	}
	if _, err := sc.Populate(sim.World); err != nil {
		return err
	}
	logger.Info("bodies created", "scenario", sc.Name, "count", sim.World.Len(), "seed", o.seed)

	if o.steps > 0 {
		return runHeadless(sim, o)
	}
	return runViewer(sim, o, logger)
}

func runHeadless(sim *nbody.Simulation, o options) error {
	if o.timing {
		nbody.Subscribe(sim.Bus, func(e nbody.StepCompleted) {
			fmt.Printf("step %d: %v\n", e.Step, e.Elapsed)
		})
	}
	start := time.Now()
	if err := sim.Run(o.steps); err != nil {
		return err
	}
	elapsed := time.Since(start)
	fmt.Printf("%d steps, %d bodies, %d workers: %v (%v/step)\n",
		o.steps, sim.World.Len(), sim.Scheduler.Pool().Workers(), elapsed, elapsed/time.Duration(o.steps))
	if o.dump {
		return nbody.Dump(os.Stdout, sim.World)
	}
	return nil
}

func runViewer(sim *nbody.Simulation, o options, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	var lastStep time.Duration
	nbody.Subscribe(sim.Bus, func(e nbody.StepCompleted) {
		lastStep = e.Elapsed
	})

	r := view.NewRenderer(screen, float32(o.extent))
	frame := time.Second / time.Duration(max(o.fps, 1))
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					logger.Debug("viewer closed", "steps", sim.Scheduler.Steps())
					return nil
				}
			}
		case <-ticker.C:
			if err := sim.Step(); err != nil {
				return err
			}
			status := fmt.Sprintf("step %d  bodies %d  %v/step  esc/q quits",
				sim.Scheduler.Steps(), sim.World.Len(), lastStep.Round(time.Microsecond))
			r.Draw(sim.World, status)
		}
	}
}
