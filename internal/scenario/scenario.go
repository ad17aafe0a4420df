// Package scenario produces initial conditions for a simulation, either
// sampled at random or loaded from a JSON file.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"

	nbody "github.com/Kolaer/ecs-nbody"
)

// DefaultExtent is the side of the square random positions are sampled from.
const DefaultExtent float32 = 20

// Body is the initial state of one entity.
type Body struct {
	Pos  [2]float32 `json:"pos"`
	Vel  [2]float32 `json:"vel"`
	Mass float32    `json:"mass"`
}

// Scenario is a named set of initial bodies plus optional overrides of the
// simulation configuration.
type Scenario struct {
	Name    string   `json:"name"`
	Delta   float32  `json:"dt,omitempty"`
	Gravity float32  `json:"gravity,omitempty"`
	Cutoff  *float32 `json:"cutoff,omitempty"`
	Bodies  []Body   `json:"bodies"`
}

// Random samples n bodies with positions uniform in [0, extent)², zero
// velocity and unit mass.
func Random(rng *rand.Rand, n int, extent float32) Scenario {
	bodies := make([]Body, n)
	for i := range bodies {
		bodies[i] = Body{
			Pos:  [2]float32{extent * rng.Float32(), extent * rng.Float32()},
			Mass: 1,
		}
	}
	return Scenario{Name: "random", Bodies: bodies}
}

// Load reads a scenario from a JSON file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(sc.Bodies) == 0 {
		return Scenario{}, fmt.Errorf("scenario %s: no bodies", path)
	}
	return sc, nil
}

// Apply overrides the fields of cfg that the scenario sets.
func (sc Scenario) Apply(cfg nbody.Config) nbody.Config {
	if sc.Delta != 0 {
		cfg.Delta = sc.Delta
	}
	if sc.Gravity != 0 {
		cfg.Gravity = sc.Gravity
	}
	if sc.Cutoff != nil {
		cfg = cfg.WithCutoff(*sc.Cutoff)
	}
	if len(sc.Bodies) > cfg.Entities {
		cfg.Entities = len(sc.Bodies)
	}
	return cfg
}

// Populate creates one entity per body. Bodies with an invalid mass are
// reported together; the valid ones are still created.
func (sc Scenario) Populate(w *nbody.World) ([]nbody.Entity, error) {
	ents := make([]nbody.Entity, 0, len(sc.Bodies))
	var errs []error
	for i, b := range sc.Bodies {
		e, err := w.Create(
			nbody.Position{X: b.Pos[0], Y: b.Pos[1]},
			nbody.Velocity{X: b.Vel[0], Y: b.Vel[1]},
			nbody.Mass{Value: b.Mass},
		)
		if err != nil {
			errs = append(errs, fmt.Errorf("body %d: %w", i, err))
			continue
		}
		ents = append(ents, e)
	}
	return ents, errors.Join(errs...)
}
