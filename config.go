package nbody

import (
	"fmt"
	"math"
)

// Reference configuration values.
const (
	DefaultEntities         = 1000
	DefaultDelta    float32 = 0.1
	DefaultGravity  float32 = 1e-5
)

// Config is the configuration surface of a simulation.
type Config struct {
	// Entities is the expected entity count, used as the initial capacity.
	Entities int
	// Delta is the time-step size. It is fixed for the lifetime of the run.
	Delta float32
	// Gravity is the gravitational constant.
	Gravity float32
	// Cutoff is the optional squared cutoff distance. Nil means every pair
	// contributes.
	Cutoff *float32
	// Workers is the number of stage workers; zero uses GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the reference configuration without a cutoff.
func DefaultConfig() Config {
	return Config{
		Entities: DefaultEntities,
		Delta:    DefaultDelta,
		Gravity:  DefaultGravity,
	}
}

// WithCutoff returns a copy of c with the squared cutoff distance set.
func (c Config) WithCutoff(distanceSq float32) Config {
	c.Cutoff = &distanceSq
	return c
}

// WithReferenceCutoff returns a copy of c using ReferenceCutoff.
func (c Config) WithReferenceCutoff() Config {
	return c.WithCutoff(ReferenceCutoff)
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Entities < 0:
		return fmt.Errorf("%w: entity count %d is negative", ErrInvalidConfig, c.Entities)
	case !(c.Delta > 0) || math.IsInf(float64(c.Delta), 0):
		return fmt.Errorf("%w: time-step %v must be positive", ErrInvalidConfig, c.Delta)
	case !(c.Gravity > 0) || math.IsInf(float64(c.Gravity), 0):
		return fmt.Errorf("%w: gravitational constant %v must be positive", ErrInvalidConfig, c.Gravity)
	case c.Cutoff != nil && !(*c.Cutoff >= 0):
		return fmt.Errorf("%w: cutoff %v must be non-negative", ErrInvalidConfig, *c.Cutoff)
	case c.Workers < 0:
		return fmt.Errorf("%w: worker count %d is negative", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// install stores the configuration values as world resources.
func (c Config) install(r *Resources) {
	SetResource(r, &DeltaTime{Seconds: c.Delta})
	SetResource(r, &Gravity{G: c.Gravity})
	if c.Cutoff != nil {
		SetResource(r, &Cutoff{DistanceSq: *c.Cutoff})
	} else if ok, id := HasResource[Cutoff](r); ok {
		r.Remove(id)
	}
}
