package nbody

import (
	"errors"
	"log/slog"
	"math"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"default", DefaultConfig(), true},
		{"reference cutoff", DefaultConfig().WithReferenceCutoff(), true},
		{"zero cutoff", DefaultConfig().WithCutoff(0), true},
		{"zero entities", Config{Delta: 1, Gravity: 1}, true},
		{"negative entities", Config{Entities: -1, Delta: 1, Gravity: 1}, false},
		{"zero delta", Config{Delta: 0, Gravity: 1}, false},
		{"negative delta", Config{Delta: -0.1, Gravity: 1}, false},
		{"NaN delta", Config{Delta: nan, Gravity: 1}, false},
		{"infinite delta", Config{Delta: inf, Gravity: 1}, false},
		{"zero gravity", Config{Delta: 1, Gravity: 0}, false},
		{"infinite gravity", Config{Delta: 1, Gravity: inf}, false},
		{"negative cutoff", DefaultConfig().WithCutoff(-1), false},
		{"NaN cutoff", DefaultConfig().WithCutoff(nan), false},
		{"negative workers", Config{Delta: 1, Gravity: 1, Workers: -2}, false},
	}
	for _, c := range cases {
		err := c.cfg.Validate()
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		if !c.ok && !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", c.name, err)
		}
	}
}

func TestConfigWithCutoffCopies(t *testing.T) {
	base := DefaultConfig()
	cut := base.WithCutoff(50)
	if base.Cutoff != nil {
		t.Error("expected base config to stay without cutoff")
	}
	if cut.Cutoff == nil || *cut.Cutoff != 50 {
		t.Errorf("expected cutoff 50, got %v", cut.Cutoff)
	}
}

func TestConfigInstall(t *testing.T) {
	r := &Resources{}
	DefaultConfig().WithReferenceCutoff().install(r)
	if dt := MustGetResource[DeltaTime](r); dt.Seconds != DefaultDelta {
		t.Errorf("expected delta %v, got %v", DefaultDelta, dt.Seconds)
	}
	if g := MustGetResource[Gravity](r); g.G != DefaultGravity {
		t.Errorf("expected G %v, got %v", DefaultGravity, g.G)
	}
	if c, _ := GetResource[Cutoff](r); c == nil || c.DistanceSq != ReferenceCutoff {
		t.Errorf("expected reference cutoff, got %+v", c)
	}

	DefaultConfig().install(r)
	if ok, _ := HasResource[Cutoff](r); ok {
		t.Error("expected cutoff to be removed")
	}
}

func TestNewSimulation(t *testing.T) {
	if _, err := NewSimulation(Config{}, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}

	cfg := DefaultConfig()
	cfg.Delta = 1
	cfg.Workers = 2
	sim, err := NewSimulation(cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}
	if sim.Scheduler.Pool().Workers() != 2 {
		t.Errorf("expected 2 workers, got %d", sim.Scheduler.Pool().Workers())
	}
	a, _ := sim.Create(Position{0, 0}, Velocity{}, Mass{1})
	b, _ := sim.Create(Position{10, 0}, Velocity{}, Mass{1})
	if _, err := sim.Create(Position{}, Velocity{}, Mass{0}); !errors.Is(err, ErrInvalidMass) {
		t.Errorf("expected ErrInvalidMass, got %v", err)
	}

	var completed int
	Subscribe(sim.Bus, func(StepCompleted) { completed++ })
	if err := sim.Run(3); err != nil {
		t.Fatal(err)
	}
	if completed != 3 || sim.Scheduler.Steps() != 3 {
		t.Errorf("expected 3 steps, got %d events and %d steps", completed, sim.Scheduler.Steps())
	}
	ba, _ := sim.World.Get(a)
	bb, _ := sim.World.Get(b)
	if !(ba.Position.X > 0) || !(bb.Velocity.X < 0) {
		t.Errorf("expected bodies to attract, got %+v and %+v", ba, bb)
	}
}
