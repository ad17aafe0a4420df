package nbody

import "log/slog"

// Simulation wires a World, its resources and the default two-stage
// scheduler from a Config.
type Simulation struct {
	World     *World
	Scheduler *Scheduler
	Bus       *EventBus
	Config    Config
}

// NewSimulation validates cfg and builds an empty simulation. Entities are
// added with Create before the first Step.
func NewSimulation(cfg Config, logger *slog.Logger) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w := NewWorld(cfg.Entities)
	cfg.install(w.Resources())
	bus := &EventBus{}
	sched, err := DefaultSchedulerBuilder().Build(w,
		WithWorkers(cfg.Workers),
		WithEventBus(bus),
		WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	logger.Info("simulation ready",
		"capacity", cfg.Entities,
		"delta", cfg.Delta,
		"gravity", cfg.Gravity,
		"cutoff", cfg.Cutoff != nil,
		"workers", sched.Pool().Workers(),
	)
	return &Simulation{World: w, Scheduler: sched, Bus: bus, Config: cfg}, nil
}

// Create adds one entity. See World.Create.
func (s *Simulation) Create(pos Position, vel Velocity, mass Mass) (Entity, error) {
	return s.World.Create(pos, vel, mass)
}

// Step advances the simulation by one time-step.
func (s *Simulation) Step() error {
	return s.Scheduler.Step()
}

// Run advances the simulation by n time-steps.
func (s *Simulation) Run(n int) error {
	return s.Scheduler.Run(n)
}
