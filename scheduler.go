package nbody

import (
	"fmt"
	"log/slog"
	"time"
)

type scheduledStage struct {
	stage  Stage
	access Access
	deps   []string
}

// SchedulerBuilder declares stages by name, with their dependencies, the way
// a dispatcher is wired: a stage may only depend on stages added before it, so
// the declaration order is already a valid execution order.
//
// Two stages whose accesses conflict (one writes a column the other touches)
// must be ordered by a dependency, direct or transitive.
type SchedulerBuilder struct {
	stages    []scheduledStage
	index     map[string]int
	ancestors []map[int]bool
	err       error
}

// NewSchedulerBuilder returns an empty builder.
func NewSchedulerBuilder() *SchedulerBuilder {
	return &SchedulerBuilder{index: make(map[string]int)}
}

// DefaultSchedulerBuilder returns a builder with the velocity update stage
// followed by the position integration stage.
func DefaultSchedulerBuilder() *SchedulerBuilder {
	return NewSchedulerBuilder().
		With(VelocityStage{}).
		With(PositionStage{}, StageUpdateVelocity)
}

// With adds a stage that runs after every stage named in deps. The first error
// encountered is kept and reported by Build.
func (b *SchedulerBuilder) With(stage Stage, deps ...string) *SchedulerBuilder {
	if b.err != nil {
		return b
	}
	name := stage.Name()
	if _, dup := b.index[name]; dup {
		b.err = fmt.Errorf("%w: %q", ErrDuplicateStage, name)
		return b
	}
	before := make(map[int]bool)
	for _, d := range deps {
		idx, ok := b.index[d]
		if !ok {
			b.err = fmt.Errorf("%w: %q depends on %q", ErrUnknownStage, name, d)
			return b
		}
		before[idx] = true
		for a := range b.ancestors[idx] {
			before[a] = true
		}
	}
	access := stage.Access()
	for i, prev := range b.stages {
		if !before[i] && prev.access.ConflictsWith(access) {
			b.err = fmt.Errorf("%w: %q and %q", ErrStageConflict, prev.stage.Name(), name)
			return b
		}
	}
	b.index[name] = len(b.stages)
	b.stages = append(b.stages, scheduledStage{stage: stage, access: access, deps: deps})
	b.ancestors = append(b.ancestors, before)
	return b
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithPool runs stages on the given pool.
func WithPool(p *Pool) Option {
	return func(s *Scheduler) { s.pool = p }
}

// WithWorkers runs stages on a new pool of n workers.
func WithWorkers(n int) Option {
	return func(s *Scheduler) { s.pool = NewPool(n) }
}

// WithEventBus publishes StageCompleted and StepCompleted events on bus.
func WithEventBus(bus *EventBus) Option {
	return func(s *Scheduler) { s.bus = bus }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// Scheduler executes one step as an ordered pipeline of stages. Each stage
// runs to completion over all entities, including all of its workers, before
// the next stage starts.
type Scheduler struct {
	world  *World
	stages []scheduledStage
	pool   *Pool
	bus    *EventBus
	logger *slog.Logger
	steps  uint64
}

// Build validates the declaration against w and returns a Scheduler. The
// world must already hold DeltaTime and Gravity resources.
func (b *SchedulerBuilder) Build(w *World, opts ...Option) (*Scheduler, error) {
	if b.err != nil {
		return nil, b.err
	}
	if ok, _ := HasResource[DeltaTime](w.Resources()); !ok {
		return nil, fmt.Errorf("%w: DeltaTime", ErrMissingResource)
	}
	if ok, _ := HasResource[Gravity](w.Resources()); !ok {
		return nil, fmt.Errorf("%w: Gravity", ErrMissingResource)
	}
	s := &Scheduler{
		world:  w,
		stages: append([]scheduledStage(nil), b.stages...),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pool == nil {
		s.pool = NewPool(0)
	}
	for _, st := range s.stages {
		s.logger.Debug("stage registered", "stage", st.stage.Name(), "after", st.deps)
	}
	return s, nil
}

// Steps returns the number of completed steps.
func (s *Scheduler) Steps() uint64 {
	return s.steps
}

// Pool returns the worker pool stages run on.
func (s *Scheduler) Pool() *Pool {
	return s.pool
}

// Step runs every stage once, in order. It fails only when the world's
// invariants are already broken or another step is running on the same world.
func (s *Scheduler) Step() error {
	if err := s.world.checkPopulation(); err != nil {
		return err
	}
	if err := s.world.lock(); err != nil {
		return err
	}
	defer s.world.unlock()

	step := s.steps + 1
	start := time.Now()
	for i := range s.stages {
		st := &s.stages[i]
		stageStart := time.Now()
		s.runStage(st)
		Publish(s.bus, StageCompleted{Stage: st.stage.Name(), Step: step, Elapsed: time.Since(stageStart)})
	}
	s.steps = step
	elapsed := time.Since(start)
	n := s.world.Len()
	s.logger.Debug("step completed", "step", step, "entities", n, "elapsed", elapsed)
	Publish(s.bus, StepCompleted{Step: step, Entities: n, Elapsed: elapsed})
	return nil
}

func (s *Scheduler) runStage(st *scheduledStage) {
	v := s.world.borrow(st.access)
	defer s.world.release(v)
	st.stage.Run(v, s.pool)
}

// Run executes n consecutive steps, stopping at the first error.
func (s *Scheduler) Run(n int) error {
	for range n {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}
