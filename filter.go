package nbody

// Filter is a lazy, restartable iterator over every live entity and its
// components, in creation order as long as no entity has been removed. It is
// the read side used by renderers and state dumps between steps; it must not
// be advanced while a step is running.
type Filter struct {
	world   *World
	curEnt  Entity
	curIdx  int
	version uint32
}

// NewFilter creates a new Filter over all entities of w.
//
// Example:
//
//	query := nbody.NewFilter(world)
//	for query.Next() {
//	    pos, vel, mass := query.Get()
//	    // ... read components
//	}
func NewFilter(w *World) *Filter {
	f := &Filter{world: w}
	f.Reset()
	return f
}

// Reset rewinds the filter's iterator to the beginning.
func (f *Filter) Reset() {
	f.curIdx = -1
	f.version = f.world.mutationVersion
}

// IsStale reports whether entities were created or removed since the last Reset.
func (f *Filter) IsStale() bool {
	return f.version != f.world.mutationVersion
}

// Next advances the filter to the next entity. It returns true if an entity
// was found, and false if the iteration is complete.
func (f *Filter) Next() bool {
	f.curIdx++
	if f.curIdx < len(f.world.columns.entityIDs) {
		f.curEnt = f.world.columns.entityIDs[f.curIdx]
		return true
	}
	return false
}

// Entity returns the current Entity. Only valid after Next returned true.
func (f *Filter) Entity() Entity {
	return f.curEnt
}

// Get returns copies of the current entity's components. Only valid after
// Next returned true.
func (f *Filter) Get() (Position, Velocity, Mass) {
	c := &f.world.columns
	return c.positions[f.curIdx], c.velocities[f.curIdx], c.masses[f.curIdx]
}

// Body returns a snapshot of the current entity.
func (f *Filter) Body() Body {
	pos, vel, mass := f.Get()
	return Body{Entity: f.curEnt, Position: pos, Velocity: vel, Mass: mass}
}

// Entities returns a copy of all live entity identifiers.
func (f *Filter) Entities() []Entity {
	out := make([]Entity, len(f.world.columns.entityIDs))
	copy(out, f.world.columns.entityIDs)
	return out
}
