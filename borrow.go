package nbody

import "fmt"

// View is the column access lent to a stage for the duration of one run.
// Mutable slices are only handed out for columns the stage declared in its
// Access writes; asking for anything else panics.
//
// Slices returned by a View must not be retained after the stage returns.
type View struct {
	world  *World
	access Access
}

// borrow lends the columns named by a to the caller. A column may be written
// by one holder at a time and read by any number of holders while nobody
// writes it. A conflicting borrow is a programming error and panics.
func (w *World) borrow(a Access) *View {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id := ComponentID(0); id < numComponents; id++ {
		switch {
		case a.CanWrite(id):
			if w.borrows.writers.containsBit(id) || w.borrows.readers[id] > 0 {
				panic(fmt.Sprintf("nbody: %s is already borrowed", id))
			}
		case a.CanRead(id):
			if w.borrows.writers.containsBit(id) {
				panic(fmt.Sprintf("nbody: %s is borrowed for writing", id))
			}
		}
	}
	for id := ComponentID(0); id < numComponents; id++ {
		switch {
		case a.CanWrite(id):
			w.borrows.writers.set(id)
		case a.CanRead(id):
			w.borrows.readers[id]++
		}
	}
	return &View{world: w, access: a}
}

// release returns the columns held by v.
func (w *World) release(v *View) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id := ComponentID(0); id < numComponents; id++ {
		switch {
		case v.access.CanWrite(id):
			w.borrows.writers.unset(id)
		case v.access.CanRead(id):
			w.borrows.readers[id]--
		}
	}
	v.world = nil
}

func (v *View) check(id ComponentID, write bool) {
	if v.world == nil {
		panic("nbody: view used after its stage returned")
	}
	if write && !v.access.CanWrite(id) {
		panic(fmt.Sprintf("nbody: stage did not declare write access to %s", id))
	}
	if !v.access.CanRead(id) {
		panic(fmt.Sprintf("nbody: stage did not declare access to %s", id))
	}
}

// Len returns the number of entities visible to the stage.
func (v *View) Len() int {
	return len(v.world.columns.entityIDs)
}

// Entities returns the entity of every row.
func (v *View) Entities() []Entity {
	return v.world.columns.entityIDs
}

// Resources returns the world's resources. They are read-only during a step.
func (v *View) Resources() *Resources {
	return v.world.resources
}

// Positions returns the position column for reading.
func (v *View) Positions() []Position {
	v.check(PositionID, false)
	return v.world.columns.positions
}

// PositionsMut returns the position column for writing.
func (v *View) PositionsMut() []Position {
	v.check(PositionID, true)
	return v.world.columns.positions
}

// Velocities returns the velocity column for reading.
func (v *View) Velocities() []Velocity {
	v.check(VelocityID, false)
	return v.world.columns.velocities
}

// VelocitiesMut returns the velocity column for writing.
func (v *View) VelocitiesMut() []Velocity {
	v.check(VelocityID, true)
	return v.world.columns.velocities
}

// Masses returns the mass column. Mass is constant, so there is no mutable
// accessor.
func (v *View) Masses() []Mass {
	v.check(MassID, false)
	return v.world.columns.masses
}
