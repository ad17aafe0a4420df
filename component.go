// Package nbody implements a small-N gravitational simulation on top of a
// co-indexed entity component store.
//
// Every entity carries exactly one Position, one Velocity and one Mass. A step
// runs the velocity update stage over all entities, waits for it to finish,
// then runs the position integration stage. Both stages split the entity
// range across a fixed pool of workers.
package nbody

import "fmt"

// ComponentID identifies one of the attribute columns held by a World.
type ComponentID uint8

const (
	PositionID ComponentID = iota
	VelocityID
	MassID

	numComponents
)

// String returns the column name.
func (id ComponentID) String() string {
	switch id {
	case PositionID:
		return "Position"
	case VelocityID:
		return "Velocity"
	case MassID:
		return "Mass"
	}
	return fmt.Sprintf("ComponentID(%d)", uint8(id))
}

// Position is the world-space location of an entity.
type Position struct {
	X, Y float32
}

// Velocity is the instantaneous velocity of an entity.
type Velocity struct {
	X, Y float32
}

// Mass is the scalar mass of an entity. It is always strictly positive.
type Mass struct {
	Value float32
}

// Body is a snapshot of all components of one entity.
type Body struct {
	Entity   Entity
	Position Position
	Velocity Velocity
	Mass     Mass
}
