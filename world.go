package nbody

import (
	"fmt"
	"sync"
)

// Entity represents a unique identifier for a simulated point mass. It combines
// a 32-bit ID with a 32-bit version to ensure that recycled IDs are not confused
// with new entities.
type Entity struct {
	// ID is the unique, recyclable identifier for the entity.
	ID uint32
	// Version is a generation counter to protect against stale entity references.
	// It is incremented each time an entity ID is reused.
	Version uint32
}

// entityMeta holds the internal location and state of an entity.
type entityMeta struct {
	index   int    // row in the component columns
	version uint32 // current version, 0 if the entity is dead
}

// entityRegistry tracks entity IDs, their versions and their rows.
type entityRegistry struct {
	freeIDs         []uint32     // stack of recycled entity IDs
	metas           []entityMeta // stores metadata for each entity, indexed by entity ID
	capacity        int          // current maximum number of entities
	initialCapacity int          // initial capacity, used for expansion
	nextEntityVer   uint32       // version for the next created entity
}

// columns holds the co-indexed component storage. Row i of every column
// belongs to entityIDs[i].
type columns struct {
	entityIDs  []Entity
	positions  []Position
	velocities []Velocity
	masses     []Mass
}

// borrowState tracks which columns are currently lent out to stages.
type borrowState struct {
	readers [numComponents]int
	writers bitmask
}

// World owns the entity registry, the component columns and the shared
// resources of one simulation.
//
// Creating and removing entities is safe from one goroutine at a time. Column
// access during a step goes through a View handed out by the scheduler.
type World struct {
	resources       *Resources
	entities        entityRegistry
	columns         columns
	borrows         borrowState
	mu              sync.Mutex
	locked          bool   // set while a step is running
	mutationVersion uint32 // incremented on entity mutations
}

// NewWorld creates and initializes a new World with a specified initial
// capacity for entities. It pre-allocates memory for the entity metadata, the
// free ID list and the component columns.
//
// Parameters:
//   - initialCapacity: The number of entities to pre-allocate memory for.
//
// Returns:
//   - The newly created World.
func NewWorld(initialCapacity int) *World {
	if initialCapacity < 0 {
		initialCapacity = 0
	}
	w := &World{
		resources: &Resources{},
		entities: entityRegistry{
			capacity:        initialCapacity,
			initialCapacity: initialCapacity,
			freeIDs:         make([]uint32, initialCapacity),
			metas:           make([]entityMeta, initialCapacity),
			nextEntityVer:   1,
		},
		columns: columns{
			entityIDs:  make([]Entity, 0, initialCapacity),
			positions:  make([]Position, 0, initialCapacity),
			velocities: make([]Velocity, 0, initialCapacity),
			masses:     make([]Mass, 0, initialCapacity),
		},
	}
	for i := range w.entities.freeIDs {
		w.entities.freeIDs[i] = uint32(initialCapacity - 1 - i)
	}
	for i := range w.entities.metas {
		w.entities.metas[i].index = -1
	}
	return w
}

// Resources returns the world's resource store. It holds values shared by the
// whole simulation, such as the time-step and the gravitational constant.
func (w *World) Resources() *Resources {
	return w.resources
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.columns.entityIDs)
}

// Create appends a new entity with the given initial components and returns
// its identifier.
//
// The mass must be strictly positive (NaN is rejected as well). On error the
// population is unchanged.
func (w *World) Create(pos Position, vel Velocity, mass Mass) (Entity, error) {
	if !(mass.Value > 0) {
		return Entity{}, fmt.Errorf("%w: got %v", ErrInvalidMass, mass.Value)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.locked {
		return Entity{}, ErrWorldLocked
	}
	if len(w.entities.freeIDs) == 0 {
		w.expand(1)
	}
	// pop an ID
	last := len(w.entities.freeIDs) - 1
	id := w.entities.freeIDs[last]
	w.entities.freeIDs = w.entities.freeIDs[:last]
	meta := &w.entities.metas[id]
	meta.index = len(w.columns.entityIDs)
	meta.version = w.entities.nextEntityVer
	ent := Entity{ID: id, Version: meta.version}
	w.columns.entityIDs = append(w.columns.entityIDs, ent)
	w.columns.positions = append(w.columns.positions, pos)
	w.columns.velocities = append(w.columns.velocities, vel)
	w.columns.masses = append(w.columns.masses, mass)
	w.entities.nextEntityVer++
	w.mutationVersion++
	return ent, nil
}

// expand increases capacity when the free list is exhausted.
func (w *World) expand(additional int) {
	oldCap := w.entities.capacity
	newCap := oldCap * 2
	if newCap == 0 {
		newCap = 1
	}
	if newCap < oldCap+additional {
		newCap = oldCap + additional
	}
	delta := newCap - oldCap
	newMetas := make([]entityMeta, delta)
	for i := range newMetas {
		newMetas[i].index = -1
	}
	w.entities.metas = append(w.entities.metas, newMetas...)
	newFree := make([]uint32, delta)
	for i := range delta {
		newFree[i] = uint32(newCap - 1 - i)
	}
	w.entities.freeIDs = append(w.entities.freeIDs, newFree...)
	w.entities.capacity = newCap
}

// IsValid checks if the entity is currently alive in the world. An entity is
// valid if its ID is within bounds and its version matches the world's current
// version for that ID.
func (w *World) IsValid(e Entity) bool {
	if int(e.ID) >= len(w.entities.metas) {
		return false
	}
	meta := w.entities.metas[e.ID]
	return meta.version != 0 && meta.version == e.Version
}

// Get returns a snapshot of the components of e.
func (w *World) Get(e Entity) (Body, bool) {
	if !w.IsValid(e) {
		return Body{}, false
	}
	i := w.entities.metas[e.ID].index
	return Body{
		Entity:   e,
		Position: w.columns.positions[i],
		Velocity: w.columns.velocities[i],
		Mass:     w.columns.masses[i],
	}, true
}

// RemoveEntity removes a single entity. The last row is swapped into the hole
// and its meta is re-indexed, so identifiers held for other entities stay
// valid. Stale identifiers are ignored.
func (w *World) RemoveEntity(e Entity) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.locked {
		return ErrWorldLocked
	}
	if !w.IsValid(e) {
		return nil
	}
	meta := &w.entities.metas[e.ID]
	idx := meta.index
	lastIdx := len(w.columns.entityIDs) - 1
	c := &w.columns
	if idx < lastIdx {
		lastEnt := c.entityIDs[lastIdx]
		c.entityIDs[idx] = lastEnt
		c.positions[idx] = c.positions[lastIdx]
		c.velocities[idx] = c.velocities[lastIdx]
		c.masses[idx] = c.masses[lastIdx]
		w.entities.metas[lastEnt.ID].index = idx
	}
	c.entityIDs = c.entityIDs[:lastIdx]
	c.positions = c.positions[:lastIdx]
	c.velocities = c.velocities[:lastIdx]
	c.masses = c.masses[:lastIdx]
	meta.index = -1
	meta.version = 0
	w.entities.freeIDs = append(w.entities.freeIDs, e.ID)
	w.mutationVersion++
	return nil
}

// ClearEntities removes all entities from the world, recycling their IDs
// without deallocating memory.
func (w *World) ClearEntities() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.locked {
		return ErrWorldLocked
	}
	for i := range w.entities.metas {
		w.entities.metas[i].index = -1
		w.entities.metas[i].version = 0
	}
	w.entities.freeIDs = w.entities.freeIDs[:0]
	for i := w.entities.capacity - 1; i >= 0; i-- {
		w.entities.freeIDs = append(w.entities.freeIDs, uint32(i))
	}
	w.columns.entityIDs = w.columns.entityIDs[:0]
	w.columns.positions = w.columns.positions[:0]
	w.columns.velocities = w.columns.velocities[:0]
	w.columns.masses = w.columns.masses[:0]
	w.mutationVersion++
	return nil
}

// checkPopulation verifies that every column has one row per live entity.
func (w *World) checkPopulation() error {
	c := &w.columns
	n := len(c.entityIDs)
	if len(c.positions) != n || len(c.velocities) != n || len(c.masses) != n {
		return fmt.Errorf("%w: %d entities, %d positions, %d velocities, %d masses",
			ErrPopulationMismatch, n, len(c.positions), len(c.velocities), len(c.masses))
	}
	return nil
}

// lock marks the world as stepping. While locked, the population cannot change.
func (w *World) lock() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.locked {
		return ErrWorldLocked
	}
	w.locked = true
	return nil
}

func (w *World) unlock() {
	w.mu.Lock()
	w.locked = false
	w.mu.Unlock()
}
