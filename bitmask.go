package nbody

// bitmask represents a set of component columns. Each bit corresponds to a
// ComponentID; a set bit means the column is part of the set.
type bitmask uint64

// set enables the bit corresponding to the given component ID.
func (m *bitmask) set(id ComponentID) {
	*m |= bitmask(1) << id
}

// unset disables the bit corresponding to the given component ID.
func (m *bitmask) unset(id ComponentID) {
	*m &^= bitmask(1) << id
}

// containsBit checks if a specific column is in the set.
func (m bitmask) containsBit(id ComponentID) bool {
	return m&(bitmask(1)<<id) != 0
}

// intersects checks if the two sets share any column.
func (m bitmask) intersects(other bitmask) bool {
	return m&other != 0
}

// maskOf builds a set from a list of component IDs.
func maskOf(ids ...ComponentID) bitmask {
	var m bitmask
	for _, id := range ids {
		m.set(id)
	}
	return m
}

// Access declares which columns a stage reads and which it writes. A column in
// Writes is implicitly readable.
type Access struct {
	Reads  bitmask
	Writes bitmask
}

// Read returns an Access that reads the given columns.
func Read(ids ...ComponentID) Access {
	return Access{Reads: maskOf(ids...)}
}

// Write adds the given columns to the written set.
func (a Access) Write(ids ...ComponentID) Access {
	a.Writes |= maskOf(ids...)
	return a
}

// CanRead reports whether the access covers reading id.
func (a Access) CanRead(id ComponentID) bool {
	return (a.Reads | a.Writes).containsBit(id)
}

// CanWrite reports whether the access covers writing id.
func (a Access) CanWrite(id ComponentID) bool {
	return a.Writes.containsBit(id)
}

// ConflictsWith reports whether two accesses cannot be held at the same time:
// either one writes a column the other touches.
func (a Access) ConflictsWith(b Access) bool {
	return a.Writes.intersects(b.Reads|b.Writes) || b.Writes.intersects(a.Reads|a.Writes)
}
