package nbody

import (
	"fmt"
	"reflect"
)

// DeltaTime is the fixed duration each step advances simulated time by.
type DeltaTime struct {
	Seconds float32
}

// Gravity holds the gravitational constant used by the force law.
type Gravity struct {
	G float32
}

// Cutoff suppresses pair contributions whose squared separation is greater
// than or equal to DistanceSq. Without a Cutoff resource every pair counts.
type Cutoff struct {
	DistanceSq float32
}

// ReferenceCutoff is the squared cutoff distance of the reference configuration.
const ReferenceCutoff float32 = 1e6

// Resources manages a collection of resources, ensuring no duplicate types are present at the same time.
// It uses a slice for storage, a map for quick type to ID mapping, and a free list for ID reuse.
// Resources are stored as pointers and looked up by their pointer type.
type Resources struct {
	items   []any
	types   map[reflect.Type]int
	freeIds []int
}

// Add adds a resource and returns its ID. Panics if a resource of the same type already exists.
// Reuses free IDs if available to avoid growing the slice unnecessarily.
func (r *Resources) Add(res any) int {
	if res == nil {
		panic("nbody: cannot add nil resource")
	}
	t := reflect.TypeOf(res)
	if r.types == nil {
		r.types = make(map[reflect.Type]int)
	}
	if _, ok := r.types[t]; ok {
		panic(fmt.Sprintf("nbody: resource of type %s already exists", t))
	}
	var id int
	if len(r.freeIds) > 0 {
		id = r.freeIds[len(r.freeIds)-1]
		r.freeIds = r.freeIds[:len(r.freeIds)-1]
		r.items[id] = res
	} else {
		r.items = append(r.items, res)
		id = len(r.items) - 1
	}
	r.types[t] = id
	return id
}

// Has checks if a resource with the given ID exists.
func (r *Resources) Has(id int) bool {
	return id >= 0 && id < len(r.items) && r.items[id] != nil
}

// Get retrieves the resource by ID, or nil if it doesn't exist.
func (r *Resources) Get(id int) any {
	if !r.Has(id) {
		return nil
	}
	return r.items[id]
}

// Remove removes the resource by ID if it exists, marking the ID as free for reuse.
func (r *Resources) Remove(id int) {
	if !r.Has(id) {
		return
	}
	res := r.items[id]
	delete(r.types, reflect.TypeOf(res))
	r.items[id] = nil
	r.freeIds = append(r.freeIds, id)
}

// Clear removes all resources, resetting the free list.
func (r *Resources) Clear() {
	for i := range r.items {
		r.items[i] = nil
	}
	r.items = r.items[:0]
	clear(r.types)
	r.freeIds = r.freeIds[:0]
}

// HasResource checks if a resource of type T exists, returning true and its ID, or false and -1.
func HasResource[T any](r *Resources) (bool, int) {
	t := reflect.TypeFor[*T]()
	if id, ok := r.types[t]; ok {
		return true, id
	}
	return false, -1
}

// GetResource retrieves the resource of type T if it exists, returning it as *T and its ID, or nil and -1.
func GetResource[T any](r *Resources) (*T, int) {
	t := reflect.TypeFor[*T]()
	if id, ok := r.types[t]; ok {
		return r.items[id].(*T), id
	}
	return nil, -1
}

// SetResource stores res as the resource of type T, replacing any previous one.
func SetResource[T any](r *Resources, res *T) int {
	if ok, id := HasResource[T](r); ok {
		r.items[id] = res
		return id
	}
	return r.Add(res)
}

// MustGetResource retrieves the resource of type T or panics if it is missing.
func MustGetResource[T any](r *Resources) *T {
	res, _ := GetResource[T](r)
	if res == nil {
		panic(fmt.Sprintf("nbody: required resource %s not found", reflect.TypeFor[T]()))
	}
	return res
}
