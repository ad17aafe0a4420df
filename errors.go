package nbody

import "errors"

var (
	// ErrInvalidMass is returned when an entity is created with a mass that is
	// not strictly positive.
	ErrInvalidMass = errors.New("nbody: mass must be strictly positive")

	// ErrPopulationMismatch reports that the co-indexed component columns no
	// longer have the same length. It indicates a bug, not a runtime condition.
	ErrPopulationMismatch = errors.New("nbody: component population mismatch")

	// ErrWorldLocked is returned when the entity population is changed while
	// a step is running.
	ErrWorldLocked = errors.New("nbody: world is locked by a running step")

	ErrUnknownStage    = errors.New("nbody: unknown stage")
	ErrDuplicateStage  = errors.New("nbody: duplicate stage name")
	ErrStageConflict   = errors.New("nbody: conflicting stage access without dependency")
	ErrMissingResource = errors.New("nbody: missing resource")
	ErrInvalidConfig   = errors.New("nbody: invalid config")
)
