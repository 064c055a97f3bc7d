package brush

import "errors"

// Engine errors.
var (
	// ErrEmptyRegion is returned when an average is requested over a zero-area region.
	ErrEmptyRegion = errors.New("brush: empty region")

	// ErrNoTerrainHit is returned when a tick is active but the pointer is not over terrain.
	ErrNoTerrainHit = errors.New("brush: no terrain under pointer")

	// ErrInvalidAction is returned when the configured action is not one of the known kinds.
	ErrInvalidAction = errors.New("brush: invalid action")
)
