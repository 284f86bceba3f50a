package world

import "errors"

var (
	// ErrQueueFull rejects a training request on a building whose queue is at capacity.
	ErrQueueFull = errors.New("training queue full")
	// ErrCasterNotFound means the ability's caster no longer exists. Only the cast is aborted.
	ErrCasterNotFound = errors.New("caster not found")
	// ErrNeedsTarget is returned when a point-targeted ability is cast without a point.
	ErrNeedsTarget = errors.New("ability needs a target point")
	// ErrInvalidTarget rejects a target point that maps to no valid placement.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrUnknownType rejects spawning a nil or unregistered type.
	ErrUnknownType = errors.New("unknown entity type")
)
