package world

import (
	"github.com/tilerts/sim/internal/core/uid"
	"github.com/tilerts/sim/internal/data"
	"github.com/tilerts/sim/internal/geom"
	"github.com/tilerts/sim/internal/pathfind"
)

// Unit is a mobile entity walking a FIFO queue of world-space waypoints.
type Unit struct {
	ID        uid.UID
	Pos       geom.WorldPoint
	Type      *data.UnitType
	Waypoints []geom.WorldPoint // front is the immediate target
	Selected  bool
	Abilities []Ability
}

// QueueMove appends p to the end of the waypoint queue. A non-finite p is
// refused and false is returned.
func (u *Unit) QueueMove(p geom.WorldPoint) bool {
	if !p.IsFinite() {
		return false
	}
	u.Waypoints = append(u.Waypoints, p)
	return true
}

// ClearWaypoints drops every queued waypoint.
func (u *Unit) ClearWaypoints() {
	u.Waypoints = u.Waypoints[:0]
}

// MoveQueued reports whether the unit has somewhere to go.
func (u *Unit) MoveQueued() bool {
	return len(u.Waypoints) > 0
}

// NextWaypoint returns the front of the queue.
func (u *Unit) NextWaypoint() (geom.WorldPoint, bool) {
	if len(u.Waypoints) == 0 {
		return geom.WorldPoint{}, false
	}
	return u.Waypoints[0], true
}

// PopWaypoint removes the front of the queue.
func (u *Unit) PopWaypoint() {
	if len(u.Waypoints) == 0 {
		return
	}
	n := copy(u.Waypoints, u.Waypoints[1:])
	u.Waypoints = u.Waypoints[:n]
}

// PathSource is where a new path starts: the tail of the queue so commands
// chain, or the current position when the queue is empty.
func (u *Unit) PathSource() geom.WorldPoint {
	if n := len(u.Waypoints); n > 0 {
		return u.Waypoints[n-1]
	}
	return u.Pos
}

// Pathfind searches a tile path from PathSource to p and appends the center
// of every tile on it to the waypoint queue. On failure the queue is left
// untouched and false is returned.
func (u *Unit) Pathfind(g pathfind.Grid, p geom.WorldPoint) bool {
	src, ok := u.PathSource().ToTile()
	if !ok {
		return false
	}
	dst, ok := p.ToTile()
	if !ok {
		return false
	}
	path, ok := pathfind.FindPath(g, src, dst)
	if !ok {
		return false
	}
	for _, tp := range path {
		u.Waypoints = append(u.Waypoints, tp.Center())
	}
	return true
}

// Bounds returns the unit's bounding box at its current position.
func (u *Unit) Bounds() geom.Rect {
	return u.BoundsAt(u.Pos)
}

// BoundsAt returns the square of side 2*radius centered on p.
func (u *Unit) BoundsAt(p geom.WorldPoint) geom.Rect {
	return geom.RectFromCenter(p, u.Type.Radius)
}

// Ability returns the first ability bound to key.
func (u *Unit) Ability(key Keycode) (Ability, bool) {
	return findAbility(u.Abilities, key)
}
