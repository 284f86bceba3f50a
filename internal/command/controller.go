package command

import (
	"errors"

	"github.com/tilerts/sim/internal/core/event"
	"github.com/tilerts/sim/internal/geom"
	"github.com/tilerts/sim/internal/world"
	"go.uber.org/zap"
)

var (
	// ErrNoAbility means no selected unit or building has an ability on the key.
	ErrNoAbility = errors.New("no ability bound to key")
	// ErrNoPendingAbility means a target click arrived with no ability armed.
	ErrNoPendingAbility = errors.New("no pending ability")
)

// Controller is the command API the input layer calls between ticks. It
// resolves selections, move orders, and ability activations against the
// world. Not safe for concurrent use; calls must be serialized with Tick.
type Controller struct {
	world   *world.State
	log     *zap.Logger
	pending *world.Ability // armed point-targeted ability, nil when idle
}

func NewController(ws *world.State, log *zap.Logger) *Controller {
	return &Controller{world: ws, log: log}
}

// SelectBox selects every unit and building whose bounds intersect the box
// spanned by from and to. Everything else is deselected.
func (c *Controller) SelectBox(from, to geom.WorldPoint) (units, buildings int) {
	box := geom.RectFromPoints(from, to)
	c.world.ClearSelection()
	for _, u := range c.world.UnitsInRect(box) {
		u.Selected = true
		units++
	}
	c.world.EachBuilding(func(b *world.Building) {
		if box.Intersects(b.Footprint()) {
			b.Selected = true
			buildings++
		}
	})
	return units, buildings
}

// Move orders every selected unit toward target. Without queue the old
// waypoints are dropped first. A unit with no path gets target as a single
// direct waypoint. A non-finite target is rejected before any queue changes.
func (c *Controller) Move(target geom.WorldPoint, queue bool) error {
	if !target.IsFinite() {
		return world.ErrInvalidTarget
	}
	c.world.EachUnit(func(u *world.Unit) {
		if !u.Selected {
			return
		}
		if !queue {
			u.ClearWaypoints()
		}
		if !u.Pathfind(c.world.Map(), target) {
			c.log.Debug("no path, moving directly",
				zap.Uint32("uid", uint32(u.ID)),
				zap.Float64("x", target.X), zap.Float64("y", target.Y))
			u.QueueMove(target)
		}
	})
	return nil
}

// KeyDown activates the first ability bound to key on a selected unit, or
// failing that on a selected building. Non-targeted abilities cast at once;
// point-targeted ones are armed until the next Click.
func (c *Controller) KeyDown(key world.Keycode) error {
	ab, ok := c.findSelected(key)
	if !ok {
		return ErrNoAbility
	}
	if ab.Targeting() == world.PointTargeted {
		c.pending = &ab
		return nil
	}
	return c.cast(ab, func() error { return ab.Cast(c.world) })
}

// Click resolves the armed ability at target and clears it.
func (c *Controller) Click(target geom.WorldPoint) error {
	if c.pending == nil {
		return ErrNoPendingAbility
	}
	ab := *c.pending
	c.pending = nil
	return c.cast(ab, func() error { return ab.CastAt(c.world, target) })
}

// Pending returns the armed ability, if any.
func (c *Controller) Pending() (world.Ability, bool) {
	if c.pending == nil {
		return world.Ability{}, false
	}
	return *c.pending, true
}

// Cancel disarms the pending ability.
func (c *Controller) Cancel() {
	c.pending = nil
}

// SelectedAbilities returns the ability bar: abilities of the first
// selected unit, else of the first selected building.
func (c *Controller) SelectedAbilities() []world.Ability {
	for _, u := range c.world.Units() {
		if u.Selected {
			return u.Abilities
		}
	}
	for _, b := range c.world.Buildings() {
		if b.Selected {
			return b.Abilities
		}
	}
	return nil
}

func (c *Controller) findSelected(key world.Keycode) (world.Ability, bool) {
	for _, u := range c.world.Units() {
		if !u.Selected {
			continue
		}
		if ab, ok := u.Ability(key); ok {
			return ab, true
		}
	}
	for _, b := range c.world.Buildings() {
		if !b.Selected {
			continue
		}
		if ab, ok := b.Ability(key); ok {
			return ab, true
		}
	}
	return world.Ability{}, false
}

// cast runs fn and reports a failure to the log and the event bus.
func (c *Controller) cast(ab world.Ability, fn func() error) error {
	err := fn()
	if err != nil {
		c.log.Info("cast failed",
			zap.String("ability", ab.Name()),
			zap.Uint32("caster", uint32(ab.Caster())),
			zap.Error(err))
		event.Emit(c.world.Bus(), event.CastFailed{Caster: ab.Caster(), Ability: ab.Name(), Err: err})
	}
	return err
}
