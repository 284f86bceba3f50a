package world

import (
	"fmt"

	"github.com/tilerts/sim/internal/core/event"
	"github.com/tilerts/sim/internal/core/store"
	"github.com/tilerts/sim/internal/core/uid"
	"github.com/tilerts/sim/internal/data"
	"github.com/tilerts/sim/internal/geom"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultTicksPerSecond   = 120
	DefaultTrainQueueMaxLen = 5
	DefaultTrainSeconds     = 3
)

// Options configures a new State.
type Options struct {
	TicksPerSecond   int
	TrainQueueMaxLen int // default capacity when a building type sets none
	Rules            Rules
	UIDs             *uid.Allocator
	Bus              *event.Bus
}

// State is the single mutable root of a session. It is owned by the
// simulation goroutine and is not safe for concurrent use.
type State struct {
	grid      *data.GridMap
	catalog   *data.Catalog
	units     *store.Ordered[uid.UID, Unit]
	buildings *store.Ordered[uid.UID, Building]
	unitGrid  *UnitGrid
	maxRadius float64 // largest unit radius spawned so far
	uids      *uid.Allocator
	bus       *event.Bus
	rules     Rules

	ticksPerSecond   int
	trainQueueMaxLen int
}

// NewState creates an empty world over the given map and catalog.
func NewState(grid *data.GridMap, catalog *data.Catalog, opts Options) *State {
	if opts.TicksPerSecond <= 0 {
		opts.TicksPerSecond = DefaultTicksPerSecond
	}
	if opts.TrainQueueMaxLen <= 0 {
		opts.TrainQueueMaxLen = DefaultTrainQueueMaxLen
	}
	if opts.Rules == nil {
		opts.Rules = FixedRules{Ticks: DefaultTrainSeconds * opts.TicksPerSecond}
	}
	if opts.UIDs == nil {
		opts.UIDs = uid.NewAllocator()
	}
	if opts.Bus == nil {
		opts.Bus = event.NewBus()
	}
	return &State{
		grid:             grid,
		catalog:          catalog,
		units:            store.NewOrdered[uid.UID, Unit](),
		buildings:        store.NewOrdered[uid.UID, Building](),
		unitGrid:         NewUnitGrid(),
		uids:             opts.UIDs,
		bus:              opts.Bus,
		rules:            opts.Rules,
		ticksPerSecond:   opts.TicksPerSecond,
		trainQueueMaxLen: opts.TrainQueueMaxLen,
	}
}

func (s *State) Map() *data.GridMap     { return s.grid }
func (s *State) Catalog() *data.Catalog { return s.catalog }
func (s *State) Bus() *event.Bus        { return s.bus }
func (s *State) Rules() Rules           { return s.rules }
func (s *State) TicksPerSecond() int    { return s.ticksPerSecond }
func (s *State) TrainQueueMaxLen() int  { return s.trainQueueMaxLen }
func (s *State) UnitCount() int         { return s.units.Len() }
func (s *State) BuildingCount() int     { return s.buildings.Len() }

// UnitType looks up a unit type in the catalog, nil when unknown.
func (s *State) UnitType(name string) *data.UnitType {
	return s.catalog.Unit(name)
}

// BuildingType looks up a building type in the catalog, nil when unknown.
func (s *State) BuildingType(name string) *data.BuildingType {
	return s.catalog.Building(name)
}

// MakeUnit spawns a unit of type ut at p with the type's default abilities.
func (s *State) MakeUnit(ut *data.UnitType, p geom.WorldPoint) (*Unit, error) {
	if ut == nil {
		return nil, ErrUnknownType
	}
	id, err := s.uids.Next()
	if err != nil {
		return nil, fmt.Errorf("make unit %s: %w", ut.Name, err)
	}
	u := &Unit{
		ID:   id,
		Pos:  p,
		Type: ut,
	}
	u.Abilities = s.abilitiesFor(id, ut.Abilities)
	s.units.Put(id, u)
	s.unitGrid.Add(id, p)
	s.maxRadius = max(s.maxRadius, ut.Radius)
	event.Emit(s.bus, event.UnitSpawned{UID: id, Type: ut.Name, Pos: p})
	return u, nil
}

// MakeBuilding spawns a building of type bt with its top-left corner on tl.
// The map tiles under the footprint are left as they are.
func (s *State) MakeBuilding(bt *data.BuildingType, tl geom.TilePoint) (*Building, error) {
	if bt == nil {
		return nil, ErrUnknownType
	}
	id, err := s.uids.Next()
	if err != nil {
		return nil, fmt.Errorf("make building %s: %w", bt.Name, err)
	}
	maxLen := bt.TrainQueueMaxLen
	if maxLen <= 0 {
		maxLen = s.trainQueueMaxLen
	}
	b := &Building{
		ID:               id,
		TopLeft:          tl,
		Type:             bt,
		TrainQueueMaxLen: maxLen,
		TrainQueue:       make([]UnitTraining, 0, maxLen),
	}
	b.Abilities = s.abilitiesFor(id, bt.Abilities)
	s.buildings.Put(id, b)
	event.Emit(s.bus, event.BuildingPlaced{UID: id, Type: bt.Name, TopLeft: tl})
	return b, nil
}

// GetUnit returns the unit with the given id, or false if none exists.
func (s *State) GetUnit(id uid.UID) (*Unit, bool) {
	return s.units.Get(id)
}

// GetBuilding returns the building with the given id, or false if none exists.
func (s *State) GetBuilding(id uid.UID) (*Building, bool) {
	return s.buildings.Get(id)
}

// Units returns all units in creation order.
func (s *State) Units() []*Unit {
	return s.units.Values()
}

// Buildings returns all buildings in creation order.
func (s *State) Buildings() []*Building {
	return s.buildings.Values()
}

// EachUnit visits units in creation order. Units created by fn are not visited.
func (s *State) EachUnit(fn func(*Unit)) {
	s.units.Each(fn)
}

// EachBuilding visits buildings in creation order.
func (s *State) EachBuilding(fn func(*Building)) {
	s.buildings.Each(fn)
}

// MoveUnit sets a unit's position and keeps the spatial index current.
// Positions of registered units must only change through here.
func (s *State) MoveUnit(u *Unit, p geom.WorldPoint) {
	s.unitGrid.Move(u.ID, u.Pos, p)
	u.Pos = p
}

// UnitsInRect returns every unit whose bounds intersect r, in creation order.
func (s *State) UnitsInRect(r geom.Rect) []*Unit {
	grown := geom.Rect{
		Min: r.Min.Sub(geom.Pt(s.maxRadius, s.maxRadius)),
		Max: r.Max.Add(geom.Pt(s.maxRadius, s.maxRadius)),
	}
	var out []*Unit
	for _, id := range s.unitGrid.Query(grown) {
		if u, ok := s.units.Get(id); ok && r.Intersects(u.Bounds()) {
			out = append(out, u)
		}
	}
	return out
}

// ClearSelection deselects every unit and building.
func (s *State) ClearSelection() {
	s.units.Each(func(u *Unit) { u.Selected = false })
	s.buildings.Each(func(b *Building) { b.Selected = false })
}

// abilitiesFor resolves catalog ability specs into caster-bound abilities.
// Specs are validated when the catalog is built.
func (s *State) abilitiesFor(caster uid.UID, specs []data.AbilitySpec) []Ability {
	out := make([]Ability, 0, len(specs))
	for _, spec := range specs {
		switch spec.Kind {
		case data.AbilityKindTrain:
			ab := NewTrain(caster, Keycode(spec.Key), s.catalog.Unit(spec.Unit))
			if spec.Name != "" {
				ab.name = spec.Name
			}
			out = append(out, ab)
		case data.AbilityKindBuild:
			ab := NewBuild(caster, Keycode(spec.Key), s.catalog.Building(spec.Building))
			if spec.Name != "" {
				ab.name = spec.Name
			}
			out = append(out, ab)
		}
	}
	return out
}
