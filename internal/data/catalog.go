package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Ability kinds accepted in catalog files.
const (
	AbilityKindTrain = "train"
	AbilityKindBuild = "build"
)

// AbilitySpec describes one ability every instance of a type starts with.
// Exactly one of Unit (train) or Building (build) is set, matching Kind.
type AbilitySpec struct {
	Kind     string `yaml:"kind"`
	Key      string `yaml:"key"`
	Name     string `yaml:"name"`
	Unit     string `yaml:"unit,omitempty"`
	Building string `yaml:"building,omitempty"`
}

// UnitType holds static data for a unit type loaded from YAML.
type UnitType struct {
	Name      string        `yaml:"name"`
	SpriteKey string        `yaml:"sprite"`
	Radius    float64       `yaml:"radius"` // world units
	BaseSpeed float64       `yaml:"speed"`  // world units per tick
	Abilities []AbilitySpec `yaml:"abilities"`
}

// BuildingType holds static data for a building type loaded from YAML.
type BuildingType struct {
	Name             string        `yaml:"name"`
	SpriteKey        string        `yaml:"sprite"`
	Width            int           `yaml:"width"`  // tiles
	Height           int           `yaml:"height"` // tiles
	TrainQueueMaxLen int           `yaml:"train_queue_max_len"` // 0 = use the sim default
	Abilities        []AbilitySpec `yaml:"abilities"`
}

type unitListFile struct {
	Units []UnitType `yaml:"units"`
}

type buildingListFile struct {
	Buildings []BuildingType `yaml:"buildings"`
}

// Catalog indexes unit and building types by name. Order of definition is
// kept so that "the first unit type" stays meaningful.
type Catalog struct {
	units     map[string]*UnitType
	buildings map[string]*BuildingType
	unitOrder []*UnitType
	bldOrder  []*BuildingType
}

// NewCatalog indexes the given types and checks that every ability spec
// references a known type.
func NewCatalog(units []UnitType, buildings []BuildingType) (*Catalog, error) {
	c := &Catalog{
		units:     make(map[string]*UnitType, len(units)),
		buildings: make(map[string]*BuildingType, len(buildings)),
	}
	for i := range units {
		u := &units[i]
		if u.Name == "" {
			return nil, fmt.Errorf("unit type %d: missing name", i)
		}
		if _, dup := c.units[u.Name]; dup {
			return nil, fmt.Errorf("duplicate unit type %q", u.Name)
		}
		if u.Radius <= 0 {
			return nil, fmt.Errorf("unit type %q: radius must be positive", u.Name)
		}
		if u.BaseSpeed < 0 {
			return nil, fmt.Errorf("unit type %q: negative speed", u.Name)
		}
		c.units[u.Name] = u
		c.unitOrder = append(c.unitOrder, u)
	}
	for i := range buildings {
		b := &buildings[i]
		if b.Name == "" {
			return nil, fmt.Errorf("building type %d: missing name", i)
		}
		if _, dup := c.buildings[b.Name]; dup {
			return nil, fmt.Errorf("duplicate building type %q", b.Name)
		}
		if b.Width <= 0 || b.Height <= 0 {
			return nil, fmt.Errorf("building type %q: invalid footprint %dx%d", b.Name, b.Width, b.Height)
		}
		if b.TrainQueueMaxLen < 0 {
			return nil, fmt.Errorf("building type %q: negative train_queue_max_len", b.Name)
		}
		c.buildings[b.Name] = b
		c.bldOrder = append(c.bldOrder, b)
	}

	for _, u := range c.unitOrder {
		if err := c.checkSpecs(u.Name, u.Abilities); err != nil {
			return nil, err
		}
	}
	for _, b := range c.bldOrder {
		if err := c.checkSpecs(b.Name, b.Abilities); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) checkSpecs(owner string, specs []AbilitySpec) error {
	for i, s := range specs {
		if s.Key == "" {
			return fmt.Errorf("%s ability %d: missing key", owner, i)
		}
		switch s.Kind {
		case AbilityKindTrain:
			if c.units[s.Unit] == nil {
				return fmt.Errorf("%s ability %d: unknown unit type %q", owner, i, s.Unit)
			}
		case AbilityKindBuild:
			if c.buildings[s.Building] == nil {
				return fmt.Errorf("%s ability %d: unknown building type %q", owner, i, s.Building)
			}
		default:
			return fmt.Errorf("%s ability %d: unknown kind %q", owner, i, s.Kind)
		}
	}
	return nil
}

// LoadCatalog loads unit and building types from two YAML files.
func LoadCatalog(unitPath, buildingPath string) (*Catalog, error) {
	raw, err := os.ReadFile(unitPath)
	if err != nil {
		return nil, fmt.Errorf("read unit list %s: %w", unitPath, err)
	}
	var uf unitListFile
	if err := yaml.Unmarshal(raw, &uf); err != nil {
		return nil, fmt.Errorf("parse unit list: %w", err)
	}

	raw, err = os.ReadFile(buildingPath)
	if err != nil {
		return nil, fmt.Errorf("read building list %s: %w", buildingPath, err)
	}
	var bf buildingListFile
	if err := yaml.Unmarshal(raw, &bf); err != nil {
		return nil, fmt.Errorf("parse building list: %w", err)
	}

	return NewCatalog(uf.Units, bf.Buildings)
}

// Unit returns a unit type by name, or nil if not found.
func (c *Catalog) Unit(name string) *UnitType {
	return c.units[name]
}

// Building returns a building type by name, or nil if not found.
func (c *Catalog) Building(name string) *BuildingType {
	return c.buildings[name]
}

// Units returns unit types in definition order.
func (c *Catalog) Units() []*UnitType {
	return c.unitOrder
}

// Buildings returns building types in definition order.
func (c *Catalog) Buildings() []*BuildingType {
	return c.bldOrder
}

// Count returns the number of unit and building types.
func (c *Catalog) Count() int {
	return len(c.units) + len(c.buildings)
}
