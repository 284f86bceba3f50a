package geom

import "math"

// TileWidth is the world-space side length of one grid tile.
const TileWidth = 64

// WorldPoint is a position in continuous world space. Origin is the top-left
// corner of tile (0,0); Y grows downward.
type WorldPoint struct {
	X float64
	Y float64
}

func Pt(x, y float64) WorldPoint { return WorldPoint{X: x, Y: y} }

func (p WorldPoint) Add(o WorldPoint) WorldPoint { return WorldPoint{X: p.X + o.X, Y: p.Y + o.Y} }
func (p WorldPoint) Sub(o WorldPoint) WorldPoint { return WorldPoint{X: p.X - o.X, Y: p.Y - o.Y} }
func (p WorldPoint) Scale(k float64) WorldPoint  { return WorldPoint{X: p.X * k, Y: p.Y * k} }

// Magnitude returns the euclidean length of p treated as a vector.
func (p WorldPoint) Magnitude() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Normalized returns the unit vector in p's direction. The zero vector is
// returned unchanged.
func (p WorldPoint) Normalized() WorldPoint {
	if p.X == 0 && p.Y == 0 {
		return p
	}
	m := p.Magnitude()
	return WorldPoint{X: p.X / m, Y: p.Y / m}
}

// IsFinite reports whether neither coordinate is NaN or infinite.
func (p WorldPoint) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// ToTile returns the tile containing p. Negative and non-finite coordinates
// have no tile.
func (p WorldPoint) ToTile() (TilePoint, bool) {
	if !p.IsFinite() || p.X < 0 || p.Y < 0 {
		return TilePoint{}, false
	}
	return TilePoint{X: int(p.X / TileWidth), Y: int(p.Y / TileWidth)}, true
}

// TilePoint is an integer grid coordinate.
type TilePoint struct {
	X int
	Y int
}

func (t TilePoint) Add(o TilePoint) TilePoint { return TilePoint{X: t.X + o.X, Y: t.Y + o.Y} }

// ToWorld returns the world position of the tile's top-left corner.
func (t TilePoint) ToWorld() WorldPoint {
	return WorldPoint{X: float64(t.X * TileWidth), Y: float64(t.Y * TileWidth)}
}

// Center returns the world position of the middle of the tile.
func (t TilePoint) Center() WorldPoint {
	return t.ToWorld().Add(WorldPoint{X: TileWidth / 2, Y: TileWidth / 2})
}

// Rect is a closed axis-aligned rectangle in world space. Min is the top-left
// corner and Max the bottom-right; both edges belong to the rectangle.
type Rect struct {
	Min WorldPoint
	Max WorldPoint
}

// RectFromPoints builds the rectangle spanned by two arbitrary corners.
func RectFromPoints(a, b WorldPoint) Rect {
	return Rect{
		Min: WorldPoint{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: WorldPoint{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// RectFromCenter builds a square of side 2*half centered on c.
func RectFromCenter(c WorldPoint, half float64) Rect {
	return Rect{
		Min: WorldPoint{X: c.X - half, Y: c.Y - half},
		Max: WorldPoint{X: c.X + half, Y: c.Y + half},
	}
}

// TileRect returns the world rectangle covered by a w*h block of tiles whose
// top-left tile is tl.
func TileRect(tl TilePoint, w, h int) Rect {
	return Rect{
		Min: tl.ToWorld(),
		Max: tl.Add(TilePoint{X: w, Y: h}).ToWorld(),
	}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Intersects reports whether r and o share at least one point.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p WorldPoint) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Clamp returns the part of r inside bounds, or false when they do not meet.
func (r Rect) Clamp(bounds Rect) (Rect, bool) {
	if !r.Intersects(bounds) {
		return Rect{}, false
	}
	return Rect{
		Min: WorldPoint{X: math.Max(r.Min.X, bounds.Min.X), Y: math.Max(r.Min.Y, bounds.Min.Y)},
		Max: WorldPoint{X: math.Min(r.Max.X, bounds.Max.X), Y: math.Min(r.Max.Y, bounds.Max.Y)},
	}, true
}
