package data

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"github.com/tilerts/sim/internal/geom"
)

// GridTile is the static content of one map cell.
type GridTile uint8

const (
	TileEmpty GridTile = iota
	TileObstacle
)

func (t GridTile) String() string {
	switch t {
	case TileEmpty:
		return "Empty"
	case TileObstacle:
		return "Obstacle"
	default:
		return fmt.Sprintf("GridTile(%d)", uint8(t))
	}
}

// maxTiles bounds width*height for loaded and constructed maps.
const maxTiles = 1 << 24

// Map file symbols.
const (
	symbolEmpty    = '.'
	symbolObstacle = '#'
)

// GridMap is the static tile grid. It never changes after load.
type GridMap struct {
	width  int
	height int
	tiles  []GridTile // row-major: tiles[y*width+x]
}

// NewGridMap builds a map from row-major tiles. len(tiles) must equal width*height.
func NewGridMap(width, height int, tiles []GridTile) (*GridMap, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if len(tiles) != width*height {
		return nil, fmt.Errorf("map %dx%d needs %d tiles, got %d", width, height, width*height, len(tiles))
	}
	cp := make([]GridTile, len(tiles))
	copy(cp, tiles)
	return &GridMap{width: width, height: height, tiles: cp}, nil
}

// EmptyGridMap returns an obstacle-free map.
func EmptyGridMap(width, height int) (*GridMap, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	return NewGridMap(width, height, make([]GridTile, width*height))
}

func (m *GridMap) Width() int  { return m.width }
func (m *GridMap) Height() int { return m.height }

// Contains reports whether tp lies inside the grid.
func (m *GridMap) Contains(tp geom.TilePoint) bool {
	return tp.X >= 0 && tp.X < m.width && tp.Y >= 0 && tp.Y < m.height
}

// GetTile returns the tile at (x, y), or false when out of range.
func (m *GridMap) GetTile(x, y int) (GridTile, bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0, false
	}
	return m.tiles[y*m.width+x], true
}

// IsEmpty reports whether tp is an in-bounds Empty tile.
func (m *GridMap) IsEmpty(tp geom.TilePoint) bool {
	t, ok := m.GetTile(tp.X, tp.Y)
	return ok && t == TileEmpty
}

// Bounds returns the world rectangle covered by the whole grid.
func (m *GridMap) Bounds() geom.Rect {
	return geom.TileRect(geom.TilePoint{}, m.width, m.height)
}

// Tiles yields every tile in row-major order. The sequence can be ranged over
// any number of times.
func (m *GridMap) Tiles() iter.Seq2[geom.TilePoint, GridTile] {
	return func(yield func(geom.TilePoint, GridTile) bool) {
		for y := 0; y < m.height; y++ {
			for x := 0; x < m.width; x++ {
				if !yield(geom.TilePoint{X: x, Y: y}, m.tiles[y*m.width+x]) {
					return
				}
			}
		}
	}
}

// TilesOverlappingRect yields every tile whose cell intersects r. The tile
// range is inclusive at both corners, so a rectangle edge lying on a tile
// boundary reports the tile beyond it as well.
func (m *GridMap) TilesOverlappingRect(r geom.Rect) iter.Seq2[geom.TilePoint, GridTile] {
	return func(yield func(geom.TilePoint, GridTile) bool) {
		clamped, ok := r.Clamp(m.Bounds())
		if !ok {
			return
		}
		tl, ok := clamped.Min.ToTile()
		if !ok {
			return
		}
		br, ok := clamped.Max.ToTile()
		if !ok {
			return
		}
		// Max may sit exactly on the far map edge after clamping.
		br.X = min(br.X, m.width-1)
		br.Y = min(br.Y, m.height-1)
		for y := tl.Y; y <= br.Y; y++ {
			for x := tl.X; x <= br.X; x++ {
				if !yield(geom.TilePoint{X: x, Y: y}, m.tiles[y*m.width+x]) {
					return
				}
			}
		}
	}
}

// AnyObstacleIn reports whether any tile overlapping r is an Obstacle.
func (m *GridMap) AnyObstacleIn(r geom.Rect) bool {
	for _, t := range m.TilesOverlappingRect(r) {
		if t == TileObstacle {
			return true
		}
	}
	return false
}

// LoadGridMap reads a plain-text map file.
func LoadGridMap(path string) (*GridMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map %s: %w", path, err)
	}
	defer f.Close()

	m, err := ParseGridMap(f)
	if err != nil {
		return nil, fmt.Errorf("parse map %s: %w", path, err)
	}
	return m, nil
}

// ParseGridMap parses the text map format: a "<width> <height>" header line
// followed by width*height tile symbols ('.' empty, '#' obstacle). Whitespace
// between symbols is ignored, so rows may be laid out freely. Blank lines and
// lines starting with "//" are skipped.
func ParseGridMap(r io.Reader) (*GridMap, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	width, height := -1, -1
	var tiles []GridTile
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if width < 0 {
			w, h, err := parseHeader(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			width, height = w, h
			continue
		}

		for _, c := range line {
			switch c {
			case ' ', '\t':
				continue
			case symbolEmpty:
				tiles = append(tiles, TileEmpty)
			case symbolObstacle:
				tiles = append(tiles, TileObstacle)
			default:
				return nil, fmt.Errorf("line %d: unknown tile symbol %q", lineNo, c)
			}
		}
		if len(tiles) > width*height {
			return nil, fmt.Errorf("line %d: more than %d tiles", lineNo, width*height)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if width < 0 {
		return nil, fmt.Errorf("missing dimensions header")
	}
	return NewGridMap(width, height, tiles)
}

func parseHeader(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected \"<width> <height>\", got %q", line)
	}
	w, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("width: %w", err)
	}
	h, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("height: %w", err)
	}
	if err := checkDimensions(w, h); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

func checkDimensions(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid map dimensions %dx%d", w, h)
	}
	if w > maxTiles/h {
		return fmt.Errorf("map %dx%d exceeds %d tiles", w, h, maxTiles)
	}
	return nil
}
