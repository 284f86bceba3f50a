package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tilerts/sim/internal/geom"
)

const testMap = `
// 4x3 test map
4 3
..#.
.##.
....
`

func mustParse(t *testing.T, src string) *GridMap {
	t.Helper()
	m, err := ParseGridMap(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseGridMap: %v", err)
	}
	return m
}

func TestParseGridMap(t *testing.T) {
	m := mustParse(t, testMap)
	if m.Width() != 4 || m.Height() != 3 {
		t.Fatalf("Expected 4x3, got %dx%d", m.Width(), m.Height())
	}
	obstacles := map[geom.TilePoint]bool{{X: 2, Y: 0}: true, {X: 1, Y: 1}: true, {X: 2, Y: 1}: true}
	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			got, ok := m.GetTile(x, y)
			if !ok {
				t.Fatalf("Expected tile at (%d,%d)", x, y)
			}
			want := TileEmpty
			if obstacles[geom.TilePoint{X: x, Y: y}] {
				want = TileObstacle
			}
			if got != want {
				t.Errorf("(%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestParseGridMapFlattened(t *testing.T) {
	m := mustParse(t, "3 2\n. # . . . #\n")
	if tile, _ := m.GetTile(1, 0); tile != TileObstacle {
		t.Errorf("Expected obstacle at (1,0), got %v", tile)
	}
	if tile, _ := m.GetTile(2, 1); tile != TileObstacle {
		t.Errorf("Expected obstacle at (2,1), got %v", tile)
	}
}

func TestParseGridMapErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"bad header", "4\n....\n"},
		{"zero width", "0 2\n"},
		{"negative height", "2 -1\n"},
		{"overflowing area", "3037000500 3037000500\n..\n"},
		{"oversized area", "100000 100000\n..\n"},
		{"too few tiles", "2 2\n...\n"},
		{"too many tiles", "2 2\n.....\n"},
		{"unknown symbol", "2 1\n.x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseGridMap(strings.NewReader(tt.src)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoadGridMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.txt")
	if err := os.WriteFile(path, []byte(testMap), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadGridMap(path)
	if err != nil {
		t.Fatalf("LoadGridMap: %v", err)
	}
	if m.Width() != 4 {
		t.Errorf("Expected width 4, got %d", m.Width())
	}
	if _, err := LoadGridMap(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestNewGridMapLengthInvariant(t *testing.T) {
	if _, err := NewGridMap(3, 3, make([]GridTile, 8)); err == nil {
		t.Error("Expected error for short tile slice")
	}
	if _, err := NewGridMap(1<<16, 1<<16, nil); err == nil {
		t.Error("Expected error for oversized map")
	}
}

func TestGetTileOutOfBounds(t *testing.T) {
	m := mustParse(t, testMap)
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {100, 100}, {-100, -100}} {
		if _, ok := m.GetTile(c[0], c[1]); ok {
			t.Errorf("Expected no tile at %v", c)
		}
	}
}

func TestTilesRowMajorAndRestartable(t *testing.T) {
	m := mustParse(t, testMap)
	for pass := 0; pass < 2; pass++ {
		i := 0
		for tp, tile := range m.Tiles() {
			want := geom.TilePoint{X: i % 4, Y: i / 4}
			if tp != want {
				t.Fatalf("pass %d: expected %v at index %d, got %v", pass, want, i, tp)
			}
			if got, _ := m.GetTile(tp.X, tp.Y); got != tile {
				t.Errorf("Expected %v at %v, got %v", got, tp, tile)
			}
			i++
		}
		if i != 12 {
			t.Errorf("pass %d: expected 12 tiles, got %d", pass, i)
		}
	}
}

func TestTilesOverlappingRectOutside(t *testing.T) {
	m := mustParse(t, testMap)
	outside := []geom.Rect{
		geom.RectFromCenter(geom.Pt(-200, -200), 50),
		{Min: geom.Pt(1000, 0), Max: geom.Pt(1100, 100)},
		{Min: geom.Pt(0, 500), Max: geom.Pt(100, 600)},
	}
	for _, r := range outside {
		for tp := range m.TilesOverlappingRect(r) {
			t.Errorf("Expected no tiles for %v, got %v", r, tp)
		}
	}
}

func TestTilesOverlappingRectFullBounds(t *testing.T) {
	m := mustParse(t, testMap)
	seen := map[geom.TilePoint]int{}
	for tp := range m.TilesOverlappingRect(m.Bounds()) {
		seen[tp]++
	}
	if len(seen) != 12 {
		t.Fatalf("Expected 12 distinct tiles, got %d", len(seen))
	}
	for tp, n := range seen {
		if n != 1 {
			t.Errorf("Expected %v once, got %d", tp, n)
		}
	}
}

func TestTilesOverlappingRectInclusiveCorners(t *testing.T) {
	m := mustParse(t, testMap)
	// Spans from inside tile (0,0) to exactly the left edge of tile (2,1).
	r := geom.Rect{Min: geom.Pt(10, 10), Max: geom.Pt(128, 64)}
	var got []geom.TilePoint
	for tp := range m.TilesOverlappingRect(r) {
		got = append(got, tp)
	}
	want := []geom.TilePoint{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v at %d, got %v", want[i], i, got[i])
		}
	}
}

func TestTilesOverlappingRectPartiallyOutside(t *testing.T) {
	m := mustParse(t, testMap)
	r := geom.Rect{Min: geom.Pt(-50, -50), Max: geom.Pt(10, 10)}
	n := 0
	for tp := range m.TilesOverlappingRect(r) {
		if tp != (geom.TilePoint{}) {
			t.Errorf("Expected only (0,0), got %v", tp)
		}
		n++
	}
	if n != 1 {
		t.Errorf("Expected 1 tile, got %d", n)
	}
}

func TestAnyObstacleIn(t *testing.T) {
	m := mustParse(t, testMap)
	if !m.AnyObstacleIn(geom.RectFromCenter(geom.TilePoint{X: 2, Y: 0}.Center(), 4)) {
		t.Error("Expected obstacle inside tile (2,0)")
	}
	if m.AnyObstacleIn(geom.RectFromCenter(geom.TilePoint{X: 0, Y: 2}.Center(), 20)) {
		t.Error("Expected no obstacle around tile (0,2)")
	}
}
