package pathfind

import (
	"strings"
	"testing"

	"github.com/tilerts/sim/internal/data"
	"github.com/tilerts/sim/internal/geom"
)

func parse(t *testing.T, src string) *data.GridMap {
	t.Helper()
	m, err := data.ParseGridMap(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseGridMap: %v", err)
	}
	return m
}

func manhattan(a, b geom.TilePoint) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func checkContiguous(t *testing.T, src geom.TilePoint, path []geom.TilePoint) {
	t.Helper()
	prev := src
	for i, tp := range path {
		if manhattan(prev, tp) != 1 {
			t.Fatalf("step %d: %v -> %v is not a 4-connected move", i, prev, tp)
		}
		prev = tp
	}
}

func TestFindPathOpenGridIsManhattan(t *testing.T) {
	m, err := data.EmptyGridMap(7, 5)
	if err != nil {
		t.Fatal(err)
	}
	pairs := [][2]geom.TilePoint{
		{{X: 0, Y: 0}, {X: 6, Y: 4}},
		{{X: 6, Y: 4}, {X: 0, Y: 0}},
		{{X: 3, Y: 2}, {X: 3, Y: 0}},
		{{X: 0, Y: 4}, {X: 5, Y: 1}},
		{{X: 2, Y: 2}, {X: 2, Y: 2}},
	}
	for _, p := range pairs {
		path, ok := FindPath(m, p[0], p[1])
		if !ok {
			t.Fatalf("Expected path %v -> %v", p[0], p[1])
		}
		if len(path) != manhattan(p[0], p[1]) {
			t.Errorf("%v -> %v: expected %d steps, got %d", p[0], p[1], manhattan(p[0], p[1]), len(path))
		}
		checkContiguous(t, p[0], path)
		if len(path) > 0 && path[len(path)-1] != p[1] {
			t.Errorf("Expected path to end at %v, got %v", p[1], path[len(path)-1])
		}
	}
}

func TestFindPathDeterministicTieBreak(t *testing.T) {
	m, _ := data.EmptyGridMap(3, 3)
	path, ok := FindPath(m, geom.TilePoint{}, geom.TilePoint{X: 2, Y: 2})
	if !ok {
		t.Fatal("Expected path")
	}
	want := []geom.TilePoint{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}}
	if len(path) != len(want) {
		t.Fatalf("Expected %v, got %v", want, path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, path)
			break
		}
	}
}

func TestFindPathAroundWall(t *testing.T) {
	m := parse(t, `5 4
.....
.###.
...#.
.....
`)
	src := geom.TilePoint{X: 2, Y: 2}
	dst := geom.TilePoint{X: 2, Y: 0}
	path, ok := FindPath(m, src, dst)
	if !ok {
		t.Fatal("Expected a detour")
	}
	checkContiguous(t, src, path)
	for _, tp := range path {
		if !m.IsEmpty(tp) {
			t.Errorf("Path crosses obstacle at %v", tp)
		}
	}
	// Left around the wall: (1,2)(0,2)(0,1)(0,0)(1,0)(2,0).
	if len(path) != 6 {
		t.Errorf("Expected 6 steps, got %d: %v", len(path), path)
	}
}

func TestFindPathObstacleDestination(t *testing.T) {
	m := parse(t, "3 3\n...\n.#.\n...\n")
	if _, ok := FindPath(m, geom.TilePoint{}, geom.TilePoint{X: 1, Y: 1}); ok {
		t.Error("Expected no path into an obstacle")
	}
}

func TestFindPathDisconnected(t *testing.T) {
	m := parse(t, "5 3\n..#..\n..#..\n..#..\n")
	if _, ok := FindPath(m, geom.TilePoint{}, geom.TilePoint{X: 4, Y: 2}); ok {
		t.Error("Expected no path across a full wall")
	}
}

func TestFindPathOutOfBounds(t *testing.T) {
	m, _ := data.EmptyGridMap(3, 3)
	if _, ok := FindPath(m, geom.TilePoint{}, geom.TilePoint{X: 3, Y: 0}); ok {
		t.Error("Expected no path to an off-grid tile")
	}
	if _, ok := FindPath(m, geom.TilePoint{X: -1, Y: 0}, geom.TilePoint{X: 1, Y: 1}); ok {
		t.Error("Expected no path from an off-grid tile")
	}
}

func TestFindPathFromObstacleSource(t *testing.T) {
	// A unit standing on an obstacle tile can still walk off it.
	m := parse(t, "3 1\n#..\n")
	path, ok := FindPath(m, geom.TilePoint{}, geom.TilePoint{X: 2, Y: 0})
	if !ok || len(path) != 2 {
		t.Errorf("Expected 2-step path, got %v (%v)", path, ok)
	}
}
