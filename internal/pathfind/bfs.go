package pathfind

import "github.com/tilerts/sim/internal/geom"

// Grid is the passability view the search needs. *data.GridMap satisfies it.
type Grid interface {
	Width() int
	Height() int
	// IsEmpty reports whether tp is in bounds and walkable.
	IsEmpty(tp geom.TilePoint) bool
}

// Neighbor expansion order: W, N, E, S. Fixed so that ties between equally
// short paths always resolve the same way.
var dirVectors = [4]geom.TilePoint{
	{X: -1, Y: 0},
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
}

const (
	costStep = 1
	noParent = -1
)

// node records how a tile was first reached.
type node struct {
	parent int // flat index of the previous tile, noParent for the source
	cost   int // cumulative path cost from the source
}

// FindPath runs a breadth-first search from src to dst over 4-connected
// tiles. The source tile is always accepted as a starting point; every other
// tile on the path must be Empty. The returned path excludes src and ends at
// dst. ok is false when dst cannot be reached or src lies off the grid.
func FindPath(g Grid, src, dst geom.TilePoint) (path []geom.TilePoint, ok bool) {
	w, h := g.Width(), g.Height()
	inBounds := func(tp geom.TilePoint) bool {
		return tp.X >= 0 && tp.X < w && tp.Y >= 0 && tp.Y < h
	}
	if !inBounds(src) || !inBounds(dst) {
		return nil, false
	}
	if src == dst {
		return []geom.TilePoint{}, true
	}
	if !g.IsEmpty(dst) {
		return nil, false
	}

	visited := make([]bool, w*h)
	nodes := make([]node, w*h)
	queue := make([]int, 0, w+h)

	srcIdx := src.Y*w + src.X
	dstIdx := dst.Y*w + dst.X
	visited[srcIdx] = true
	nodes[srcIdx] = node{parent: noParent}
	queue = append(queue, srcIdx)

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if cur == dstIdx {
			return reconstruct(nodes, dstIdx, w), true
		}
		cx, cy := cur%w, cur/w
		for _, d := range dirVectors {
			next := geom.TilePoint{X: cx + d.X, Y: cy + d.Y}
			if !inBounds(next) {
				continue
			}
			idx := next.Y*w + next.X
			if visited[idx] || !g.IsEmpty(next) {
				continue
			}
			visited[idx] = true
			nodes[idx] = node{parent: cur, cost: nodes[cur].cost + costStep}
			queue = append(queue, idx)
		}
	}
	return nil, false
}

// reconstruct walks parent links back from dst and returns the path in
// source-to-destination order, without the source itself.
func reconstruct(nodes []node, dstIdx, w int) []geom.TilePoint {
	path := make([]geom.TilePoint, 0, nodes[dstIdx].cost)
	for idx := dstIdx; nodes[idx].parent != noParent; idx = nodes[idx].parent {
		path = append(path, geom.TilePoint{X: idx % w, Y: idx / w})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
