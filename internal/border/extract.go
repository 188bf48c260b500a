package border

import (
	"context"
	"fmt"
	"image"
)

// ctxCheckInterval is how many BFS steps run between cancellation checks.
const ctxCheckInterval = 4096

// Extraction is the result of one vertex extraction pass.
type Extraction struct {
	Found     bool        // false when the mask holds no boundary cell
	Start     image.Point // first boundary cell, the BFS root
	StartPair Pair
	Vertices  []image.Point // in discovery order
	Visited   int           // boundary cells reached from Start
}

var neighbours = [4]image.Point{{X: -1}, {X: 1}, {Y: -1}, {Y: 1}}

// FirstBoundary returns the first boundary cell, scanning columns left to
// right and each column top to bottom.
func FirstBoundary(m *Mask) (image.Point, bool) {
	for x := 0; x < m.width; x++ {
		for y := 0; y < m.height; y++ {
			if m.cells[y*m.width+x].IsSet() {
				return image.Point{X: x, Y: y}, true
			}
		}
	}
	return image.Point{}, false
}

// Extract flood-fills the boundary component containing the first boundary
// cell and returns the junction vertices: cells whose unordered pair differs
// from the pair of the cell they were reached from. Each cell is visited at
// most once.
//
// An empty mask is not an error; the result has Found == false.
func Extract(ctx context.Context, m *Mask) (Extraction, error) {
	start, ok := FirstBoundary(m)
	if !ok {
		return Extraction{}, nil
	}
	ex := Extraction{
		Found:     true,
		Start:     start,
		StartPair: m.At(start.X, start.Y),
	}

	visited := make([]bool, len(m.cells))
	visited[start.Y*m.width+start.X] = true
	queue := []image.Point{start}

	for head := 0; head < len(queue); head++ {
		if head%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return ex, fmt.Errorf("vertex extraction: %w", err)
			}
		}
		cur := queue[head]
		pair := m.cells[cur.Y*m.width+cur.X]

		for _, d := range neighbours {
			nx, ny := cur.X+d.X, cur.Y+d.Y
			if nx < 0 || nx >= m.width || ny < 0 || ny >= m.height {
				continue
			}
			i := ny*m.width + nx
			if visited[i] || !m.cells[i].IsSet() {
				continue
			}
			visited[i] = true
			if !m.cells[i].Same(pair) {
				ex.Vertices = append(ex.Vertices, image.Point{X: nx, Y: ny})
			}
			queue = append(queue, image.Point{X: nx, Y: ny})
		}
	}
	ex.Visited = len(queue)
	return ex, nil
}
