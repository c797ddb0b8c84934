package geometry2D

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Standard meshes shared by the tests of the relaxation packages

// NewHexagonMesh returns a regular unit hexagon, nodes 0-5 on the boundary counter-clockwise,
// node 6 the interior node at the supplied location, fanned into six counter-clockwise cells
func NewHexagonMesh(interior r2.Vec) (points []r2.Vec, cells [][3]int) {
	points = hexagonPoints(interior)
	for i := 0; i < 6; i++ {
		cells = append(cells, [3]int{6, i, (i + 1) % 6})
	}
	return
}

// NewNonDelaunayHexagonMesh uses the same nodes as NewHexagonMesh but cuts the ear 0-1-2 off the fan.
// With the interior node near the center, edge 0-2 fails the circumcircle test.
func NewNonDelaunayHexagonMesh(interior r2.Vec) (points []r2.Vec, cells [][3]int) {
	points = hexagonPoints(interior)
	cells = [][3]int{
		{0, 1, 2},
		{6, 2, 3},
		{6, 3, 4},
		{6, 4, 5},
		{6, 5, 0},
		{6, 0, 2},
	}
	return
}

func hexagonPoints(interior r2.Vec) (points []r2.Vec) {
	points = make([]r2.Vec, 7)
	for i := 0; i < 6; i++ {
		theta := float64(i) * math.Pi / 3
		points[i] = r2.Vec{X: math.Cos(theta), Y: math.Sin(theta)}
	}
	points[6] = interior
	return
}

// NewSquareGridMesh triangulates the unit square with an (n+1) x (n+1) grid of nodes, n >= 1.
// Interior nodes are moved randomly by up to jitter times the grid spacing in each direction.
func NewSquareGridMesh(n int, jitter float64, seed int64) (points []r2.Vec, cells [][3]int) {
	var (
		h   = 1. / float64(n)
		rnd = rand.New(rand.NewSource(seed))
		idx = func(i, j int) int { return j*(n+1) + i }
	)
	points = make([]r2.Vec, (n+1)*(n+1))
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			pt := r2.Vec{X: float64(i) * h, Y: float64(j) * h}
			if i > 0 && i < n && j > 0 && j < n {
				pt.X += jitter * h * (2*rnd.Float64() - 1)
				pt.Y += jitter * h * (2*rnd.Float64() - 1)
			}
			points[idx(i, j)] = pt
		}
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			v00, v10, v01, v11 := idx(i, j), idx(i+1, j), idx(i, j+1), idx(i+1, j+1)
			if (i+j)%2 == 0 {
				cells = append(cells, [3]int{v00, v10, v11}, [3]int{v00, v11, v01})
			} else {
				cells = append(cells, [3]int{v00, v10, v01}, [3]int{v10, v11, v01})
			}
		}
	}
	return
}
