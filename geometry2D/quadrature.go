package geometry2D

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// CubatureRule holds nodes in barycentric coordinates and weights normalized to a unit area triangle
type CubatureRule struct {
	Order       int // Polynomials up to this degree are integrated exactly
	Barycentric [][3]float64
	Weights     []float64
}

// Dunavant2 is the three point, degree two rule of Dunavant (1985)
var Dunavant2 = CubatureRule{
	Order: 2,
	Barycentric: [][3]float64{
		{2. / 3., 1. / 6., 1. / 6.},
		{1. / 6., 2. / 3., 1. / 6.},
		{1. / 6., 1. / 6., 2. / 3.},
	},
	Weights: []float64{1. / 3., 1. / 3., 1. / 3.},
}

// Integrate returns the integral of f over each cell
func (tm *TriMesh) Integrate(f func(x r2.Vec) float64, rule CubatureRule) (vals []float64) {
	vals = make([]float64, len(tm.Cells))
	for k := range tm.Cells {
		var (
			a, b, c = tm.CellVertices(k)
			sum     float64
		)
		for q, bc := range rule.Barycentric {
			x := r2.Add(r2.Scale(bc[0], a), r2.Add(r2.Scale(bc[1], b), r2.Scale(bc[2], c)))
			sum += rule.Weights[q] * f(x)
		}
		vals[k] = sum * tm.CellVolumes[k]
	}
	return
}
