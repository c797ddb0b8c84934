package geometry2D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

func (tm *TriMesh) edgeLengths(k int) (la, lb, lc float64) {
	a, b, c := tm.CellVertices(k)
	// la is opposite to a
	la, lb, lc = r2.Norm(r2.Sub(c, b)), r2.Norm(r2.Sub(a, c)), r2.Norm(r2.Sub(b, a))
	return
}

// CellQualities returns 2*r_in/r_circ per cell, 1 for an equilateral triangle and 0 when degenerate
func (tm *TriMesh) CellQualities() (q []float64) {
	q = make([]float64, len(tm.Cells))
	for k := range tm.Cells {
		la, lb, lc := tm.edgeLengths(k)
		q[k] = (lb + lc - la) * (lc + la - lb) * (la + lb - lc) / (la * lb * lc)
	}
	return
}

// CellAngles returns the interior angles of each cell in radians, ordered as the cell's vertices
func (tm *TriMesh) CellAngles() (angles [][3]float64) {
	angle := func(opp, s1, s2 float64) float64 {
		cos := (s1*s1 + s2*s2 - opp*opp) / (2 * s1 * s2)
		return math.Acos(math.Max(-1, math.Min(1, cos)))
	}
	angles = make([][3]float64, len(tm.Cells))
	for k := range tm.Cells {
		la, lb, lc := tm.edgeLengths(k)
		angles[k] = [3]float64{angle(la, lb, lc), angle(lb, lc, la), angle(lc, la, lb)}
	}
	return
}
