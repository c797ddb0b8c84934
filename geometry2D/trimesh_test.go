package geometry2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/odtmesh/types"
)

func TestTriMesh(t *testing.T) {
	{ // Test topology of the hexagon fan
		points, cells := NewHexagonMesh(r2.Vec{})
		tm := NewTriMesh(points, cells)
		assert.Equal(t, 7, tm.NumNodes())
		assert.Equal(t, 6, tm.NumCells())
		assert.Equal(t, 12, len(tm.Edges))
		var nBoundary int
		for _, e := range tm.Edges {
			if e.IsBoundary() {
				nBoundary++
			}
		}
		assert.Equal(t, 6, nBoundary)
		for i := 0; i < 6; i++ {
			assert.False(t, tm.IsInteriorNode[i])
		}
		assert.True(t, tm.IsInteriorNode[6])
		assert.Equal(t, 1, tm.NumInteriorNodes())
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, tm.BoundaryCells())
		e := tm.Edges[types.NewEdgeKey([2]int{6, 1})]
		require.NotNil(t, e)
		assert.Equal(t, uint8(2), e.NumConnectedTris)
		assert.ElementsMatch(t, []int{0, 2}, e.OppositeVerts[:])
	}
	{ // Test derived geometry
		points, cells := NewHexagonMesh(r2.Vec{})
		tm := NewTriMesh(points, cells)
		for k := range tm.Cells {
			assert.InDelta(t, math.Sqrt(3)/4, tm.CellVolumes[k], 1.e-14)
			assert.True(t, tm.CellSignedAreas[k] > 0)
			// Equilateral cells have coincident circumcenters and barycenters
			assert.InDelta(t, 0, r2.Norm(r2.Sub(tm.CellCircumcenters[k], tm.CellBarycenters[k])), 1.e-14)
		}
		assert.InDelta(t, 0.5, tm.CellBarycenters[0].X, 1.e-14)
		assert.InDelta(t, math.Sqrt(3)/6, tm.CellBarycenters[0].Y, 1.e-14)
	}
	{ // Test circumcenter of a right triangle sits on the hypotenuse midpoint
		cc := Circumcenter(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 2, Y: 0}, r2.Vec{X: 0, Y: 1})
		assert.InDelta(t, 1., cc.X, 1.e-15)
		assert.InDelta(t, 0.5, cc.Y, 1.e-15)
		assert.InDelta(t, -1., SignedArea(r2.Vec{}, r2.Vec{X: 0, Y: 1}, r2.Vec{X: 2, Y: 0}), 1.e-15)
	}
	{ // Test interior coordinate flattening round trip
		points, cells := NewSquareGridMesh(3, 0.2, 1)
		tm := NewTriMesh(points, cells)
		assert.Equal(t, 4, tm.NumInteriorNodes())
		x := tm.InteriorCoords()
		assert.Equal(t, 8, len(x))
		assert.Equal(t, points[5].X, x[0])
		assert.Equal(t, points[5].Y, x[1])
		for i := range x {
			x[i] += 0.01
		}
		tm.SetInteriorCoords(x)
		for i, pt := range tm.Points {
			if tm.IsInteriorNode[i] {
				assert.InDelta(t, points[i].X+0.01, pt.X, 1.e-15)
			} else {
				assert.Equal(t, points[i], pt)
			}
		}
		assert.Panics(t, func() { tm.SetInteriorCoords(x[:2]) })
	}
	{ // Test that input slices are not aliased
		points, cells := NewHexagonMesh(r2.Vec{})
		tm := NewTriMesh(points, cells)
		tm.Points[6] = r2.Vec{X: 0.1}
		tm.Cells[0] = [3]int{0, 1, 2}
		assert.Equal(t, r2.Vec{}, points[6])
		assert.Equal(t, [3]int{6, 0, 1}, cells[0])
		cp := tm.CopyPoints()
		cp[6] = r2.Vec{}
		assert.Equal(t, r2.Vec{X: 0.1}, tm.Points[6])
	}
	{ // Test over connected edges are rejected
		points := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 1}}
		cells := [][3]int{{0, 1, 2}, {1, 0, 3}, {0, 1, 4}}
		assert.Panics(t, func() { NewTriMesh(points, cells) })
	}
}

func TestStarIncidence(t *testing.T) {
	points, cells := NewHexagonMesh(r2.Vec{})
	tm := NewTriMesh(points, cells)
	counts := tm.StarCounts()
	assert.Equal(t, 6., counts[6])
	for i := 0; i < 6; i++ {
		assert.Equal(t, 2., counts[i])
	}
	vols := tm.StarSum(tm.CellVolumes)
	assert.InDelta(t, 6*math.Sqrt(3)/4, vols[6], 1.e-14)
	sums := tm.StarSumVec(tm.CellBarycenters)
	// The six barycenters are symmetric about the center
	assert.InDelta(t, 0, r2.Norm(sums[6]), 1.e-14)
	empty := NewTriMesh(nil, nil)
	assert.Equal(t, 0, len(empty.StarCounts()))
}

func TestQuadrature(t *testing.T) {
	points := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 2}}
	cells := [][3]int{{0, 1, 2}, {1, 3, 2}}
	tm := NewTriMesh(points, cells)
	vals := tm.Integrate(func(x r2.Vec) float64 { return x.X*x.X + x.Y*x.Y }, Dunavant2)
	assert.InDelta(t, 1./6., vals[0], 1.e-15)
	// Edge midpoint rule over (1,0),(2,2),(0,1), area 1.5
	assert.InDelta(t, 3.5, vals[1], 1.e-13)
	vals = tm.Integrate(func(x r2.Vec) float64 { return x.X*x.Y + 1 }, Dunavant2)
	assert.InDelta(t, 1./24.+0.5, vals[0], 1.e-15)
	var wsum float64
	for _, w := range Dunavant2.Weights {
		wsum += w
	}
	assert.InDelta(t, 1., wsum, 1.e-15)
}

func TestQuality(t *testing.T) {
	points, cells := NewHexagonMesh(r2.Vec{})
	tm := NewTriMesh(points, cells)
	for _, q := range tm.CellQualities() {
		assert.InDelta(t, 1., q, 1.e-14)
	}
	for _, angles := range tm.CellAngles() {
		for _, a := range angles {
			assert.InDelta(t, math.Pi/3, a, 1.e-12)
		}
	}
	box := NewBoundingBox(tm.Points)
	assert.InDelta(t, -1, box.XMin.X, 1.e-15)
	assert.InDelta(t, 1, box.XMax.X, 1.e-15)
	sq := box.Square()
	assert.InDelta(t, sq.XMax.X-sq.XMin.X, sq.XMax.Y-sq.XMin.Y, 1.e-15)
	big := box.Scale(2)
	assert.InDelta(t, -2, big.XMin.X, 1.e-15)
}
