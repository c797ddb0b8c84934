package geometry2D

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/odtmesh/types"
)

/*
TriMesh is the mutable state of a 2D triangulation shared by the relaxation methods.
Node coordinates are written in place, interior nodes only. Connectivity is changed
only by FlipUntilDelaunay, which keeps the node set and the number of cells.
*/
type TriMesh struct {
	Points            []r2.Vec
	Cells             [][3]int
	CellVolumes       []float64 // Absolute area of each cell
	CellSignedAreas   []float64 // Positive for counter-clockwise cells
	CellCircumcenters []r2.Vec
	CellBarycenters   []r2.Vec
	IsInteriorNode    []bool // Fixed at construction
	Edges             map[types.EdgeKey]*Edge
	incidence         *sparse.CSR // Nodes x Cells, 1 where a cell references a node
}

type Edge struct {
	NumConnectedTris uint8  // Either 1 or 2
	ConnectedTris    [2]int // Index numbers of triangles connected to this edge
	OppositeVerts    [2]int // For each connected triangle, the vertex that is not on this edge
}

func (e *Edge) IsBoundary() bool { return e.NumConnectedTris == 1 }

func NewTriMesh(points []r2.Vec, cells [][3]int) (tm *TriMesh) {
	tm = &TriMesh{
		Points: make([]r2.Vec, len(points)),
		Cells:  make([][3]int, len(cells)),
	}
	copy(tm.Points, points)
	copy(tm.Cells, cells)
	tm.buildTopology()
	tm.IsInteriorNode = tm.interiorNodes()
	tm.UpdateValues()
	return
}

func (tm *TriMesh) NumNodes() int { return len(tm.Points) }
func (tm *TriMesh) NumCells() int { return len(tm.Cells) }

func (tm *TriMesh) NumInteriorNodes() (n int) {
	for _, interior := range tm.IsInteriorNode {
		if interior {
			n++
		}
	}
	return
}

func (tm *TriMesh) buildTopology() {
	tm.Edges = make(map[types.EdgeKey]*Edge, 3*len(tm.Cells)/2+1)
	for k, tri := range tm.Cells {
		for i := 0; i < 3; i++ {
			var (
				verts    = [2]int{tri[i], tri[(i+1)%3]}
				opposite = tri[(i+2)%3]
				en       = types.NewEdgeKey(verts)
				e, ok    = tm.Edges[en]
			)
			if !ok {
				e = &Edge{}
				tm.Edges[en] = e
			} else if e.NumConnectedTris > 1 {
				panic(fmt.Errorf("incorrect edge construction, more than two connected triangles at edge %v", verts))
			}
			e.ConnectedTris[e.NumConnectedTris] = k
			e.OppositeVerts[e.NumConnectedTris] = opposite
			e.NumConnectedTris++
		}
	}
	tm.incidence = newStarIncidence(len(tm.Points), tm.Cells)
}

// A node is interior when some cell references it and no boundary edge touches it
func (tm *TriMesh) interiorNodes() (isInterior []bool) {
	isInterior = make([]bool, len(tm.Points))
	for _, tri := range tm.Cells {
		for _, v := range tri {
			isInterior[v] = true
		}
	}
	for en, e := range tm.Edges {
		if e.IsBoundary() {
			verts := en.GetVertices(false)
			isInterior[verts[0]], isInterior[verts[1]] = false, false
		}
	}
	return
}

// UpdateValues recomputes the derived cell geometry after the coordinates or connectivity changed
func (tm *TriMesh) UpdateValues() {
	var (
		K = len(tm.Cells)
	)
	if len(tm.CellVolumes) != K {
		tm.CellVolumes = make([]float64, K)
		tm.CellSignedAreas = make([]float64, K)
		tm.CellCircumcenters = make([]r2.Vec, K)
		tm.CellBarycenters = make([]r2.Vec, K)
	}
	for k := range tm.Cells {
		a, b, c := tm.CellVertices(k)
		sa := SignedArea(a, b, c)
		tm.CellSignedAreas[k] = sa
		tm.CellVolumes[k] = math.Abs(sa)
		tm.CellCircumcenters[k] = Circumcenter(a, b, c)
		tm.CellBarycenters[k] = Barycenter(a, b, c)
	}
}

func (tm *TriMesh) CellVertices(k int) (a, b, c r2.Vec) {
	tri := tm.Cells[k]
	return tm.Points[tri[0]], tm.Points[tri[1]], tm.Points[tri[2]]
}

// InteriorCoords flattens the interior node coordinates in node order as [x0, y0, x1, y1, ...]
func (tm *TriMesh) InteriorCoords() (x []float64) {
	x = make([]float64, 0, 2*tm.NumInteriorNodes())
	for i, pt := range tm.Points {
		if tm.IsInteriorNode[i] {
			x = append(x, pt.X, pt.Y)
		}
	}
	return
}

// SetInteriorCoords is the inverse of InteriorCoords, boundary nodes are not written
func (tm *TriMesh) SetInteriorCoords(x []float64) {
	if len(x) != 2*tm.NumInteriorNodes() {
		panic(fmt.Errorf("have %d interior coordinates, mesh has %d interior nodes",
			len(x), tm.NumInteriorNodes()))
	}
	var j int
	for i := range tm.Points {
		if !tm.IsInteriorNode[i] {
			continue
		}
		tm.Points[i] = r2.Vec{X: x[2*j], Y: x[2*j+1]}
		j++
	}
}

// BoundaryCells returns, in ascending order, the cells that own at least one boundary edge
func (tm *TriMesh) BoundaryCells() (cells []int) {
	isBoundary := make([]bool, len(tm.Cells))
	for _, e := range tm.Edges {
		if e.IsBoundary() {
			isBoundary[e.ConnectedTris[0]] = true
		}
	}
	for k, b := range isBoundary {
		if b {
			cells = append(cells, k)
		}
	}
	return
}

func (tm *TriMesh) CopyPoints() (points []r2.Vec) {
	points = make([]r2.Vec, len(tm.Points))
	copy(points, tm.Points)
	return
}

func (tm *TriMesh) CopyCells() (cells [][3]int) {
	cells = make([][3]int, len(tm.Cells))
	copy(cells, tm.Cells)
	return
}
