package geometry2D

import (
	"math"

	"github.com/notargets/odtmesh/types"
)

// IsLocallyDelaunay reports whether the edge passes the empty circumcircle test, boundary edges always do
func (tm *TriMesh) IsLocallyDelaunay(en types.EdgeKey) bool {
	e, ok := tm.Edges[en]
	if !ok || e.IsBoundary() {
		return true
	}
	var (
		verts = en.GetVertices(false)
		p     = tm.Points
	)
	return !IsIllegalEdge(p[e.OppositeVerts[1]], p[verts[0]], p[verts[1]], p[e.OppositeVerts[0]])
}

func (tm *TriMesh) NonDelaunayEdges() (keys []types.EdgeKey) {
	for en := range tm.Edges {
		if !tm.IsLocallyDelaunay(en) {
			keys = append(keys, en)
		}
	}
	types.SortEdgeKeys(keys)
	return
}

/*
FlipUntilDelaunay flips non Delaunay interior edges until none remain and returns the number of flips.
Node coordinates, the node set and the number of cells are unchanged. Every flip strictly lowers
the lifted paraboloid of the triangulation, so the loop terminates.
*/
func (tm *TriMesh) FlipUntilDelaunay() (numFlips int) {
	for {
		flipped := tm.flipPass()
		if flipped == 0 {
			return
		}
		numFlips += flipped
		tm.buildTopology()
		tm.UpdateValues()
	}
}

// Each cell takes part in at most one flip per pass, so the edge data stays valid within the pass
func (tm *TriMesh) flipPass() (numFlips int) {
	touched := make(map[int]bool)
	for _, en := range tm.NonDelaunayEdges() {
		e := tm.Edges[en]
		if touched[e.ConnectedTris[0]] || touched[e.ConnectedTris[1]] {
			continue
		}
		if tm.flipEdge(en, e) {
			touched[e.ConnectedTris[0]], touched[e.ConnectedTris[1]] = true, true
			numFlips++
		}
	}
	return
}

func (tm *TriMesh) flipEdge(en types.EdgeKey, e *Edge) (flipped bool) {
	var (
		verts  = en.GetVertices(false)
		a, b   = verts[0], verts[1]
		c, d   = e.OppositeVerts[0], e.OppositeVerts[1]
		k1, k2 = e.ConnectedTris[0], e.ConnectedTris[1]
		p      = tm.Points
		t1     = [3]int{c, a, d}
		t2     = [3]int{c, d, b}
	)
	sa1 := SignedArea(p[t1[0]], p[t1[1]], p[t1[2]])
	sa2 := SignedArea(p[t2[0]], p[t2[1]], p[t2[2]])
	// A non convex quad has no valid other diagonal
	if sa1 == 0 || sa2 == 0 || math.Signbit(sa1) != math.Signbit(sa2) {
		return false
	}
	if math.Signbit(sa1) != math.Signbit(tm.CellSignedAreas[k1]) {
		t1[1], t1[2] = t1[2], t1[1]
		t2[1], t2[2] = t2[2], t2[1]
	}
	tm.Cells[k1], tm.Cells[k2] = t1, t2
	return true
}
