package relax

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/odtmesh/geometry2D"
)

// VolumeAveraged returns, for each interior node, the cell volume weighted mean of the target points
// of the cells in its star. Boundary nodes keep their coordinates.
func VolumeAveraged(mesh *geometry2D.TriMesh, targets []r2.Vec) (newPoints []r2.Vec) {
	weighted := make([]r2.Vec, len(targets))
	for k, tp := range targets {
		weighted[k] = r2.Scale(mesh.CellVolumes[k], tp)
	}
	return starMean(mesh, mesh.StarSumVec(weighted), mesh.StarSum(mesh.CellVolumes))
}

// CountAveraged is the unweighted arithmetic mean of the star's target points
func CountAveraged(mesh *geometry2D.TriMesh, targets []r2.Vec) (newPoints []r2.Vec) {
	return starMean(mesh, mesh.StarSumVec(targets), mesh.StarCounts())
}

func starMean(mesh *geometry2D.TriMesh, num []r2.Vec, den []float64) (newPoints []r2.Vec) {
	newPoints = mesh.CopyPoints()
	for i := range newPoints {
		if mesh.IsInteriorNode[i] {
			newPoints[i] = r2.Scale(1./den[i], num[i])
		}
	}
	return
}
