package odt

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/odtmesh/geometry2D"
	"github.com/notargets/odtmesh/relax"
)

// targetPoints are the cell circumcenters, except for cells touching the boundary whose circumcenter
// may lie outside the domain; their barycenters are used instead
func targetPoints(mesh *geometry2D.TriMesh) (targets []r2.Vec) {
	targets = make([]r2.Vec, mesh.NumCells())
	copy(targets, mesh.CellCircumcenters)
	for _, k := range mesh.BoundaryCells() {
		targets[k] = mesh.CellBarycenters[k]
	}
	return
}

/*
FixedPointUniform moves every interior node to the volume weighted average of the target points of
its star, the fixed point of the uniform density energy. Steps that would flip the orientation of a
cell are damped. The connectivity is returned unchanged.
*/
func FixedPointUniform(points []r2.Vec, cells [][3]int, tol float64, maxSteps int,
	opts *relax.Options) ([]r2.Vec, [][3]int, error) {
	getNewPoints := func(mesh *geometry2D.TriMesh) []r2.Vec {
		return relax.VolumeAveraged(mesh, targetPoints(mesh))
	}
	return fixedPoint(getNewPoints, true, points, cells, tol, maxSteps, opts)
}

// FixedPointDensityPreserving uses the unweighted mean of the star's target points, the fixed point
// of the energy with density 1/|tau|
func FixedPointDensityPreserving(points []r2.Vec, cells [][3]int, tol float64, maxSteps int,
	opts *relax.Options) ([]r2.Vec, [][3]int, error) {
	getNewPoints := func(mesh *geometry2D.TriMesh) []r2.Vec {
		return relax.CountAveraged(mesh, targetPoints(mesh))
	}
	return fixedPoint(getNewPoints, false, points, cells, tol, maxSteps, opts)
}

func fixedPoint(getNewPoints relax.NewPointsFunc, uniformDensity bool,
	points []r2.Vec, cells [][3]int, tol float64, maxSteps int,
	opts *relax.Options) (outPoints []r2.Vec, outCells [][3]int, err error) {
	var (
		mesh = geometry2D.NewTriMesh(points, cells)
		o    = opts.WithDefaults()
	)
	o.ExtraCols = withEnergyCol(o.ExtraCols, uniformDensity)
	if _, err = relax.Run(getNewPoints, mesh, tol, maxSteps, &o); err != nil {
		return nil, nil, err
	}
	return mesh.CopyPoints(), mesh.CopyCells(), nil
}

func withEnergyCol(extra func(mesh *geometry2D.TriMesh) []string,
	uniformDensity bool) func(mesh *geometry2D.TriMesh) []string {
	return func(mesh *geometry2D.TriMesh) (cols []string) {
		cols = append(cols, fmt.Sprintf("energy: %.5e", Energy(mesh, uniformDensity)))
		if extra != nil {
			cols = append(cols, extra(mesh)...)
		}
		return
	}
}
