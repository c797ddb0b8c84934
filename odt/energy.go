// Package odt relaxes 2D triangulations toward an Optimal Delaunay Triangulation.
//
// The ODT energy of a mesh with density rho is
//
//	E = int_Omega |u_l(x) - u(x)| rho(x) dx
//
// where u(x) = ||x||^2 and u_l is its piecewise linear nodal interpolation. Since u is convex,
// u_l >= u everywhere and, with phi_i the hat function of node x_i,
//
//	E = 1/(d+1) sum_i ||x_i||^2 |omega_i| - int_Omega ||x||^2 rho
//
// where omega_i is the star of x_i, weighted by rho.
//
// Long Chen, Michael Holst, Efficient mesh optimization schemes based on Optimal Delaunay
// Triangulations, Comput. Methods Appl. Mech. Engrg. 200 (2011) 967-984.
package odt

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/odtmesh/geometry2D"
	"github.com/notargets/odtmesh/utils"
)

const dim = 2

func normSquared(x r2.Vec) float64 { return r2.Norm2(x) }

// starTerm is 1/(d+1) sum_i ||x_i||^2 |omega_i|, the integral of the linear interpolant of ||x||^2
func starTerm(mesh *geometry2D.TriMesh, uniformDensity bool) float64 {
	var (
		starVolume []float64
		x2         = make([]float64, mesh.NumNodes())
	)
	if uniformDensity {
		// rho = 1, int_{star} phi_i rho = 1/(d+1) sum_{triangles in star} |triangle|
		starVolume = mesh.StarSum(mesh.CellVolumes)
	} else {
		// rho = 1/|tau|, int_{star} phi_i rho = 1/(d+1) |number of triangles in star|
		starVolume = mesh.StarCounts()
	}
	for i, pt := range mesh.Points {
		x2[i] = normSquared(pt)
	}
	return floats.Dot(starVolume, x2) / (dim + 1)
}

// integralTerm is int_Omega ||x||^2 rho, evaluated cell by cell with a degree two rule
func integralTerm(mesh *geometry2D.TriMesh, uniformDensity bool) float64 {
	vals := mesh.Integrate(normSquared, geometry2D.Dunavant2)
	if uniformDensity {
		return floats.Sum(vals)
	}
	rho := make([]float64, len(vals))
	for k, vol := range mesh.CellVolumes {
		rho[k] = 1. / vol
	}
	return floats.Dot(vals, rho)
}

// Energy returns the ODT energy of the mesh. It panics when the interpolant integrates below the
// exact integral beyond round-off, which only a broken geometry or quadrature can produce.
func Energy(mesh *geometry2D.TriMesh, uniformDensity bool) float64 {
	var (
		out = starTerm(mesh, uniformDensity)
		val = integralTerm(mesh, uniformDensity)
	)
	if out < val-utils.ENERGYTOL*(math.Abs(out)+math.Abs(val)) {
		panic(fmt.Errorf("ODT energy convexity bound violated: interpolant integral %.16e < exact integral %.16e",
			out, val))
	}
	return math.Max(out-val, 0)
}

/*
EnergyGradient returns the derivative of the uniform density energy with respect to the interior
node coordinates, flattened in the order of TriMesh.InteriorCoords:

	dE/dx_i = 2/(d+1) sum_{tau in omega_i} (x_i - c_tau) |tau|

with c_tau the circumcenter of tau. This is the derivative of the star term; the dependence of the
integral term on the node positions is left out.
*/
func EnergyGradient(mesh *geometry2D.TriMesh) (grad []float64) {
	var (
		nodeGrad = make([]r2.Vec, mesh.NumNodes())
		cc       = mesh.CellCircumcenters
	)
	for k, tri := range mesh.Cells {
		for _, v := range tri {
			nodeGrad[v] = r2.Add(nodeGrad[v], r2.Scale(mesh.CellVolumes[k], r2.Sub(mesh.Points[v], cc[k])))
		}
	}
	grad = make([]float64, 0, 2*mesh.NumInteriorNodes())
	for i, g := range nodeGrad {
		if mesh.IsInteriorNode[i] {
			g = r2.Scale(2./(dim+1), g)
			grad = append(grad, g.X, g.Y)
		}
	}
	return
}
