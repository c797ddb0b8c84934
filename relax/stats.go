package relax

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/notargets/odtmesh/geometry2D"
)

type Stats struct {
	MinAngle, AvgAngle, MaxAngle       float64 // Degrees
	MinQuality, AvgQuality, MaxQuality float64
	NumNonDelaunayEdges                int
}

func ComputeStats(mesh *geometry2D.TriMesh) (st Stats) {
	if mesh.NumCells() == 0 {
		return
	}
	var (
		cellAngles = mesh.CellAngles()
		angles     = make([]float64, 0, 3*len(cellAngles))
		q          = mesh.CellQualities()
	)
	for _, a := range cellAngles {
		angles = append(angles, a[:]...)
	}
	floats.Scale(180/math.Pi, angles)
	st = Stats{
		MinAngle:            floats.Min(angles),
		AvgAngle:            stat.Mean(angles, nil),
		MaxAngle:            floats.Max(angles),
		MinQuality:          floats.Min(q),
		AvgQuality:          stat.Mean(q, nil),
		MaxQuality:          floats.Max(q),
		NumNonDelaunayEdges: len(mesh.NonDelaunayEdges()),
	}
	return
}

func PrintStats(w io.Writer, mesh *geometry2D.TriMesh, extraCols ...string) {
	st := ComputeStats(mesh)
	fmt.Fprintf(w, "  %-16s %12s %12s %12s\n", "", "min", "avg", "max")
	fmt.Fprintf(w, "  %-16s %12.5f %12.5f %12.5f\n", "angle (degrees)", st.MinAngle, st.AvgAngle, st.MaxAngle)
	fmt.Fprintf(w, "  %-16s %12.5f %12.5f %12.5f\n", "quality", st.MinQuality, st.AvgQuality, st.MaxQuality)
	fmt.Fprintf(w, "  %d nodes, %d cells, %d non-Delaunay edges\n",
		mesh.NumNodes(), mesh.NumCells(), st.NumNonDelaunayEdges)
	for _, col := range extraCols {
		fmt.Fprintf(w, "  %s\n", col)
	}
}
