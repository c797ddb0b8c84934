package relax

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/odtmesh/geometry2D"
	"github.com/notargets/odtmesh/utils"
)

// MaxStepHalvings bounds the damping of a step that would invert a cell
const MaxStepHalvings = 32

// NewPointsFunc proposes a new position for every node from the current geometry
type NewPointsFunc func(mesh *geometry2D.TriMesh) []r2.Vec

/*
Run drives a fixed point relocation of the interior nodes and returns the number of accepted steps.
Each step moves the interior nodes by Omega times the proposed displacement; when a cell would change
orientation the step is halved until no cell does. The loop ends when the largest node displacement
drops below tol, after maxSteps steps, or when no damped step keeps every cell's orientation.
Connectivity and boundary nodes are never changed.
*/
func Run(getNewPoints NewPointsFunc, mesh *geometry2D.TriMesh, tol float64, maxSteps int,
	opts *Options) (numSteps int, err error) {
	var (
		o      = opts.WithDefaults()
		logger = o.Logger
	)
	if maxSteps <= 0 {
		return
	}
	o.PrintStage("Before", mesh)
	if err = o.Snapshot(0, mesh); err != nil {
		return
	}
	if err = o.Notify(0, mesh); err != nil {
		return
	}
	for k := 1; k <= maxSteps; k++ {
		newPoints := getNewPoints(mesh)
		utils.IsNanPanic(newPoints)
		diff, ok := dampedStep(mesh, newPoints, o.Omega)
		if !ok {
			logger.Warn("no damped step preserves cell orientation, stopping",
				zap.Int("step", k))
			break
		}
		numSteps = k
		logger.Debug("fixed point step", zap.Int("step", k), zap.Float64("max_displacement", diff))
		if err = o.StepHooks(k, mesh); err != nil {
			return
		}
		if diff < tol {
			logger.Info("fixed point converged", zap.Int("steps", k), zap.Float64("max_displacement", diff))
			break
		}
	}
	o.PrintStage("\nFinal", mesh)
	return
}

func dampedStep(mesh *geometry2D.TriMesh, newPoints []r2.Vec, omega float64) (maxDiff float64, ok bool) {
	var (
		old      = mesh.CopyPoints()
		oldSigns = make([]bool, mesh.NumCells())
		alpha    = omega
	)
	for k, sa := range mesh.CellSignedAreas {
		oldSigns[k] = math.Signbit(sa)
	}
	for h := 0; h < MaxStepHalvings; h++ {
		for i := range mesh.Points {
			if mesh.IsInteriorNode[i] {
				mesh.Points[i] = r2.Add(old[i], r2.Scale(alpha, r2.Sub(newPoints[i], old[i])))
			}
		}
		mesh.UpdateValues()
		if !orientationChanged(mesh, oldSigns) {
			for i := range mesh.Points {
				maxDiff = math.Max(maxDiff, r2.Norm(r2.Sub(mesh.Points[i], old[i])))
			}
			return maxDiff, true
		}
		alpha /= 2
	}
	copy(mesh.Points, old)
	mesh.UpdateValues()
	return
}

func orientationChanged(mesh *geometry2D.TriMesh, oldSigns []bool) bool {
	for k, sa := range mesh.CellSignedAreas {
		if sa == 0 || math.Signbit(sa) != oldSigns[k] {
			return true
		}
	}
	return false
}
