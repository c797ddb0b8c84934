package odt

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/odtmesh/geometry2D"
	"github.com/notargets/odtmesh/relax"
)

/*
The three functions below share one mesh and each begins by writing x into it. The optimizer must
evaluate objective or gradient at an iterate before the matching flipStep, which is what
optimize.Minimize does: a major iteration is only reported for an evaluated location.
*/

// objective is the uniform density energy at interior coordinates x
func objective(mesh *geometry2D.TriMesh, x []float64) float64 {
	mesh.SetInteriorCoords(x)
	mesh.UpdateValues()
	return Energy(mesh, true)
}

func gradient(mesh *geometry2D.TriMesh, grad, x []float64) {
	mesh.SetInteriorCoords(x)
	mesh.UpdateValues()
	copy(grad, EnergyGradient(mesh))
}

// flipStep moves the mesh to an accepted iterate and restores the Delaunay property
func flipStep(mesh *geometry2D.TriMesh, x []float64) (numFlips int) {
	mesh.SetInteriorCoords(x)
	mesh.UpdateValues()
	return mesh.FlipUntilDelaunay()
}

// stepRecorder runs the step hooks on every accepted iterate of the minimizer, the only place the
// connectivity changes during the optimization. The minimizer reports the starting location as its
// first major iteration, so step k is major iteration k+1.
type stepRecorder struct {
	mesh     *geometry2D.TriMesh
	opts     relax.Options
	step     int
	numFlips int
	err      error // From the caller's callback or a snapshot
}

func (sr *stepRecorder) Init() error { return nil }

func (sr *stepRecorder) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	if op != optimize.MajorIteration || stats.MajorIterations < 2 {
		return nil
	}
	return sr.accept(stats.MajorIterations-1, loc.X, loc.F)
}

func (sr *stepRecorder) accept(step int, x []float64, f float64) (err error) {
	sr.step = step
	nFlips := flipStep(sr.mesh, x)
	sr.numFlips += nFlips
	sr.opts.Logger.Debug("accepted step",
		zap.Int("step", step),
		zap.Float64("energy", f),
		zap.Int("flips", nFlips))
	if err = sr.opts.StepHooks(step, sr.mesh); err != nil {
		sr.err = err
	}
	return
}

/*
NonlinearOptimizationUniform minimizes the uniform density ODT energy over the interior node
coordinates with BFGS, flipping edges to restore the Delaunay property after every accepted step.
tol is the gradient norm threshold and maxSteps the iteration limit; reaching the limit is not an
error. The returned connectivity has the same number of cells as the input, re-paired by flips.
*/
func NonlinearOptimizationUniform(points []r2.Vec, cells [][3]int, tol float64, maxSteps int,
	opts *relax.Options) (outPoints []r2.Vec, outCells [][3]int, err error) {
	if maxSteps <= 0 {
		outPoints, outCells = make([]r2.Vec, len(points)), make([][3]int, len(cells))
		copy(outPoints, points)
		copy(outCells, cells)
		return
	}
	var (
		mesh = geometry2D.NewTriMesh(points, cells)
		o    = opts.WithDefaults()
		nit  int
	)
	o.ExtraCols = withEnergyCol(o.ExtraCols, true)
	logger := o.Logger

	if err = o.Snapshot(0, mesh); err != nil {
		return nil, nil, err
	}
	o.PrintStage("Before", mesh)
	if err = o.Notify(0, mesh); err != nil {
		return nil, nil, err
	}

	x := mesh.InteriorCoords()
	if len(x) != 0 {
		recorder := &stepRecorder{mesh: mesh, opts: o}
		problem := optimize.Problem{
			Func: func(x []float64) float64 { return objective(mesh, x) },
			Grad: func(grad, x []float64) { gradient(mesh, grad, x) },
		}
		settings := &optimize.Settings{
			GradientThreshold: tol,
			MajorIterations:   maxSteps + 1,
			Recorder:          recorder,
		}
		result, minErr := optimize.Minimize(problem, x, settings, &optimize.BFGS{})
		if recorder.err != nil {
			return nil, nil, recorder.err
		}
		if result != nil {
			x = result.X
			nit = max(result.Stats.MajorIterations-1, 0)
			// The iterate that terminates the run is not passed to the recorder
			if nit > recorder.step {
				if err = recorder.accept(nit, x, result.F); err != nil {
					return nil, nil, err
				}
			}
			logger.Info("optimization finished",
				zap.String("status", result.Status.String()),
				zap.Int("steps", nit),
				zap.Int("flips", recorder.numFlips),
				zap.Float64("energy", result.F))
		}
		if minErr != nil {
			// A flip changes the objective under the line search, which may then stall; the best
			// iterate so far is kept
			logger.Warn("minimizer stopped early", zap.Error(errors.Wrap(minErr, "BFGS")))
		}
	}

	// One last flip in case the final iterate was not followed by one
	mesh.SetInteriorCoords(x)
	mesh.UpdateValues()
	mesh.FlipUntilDelaunay()
	o.PrintStage(fmt.Sprintf("\nFinal (%d steps)", nit), mesh)
	logger.Debug("final gradient", zap.Float64("norm", floats.Norm(EnergyGradient(mesh), 2)))
	return mesh.CopyPoints(), mesh.CopyCells(), nil
}
