package relax

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/notargets/odtmesh/geometry2D"
	"github.com/notargets/odtmesh/utils"
)

// StepCallback receives the step index and read access to the current mesh. A returned error aborts the run.
type StepCallback func(step int, mesh *geometry2D.TriMesh) error

// Options shared by the fixed point runner and the nonlinear optimizer, the zero value is usable
type Options struct {
	Omega                float64 // Fixed point relaxation factor, 0 means 1
	Verbose              bool    // Print statistics after every step
	StepSnapshotTemplate string  // fmt template with one integer verb, e.g. "step%03d.png"
	Callback             StepCallback
	ExtraCols            func(mesh *geometry2D.TriMesh) []string // Extra statistics lines, e.g. the energy
	Out                  io.Writer                               // Statistics sink, nil discards
	Logger               *zap.Logger
}

func (o *Options) WithDefaults() (oo Options) {
	if o != nil {
		oo = *o
	}
	if oo.Omega == 0 {
		oo.Omega = 1
	}
	if oo.Out == nil {
		oo.Out = io.Discard
	}
	oo.Logger = utils.LoggerOrNop(oo.Logger)
	return
}

func (o Options) extraCols(mesh *geometry2D.TriMesh) []string {
	if o.ExtraCols == nil {
		return nil
	}
	return o.ExtraCols(mesh)
}

// Snapshot writes the mesh image for a step when a template is set
func (o Options) Snapshot(step int, mesh *geometry2D.TriMesh) (err error) {
	if len(o.StepSnapshotTemplate) == 0 {
		return
	}
	return SaveSnapshot(mesh, fmt.Sprintf(o.StepSnapshotTemplate, step))
}

// PrintStage prints a titled statistics block
func (o Options) PrintStage(title string, mesh *geometry2D.TriMesh) {
	fmt.Fprintf(o.Out, "%s:\n", title)
	PrintStats(o.Out, mesh, o.extraCols(mesh)...)
}

// StepHooks runs the per step side effects in order: snapshot, statistics, caller callback
func (o Options) StepHooks(step int, mesh *geometry2D.TriMesh) (err error) {
	if err = o.Snapshot(step, mesh); err != nil {
		return
	}
	if o.Verbose {
		o.PrintStage(fmt.Sprintf("\nStep %d", step), mesh)
	}
	return o.Notify(step, mesh)
}

// Notify invokes the caller callback, if any
func (o Options) Notify(step int, mesh *geometry2D.TriMesh) (err error) {
	if o.Callback == nil {
		return
	}
	if err = o.Callback(step, mesh); err != nil {
		err = errors.Wrapf(err, "callback aborted the run at step %d", step)
	}
	return
}
