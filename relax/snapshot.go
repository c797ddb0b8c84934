package relax

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/notargets/odtmesh/geometry2D"
	"github.com/notargets/odtmesh/types"
)

var (
	edgeColor        = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	nonDelaunayColor = color.RGBA{R: 220, G: 20, B: 20, A: 255}
)

// SaveSnapshot draws the triangulation to filename, the format follows the extension.
// Edges failing the circumcircle test are drawn in red.
func SaveSnapshot(mesh *geometry2D.TriMesh, filename string) (err error) {
	var (
		p           = plot.New()
		box         = geometry2D.NewBoundingBox(mesh.Points).Square().Scale(1.05)
		keys        = make([]types.EdgeKey, 0, len(mesh.Edges))
		nonDelaunay = make(map[types.EdgeKey]bool)
	)
	p.HideAxes()
	p.X.Min, p.X.Max = box.XMin.X, box.XMax.X
	p.Y.Min, p.Y.Max = box.XMin.Y, box.XMax.Y
	for _, en := range mesh.NonDelaunayEdges() {
		nonDelaunay[en] = true
	}
	for en := range mesh.Edges {
		keys = append(keys, en)
	}
	types.SortEdgeKeys(keys)
	for _, en := range keys {
		var (
			verts = en.GetVertices(false)
			a, b  = mesh.Points[verts[0]], mesh.Points[verts[1]]
			l     *plotter.Line
		)
		if l, err = plotter.NewLine(plotter.XYs{{X: a.X, Y: a.Y}, {X: b.X, Y: b.Y}}); err != nil {
			return errors.Wrapf(err, "unable to draw edge %v", verts)
		}
		l.LineStyle.Width = vg.Points(0.5)
		l.LineStyle.Color = edgeColor
		if nonDelaunay[en] {
			l.LineStyle.Width = vg.Points(1)
			l.LineStyle.Color = nonDelaunayColor
		}
		p.Add(l)
	}
	if err = p.Save(6*vg.Inch, 6*vg.Inch, filename); err != nil {
		return errors.Wrapf(err, "unable to save snapshot %s", filename)
	}
	return
}
