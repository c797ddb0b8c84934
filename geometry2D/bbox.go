package geometry2D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

type BoundingBox struct {
	XMin, XMax r2.Vec
}

func NewBoundingBox(points []r2.Vec) (box *BoundingBox) {
	box = &BoundingBox{
		XMin: r2.Vec{X: math.MaxFloat64, Y: math.MaxFloat64},
		XMax: r2.Vec{X: -math.MaxFloat64, Y: -math.MaxFloat64},
	}
	for _, pt := range points {
		box.XMin.X, box.XMin.Y = math.Min(box.XMin.X, pt.X), math.Min(box.XMin.Y, pt.Y)
		box.XMax.X, box.XMax.Y = math.Max(box.XMax.X, pt.X), math.Max(box.XMax.Y, pt.Y)
	}
	return
}

func (bb *BoundingBox) Centroid() r2.Vec {
	return r2.Scale(0.5, r2.Add(bb.XMin, bb.XMax))
}

func (bb *BoundingBox) Scale(scale float64) (bbOut *BoundingBox) {
	var (
		centroid = bb.Centroid()
		half     = r2.Scale(0.5*scale, r2.Sub(bb.XMax, bb.XMin))
	)
	bbOut = &BoundingBox{
		XMin: r2.Sub(centroid, half),
		XMax: r2.Add(centroid, half),
	}
	return
}

// Square grows the shorter side to match the longer, keeping the centroid
func (bb *BoundingBox) Square() (bbOut *BoundingBox) {
	var (
		centroid = bb.Centroid()
		side     = math.Max(bb.XMax.X-bb.XMin.X, bb.XMax.Y-bb.XMin.Y)
		half     = r2.Vec{X: 0.5 * side, Y: 0.5 * side}
	)
	bbOut = &BoundingBox{
		XMin: r2.Sub(centroid, half),
		XMax: r2.Add(centroid, half),
	}
	return
}
