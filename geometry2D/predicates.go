package geometry2D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/odtmesh/utils"
)

// SignedArea is positive when a, b, c are counter-clockwise
func SignedArea(a, b, c r2.Vec) float64 {
	return 0.5 * r2.Cross(r2.Sub(b, a), r2.Sub(c, a))
}

func Barycenter(a, b, c r2.Vec) r2.Vec {
	return r2.Scale(1./3., r2.Add(a, r2.Add(b, c)))
}

func Circumcenter(a, b, c r2.Vec) r2.Vec {
	var (
		ba, ca = r2.Sub(b, a), r2.Sub(c, a)
		nb, nc = r2.Norm2(ba), r2.Norm2(ca)
		d      = 2 * r2.Cross(ba, ca)
	)
	return r2.Vec{
		X: a.X + (ca.Y*nb-ba.Y*nc)/d,
		Y: a.Y + (ba.X*nc-ca.X*nb)/d,
	}
}

// InCircle is positive when d lies inside the circumcircle of a, b, c, whatever the handedness of a, b, c
func InCircle(a, b, c, d r2.Vec) (det float64) {
	var (
		ad, bd, cd = r2.Sub(a, d), r2.Sub(b, d), r2.Sub(c, d)
	)
	det = r2.Norm2(ad)*r2.Cross(bd, cd) -
		r2.Norm2(bd)*r2.Cross(ad, cd) +
		r2.Norm2(cd)*r2.Cross(ad, bd)
	// Calculate handedness, counter-clockwise is (positive) and clockwise is (negative)
	if math.Signbit(r2.Cross(r2.Sub(b, a), r2.Sub(c, a))) {
		det = -det
	}
	return
}

func IsIllegalEdge(pr, pi, pj, pk r2.Vec) bool {
	/*
		pr is the far point of the triangle pi-pj-pr
		pi-pj is a shared edge between pi-pj-pk and pi-pj-pr
		if pr lies strictly inside the circle defined by pi-pj-pk:
			- The edge pi-pj should be swapped with pr-pk to make two new triangles
		Points on the circle, within a tolerance relative to the size of the quad, are legal
	*/
	var (
		scale = math.Max(r2.Norm2(r2.Sub(pi, pr)),
			math.Max(r2.Norm2(r2.Sub(pj, pr)), r2.Norm2(r2.Sub(pk, pr))))
	)
	return InCircle(pi, pj, pk, pr) > utils.NODETOL*scale*scale
}
