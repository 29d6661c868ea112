package geometry3D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a rigid motion x' = R x + T, with R stored as a unit
// quaternion. The zero value is the identity.
type Transform struct {
	Rotation    r3.Rotation
	Translation r3.Vec
}

func Identity() Transform {
	return Transform{Rotation: r3.Rotation{Real: 1}}
}

func NewDisplacement(d r3.Vec) Transform {
	return Transform{Rotation: r3.Rotation{Real: 1}, Translation: d}
}

// NewRotation returns a rotation of thetaDegrees about axis, counterclockwise
// when viewed from the tip of axis.
func NewRotation(thetaDegrees float64, axis r3.Vec) (Transform, error) {
	if r3.Norm(axis) == 0 {
		return Transform{}, fmt.Errorf("rotation axis must be non-zero")
	}
	return Transform{
		Rotation: r3.NewRotation(thetaDegrees*math.Pi/180., axis),
	}, nil
}

func (gt Transform) rot() quat.Number {
	q := quat.Number(gt.Rotation)
	if q == (quat.Number{}) {
		return quat.Number{Real: 1}
	}
	return q
}

func (gt Transform) IsIdentity() bool {
	return gt.rot() == quat.Number{Real: 1} && gt.Translation == (r3.Vec{})
}

// Apply returns R p + T
func (gt Transform) Apply(p r3.Vec) r3.Vec {
	return r3.Add(r3.Rotation(gt.rot()).Rotate(p), gt.Translation)
}

// UnApply returns R^-1 (p - T), the exact inverse of Apply
func (gt Transform) UnApply(p r3.Vec) r3.Vec {
	return r3.Rotation(quat.Conj(gt.rot())).Rotate(r3.Sub(p, gt.Translation))
}

// ApplyAll transforms the points in place
func (gt Transform) ApplyAll(pts []r3.Vec) {
	for i := range pts {
		pts[i] = gt.Apply(pts[i])
	}
}

// UnApplyAll untransforms the points in place
func (gt Transform) UnApplyAll(pts []r3.Vec) {
	for i := range pts {
		pts[i] = gt.UnApply(pts[i])
	}
}

// Compose returns the transform equivalent to applying first, then second
func Compose(first, second Transform) Transform {
	q := quat.Mul(second.rot(), first.rot())
	if abs := quat.Abs(q); abs != 0 {
		q = quat.Scale(1/abs, q)
	}
	return Transform{
		Rotation:    r3.Rotation(q),
		Translation: second.Apply(first.Translation),
	}
}

// Then is Compose(gt, next)
func (gt Transform) Then(next Transform) Transform {
	return Compose(gt, next)
}

func (gt Transform) Inverse() Transform {
	qi := quat.Conj(gt.rot())
	return Transform{
		Rotation:    r3.Rotation(qi),
		Translation: r3.Scale(-1, r3.Rotation(qi).Rotate(gt.Translation)),
	}
}

// AngleAxis returns the rotation angle in degrees within [0,180] and its unit
// axis. The axis of the identity rotation is reported as +Z.
func (gt Transform) AngleAxis() (thetaDegrees float64, axis r3.Vec) {
	q := gt.rot()
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	v := r3.Vec{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
	s := r3.Norm(v)
	if s == 0 {
		return 0, r3.Vec{Z: 1}
	}
	thetaDegrees = 2 * math.Atan2(s, q.Real) * 180. / math.Pi
	axis = r3.Scale(1/s, v)
	return
}

// String renders the transform in the clause syntax accepted by ParseTransform
func (gt Transform) String() string {
	if gt.IsIdentity() {
		return "DISPLACED 0 0 0"
	}
	var s string
	theta, axis := gt.AngleAxis()
	if theta != 0 {
		s = fmt.Sprintf("ROTATED %.17g ABOUT %.17g %.17g %.17g", theta, axis.X, axis.Y, axis.Z)
	}
	if gt.Translation != (r3.Vec{}) {
		if len(s) != 0 {
			s += " "
		}
		t := gt.Translation
		s += fmt.Sprintf("DISPLACED %.17g %.17g %.17g", t.X, t.Y, t.Z)
	}
	return s
}
