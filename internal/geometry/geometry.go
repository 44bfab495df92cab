// Package geometry provides the plane operations the section and selection
// packages are built on: 2D rotation, projection onto a strike-aligned
// frame, and shape containment tests.
package geometry

import (
	"math"

	"github.com/quakelab/seissect/internal/model"
)

const degToRad = math.Pi / 180.0

// Rotate rotates a point counter-clockwise about origin by angleDeg.
// The result keeps the point's projection frame tags.
func Rotate(p, origin model.PlanarPoint, angleDeg float64) model.PlanarPoint {
	sin, cos := math.Sincos(angleDeg * degToRad)
	dx := p.X - origin.X
	dy := p.Y - origin.Y
	p.X = origin.X + cos*dx - sin*dy
	p.Y = origin.Y + sin*dx + cos*dy
	return p
}

// ProjectOntoStrike expresses a point in a frame aligned with a strike
// azimuth anchored at origin. Strike is measured clockwise from north, so
// the frame's x-axis points along azimuth strikeDeg (math angle 90-strike).
// It returns the signed along-strike distance and the signed perpendicular
// distance, positive to the strike's right-hand side.
func ProjectOntoStrike(p, origin model.PlanarPoint, strikeDeg float64) (along, perp float64) {
	sin, cos := math.Sincos((90.0 - strikeDeg) * degToRad)
	dx := p.X - origin.X
	dy := p.Y - origin.Y
	along = dx*cos + dy*sin
	perp = dx*sin - dy*cos
	return along, perp
}

// Contains tests whether the offset (dx, dy) from a shape's anchor falls
// inside the shape. Boundaries are inclusive. If the shape carries an
// orientation the offset is counter-rotated first, matching an anchor-
// centered rotation of the shape itself.
func Contains(s model.Shape, dx, dy float64) bool {
	if s.RotationDeg != 0 {
		sin, cos := math.Sincos(-s.RotationDeg * degToRad)
		dx, dy = cos*dx-sin*dy, sin*dx+cos*dy
	}

	switch s.Kind {
	case model.ShapeCircle:
		return math.Hypot(dx, dy) <= s.Radius
	case model.ShapeOval:
		rx := s.Width / 2
		ry := s.Height / 2
		nx := dx / rx
		ny := dy / ry
		return nx*nx+ny*ny <= 1
	case model.ShapeRectangle:
		return math.Abs(dx) <= s.Width/2 && math.Abs(dy) <= s.Height/2
	default:
		return false
	}
}
