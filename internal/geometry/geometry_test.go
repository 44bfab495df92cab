package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quakelab/seissect/internal/model"
)

func pt(x, y float64) model.PlanarPoint {
	return model.PlanarPoint{X: x, Y: y, Zone: 33, North: true, Unit: model.UnitKilometers}
}

func TestRotate(t *testing.T) {
	origin := pt(0, 0)

	p := Rotate(pt(1, 0), origin, 90)
	assert.InDelta(t, 0.0, p.X, 1e-12)
	assert.InDelta(t, 1.0, p.Y, 1e-12)

	p = Rotate(pt(1, 0), origin, -90)
	assert.InDelta(t, 0.0, p.X, 1e-12)
	assert.InDelta(t, -1.0, p.Y, 1e-12)

	// Rotation about a non-trivial origin.
	p = Rotate(pt(2, 1), pt(1, 1), 180)
	assert.InDelta(t, 0.0, p.X, 1e-12)
	assert.InDelta(t, 1.0, p.Y, 1e-12)
}

func TestRotate_KeepsFrameTags(t *testing.T) {
	p := Rotate(pt(1, 2), pt(0, 0), 45)
	assert.Equal(t, 33, p.Zone)
	assert.True(t, p.North)
	assert.Equal(t, model.UnitKilometers, p.Unit)
}

func TestProjectOntoStrike_NorthStrike(t *testing.T) {
	// Strike 0: along points north (+y), right-hand side points east (+x).
	origin := pt(0, 0)

	along, perp := ProjectOntoStrike(pt(0, 5), origin, 0)
	assert.InDelta(t, 5.0, along, 1e-12)
	assert.InDelta(t, 0.0, perp, 1e-12)

	along, perp = ProjectOntoStrike(pt(3, 0), origin, 0)
	assert.InDelta(t, 0.0, along, 1e-12)
	assert.InDelta(t, 3.0, perp, 1e-12)
}

func TestProjectOntoStrike_EastStrike(t *testing.T) {
	// Strike 90: along points east (+x), right-hand side points south (-y).
	origin := pt(0, 0)

	along, perp := ProjectOntoStrike(pt(4, 0), origin, 90)
	assert.InDelta(t, 4.0, along, 1e-12)
	assert.InDelta(t, 0.0, perp, 1e-12)

	along, perp = ProjectOntoStrike(pt(0, -2), origin, 90)
	assert.InDelta(t, 0.0, along, 1e-12)
	assert.InDelta(t, 2.0, perp, 1e-12)
}

func TestProjectOntoStrike_ObliqueIsometric(t *testing.T) {
	// Projection is a rotation: distances are preserved.
	origin := pt(10, -4)
	p := pt(13, 1)
	along, perp := ProjectOntoStrike(p, origin, 155)

	want := math.Hypot(p.X-origin.X, p.Y-origin.Y)
	assert.InDelta(t, want, math.Hypot(along, perp), 1e-12)
}

func TestContains_Circle(t *testing.T) {
	c := model.Circle(3)

	assert.True(t, Contains(c, 0, 0))
	assert.True(t, Contains(c, 3, 0), "boundary is inclusive")
	assert.True(t, Contains(c, 0, -3))
	assert.False(t, Contains(c, 3.0000001, 0))
	assert.False(t, Contains(c, 2.2, 2.2))
}

func TestContains_Oval(t *testing.T) {
	o := model.Oval(8, 4) // half-axes 4 and 2

	assert.True(t, Contains(o, 4, 0))
	assert.True(t, Contains(o, 0, 2))
	assert.True(t, Contains(o, 2.8, 1.4))
	assert.False(t, Contains(o, 4, 2))
	assert.False(t, Contains(o, 0, 2.001))
}

func TestContains_Rectangle(t *testing.T) {
	r := model.Rectangle(10, 4)

	assert.True(t, Contains(r, 5, 2), "corner is inclusive")
	assert.True(t, Contains(r, -5, -2))
	assert.True(t, Contains(r, 0, 0))
	assert.False(t, Contains(r, 5.01, 0))
	assert.False(t, Contains(r, 0, 2.01))
}

func TestContains_RotatedRectangle(t *testing.T) {
	r := model.Rectangle(10, 2)
	r.RotationDeg = 90

	// The long axis now runs along y.
	assert.True(t, Contains(r, 0, 4.9))
	assert.False(t, Contains(r, 4.9, 0))
}

func TestContains_UnknownKind(t *testing.T) {
	assert.False(t, Contains(model.Shape{Kind: "hexagon"}, 0, 0))
}
