package model

import "github.com/rotisserie/eris"

// ShapeKind discriminates the selection shape variants.
type ShapeKind string

// Supported selection shapes.
const (
	ShapeCircle    ShapeKind = "circle"
	ShapeOval      ShapeKind = "oval"
	ShapeRectangle ShapeKind = "rectangle"
)

// Shape is a map-view or section-view selection region. Dimensions are in
// the same linear unit as the coordinates the containment test runs in.
// RotationDeg orients the shape counter-clockwise about its anchor.
type Shape struct {
	Kind        ShapeKind `json:"kind"`
	Radius      float64   `json:"radius,omitempty"`
	Width       float64   `json:"width,omitempty"`
	Height      float64   `json:"height,omitempty"`
	RotationDeg float64   `json:"rotation,omitempty"`
}

// Circle builds a circular shape with the given radius.
func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Oval builds an elliptical shape with the given full width and height.
func Oval(width, height float64) Shape {
	return Shape{Kind: ShapeOval, Width: width, Height: height}
}

// Rectangle builds a rectangular shape with the given full width and height.
func Rectangle(width, height float64) Shape {
	return Shape{Kind: ShapeRectangle, Width: width, Height: height}
}

// Validate checks the shape's size parameters. Dimensions must be strictly
// positive for the variant's kind.
func (s Shape) Validate() error {
	switch s.Kind {
	case ShapeCircle:
		if s.Radius <= 0 {
			return eris.Wrap(ErrConfig, "model: circle radius must be > 0")
		}
	case ShapeOval:
		if s.Width <= 0 || s.Height <= 0 {
			return eris.Wrap(ErrConfig, "model: oval width and height must be > 0")
		}
	case ShapeRectangle:
		if s.Width <= 0 || s.Height <= 0 {
			return eris.Wrap(ErrConfig, "model: rectangle width and height must be > 0")
		}
	default:
		return eris.Wrapf(ErrConfig, "model: unknown shape kind %q", s.Kind)
	}
	return nil
}
