//go:build !integration

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakelab/seissect/internal/model"
)

func resetSelectFlags() {
	selectFlags.shape = "circle"
	selectFlags.radius = 0
	selectFlags.width = 0
	selectFlags.height = 0
	selectFlags.rotation = 0
}

func TestShapeFromFlags(t *testing.T) {
	tests := []struct {
		name    string
		setup   func()
		want    model.ShapeKind
		wantErr bool
	}{
		{
			name:  "circle",
			setup: func() { selectFlags.shape = "circle"; selectFlags.radius = 5 },
			want:  model.ShapeCircle,
		},
		{
			name: "oval",
			setup: func() {
				selectFlags.shape = "oval"
				selectFlags.width = 12
				selectFlags.height = 4
			},
			want: model.ShapeOval,
		},
		{
			name: "rotated rectangle",
			setup: func() {
				selectFlags.shape = "rectangle"
				selectFlags.width = 10
				selectFlags.height = 4
				selectFlags.rotation = 30
			},
			want: model.ShapeRectangle,
		},
		{
			name:    "unknown kind",
			setup:   func() { selectFlags.shape = "triangle" },
			wantErr: true,
		},
		{
			name:    "circle without radius",
			setup:   func() { selectFlags.shape = "circle" },
			wantErr: true,
		},
		{
			name:    "rectangle without height",
			setup:   func() { selectFlags.shape = "rectangle"; selectFlags.width = 10 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetSelectFlags()
			tt.setup()

			shape, err := shapeFromFlags()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, shape.Kind)
			assert.Equal(t, selectFlags.rotation, shape.RotationDeg)
		})
	}
}
