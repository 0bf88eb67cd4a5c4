// Package mesh holds static, indexed triangle geometry.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// PositionComponents is the number of floats per vertex position (XYZ)
	PositionComponents = 3
	// ColorComponents is the number of floats per vertex color (RGBA)
	ColorComponents = 4
)

// ErrInvalidGeometry reports vertex, color and index arrays that do not agree
var ErrInvalidGeometry = errors.New("invalid geometry")

// White is the color used when none is given
var White = mgl32.Vec4{1, 1, 1, 1}

// Mesh is immutable triangle-list geometry. The slices returned by the
// accessors are the mesh's own storage and must not be modified.
type Mesh struct {
	vertices []float32
	colors   []float32
	indices  []uint32
}

// New copies the given arrays into a new Mesh after validating them
func New(vertices, colors []float32, indices []uint32) (*Mesh, error) {
	if _, err := Validate(vertices, colors, indices); err != nil {
		return nil, err
	}
	return &Mesh{
		vertices: append([]float32(nil), vertices...),
		colors:   append([]float32(nil), colors...),
		indices:  append([]uint32(nil), indices...),
	}, nil
}

// Validate checks that positions come in triples, that there is exactly one
// RGBA color per vertex, that indices form whole triangles and that every
// index references a vertex. It returns the vertex count.
func Validate(vertices, colors []float32, indices []uint32) (int, error) {
	if len(vertices)%PositionComponents != 0 {
		return 0, fmt.Errorf("%w: %d position floats is not a multiple of %d", ErrInvalidGeometry, len(vertices), PositionComponents)
	}
	n := len(vertices) / PositionComponents
	if len(colors) != n*ColorComponents {
		return 0, fmt.Errorf("%w: %d color floats for %d vertices", ErrInvalidGeometry, len(colors), n)
	}
	if len(indices)%3 != 0 {
		return 0, fmt.Errorf("%w: %d indices do not form whole triangles", ErrInvalidGeometry, len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= n {
			return 0, fmt.Errorf("%w: index %d at %d out of range for %d vertices", ErrInvalidGeometry, idx, i, n)
		}
	}
	return n, nil
}

func (m *Mesh) VertexCount() int    { return len(m.vertices) / PositionComponents }
func (m *Mesh) TriangleCount() int  { return len(m.indices) / 3 }
func (m *Mesh) IndexCount() int     { return len(m.indices) }
func (m *Mesh) Vertices() []float32 { return m.vertices }
func (m *Mesh) Colors() []float32   { return m.colors }
func (m *Mesh) Indices() []uint32   { return m.indices }

// Position returns the i-th vertex position
func (m *Mesh) Position(i int) mgl32.Vec3 {
	o := i * PositionComponents
	return mgl32.Vec3{m.vertices[o], m.vertices[o+1], m.vertices[o+2]}
}

// SolidColors repeats color once per vertex
func SolidColors(color mgl32.Vec4, vertexCount int) []float32 {
	out := make([]float32, 0, vertexCount*ColorComponents)
	for range vertexCount {
		out = append(out, color[:]...)
	}
	return out
}
