package mesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var rectVertices = []float32{
	0.5, 0.5, 0.0, // top right
	0.5, -0.5, 0.0, // bottom right
	-0.5, -0.5, 0.0, // bottom left
	-0.5, 0.5, 0.0, // top left
}

var rectIndices = []uint32{
	0, 1, 3, // first triangle
	1, 2, 3, // second triangle
}

// Rect builds a unit quad centered on the origin in the XY plane: four
// vertices and two triangles, every vertex carrying color.
func Rect(color mgl32.Vec4) *Mesh {
	return &Mesh{
		vertices: append([]float32(nil), rectVertices...),
		colors:   SolidColors(color, 4),
		indices:  append([]uint32(nil), rectIndices...),
	}
}

// HeightFunc returns the terrain height at (x, z)
type HeightFunc func(x, z float32) float32

// Flat is a HeightFunc for a level plane
func Flat(x, z float32) float32 { return 0 }

// Waves returns a rolling height field of the given amplitude; frequency is
// in radians per world unit.
func Waves(amplitude, frequency float32) HeightFunc {
	return func(x, z float32) float32 {
		return amplitude * math32.Sin(x*frequency) * math32.Cos(z*frequency)
	}
}

// GridOptions describes a terrain grid
type GridOptions struct {
	Cols, Rows int     // cells along X and Z
	CellSize   float32 // world units per cell
	Height     HeightFunc
	Low, High  mgl32.Vec4 // colors at the lowest and highest vertex
}

// Grid builds a terrain mesh: (Cols+1)*(Rows+1) vertices on the XZ plane,
// centered on the origin, lifted by Height, two triangles per cell. Vertex
// colors blend from Low to High by relative height. Non-positive sizes give
// an empty mesh.
func Grid(opts GridOptions) *Mesh {
	if opts.Cols <= 0 || opts.Rows <= 0 {
		return &Mesh{}
	}
	height := opts.Height
	if height == nil {
		height = Flat
	}
	cell := opts.CellSize
	if cell <= 0 {
		cell = 1
	}

	stride := opts.Cols + 1
	count := stride * (opts.Rows + 1)
	vertices := make([]float32, 0, count*PositionComponents)
	heights := make([]float32, 0, count)
	minY, maxY := math32.Inf(1), math32.Inf(-1)

	originX := -float32(opts.Cols) * cell / 2
	originZ := -float32(opts.Rows) * cell / 2
	for r := 0; r <= opts.Rows; r++ {
		for c := 0; c <= opts.Cols; c++ {
			x := originX + float32(c)*cell
			z := originZ + float32(r)*cell
			y := height(x, z)
			vertices = append(vertices, x, y, z)
			heights = append(heights, y)
			minY = math32.Min(minY, y)
			maxY = math32.Max(maxY, y)
		}
	}

	colors := make([]float32, 0, count*ColorComponents)
	span := maxY - minY
	for _, y := range heights {
		t := float32(0)
		if span > 0 {
			t = (y - minY) / span
		}
		c := opts.Low.Mul(1 - t).Add(opts.High.Mul(t))
		colors = append(colors, c[:]...)
	}

	indices := make([]uint32, 0, opts.Cols*opts.Rows*6)
	for r := 0; r < opts.Rows; r++ {
		for c := 0; c < opts.Cols; c++ {
			tl := uint32(r*stride + c)
			tr := tl + 1
			bl := tl + uint32(stride)
			br := bl + 1
			indices = append(indices, tl, bl, tr, tr, bl, br)
		}
	}

	return &Mesh{vertices: vertices, colors: colors, indices: indices}
}
