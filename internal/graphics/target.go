package graphics

import (
	"fmt"
	"slices"
	"strings"

	"cod3rgl/internal/gpu"
	"cod3rgl/internal/mesh"
)

// TargetKind selects how a target's geometry is submitted
type TargetKind int

const (
	// KindElements keeps shared vertices and draws with an index buffer
	KindElements TargetKind = iota
	// KindArrays expands meshes into a plain triangle list and draws without indices
	KindArrays
)

func (k TargetKind) String() string {
	if k == KindArrays {
		return "arrays"
	}
	return "elements"
}

// RebaseMode is the unit the index offset advances by after each append
type RebaseMode int

const (
	// RebaseVertexCount advances by the appended vertex count, which keeps
	// every index pointing at its own mesh's vertices
	RebaseVertexCount RebaseMode = iota
	// RebaseTriangleCount advances by the appended triangle count. It only
	// reproduces the output of older builds and breaks for meshes whose
	// vertex and triangle counts differ.
	RebaseTriangleCount
)

func (m RebaseMode) String() string {
	if m == RebaseTriangleCount {
		return "triangles"
	}
	return "vertices"
}

// ParseRebaseMode accepts "vertices" (or "") and "triangles"
func ParseRebaseMode(s string) (RebaseMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vertices", "vertex":
		return RebaseVertexCount, nil
	case "triangles", "triangle":
		return RebaseTriangleCount, nil
	}
	return RebaseVertexCount, fmt.Errorf("unknown rebase mode %q", s)
}

// DrawTarget is one vertex array object with position, color and index
// buffers, drawn with a single call per frame. Meshes appended to it are
// merged; their indices are offset so they keep addressing their own
// vertices in the merged buffers.
type DrawTarget struct {
	ID   TargetID
	Kind TargetKind
	Mode RebaseMode

	Positions *GrowableBuffer[float32]
	Colors    *GrowableBuffer[float32]
	Indices   *GrowableBuffer[uint32]

	dev    gpu.Device
	vao    uint32
	rebase uint32
}

func newDrawTarget(dev gpu.Device, id TargetID, kind TargetKind, mode RebaseMode, capacity int) *DrawTarget {
	t := &DrawTarget{
		ID:   id,
		Kind: kind,
		Mode: mode,
		dev:  dev,
		vao:  dev.CreateVertexArray(),
	}
	t.Positions = NewGrowableBuffer[float32](dev, gpu.ArrayBuffer, capacity)
	t.Colors = NewGrowableBuffer[float32](dev, gpu.ArrayBuffer, capacity)
	t.Indices = NewGrowableBuffer[uint32](dev, gpu.ElementArrayBuffer, capacity)
	return t
}

// AppendIndexed merges one mesh's geometry into the target. positions must
// already be in the space the shader expects. triangles must equal
// len(indices)/3; RebaseTriangleCount advances the index offset by it.
//
// The append is all-or-nothing: malformed geometry or a wrong triangle
// count fails with mesh.ErrInvalidGeometry, a mesh that does not fit fails
// with ErrCapacityExceeded and a rebased index past the merged vertices
// fails with ErrIndexOutOfRange, all leaving the target unchanged.
func (t *DrawTarget) AppendIndexed(positions, colors []float32, indices []uint32, triangles int) error {
	vertices, err := mesh.Validate(positions, colors, indices)
	if err != nil {
		return fmt.Errorf("target %d: %w", t.ID, err)
	}
	if triangles < 0 || triangles != len(indices)/3 {
		return fmt.Errorf("target %d: %w: triangle count %d for %d indices",
			t.ID, mesh.ErrInvalidGeometry, triangles, len(indices))
	}
	if t.Kind == KindArrays {
		return t.appendExpanded(positions, colors, indices)
	}

	if len(positions) > t.Positions.Remaining() ||
		len(colors) > t.Colors.Remaining() ||
		len(indices) > t.Indices.Remaining() {
		return fmt.Errorf("%w: target %d cannot take %d vertices and %d indices (has %d/%d indices)",
			ErrCapacityExceeded, t.ID, vertices, len(indices), t.Indices.Len(), t.Indices.Cap())
	}

	// the triangle count can run ahead of the vertex count
	if len(indices) > 0 {
		maxIndex := slices.Max(indices)
		if uint64(maxIndex)+uint64(t.rebase) >= uint64(t.VertexCount()+vertices) {
			return fmt.Errorf("%w: target %d index %d rebased by %d, only %d vertices",
				ErrIndexOutOfRange, t.ID, maxIndex, t.rebase, t.VertexCount()+vertices)
		}
	}

	if err := t.Positions.Append(positions...); err != nil {
		return err
	}
	if err := t.Colors.Append(colors...); err != nil {
		return err
	}
	if err := appendOffset(t.Indices, indices, t.rebase); err != nil {
		return err
	}

	switch t.Mode {
	case RebaseTriangleCount:
		t.rebase += uint32(triangles)
	default:
		t.rebase += uint32(vertices)
	}
	return nil
}

// AppendMesh appends m without any transform
func (t *DrawTarget) AppendMesh(m *mesh.Mesh) error {
	return t.AppendIndexed(m.Vertices(), m.Colors(), m.Indices(), m.TriangleCount())
}

// appendExpanded writes one vertex per index so the target can be drawn
// as a plain triangle list
func (t *DrawTarget) appendExpanded(positions, colors []float32, indices []uint32) error {
	if len(indices)*mesh.PositionComponents > t.Positions.Remaining() ||
		len(indices)*mesh.ColorComponents > t.Colors.Remaining() {
		return fmt.Errorf("%w: target %d cannot take %d expanded vertices (has %d/%d floats)",
			ErrCapacityExceeded, t.ID, len(indices), t.Positions.Len(), t.Positions.Cap())
	}
	for _, idx := range indices {
		p := int(idx) * mesh.PositionComponents
		c := int(idx) * mesh.ColorComponents
		if err := t.Positions.Append(positions[p : p+mesh.PositionComponents]...); err != nil {
			return err
		}
		if err := t.Colors.Append(colors[c : c+mesh.ColorComponents]...); err != nil {
			return err
		}
	}
	return nil
}

// Reset empties the target for the next frame
func (t *DrawTarget) Reset() {
	t.Positions.Reset()
	t.Colors.Reset()
	t.Indices.Reset()
	t.rebase = 0
}

// VertexCount is the number of vertices appended this frame
func (t *DrawTarget) VertexCount() int { return t.Positions.Len() / mesh.PositionComponents }

// IndexCount is the number of indices appended this frame
func (t *DrawTarget) IndexCount() int { return t.Indices.Len() }

// Rebase is the offset the next appended mesh's indices will get
func (t *DrawTarget) Rebase() uint32 { return t.rebase }

// Empty reports whether nothing drawable was appended this frame
func (t *DrawTarget) Empty() bool {
	if t.Kind == KindArrays {
		return t.VertexCount() == 0
	}
	return t.IndexCount() == 0
}

func (t *DrawTarget) VAO() uint32 { return t.vao }

// Dispose releases the vertex array and the three buffers
func (t *DrawTarget) Dispose() {
	t.Positions.Dispose()
	t.Colors.Dispose()
	t.Indices.Dispose()
	if t.vao != 0 {
		t.dev.DeleteVertexArray(t.vao)
		t.vao = 0
	}
}
