// Package scene holds what the demo draws each frame.
package scene

import (
	"fmt"

	"cod3rgl/internal/entity"
	"cod3rgl/internal/graphics"
	"cod3rgl/internal/graphics/renderer"
	"cod3rgl/internal/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

// Scene is driven by the frame loop: Setup once, then Update and Draw every
// frame before the renderer flushes
type Scene interface {
	Setup(r *renderer.Renderer) error
	Update(dt float64)
	Draw(r *renderer.Renderer) error
}

var (
	Blue    = mgl32.Vec4{0.219608, 0.619608, 0.909804, 1}
	Pink    = mgl32.Vec4{0.901961, 0.611765, 1, 1}
	Purple  = mgl32.Vec4{0.721569, 0.556863, 0.909804, 1}
	Magenta = mgl32.Vec4{0.72549, 0.658824, 1, 1}
)

type spinner struct {
	*entity.Entity
	degreesPerSecond float32
}

// Demo spins a few rects over a wavy terrain. Rects and terrain go to
// separate targets, so a frame costs two draw calls.
type Demo struct {
	rects   []spinner
	terrain *entity.Entity

	rectTarget    graphics.TargetID
	terrainTarget graphics.TargetID
}

func NewDemo() *Demo {
	d := &Demo{
		rects: []spinner{
			{entity.NewRect(&Purple, mgl32.Vec3{0, 0, 0}), 2.4},
			{entity.NewRect(&Blue, mgl32.Vec3{2.5, 1.5, 0}), 1.2},
			{entity.NewRect(&Magenta, mgl32.Vec3{0, 0, 0}), 1.2},
			{entity.NewRect(nil, mgl32.Vec3{-2.5, 1.5, -1}), -1.2},
		},
		terrain: entity.New(mesh.Grid(mesh.GridOptions{
			Cols:     32,
			Rows:     32,
			CellSize: 0.5,
			Height:   mesh.Waves(0.4, 0.6),
			Low:      Purple,
			High:     Pink,
		})),
		rectTarget:    graphics.NoTarget,
		terrainTarget: graphics.NoTarget,
	}
	d.terrain.Translate(mgl32.Vec3{0, -2, 0})
	return d
}

// Setup uses the renderer's selected target for the rects and creates a
// second target for the terrain
func (d *Demo) Setup(r *renderer.Renderer) error {
	reg := r.Registry()
	d.rectTarget = reg.Current()
	if d.rectTarget == graphics.NoTarget {
		id, err := reg.CreateTarget(graphics.KindElements)
		if err != nil {
			return err
		}
		d.rectTarget = id
	}
	id, err := reg.CreateTarget(graphics.KindElements)
	if err != nil {
		return fmt.Errorf("terrain target: %w", err)
	}
	d.terrainTarget = id
	return nil
}

func (d *Demo) Update(dt float64) {
	for _, s := range d.rects {
		s.RotateZ(s.degreesPerSecond * float32(dt))
	}
}

// Draw appends every entity to its target. Targets are emptied by each
// Render, so static geometry is appended again every frame.
func (d *Demo) Draw(r *renderer.Renderer) error {
	reg := r.Registry()
	if err := reg.Select(d.rectTarget); err != nil {
		return err
	}
	for i, s := range d.rects {
		if err := r.AppendEntity(s.Entity); err != nil {
			return fmt.Errorf("rect %d: %w", i, err)
		}
	}
	if err := reg.Select(d.terrainTarget); err != nil {
		return err
	}
	if err := r.AppendEntity(d.terrain); err != nil {
		return fmt.Errorf("terrain: %w", err)
	}
	return reg.Select(d.rectTarget)
}
