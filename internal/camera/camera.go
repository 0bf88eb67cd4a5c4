// Package camera implements a yaw/pitch first-person camera.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultFOV         float32 = 45
	DefaultNear        float32 = 0.1
	DefaultFar         float32 = 1000

	maxPitch float32 = 89
)

// Direction is a movement along the camera axes
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// Camera holds position and orientation in degrees. Front, Right and Up are
// derived from Yaw and Pitch and kept in sync by every mutating method.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3
	WorldUp  mgl32.Vec3

	Yaw   float32
	Pitch float32

	Speed       float32
	Sensitivity float32
	FOV         float32
	Near        float32
	Far         float32
	AspectRatio float32
}

// New places a camera at position looking along yaw/pitch
func New(position, up mgl32.Vec3, yaw, pitch float32) *Camera {
	c := &Camera{
		Position:    position,
		WorldUp:     up,
		Yaw:         yaw,
		Pitch:       pitch,
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		FOV:         DefaultFOV,
		Near:        DefaultNear,
		Far:         DefaultFar,
		AspectRatio: 16.0 / 9.0,
	}
	c.updateVectors()
	return c
}

func (c *Camera) updateVectors() {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	c.Front = mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

// Move translates the camera by Speed*dt along dir
func (c *Camera) Move(dir Direction, dt float32) {
	step := c.Speed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(step))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(step))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(step))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(step))
	}
}

// ProcessMouseMovement turns the camera by a cursor offset in pixels
func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool) {
	c.Yaw += xoffset * c.Sensitivity
	c.Pitch += yoffset * c.Sensitivity

	if constrainPitch {
		if c.Pitch > maxPitch {
			c.Pitch = maxPitch
		}
		if c.Pitch < -maxPitch {
			c.Pitch = -maxPitch
		}
	}
	c.updateVectors()
}

// SetViewport updates the aspect ratio; zero sizes are ignored
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.Near, c.Far)
}

// MouseTracker turns absolute cursor positions into offsets. The first
// sample after Release produces no movement.
type MouseTracker struct {
	lastX, lastY float64
	first        bool
}

func NewMouseTracker() *MouseTracker {
	return &MouseTracker{first: true}
}

// Offset returns the movement since the previous sample. Y is inverted so
// moving the cursor up pitches the camera up.
func (m *MouseTracker) Offset(x, y float64) (float32, float32) {
	if m.first {
		m.lastX, m.lastY = x, y
		m.first = false
		return 0, 0
	}
	xoffset := x - m.lastX
	yoffset := m.lastY - y
	m.lastX, m.lastY = x, y
	return float32(xoffset), float32(yoffset)
}

// Release forgets the last sample, e.g. when the look button goes up
func (m *MouseTracker) Release() {
	m.first = true
}
