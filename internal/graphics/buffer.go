package graphics

import (
	"fmt"

	"cod3rgl/internal/gpu"
)

// DefaultBufferCapacity is the element capacity of each target buffer
const DefaultBufferCapacity = 50000

// GrowableBuffer is a fixed-capacity, append-only host array paired with a
// GPU buffer. Only the first Len elements are valid; Reset makes the buffer
// empty again without releasing anything.
type GrowableBuffer[T float32 | uint32] struct {
	dev    gpu.Device
	target gpu.BufferTarget
	id     uint32
	data   []T
	length int
}

// NewGrowableBuffer allocates capacity elements of host storage and a GPU
// buffer bound to target on upload
func NewGrowableBuffer[T float32 | uint32](dev gpu.Device, target gpu.BufferTarget, capacity int) *GrowableBuffer[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &GrowableBuffer[T]{
		dev:    dev,
		target: target,
		id:     dev.CreateBuffer(),
		data:   make([]T, capacity),
	}
}

// Append copies data after the current contents. If it does not fit, the
// buffer is left unchanged and an error wrapping ErrCapacityExceeded is
// returned.
func (b *GrowableBuffer[T]) Append(data ...T) error {
	if len(data) > b.Remaining() {
		return fmt.Errorf("%w: %s buffer %d holds %d of %d, cannot append %d",
			ErrCapacityExceeded, b.target, b.id, b.length, len(b.data), len(data))
	}
	copy(b.data[b.length:], data)
	b.length += len(data)
	return nil
}

// Reset empties the buffer. Stale contents past Len are never uploaded.
func (b *GrowableBuffer[T]) Reset() {
	b.length = 0
}

// Upload sends the valid prefix to the paired GPU buffer
func (b *GrowableBuffer[T]) Upload() {
	switch d := any(b.data[:b.length]).(type) {
	case []float32:
		b.dev.BufferFloats(b.target, b.id, d)
	case []uint32:
		b.dev.BufferUints(b.target, b.id, d)
	}
}

// Data returns the valid prefix. It aliases the buffer's storage.
func (b *GrowableBuffer[T]) Data() []T { return b.data[:b.length] }

func (b *GrowableBuffer[T]) Len() int       { return b.length }
func (b *GrowableBuffer[T]) Cap() int       { return len(b.data) }
func (b *GrowableBuffer[T]) Remaining() int { return len(b.data) - b.length }
func (b *GrowableBuffer[T]) ID() uint32     { return b.id }

// Dispose releases the GPU buffer
func (b *GrowableBuffer[T]) Dispose() {
	if b.id != 0 {
		b.dev.DeleteBuffer(b.id)
		b.id = 0
	}
}

// appendOffset appends every value of src plus offset to b, with the same
// all-or-nothing guarantee as Append
func appendOffset(b *GrowableBuffer[uint32], src []uint32, offset uint32) error {
	if len(src) > b.Remaining() {
		return fmt.Errorf("%w: %s buffer %d holds %d of %d, cannot append %d",
			ErrCapacityExceeded, b.target, b.id, b.length, len(b.data), len(src))
	}
	dst := b.data[b.length : b.length+len(src)]
	for i, v := range src {
		dst[i] = v + offset
	}
	b.length += len(src)
	return nil
}
