package graphics

import (
	"fmt"

	"cod3rgl/internal/gpu"
	"cod3rgl/internal/logging"
)

// TargetID identifies a target; it is the target's position in draw order
type TargetID int

// NoTarget is the selection of a registry with no targets
const NoTarget TargetID = -1

// DefaultMaxTargets bounds the number of targets a registry will create
const DefaultMaxTargets = 16

// RegistryOptions configures a TargetRegistry. Zero values pick the defaults.
type RegistryOptions struct {
	MaxTargets     int
	BufferCapacity int
	Rebase         RebaseMode
}

// TargetRegistry owns every draw target in draw order, plus the selected
// target that appends go to. Targets live until Dispose.
type TargetRegistry struct {
	dev      gpu.Device
	targets  []*DrawTarget
	selected TargetID
	max      int
	capacity int
	mode     RebaseMode
}

func NewTargetRegistry(dev gpu.Device, opts RegistryOptions) *TargetRegistry {
	if opts.MaxTargets <= 0 {
		opts.MaxTargets = DefaultMaxTargets
	}
	if opts.BufferCapacity <= 0 {
		opts.BufferCapacity = DefaultBufferCapacity
	}
	return &TargetRegistry{
		dev:      dev,
		targets:  make([]*DrawTarget, 0, opts.MaxTargets),
		selected: NoTarget,
		max:      opts.MaxTargets,
		capacity: opts.BufferCapacity,
		mode:     opts.Rebase,
	}
}

// CreateTarget allocates a new target at the end of the draw order. The
// first target created becomes the selection.
func (r *TargetRegistry) CreateTarget(kind TargetKind) (TargetID, error) {
	if len(r.targets) >= r.max {
		return NoTarget, fmt.Errorf("%w: registry already holds %d targets", ErrCapacityExceeded, r.max)
	}
	id := TargetID(len(r.targets))
	r.targets = append(r.targets, newDrawTarget(r.dev, id, kind, r.mode, r.capacity))
	if r.selected == NoTarget {
		r.selected = id
	}
	logging.Logger().Debug("draw target created", "id", id, "kind", kind, "capacity", r.capacity, "rebase", r.mode)
	return id, nil
}

// Select makes id the target for subsequent appends
func (r *TargetRegistry) Select(id TargetID) error {
	if !r.valid(id) {
		return fmt.Errorf("%w: %d (registry holds %d)", ErrUnknownTarget, id, len(r.targets))
	}
	r.selected = id
	return nil
}

// Current returns the selected id, NoTarget if nothing was created yet
func (r *TargetRegistry) Current() TargetID { return r.selected }

// CurrentTarget returns the selected target
func (r *TargetRegistry) CurrentTarget() (*DrawTarget, error) {
	return r.Target(r.selected)
}

// Target looks a target up by id
func (r *TargetRegistry) Target(id TargetID) (*DrawTarget, error) {
	if !r.valid(id) {
		return nil, fmt.Errorf("%w: %d (registry holds %d)", ErrUnknownTarget, id, len(r.targets))
	}
	return r.targets[id], nil
}

// Targets returns the targets in draw order
func (r *TargetRegistry) Targets() []*DrawTarget { return r.targets }

func (r *TargetRegistry) Len() int { return len(r.targets) }

// Reset empties every target
func (r *TargetRegistry) Reset() {
	for _, t := range r.targets {
		t.Reset()
	}
}

// Dispose releases every target. The registry is empty afterwards.
func (r *TargetRegistry) Dispose() {
	for _, t := range r.targets {
		t.Dispose()
	}
	r.targets = r.targets[:0]
	r.selected = NoTarget
}

func (r *TargetRegistry) valid(id TargetID) bool {
	return id >= 0 && int(id) < len(r.targets)
}
