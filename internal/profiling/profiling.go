package profiling

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// Lightweight per-frame CPU timing.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
)

// Track returns a stop function that adds the elapsed time to name.
// Usage: defer profiling.Track("renderer.Render")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears the current totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of the current totals
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// SumWithPrefix adds up every total whose name starts with prefix
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var sum time.Duration
	for k, v := range frameTotals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// TopN formats the n largest totals, largest first.
// Example: "renderer.Render:4.2ms, scene.Draw:2.1ms"
func TopN(n int) string {
	type pair struct {
		name string
		dur  time.Duration
	}
	ss := Snapshot()
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{k, v})
	}
	slices.SortFunc(list, func(a, b pair) int {
		if c := cmp.Compare(b.dur, a.dur); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		parts = append(parts, fmt.Sprintf("%s:%.1fms", p.name, float64(p.dur.Microseconds())/1000.0))
	}
	return strings.Join(parts, ", ")
}

// FrameStats counts what one render pass submitted
type FrameStats struct {
	DrawCalls int
	Targets   int
	Vertices  int
	Indices   int
}

// AddDraw records one draw call
func (s *FrameStats) AddDraw(vertices, indices int) {
	s.DrawCalls++
	s.Vertices += vertices
	s.Indices += indices
}

func (s FrameStats) String() string {
	return fmt.Sprintf("draws=%d targets=%d vertices=%d indices=%d", s.DrawCalls, s.Targets, s.Vertices, s.Indices)
}
