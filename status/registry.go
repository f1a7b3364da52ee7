// Package status keeps named runtime metrics. The frame loop writes them,
// the stats command reads them back as text.
package status

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// Float is an atomic float64; the zero value is 0
type Float struct {
	bits atomic.Uint64
}

// Set stores v
func (f *Float) Set(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// Get loads the value
func (f *Float) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// metricMap hands out one stable pointer per name
type metricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func newMetricMap[T any]() *metricMap[T] {
	return &metricMap[T]{items: make(map[string]*T)}
}

func (m *metricMap[T]) get(name string) *T {
	m.mu.RLock()
	ptr, ok := m.items[name]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[name]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[name] = ptr
	return ptr
}

func (m *metricMap[T]) each(fn func(name string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for name, ptr := range m.items {
		fn(name, ptr)
	}
}

// Registry holds integer and float metrics by name
// Callers cache the returned pointers and write to them lock-free
type Registry struct {
	ints   *metricMap[atomic.Int64]
	floats *metricMap[Float]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		ints:   newMetricMap[atomic.Int64](),
		floats: newMetricMap[Float](),
	}
}

// Int returns the integer metric name, creating it at 0
func (r *Registry) Int(name string) *atomic.Int64 {
	return r.ints.get(name)
}

// Float returns the float metric name, creating it at 0
func (r *Registry) Float(name string) *Float {
	return r.floats.get(name)
}

// Lines formats every metric as "name value", sorted by name
func (r *Registry) Lines() []string {
	type line struct{ name, text string }
	var out []line
	width := 0

	r.ints.each(func(name string, v *atomic.Int64) {
		out = append(out, line{name, fmt.Sprintf("%d", v.Load())})
		width = max(width, len(name))
	})
	r.floats.each(func(name string, v *Float) {
		out = append(out, line{name, fmt.Sprintf("%.2f", v.Get())})
		width = max(width, len(name))
	})

	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	lines := make([]string, len(out))
	for i, l := range out {
		lines[i] = fmt.Sprintf("%-*s  %s", width, l.name, l.text)
	}
	return lines
}
