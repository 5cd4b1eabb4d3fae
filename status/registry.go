package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metric keys shared by the frame loop, the session and the debug overlay
const (
	KeyFrames          = "engine.frames"
	KeyThoughtsLive    = "thoughts.live"
	KeyThoughtsSpawned = "thoughts.spawned"
	KeyThoughtsEvicted = "thoughts.evicted"
	KeyThoughtsRetired = "thoughts.retired"
	KeyStarsRecycled   = "stars.recycled"
	KeySceneCurrent    = "scene.current"
	KeyInputBusy       = "input.busy"
	KeyLLMFailures     = "llm.failures"
	KeySpeechFailures  = "speech.failures"
)

// Registry is the central metrics facade
// Components cache pointers during construction; frame code writes directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   newMetricMap[atomic.Bool](),
		Ints:    newMetricMap[atomic.Int64](),
		Strings: newMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of registered metrics
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Strings.Count()
}

// Format renders every metric as sorted "key=value" pairs for the debug overlay
func (r *Registry) Format() string {
	var parts []string
	r.Strings.Range(func(k string, v *AtomicString) {
		parts = append(parts, k+"="+v.Load())
	})
	r.Bools.Range(func(k string, v *atomic.Bool) {
		parts = append(parts, fmt.Sprintf("%s=%t", k, v.Load()))
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s=%d", k, v.Load()))
	})
	return strings.Join(parts, " ")
}
