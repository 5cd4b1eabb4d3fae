package engine

import (
	"sync/atomic"
	"time"
)

var _ TimeProvider = (*MockTimeProvider)(nil)

// MockTimeProvider is a hand-driven clock for headless frame stepping and tests
// Readings carry no monotonic component, elapsed time is exactly what Advance added
type MockTimeProvider struct {
	nanos atomic.Int64
	loc   *time.Location
}

// NewMockTimeProvider creates a clock frozen at startTime
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	m := &MockTimeProvider{loc: startTime.Location()}
	m.nanos.Store(startTime.UnixNano())
	return m
}

// Now returns the current reading
func (m *MockTimeProvider) Now() time.Time {
	return time.Unix(0, m.nanos.Load()).In(m.loc)
}

// SetTime jumps the clock to t
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.nanos.Store(t.UnixNano())
}

// Advance moves the clock forward by d and returns the new reading
func (m *MockTimeProvider) Advance(d time.Duration) time.Time {
	return time.Unix(0, m.nanos.Add(int64(d))).In(m.loc)
}
