// Package system reports the health of the service's dependencies for the
// admin status page.
package system

import (
	"context"
	"sort"
	"sync"
	"time"
)

// CheckFunc returns nil when the dependency answers.
type CheckFunc func(ctx context.Context) error

type ComponentStatus struct {
	Name      string `json:"name"`
	Healthy   bool   `json:"healthy"`
	Error     string `json:"error,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

type Report struct {
	Healthy    bool              `json:"healthy"`
	Uptime     string            `json:"uptime"`
	Generator  string            `json:"generator"`
	Components []ComponentStatus `json:"components"`
}

type Status struct {
	Generator string
	Timeout   time.Duration

	started time.Time
	checks  map[string]CheckFunc
}

func NewStatus(generator string, timeout time.Duration) *Status {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Status{Generator: generator, Timeout: timeout, started: time.Now(), checks: map[string]CheckFunc{}}
}

// Register adds a named check. Not safe to call once Check is in use.
func (s *Status) Register(name string, fn CheckFunc) {
	s.checks[name] = fn
}

// Check runs every registered check concurrently.
func (s *Status) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make([]ComponentStatus, 0, len(s.checks))
	)
	for name, fn := range s.checks {
		wg.Add(1)
		go func(name string, fn CheckFunc) {
			defer wg.Done()
			start := time.Now()
			err := fn(ctx)
			st := ComponentStatus{Name: name, Healthy: err == nil, LatencyMS: time.Since(start).Milliseconds()}
			if err != nil {
				st.Error = err.Error()
			}
			mu.Lock()
			out = append(out, st)
			mu.Unlock()
		}(name, fn)
	}
	wg.Wait()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	healthy := true
	for _, c := range out {
		healthy = healthy && c.Healthy
	}
	return Report{
		Healthy:    healthy,
		Uptime:     time.Since(s.started).Round(time.Second).String(),
		Generator:  s.Generator,
		Components: out,
	}
}
