package health

import (
	"context"
	"sync"
	"time"
)

// Check is one dependency a running watch needs, such as the database or
// the sync path. Run returns nil when the dependency is usable.
type Check struct {
	Name string
	Run  func(ctx context.Context) error
}

// Result is the outcome of one Check.
type Result struct {
	Name    string        `json:"name"`
	OK      bool          `json:"ok"`
	Error   string        `json:"error,omitempty"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// Report is the readiness of the process: "ready" when every check passed,
// "degraded" otherwise.
type Report struct {
	Status    string    `json:"status"`
	Checks    []Result  `json:"checks"`
	Timestamp time.Time `json:"timestamp"`
}

// Checker runs a fixed set of checks, each bounded by a timeout.
type Checker struct {
	timeout time.Duration
	checks  []Check
}

// New creates a checker. A zero timeout means 5 seconds per check.
func New(timeout time.Duration, checks ...Check) *Checker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Checker{timeout: timeout, checks: checks}
}

// Ready runs every check concurrently. Results keep the order the checks
// were given in.
func (c *Checker) Ready(ctx context.Context) Report {
	results := make([]Result, len(c.checks))

	var wg sync.WaitGroup
	for i, check := range c.checks {
		i, check := i, check
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = c.run(ctx, check)
		}()
	}
	wg.Wait()

	report := Report{Status: "ready", Checks: results, Timestamp: time.Now()}
	for _, r := range results {
		if !r.OK {
			report.Status = "degraded"
		}
	}
	return report
}

// run returns when the check finishes or its timeout expires, whichever is
// first. A check that ignores its context is abandoned, not waited for.
func (c *Checker) run(ctx context.Context, check Check) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() { done <- check.Run(ctx) }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}

	result := Result{Name: check.Name, OK: err == nil, Elapsed: time.Since(start)}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}
