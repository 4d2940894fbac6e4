package site

import "time"

// Outcome classifies a finished build.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeWarning Outcome = "warning"
	OutcomeFailed  Outcome = "failed"
)

// RouteResult records how one route fared.
type RouteResult struct {
	Route      string        `json:"route"`
	OutputPath string        `json:"output_path,omitempty"`
	Duration   time.Duration `json:"duration"`
	Warnings   []string      `json:"warnings,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// Failed reports whether the route produced no output.
func (r RouteResult) Failed() bool { return r.Error != "" }

// Report summarizes one site build.
type Report struct {
	BuildID   string        `json:"build_id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Outcome   Outcome       `json:"outcome"`
	Routes    []RouteResult `json:"routes"`
}

// FailedRoutes counts routes that produced no output.
func (r *Report) FailedRoutes() int {
	n := 0
	for _, rr := range r.Routes {
		if rr.Failed() {
			n++
		}
	}
	return n
}

// WarningCount sums warnings across all routes.
func (r *Report) WarningCount() int {
	n := 0
	for _, rr := range r.Routes {
		n += len(rr.Warnings)
	}
	return n
}

// resolveOutcome derives the final outcome from the per-route results.
func (r *Report) resolveOutcome() Outcome {
	if r.FailedRoutes() > 0 {
		return OutcomeFailed
	}
	if r.WarningCount() > 0 {
		return OutcomeWarning
	}
	return OutcomeSuccess
}
