package session

import (
	"errors"
	"fmt"
	"time"
)

// ErrRetryBudget is returned when a retry loop exhausts its budget
// before the transport made progress.
var ErrRetryBudget = errors.New("session: retry budget exhausted")

// Default retry bounds.
const (
	// DefaultRetryDeadline bounds each driver stage's busy-poll loop.
	DefaultRetryDeadline = 30 * time.Second
)

// RetryPolicy bounds a busy-poll retry loop. The loop re-invokes the
// underlying operation immediately on would-block, with no delay or
// backoff; the policy only decides when to give up.
//
// MaxAttempts and Deadline of 0 take defaults (unlimited attempts,
// DefaultRetryDeadline). Negative values disable the respective
// bound, which reproduces a fully unbounded busy-poll.
type RetryPolicy struct {
	// MaxAttempts is the number of would-block results absorbed
	// before giving up.
	MaxAttempts int

	// Deadline is the wall-clock budget per driver stage.
	Deadline time.Duration
}

// DefaultRetryPolicy returns the default bounded policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Deadline: DefaultRetryDeadline}
}

// UnboundedRetryPolicy disables both bounds.
func UnboundedRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: -1, Deadline: -1}
}

// normalize fills zero values with defaults.
func (p RetryPolicy) normalize() RetryPolicy {
	if p.Deadline == 0 {
		p.Deadline = DefaultRetryDeadline
	}
	return p
}

// retryState tracks one loop's consumption of its budget.
type retryState struct {
	maxAttempts int
	deadline    time.Time
	attempts    int
}

// newState starts a fresh budget for one retry loop.
func (p RetryPolicy) newState() *retryState {
	p = p.normalize()
	rs := &retryState{maxAttempts: p.MaxAttempts}
	if p.Deadline > 0 {
		rs.deadline = time.Now().Add(p.Deadline)
	}
	return rs
}

// absorb records one would-block result. It returns an error exactly
// when the budget is exhausted.
func (rs *retryState) absorb() error {
	rs.attempts++
	if rs.maxAttempts > 0 && rs.attempts > rs.maxAttempts {
		return fmt.Errorf("%w: %d attempts", ErrRetryBudget, rs.attempts-1)
	}
	if !rs.deadline.IsZero() && time.Now().After(rs.deadline) {
		return fmt.Errorf("%w: deadline passed after %d attempts", ErrRetryBudget, rs.attempts)
	}
	return nil
}
