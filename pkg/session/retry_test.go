package session

import (
	"errors"
	"testing"
	"time"
)

func TestRetryMaxAttempts(t *testing.T) {
	rs := RetryPolicy{MaxAttempts: 3, Deadline: -1}.newState()

	for i := 0; i < 3; i++ {
		if err := rs.absorb(); err != nil {
			t.Fatalf("absorb %d: %v", i, err)
		}
	}
	err := rs.absorb()
	if !errors.Is(err, ErrRetryBudget) {
		t.Fatalf("absorb after budget = %v, want ErrRetryBudget", err)
	}
}

func TestRetryDeadline(t *testing.T) {
	rs := RetryPolicy{Deadline: time.Millisecond}.newState()

	time.Sleep(5 * time.Millisecond)
	if err := rs.absorb(); !errors.Is(err, ErrRetryBudget) {
		t.Fatalf("absorb past deadline = %v, want ErrRetryBudget", err)
	}
}

func TestRetryUnbounded(t *testing.T) {
	rs := UnboundedRetryPolicy().newState()

	for i := 0; i < 10000; i++ {
		if err := rs.absorb(); err != nil {
			t.Fatalf("absorb %d: %v", i, err)
		}
	}
}

func TestRetryNormalize(t *testing.T) {
	p := RetryPolicy{}.normalize()
	if p.Deadline != DefaultRetryDeadline {
		t.Fatalf("normalized deadline = %v, want %v", p.Deadline, DefaultRetryDeadline)
	}
	if p.MaxAttempts != 0 {
		t.Fatalf("normalized max attempts = %d, want 0", p.MaxAttempts)
	}

	p = RetryPolicy{MaxAttempts: -1, Deadline: -1}.normalize()
	if p.Deadline != -1 || p.MaxAttempts != -1 {
		t.Fatalf("negative bounds should be preserved, got %+v", p)
	}
}
