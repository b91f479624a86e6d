package utils

import (
	"math"
	"time"
)

// RetryPolicy defines reconnect backoff behavior for agents that lose their
// hub connection.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultRetryPolicy returns the default reconnect policy
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxRetries: 6,
		BaseDelay:  1 * time.Second,
		MaxDelay:   60 * time.Second,
	}
}

// CalculateDelay calculates exponential backoff delay for a retry attempt.
// Attempts past MaxRetries stay pinned at MaxDelay.
func (r *RetryPolicy) CalculateDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt >= r.MaxRetries {
		return r.MaxDelay
	}

	delay := time.Duration(math.Pow(2, float64(attempt))) * r.BaseDelay
	if delay > r.MaxDelay {
		return r.MaxDelay
	}
	return delay
}
