// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the shared HTTP retry policy.
package httputil

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// Policy describes how a request is retried: how many times, the base
// backoff duration, and which response statuses count as transient. A
// Policy is a plain value shared across workers; each call site passes it
// explicitly instead of hiding retry state in the client.
type Policy struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int

	// BaseDelay is the first backoff duration; it doubles each retry.
	BaseDelay time.Duration

	// RetryStatuses lists the HTTP statuses treated as transient.
	RetryStatuses []int
}

// DefaultPolicy returns the policy used against external services:
// 5 retries, 500 ms base delay, retrying 429 and the common 5xx statuses.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:    5,
		BaseDelay:     500 * time.Millisecond,
		RetryStatuses: []int{429, 500, 502, 503, 504},
	}
}

func (p Policy) retryable(status int) bool {
	for _, s := range p.RetryStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// TransientError is returned when a request still yields a retryable
// status after the policy's retries are exhausted.
type TransientError struct {
	Status int
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient HTTP %d after retries exhausted", e.Status)
}

// Do executes req, retrying transient statuses and transport errors with
// exponential backoff per p. Non-retryable statuses return immediately
// with the response. When retries run out on a retryable status the
// response body is drained and a *TransientError is returned. A context
// cancellation during backoff returns ctx.Err().
func Do(ctx context.Context, client *http.Client, req *http.Request, p Policy) (*http.Response, error) {
	if p.MaxRetries <= 0 {
		p = DefaultPolicy()
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err == nil {
			if !p.retryable(resp.StatusCode) {
				return resp, nil
			}
			// Drain and close the body before retrying or giving up.
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if attempt >= p.MaxRetries {
				return nil, &TransientError{Status: resp.StatusCode}
			}
		} else {
			if attempt >= p.MaxRetries {
				return nil, err
			}
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * p.BaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
