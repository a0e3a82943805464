// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import "fmt"

// ProcessingError reports one paper that failed to become a report row.
// The aggregator counts it and drops the item; siblings are unaffected.
type ProcessingError struct {
	// Index is the paper's position in retrieval order, for traceability.
	Index int
	Title string
	Err   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing paper %d (%q): %v", e.Index, e.Title, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// WindowError reports a month window that failed at orchestration level,
// typically an unreachable index. The bucket is marked failed and the run
// continues with the next window.
type WindowError struct {
	Month string
	Err   error
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("window %s failed: %v", e.Month, e.Err)
}

func (e *WindowError) Unwrap() error { return e.Err }
