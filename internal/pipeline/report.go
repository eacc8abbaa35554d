// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package pipeline

import (
	"errors"
	"fmt"
)

// BlockError is a parse failure of one block.
type BlockError struct {
	Source string
	Index  int
	Line   int
	Err    error
}

func (e *BlockError) Error() string {
	where := fmt.Sprintf("block %d", e.Index)
	if e.Line > 0 {
		where = fmt.Sprintf("block %d (line %d)", e.Index, e.Line)
	}
	if e.Source != "" {
		where = e.Source + ": " + where
	}
	return fmt.Sprintf("%s: %v", where, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

// Report summarizes a run.
type Report struct {
	// Total is the number of blocks found
	Total int

	// Parsed is the number of blocks that produced a spec
	Parsed int

	// Failures holds one entry per block that did not parse, in block order
	Failures []*BlockError
}

// Merge adds other's counts and failures to r.
func (r *Report) Merge(other *Report) {
	r.Total += other.Total
	r.Parsed += other.Parsed
	r.Failures = append(r.Failures, other.Failures...)
}

// OK reports whether every block parsed.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// Summary returns "parsed N of M functions".
func (r *Report) Summary() string {
	return fmt.Sprintf("parsed %d of %d functions", r.Parsed, r.Total)
}

// Err joins all failures, or returns nil when there are none.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}
