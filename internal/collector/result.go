package collector

import "fmt"

// Result tracks counts and errors from a collection run. Failures accumulate
// as messages rather than aborting the run.
type Result struct {
	TablesProcessed int
	HandsStored     int
	HandsSkipped    int // already in the idempotency ledger
	HandsMissing    int // transcript not available in the archive
	HandsFailed     int
	Errors          []string
}

// Add merges another Result into this one.
func (r *Result) Add(other Result) {
	r.TablesProcessed += other.TablesProcessed
	r.HandsStored += other.HandsStored
	r.HandsSkipped += other.HandsSkipped
	r.HandsMissing += other.HandsMissing
	r.HandsFailed += other.HandsFailed
	r.Errors = append(r.Errors, other.Errors...)
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"tables=%d stored=%d skipped=%d missing=%d failed=%d errors=%d",
		r.TablesProcessed, r.HandsStored, r.HandsSkipped,
		r.HandsMissing, r.HandsFailed, len(r.Errors),
	)
}
