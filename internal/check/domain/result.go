package domain

// Result is the outcome of one checker for one hook run. Output is the raw
// text the checker produced; empty Output means the check passed.
type Result struct {
	Check  string
	Output string
}

// Passed reports whether the check produced no output.
func (r Result) Passed() bool {
	return r.Output == ""
}

// Failed returns the results that produced output, preserving order.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed() {
			failed = append(failed, r)
		}
	}
	return failed
}

// CountByOutcome returns counts of passed and failed results.
func CountByOutcome(results []Result) (passed, failed int) {
	for _, r := range results {
		if r.Passed() {
			passed++
		} else {
			failed++
		}
	}
	return
}
