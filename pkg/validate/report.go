package validate

import "fmt"

// Report aggregates every violation found by one validation pass.
// A fresh report is valid; the first recorded violation flips it.
type Report struct {
	Valid  bool
	Errors []string
}

// NewReport creates an empty, valid report.
func NewReport() *Report {
	return &Report{Valid: true}
}

func (r *Report) add(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
