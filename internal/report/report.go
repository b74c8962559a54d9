// Package report holds the per-year classification buckets and writes
// them to the report files consumed by the separate fix tool.
package report

import (
	"fmt"

	"github.com/f18m/photo-metadata-sanitizer-tools/internal/extractor"
)

// FailedEntry is a file that could not be classified, annotated with
// the result that caused the failure.
type FailedEntry struct {
	Path   string
	Result extractor.ProcessingResult
}

// String renders the entry the way it appears in the failed report.
func (e FailedEntry) String() string {
	return fmt.Sprintf("%s (error code: %s)", e.Path, e.Result)
}

// Report aggregates the classification buckets for one year directory.
// It is created fresh per traversal, fully populated during the walk
// and consumed once by the writer. Order of entries follows the walk
// order.
type Report struct {
	Matching    []string
	NonMatching []string
	Failed      []FailedEntry
}

// New returns an empty Report.
func New() *Report {
	return &Report{}
}

// AddMatching records a file whose creation year matches the target.
func (r *Report) AddMatching(path string) {
	r.Matching = append(r.Matching, path)
}

// AddNonMatching records a file whose creation year differs from the
// target, or that has no creation-date metadata at all.
func (r *Report) AddNonMatching(path string) {
	r.NonMatching = append(r.NonMatching, path)
}

// AddFailed records a file that could not be read or whose timestamp
// could not be parsed.
func (r *Report) AddFailed(path string, result extractor.ProcessingResult) {
	r.Failed = append(r.Failed, FailedEntry{Path: path, Result: result})
}

// Total returns the number of classified files. Ignored files are
// never counted.
func (r *Report) Total() int {
	return len(r.Matching) + len(r.NonMatching) + len(r.Failed)
}

// Percentage returns count as a percentage of the report total,
// rounded to two decimals. Returns 0 for an empty report.
func (r *Report) Percentage(count int) float64 {
	total := r.Total()
	if total == 0 {
		return 0
	}
	return float64(int(float64(count)/float64(total)*100*100+0.5)) / 100
}
