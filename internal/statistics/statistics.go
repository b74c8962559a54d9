// Package statistics accumulates counters over an audit run and
// renders a human-readable summary.
package statistics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/f18m/photo-metadata-sanitizer-tools/internal/extractor"
)

// Statistics contains all counters for one audit run. Counters cover
// every processed year directory; per-directory numbers live in the
// report buckets instead.
type Statistics struct {
	FilesScanned    int64
	FilesIgnored    int64
	FilesMatching   int64
	FilesNonMatched int64
	FilesFailed     int64

	DirectoriesScanned int64

	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	FilesPerSecond float64

	mutex sync.RWMutex

	ResultCounts  map[string]int64
	FileTypeStats map[string]int64
}

// NewStatistics returns a new Statistics instance.
func NewStatistics() *Statistics {
	return &Statistics{
		StartTime:     time.Now(),
		ResultCounts:  make(map[string]int64),
		FileTypeStats: make(map[string]int64),
	}
}

// IncrementFilesScanned increases the count of classified files by 1.
func (s *Statistics) IncrementFilesScanned() {
	atomic.AddInt64(&s.FilesScanned, 1)
}

// IncrementFilesIgnored increases the count of ignored files by 1.
func (s *Statistics) IncrementFilesIgnored() {
	atomic.AddInt64(&s.FilesIgnored, 1)
}

// IncrementMatching increases the count of matching files by 1.
func (s *Statistics) IncrementMatching() {
	atomic.AddInt64(&s.FilesMatching, 1)
}

// IncrementNonMatching increases the count of non-matching files by 1.
func (s *Statistics) IncrementNonMatching() {
	atomic.AddInt64(&s.FilesNonMatched, 1)
}

// IncrementFailed increases the count of failed files by 1.
func (s *Statistics) IncrementFailed() {
	atomic.AddInt64(&s.FilesFailed, 1)
}

// IncrementDirectoriesScanned increases the count of scanned
// directories by 1.
func (s *Statistics) IncrementDirectoriesScanned() {
	atomic.AddInt64(&s.DirectoriesScanned, 1)
}

// RecordResult counts one extraction outcome by result name.
func (s *Statistics) RecordResult(result extractor.ProcessingResult) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.ResultCounts[result.String()]++
}

// RecordFileType counts one processed file by its extension.
func (s *Statistics) RecordFileType(ext string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.FileTypeStats[strings.ToUpper(strings.TrimPrefix(ext, "."))]++
}

// Finalize computes duration and throughput. Call once after the last
// directory has been processed.
func (s *Statistics) Finalize() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)

	scanned := atomic.LoadInt64(&s.FilesScanned)
	if s.Duration.Seconds() > 0 {
		s.FilesPerSecond = float64(scanned) / s.Duration.Seconds()
	}
}

// GetSummary returns a formatted summary of all statistics.
func (s *Statistics) GetSummary() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	summary := fmt.Sprintf(`Audit Summary:

Files:
		Classified: %d
		Ignored: %d
		Matching: %d
		Non-matching: %d
		Failed: %d

Directories:
		Scanned: %d

Performance:
		Duration: %v
		Files/Second: %.2f`,
		atomic.LoadInt64(&s.FilesScanned),
		atomic.LoadInt64(&s.FilesIgnored),
		atomic.LoadInt64(&s.FilesMatching),
		atomic.LoadInt64(&s.FilesNonMatched),
		atomic.LoadInt64(&s.FilesFailed),
		atomic.LoadInt64(&s.DirectoriesScanned),
		s.Duration,
		s.FilesPerSecond)

	if len(s.ResultCounts) > 0 {
		summary += "\n\nResults:\n" + formatCounts(s.ResultCounts)
	}
	if len(s.FileTypeStats) > 0 {
		summary += "\nFile Types:\n" + formatCounts(s.FileTypeStats)
	}
	return summary
}

// formatCounts renders a count map with stable key order.
func formatCounts(counts map[string]int64) string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, key := range keys {
		builder.WriteString(fmt.Sprintf("\t\t%s: %d\n", key, counts[key]))
	}
	return builder.String()
}
