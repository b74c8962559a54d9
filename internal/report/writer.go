package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Writer persists the non-matching and failed buckets of a Report to
// per-year text files. A run that finds no issues removes any stale
// report left by a previous run, so downstream tooling never acts on
// outdated lists.
type Writer struct {
	outputDir string
	logger    *logrus.Logger
}

// NewWriter returns a Writer emitting files into outputDir.
func NewWriter(outputDir string, logger *logrus.Logger) *Writer {
	if outputDir == "" {
		outputDir = "."
	}
	return &Writer{outputDir: outputDir, logger: logger}
}

// NonMatchingPath returns the path of the non-matching report for a
// year.
func (w *Writer) NonMatchingPath(year int) string {
	return filepath.Join(w.outputDir, fmt.Sprintf("%d_non_matching_files.txt", year))
}

// FailedPath returns the path of the failed-to-read report for a year.
func (w *Writer) FailedPath(year int) string {
	return filepath.Join(w.outputDir, fmt.Sprintf("%d_failed_to_read_files.txt", year))
}

// Write persists both report files for the given year. Each file is
// written whole or not at all; an empty bucket deletes the
// corresponding file instead. Filesystem errors are returned to the
// caller, never suppressed.
func (w *Writer) Write(year int, rep *Report) error {
	total := rep.Total()

	if len(rep.NonMatching) > 0 {
		w.logger.Infof("Found %d/%d (%.2f%%) files that have wrong CreateDate metadata. Writing them in the output file %s",
			len(rep.NonMatching), total, rep.Percentage(len(rep.NonMatching)), w.NonMatchingPath(year))
	} else {
		w.logger.Debugf("All %d files have correct CreateDate metadata.", total)
	}
	if err := w.writeOrRemove(w.NonMatchingPath(year), rep.NonMatching); err != nil {
		return fmt.Errorf("non-matching report for year %d: %w", year, err)
	}

	failedLines := make([]string, len(rep.Failed))
	for i, entry := range rep.Failed {
		failedLines[i] = entry.String()
	}
	if len(failedLines) > 0 {
		w.logger.Infof("Found %d/%d files that failed to read metadata. Writing them in the output file %s",
			len(failedLines), total, w.FailedPath(year))
	} else {
		w.logger.Debugf("All %d files were read successfully.", total)
	}
	if err := w.writeOrRemove(w.FailedPath(year), failedLines); err != nil {
		return fmt.Errorf("failed-to-read report for year %d: %w", year, err)
	}

	return nil
}

// writeOrRemove writes one line per entry to path, or removes a stale
// file when there are no entries. The file content is rendered in
// memory and moved into place with a rename so a partially written
// report can never be observed.
func (w *Writer) writeOrRemove(path string, lines []string) error {
	if len(lines) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove stale report %s: %w", path, err)
		}
		return nil
	}

	var builder strings.Builder
	for _, line := range lines {
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(builder.String()), 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to move report into place %s: %w", path, err)
	}
	return nil
}
