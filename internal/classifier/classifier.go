// Package classifier walks a single year directory, runs the metadata
// extractor on every regular file and partitions the results into the
// report buckets.
package classifier

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/f18m/photo-metadata-sanitizer-tools/internal/extractor"
	"github.com/f18m/photo-metadata-sanitizer-tools/internal/logger"
	"github.com/f18m/photo-metadata-sanitizer-tools/internal/report"
	"github.com/f18m/photo-metadata-sanitizer-tools/internal/statistics"

	"github.com/sirupsen/logrus"
)

// Extractor is the single capability the classifier needs: a
// definitive outcome for every file path.
type Extractor interface {
	Extract(filePath string) extractor.Outcome
}

// Classifier buckets the files of one year directory by their
// extraction outcome.
type Classifier struct {
	logger     *logrus.Logger
	extractor  Extractor
	stats      *statistics.Statistics
	ignoreExts map[string]struct{}
}

// New returns a new Classifier. Files with an extension in
// ignoredExtensions are skipped silently, without being classified or
// counted.
func New(
	logger *logrus.Logger,
	ext Extractor,
	stats *statistics.Statistics,
	ignoredExtensions []string,
) *Classifier {
	ignore := make(map[string]struct{}, len(ignoredExtensions))
	for _, e := range ignoredExtensions {
		ignore[strings.ToLower(e)] = struct{}{}
	}
	return &Classifier{
		logger:     logger,
		extractor:  ext,
		stats:      stats,
		ignoreExts: ignore,
	}
}

// Classify walks dirPath recursively and returns the populated report
// for targetYear. The walk order is lexical, so an unchanged tree
// produces identical reports across runs.
func (c *Classifier) Classify(dirPath string, targetYear int) (*report.Report, error) {
	rep := report.New()
	c.stats.IncrementDirectoriesScanned()

	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dirPath {
				return err
			}
			c.logger.Warnf("Error accessing path %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if _, ignored := c.ignoreExts[ext]; ignored {
			c.stats.IncrementFilesIgnored()
			return nil
		}

		c.classifyFile(rep, path, ext, targetYear)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	return rep, nil
}

// classifyFile buckets a single file by its extraction outcome.
func (c *Classifier) classifyFile(rep *report.Report, path, ext string, targetYear int) {
	outcome := c.extractor.Extract(path)

	logger.WithFile(c.logger, path).Debugf("Processing result: %s, creation date: %v", outcome.Result, outcome.Timestamp)

	c.stats.IncrementFilesScanned()
	c.stats.RecordResult(outcome.Result)
	c.stats.RecordFileType(ext)

	switch outcome.Result {
	case extractor.ValidCreationTimestamp:
		if outcome.Timestamp.Year() == targetYear {
			rep.AddMatching(path)
			c.stats.IncrementMatching()
		} else {
			rep.AddNonMatching(path)
			c.stats.IncrementNonMatching()
		}
	case extractor.NoMetadata:
		// Missing metadata is a data-correctness problem, not a read
		// failure: the file needs a date stamped by the fix tool.
		rep.AddNonMatching(path)
		c.stats.IncrementNonMatching()
	default:
		rep.AddFailed(path, outcome.Result)
		c.stats.IncrementFailed()
	}
}
