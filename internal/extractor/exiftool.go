package extractor

import (
	"fmt"
	"sync"

	"github.com/barasher/go-exiftool"
	"github.com/sirupsen/logrus"
)

// ExiftoolSource reads metadata through an external exiftool process
// for the image formats goexif cannot decode (PNG, HEIC, GIF). The
// exiftool process is started lazily on first use and reused for all
// subsequent files.
type ExiftoolSource struct {
	logger *logrus.Logger
	fields map[string]string

	mu sync.Mutex
	et *exiftool.Exiftool
}

// NewExiftoolSource returns a new ExiftoolSource with the canonical
// tag names of prio resolved to exiftool field names.
func NewExiftoolSource(logger *logrus.Logger, prio TagPriority) *ExiftoolSource {
	fields := make(map[string]string, len(prio.Names()))
	for _, name := range prio.Names() {
		switch name {
		case TagDateTimeOriginal:
			fields[name] = "DateTimeOriginal"
		case TagDateTimeDigitized:
			// exiftool exposes DateTimeDigitized as CreateDate.
			fields[name] = "CreateDate"
		case TagDateTime:
			// exiftool exposes DateTime as ModifyDate.
			fields[name] = "ModifyDate"
		}
	}
	return &ExiftoolSource{logger: logger, fields: fields}
}

// SupportsExt reports whether this source handles the extension.
func (s *ExiftoolSource) SupportsExt(ext string) bool {
	switch ext {
	case ".png", ".heic", ".gif":
		return true
	default:
		return false
	}
}

// Close shuts down the exiftool process if it was started.
func (s *ExiftoolSource) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.et != nil {
		s.et.Close()
		s.et = nil
	}
}

// ensureExiftool lazily initializes the exiftool instance.
func (s *ExiftoolSource) ensureExiftool() (*exiftool.Exiftool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.et != nil {
		return s.et, nil
	}

	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("failed to start exiftool: %w", err)
	}
	s.et = et
	return s.et, nil
}

// DateTags extracts the file's metadata via exiftool and returns the
// values of the prio tags that are present.
func (s *ExiftoolSource) DateTags(filePath string, prio TagPriority) (map[string]string, error) {
	et, err := s.ensureExiftool()
	if err != nil {
		return nil, err
	}

	metas := et.ExtractMetadata(filePath)
	if len(metas) == 0 {
		return nil, fmt.Errorf("exiftool returned no metadata for %s", filePath)
	}
	if metas[0].Err != nil {
		return nil, fmt.Errorf("exiftool failed on %s: %w", filePath, metas[0].Err)
	}
	s.logger.Tracef("Dump of exiftool fields for [%s]: %v", filePath, metas[0].Fields)

	tags := make(map[string]string)
	for _, name := range prio.Names() {
		fieldName, ok := s.fields[name]
		if !ok {
			continue
		}
		value, err := metas[0].GetString(fieldName)
		if err != nil || value == "" {
			continue
		}
		tags[name] = value
	}
	return tags, nil
}
