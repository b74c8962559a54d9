package extractor

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/sirupsen/logrus"
)

// GoexifSource reads EXIF tags from JPEG and TIFF files using the
// rwcarlsen/goexif library.
type GoexifSource struct {
	logger *logrus.Logger
	fields map[string]exif.FieldName
}

// NewGoexifSource returns a new GoexifSource with the canonical tag
// names of prio resolved to goexif field identifiers.
func NewGoexifSource(logger *logrus.Logger, prio TagPriority) *GoexifSource {
	fields := make(map[string]exif.FieldName, len(prio.Names()))
	for _, name := range prio.Names() {
		switch name {
		case TagDateTimeOriginal:
			fields[name] = exif.DateTimeOriginal
		case TagDateTimeDigitized:
			fields[name] = exif.DateTimeDigitized
		case TagDateTime:
			fields[name] = exif.DateTime
		}
	}
	return &GoexifSource{logger: logger, fields: fields}
}

// SupportsExt reports whether goexif can decode the extension.
func (s *GoexifSource) SupportsExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".tiff":
		return true
	default:
		return false
	}
}

// Magic numbers for the formats goexif decodes. A file that does not
// start with one of these cannot be decoded at all, which is a
// different failure than a decodable image simply lacking an EXIF
// block.
var imageMagics = [][]byte{
	{0xFF, 0xD8, 0xFF},       // JPEG
	{0x49, 0x49, 0x2A, 0x00}, // TIFF little-endian
	{0x4D, 0x4D, 0x00, 0x2A}, // TIFF big-endian
}

// DateTags reads the file's EXIF block and returns the values of the
// prio tags that are present.
func (s *GoexifSource) DateTags(filePath string, prio TagPriority) (map[string]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	header := make([]byte, 4)
	if _, err := io.ReadFull(file, header); err != nil {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	if !hasImageMagic(header) {
		return nil, fmt.Errorf("not a decodable image: %s", filePath)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind file: %w", err)
	}

	x, err := exif.Decode(file)
	if err != nil {
		// Decodable image without an EXIF block.
		s.logger.Debugf("No EXIF block in %s: %v", filePath, err)
		return map[string]string{}, nil
	}

	tags := make(map[string]string)
	for _, name := range prio.Names() {
		fieldName, ok := s.fields[name]
		if !ok {
			continue
		}
		field, err := x.Get(fieldName)
		if err != nil {
			continue
		}
		if value, err := field.StringVal(); err == nil && value != "" {
			tags[name] = value
		}
	}
	return tags, nil
}

// hasImageMagic reports whether header starts with a known JPEG or
// TIFF magic number.
func hasImageMagic(header []byte) bool {
	for _, magic := range imageMagics {
		if bytes.HasPrefix(header, magic) {
			return true
		}
	}
	return false
}
