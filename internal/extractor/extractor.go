package extractor

import (
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// MetadataExtractor classifies a file by extension, retrieves its raw
// creation-timestamp candidate through the appropriate capability and
// parses it. Every call produces exactly one Outcome; errors from the
// underlying capabilities never escape this boundary, they are mapped
// to FailedToRead.
type MetadataExtractor struct {
	logger    *logrus.Logger
	prio      TagPriority
	images    []ImageMetadataSource
	prober    ContainerProber
	imageExts map[string]struct{}
	videoExts map[string]struct{}
}

// NewMetadataExtractor returns a new MetadataExtractor. Image sources
// are consulted in order; the first one supporting a file's extension
// handles it.
func NewMetadataExtractor(
	logger *logrus.Logger,
	prio TagPriority,
	images []ImageMetadataSource,
	prober ContainerProber,
	imageExtensions []string,
	videoExtensions []string,
) *MetadataExtractor {
	return &MetadataExtractor{
		logger:    logger,
		prio:      prio,
		images:    images,
		prober:    prober,
		imageExts: extensionSet(imageExtensions),
		videoExts: extensionSet(videoExtensions),
	}
}

// Extract determines the creation-timestamp outcome for a single file.
func (e *MetadataExtractor) Extract(filePath string) Outcome {
	ext := strings.ToLower(filepath.Ext(filePath))

	var candidate string
	var formats []string

	switch {
	case e.isImage(ext):
		source := e.imageSourceFor(ext)
		if source == nil {
			e.logger.Debugf("No image metadata source for extension %s (%s)", ext, filePath)
			return Outcome{Result: FailedToRead}
		}
		tags, err := source.DateTags(filePath, e.prio)
		if err != nil {
			e.logger.Debugf("Failed to read image metadata from %s: %v", filePath, err)
			return Outcome{Result: FailedToRead}
		}
		e.logger.Tracef("Dump of date tags for [%s]: %v", filePath, tags)
		for _, name := range e.prio.Names() {
			if value, ok := tags[name]; ok {
				candidate = value
				break
			}
		}
		if candidate == "" {
			return Outcome{Result: NoMetadata}
		}
		formats = imageTimestampFormats

	case e.isVideo(ext):
		tags, err := e.prober.FormatTags(filePath)
		if err != nil {
			e.logger.Debugf("Failed to probe container %s: %v", filePath, err)
			return Outcome{Result: FailedToRead}
		}
		e.logger.Tracef("Dump of container tags for [%s]: %v", filePath, tags)
		creationTime, ok := tags["creation_time"]
		if !ok || creationTime == "" {
			return Outcome{Result: NoMetadata}
		}
		candidate = creationTime
		formats = videoTimestampFormats

	default:
		// Unsupported file type.
		return Outcome{Result: FailedToRead}
	}

	e.logger.Debugf("File [%s] has creation date string: '%s'. Trying formats: %v", filePath, candidate, formats)

	if ts, ok := ParseTimestamp(candidate, formats); ok {
		return Outcome{Result: ValidCreationTimestamp, Timestamp: ts}
	}

	e.logger.Debugf("File [%s] has an invalid timestamp format: '%s'. Tried formats: %v", filePath, candidate, formats)
	return Outcome{Result: InvalidTimestampFormat}
}

func (e *MetadataExtractor) isImage(ext string) bool {
	_, ok := e.imageExts[ext]
	return ok
}

func (e *MetadataExtractor) isVideo(ext string) bool {
	_, ok := e.videoExts[ext]
	return ok
}

func (e *MetadataExtractor) imageSourceFor(ext string) ImageMetadataSource {
	for _, source := range e.images {
		if source.SupportsExt(ext) {
			return source
		}
	}
	return nil
}

func extensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return set
}
