package extractor

// Canonical names of the EXIF tags inspected for a creation date, in
// priority order. The first tag present in a file wins.
const (
	TagDateTimeOriginal  = "DateTimeOriginal"
	TagDateTimeDigitized = "DateTimeDigitized"
	TagDateTime          = "DateTime"
)

// TagPriority is the immutable, ordered list of EXIF tag names to
// inspect. It is built once at start-up and shared by all image
// sources; each source resolves these canonical names to its own
// library-specific identifiers at construction time.
type TagPriority struct {
	names []string
}

// NewTagPriority returns the standard DateTimeOriginal, then
// DateTimeDigitized, then DateTime priority.
func NewTagPriority() TagPriority {
	return TagPriority{names: []string{
		TagDateTimeOriginal,
		TagDateTimeDigitized,
		TagDateTime,
	}}
}

// Names returns the tag names in priority order. The returned slice
// must not be modified.
func (p TagPriority) Names() []string {
	return p.names
}

// ImageMetadataSource reads embedded metadata from an image file.
type ImageMetadataSource interface {
	// DateTags returns the values of the tags in prio that are present
	// in the file's embedded metadata, keyed by canonical tag name. An
	// empty map means the file is readable but has no creation-date
	// metadata. A non-nil error means the file could not be read or
	// decoded at all.
	DateTags(filePath string, prio TagPriority) (map[string]string, error)

	// SupportsExt reports whether this source handles the given
	// lowercase extension.
	SupportsExt(ext string) bool
}

// ContainerProber inspects a video container's format-level tag block.
type ContainerProber interface {
	// FormatTags returns the container format tags for the file. A nil
	// or empty map means the container has no tag block. A non-nil
	// error means the container is malformed or unreadable.
	FormatTags(filePath string) (map[string]string, error)
}
