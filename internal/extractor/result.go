package extractor

import "time"

// ProcessingResult is the outcome of extracting a creation timestamp
// from a single file. Every file yields exactly one result; there is no
// separate error channel out of the extractor.
type ProcessingResult int

const (
	// ValidCreationTimestamp means a timestamp was found and parsed.
	ValidCreationTimestamp ProcessingResult = iota
	// FailedToRead means the file could not be opened or decoded, its
	// type is unsupported, or the underlying probing tool failed.
	FailedToRead
	// NoMetadata means the file was readable but carries no
	// creation-date field at all.
	NoMetadata
	// InvalidTimestampFormat means a candidate string was found but
	// matched none of the expected formats.
	InvalidTimestampFormat
)

// String returns the stable name used in report annotations.
func (r ProcessingResult) String() string {
	switch r {
	case ValidCreationTimestamp:
		return "VALID_CREATION_TIMESTAMP"
	case FailedToRead:
		return "FAILED_TO_READ"
	case NoMetadata:
		return "NO_METADATA"
	case InvalidTimestampFormat:
		return "INVALID_TIMESTAMP_FORMAT"
	default:
		return "UNKNOWN"
	}
}

// Outcome pairs a ProcessingResult with the parsed timestamp.
// Timestamp is non-zero only when Result is ValidCreationTimestamp.
type Outcome struct {
	Result    ProcessingResult
	Timestamp time.Time
}
