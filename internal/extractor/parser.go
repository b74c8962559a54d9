package extractor

import "time"

// imageTimestampFormats is the expected layout for EXIF date tags.
// The EXIF convention uses colons in the date part.
var imageTimestampFormats = []string{
	"2006:01:02 15:04:05",
}

// videoTimestampFormats is the ordered layout chain for the container
// creation_time tag. ISO 8601 with fractional seconds is the common
// case; the other three are legacy variants written by older recording
// hardware (observed mostly in .avi files). The .999999 fraction makes
// the fractional digits optional, the way strptime's %f is tolerant.
var videoTimestampFormats = []string{
	"2006-01-02T15:04:05.999999Z",
	"2006-01-02 15:04:05.999999Z",
	"2006-01-02 15:04:05",
	"2006:01:02 15:04:05",
}

// ParseTimestamp tries each layout in order and returns the first
// successful parse. A failed parse is a normal outcome, never an error:
// ok is false when candidate is empty or no layout matches.
func ParseTimestamp(candidate string, formats []string) (time.Time, bool) {
	if candidate == "" {
		return time.Time{}, false
	}
	for _, format := range formats {
		if ts, err := time.Parse(format, candidate); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
