package extractor

import (
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	testImageExts = []string{".jpg", ".jpeg", ".png", ".tiff", ".heic", ".gif"}
	testVideoExts = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv"}
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeImageSource serves canned tag maps keyed by file base name.
type fakeImageSource struct {
	exts map[string]bool
	tags map[string]map[string]string
	errs map[string]error
}

func (f *fakeImageSource) SupportsExt(ext string) bool {
	return f.exts[ext]
}

func (f *fakeImageSource) DateTags(filePath string, prio TagPriority) (map[string]string, error) {
	name := filepath.Base(filePath)
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	if tags, ok := f.tags[name]; ok {
		return tags, nil
	}
	return map[string]string{}, nil
}

// fakeProber serves canned format tag blocks keyed by file base name.
type fakeProber struct {
	tags map[string]map[string]string
	errs map[string]error
}

func (f *fakeProber) FormatTags(filePath string) (map[string]string, error) {
	name := filepath.Base(filePath)
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	return f.tags[name], nil
}

func newTestExtractor(images *fakeImageSource, prober *fakeProber) *MetadataExtractor {
	if images == nil {
		images = &fakeImageSource{exts: map[string]bool{
			".jpg": true, ".jpeg": true, ".png": true, ".tiff": true, ".heic": true, ".gif": true,
		}}
	}
	if prober == nil {
		prober = &fakeProber{}
	}
	return NewMetadataExtractor(
		testLogger(),
		NewTagPriority(),
		[]ImageMetadataSource{images},
		prober,
		testImageExts,
		testVideoExts,
	)
}

func TestExtract_ImageDateTimeOriginal(t *testing.T) {
	images := &fakeImageSource{
		exts: map[string]bool{".jpg": true},
		tags: map[string]map[string]string{
			"holiday.jpg": {
				TagDateTimeOriginal: "2019:07:04 10:15:00",
				TagDateTime:         "2022:01:01 00:00:00",
			},
		},
	}
	e := newTestExtractor(images, nil)

	outcome := e.Extract("/archive/2020/holiday.jpg")
	if outcome.Result != ValidCreationTimestamp {
		t.Fatalf("unexpected result: %s", outcome.Result)
	}
	// DateTimeOriginal wins over DateTime.
	want := time.Date(2019, 7, 4, 10, 15, 0, 0, time.UTC)
	if !outcome.Timestamp.Equal(want) {
		t.Fatalf("unexpected timestamp\n got: %v\nwant: %v", outcome.Timestamp, want)
	}
}

func TestExtract_ImageTagPriorityFallback(t *testing.T) {
	images := &fakeImageSource{
		exts: map[string]bool{".jpg": true},
		tags: map[string]map[string]string{
			"digitized.jpg": {TagDateTimeDigitized: "2018:05:05 05:05:05"},
			"modified.jpg":  {TagDateTime: "2017:03:03 03:03:03"},
		},
	}
	e := newTestExtractor(images, nil)

	outcome := e.Extract("digitized.jpg")
	if outcome.Result != ValidCreationTimestamp || outcome.Timestamp.Year() != 2018 {
		t.Fatalf("DateTimeDigitized not used: %s %v", outcome.Result, outcome.Timestamp)
	}

	outcome = e.Extract("modified.jpg")
	if outcome.Result != ValidCreationTimestamp || outcome.Timestamp.Year() != 2017 {
		t.Fatalf("DateTime not used: %s %v", outcome.Result, outcome.Timestamp)
	}
}

func TestExtract_ImageWithoutMetadata(t *testing.T) {
	e := newTestExtractor(nil, nil)

	outcome := e.Extract("plain.jpg")
	if outcome.Result != NoMetadata {
		t.Fatalf("expected NO_METADATA, got %s", outcome.Result)
	}
	if !outcome.Timestamp.IsZero() {
		t.Fatal("expected zero timestamp on NoMetadata")
	}
}

func TestExtract_ImageSourceError(t *testing.T) {
	images := &fakeImageSource{
		exts: map[string]bool{".jpg": true},
		errs: map[string]error{"corrupt.jpg": errors.New("truncated file")},
	}
	e := newTestExtractor(images, nil)

	outcome := e.Extract("corrupt.jpg")
	if outcome.Result != FailedToRead {
		t.Fatalf("expected FAILED_TO_READ, got %s", outcome.Result)
	}
}

func TestExtract_ImageInvalidTimestampFormat(t *testing.T) {
	images := &fakeImageSource{
		exts: map[string]bool{".jpg": true},
		tags: map[string]map[string]string{
			"odd.jpg": {TagDateTimeOriginal: "July 4th 2019"},
		},
	}
	e := newTestExtractor(images, nil)

	outcome := e.Extract("odd.jpg")
	if outcome.Result != InvalidTimestampFormat {
		t.Fatalf("expected INVALID_TIMESTAMP_FORMAT, got %s", outcome.Result)
	}
}

func TestExtract_ImageSourceSelection(t *testing.T) {
	goexifLike := &fakeImageSource{exts: map[string]bool{".jpg": true}}
	exiftoolLike := &fakeImageSource{
		exts: map[string]bool{".heic": true},
		tags: map[string]map[string]string{
			"phone.heic": {TagDateTimeOriginal: "2023:09:09 09:09:09"},
		},
	}
	e := NewMetadataExtractor(
		testLogger(),
		NewTagPriority(),
		[]ImageMetadataSource{goexifLike, exiftoolLike},
		&fakeProber{},
		testImageExts,
		testVideoExts,
	)

	outcome := e.Extract("phone.heic")
	if outcome.Result != ValidCreationTimestamp || outcome.Timestamp.Year() != 2023 {
		t.Fatalf("second source not consulted: %s %v", outcome.Result, outcome.Timestamp)
	}
}

func TestExtract_VideoCreationTime(t *testing.T) {
	prober := &fakeProber{
		tags: map[string]map[string]string{
			"clip.mp4": {"creation_time": "2021-03-01T00:00:00.000000Z"},
		},
	}
	e := newTestExtractor(nil, prober)

	outcome := e.Extract("clip.mp4")
	if outcome.Result != ValidCreationTimestamp {
		t.Fatalf("unexpected result: %s", outcome.Result)
	}
	if outcome.Timestamp.Year() != 2021 {
		t.Fatalf("unexpected year: %d", outcome.Timestamp.Year())
	}
}

func TestExtract_VideoWithoutTagBlock(t *testing.T) {
	e := newTestExtractor(nil, &fakeProber{})

	outcome := e.Extract("old.avi")
	if outcome.Result != NoMetadata {
		t.Fatalf("expected NO_METADATA, got %s", outcome.Result)
	}
}

func TestExtract_VideoUnexpectedDateFormat(t *testing.T) {
	prober := &fakeProber{
		tags: map[string]map[string]string{
			"camcorder.avi": {"creation_time": "04/07/2021"},
		},
	}
	e := newTestExtractor(nil, prober)

	outcome := e.Extract("camcorder.avi")
	if outcome.Result != InvalidTimestampFormat {
		t.Fatalf("expected INVALID_TIMESTAMP_FORMAT, got %s", outcome.Result)
	}
}

func TestExtract_VideoProbeError(t *testing.T) {
	prober := &fakeProber{
		errs: map[string]error{"broken.mkv": errors.New("moov atom not found")},
	}
	e := newTestExtractor(nil, prober)

	outcome := e.Extract("broken.mkv")
	if outcome.Result != FailedToRead {
		t.Fatalf("expected FAILED_TO_READ, got %s", outcome.Result)
	}
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	e := newTestExtractor(nil, nil)

	outcome := e.Extract("scan.bmp")
	if outcome.Result != FailedToRead {
		t.Fatalf("expected FAILED_TO_READ for unsupported type, got %s", outcome.Result)
	}
	if !outcome.Timestamp.IsZero() {
		t.Fatal("expected zero timestamp")
	}
}

func TestExtract_ExtensionCaseInsensitive(t *testing.T) {
	images := &fakeImageSource{
		exts: map[string]bool{".jpg": true},
		tags: map[string]map[string]string{
			"UPPER.JPG": {TagDateTimeOriginal: "2020:02:02 02:02:02"},
		},
	}
	e := newTestExtractor(images, nil)

	outcome := e.Extract("UPPER.JPG")
	if outcome.Result != ValidCreationTimestamp {
		t.Fatalf("uppercase extension not recognized: %s", outcome.Result)
	}
}

func TestProcessingResult_Names(t *testing.T) {
	tests := []struct {
		result ProcessingResult
		want   string
	}{
		{ValidCreationTimestamp, "VALID_CREATION_TIMESTAMP"},
		{FailedToRead, "FAILED_TO_READ"},
		{NoMetadata, "NO_METADATA"},
		{InvalidTimestampFormat, "INVALID_TIMESTAMP_FORMAT"},
	}
	for _, tt := range tests {
		if got := tt.result.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestNewTagPriority_Order(t *testing.T) {
	names := NewTagPriority().Names()
	want := []string{TagDateTimeOriginal, TagDateTimeDigitized, TagDateTime}
	if len(names) != len(want) {
		t.Fatalf("unexpected length: %d", len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("priority[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
