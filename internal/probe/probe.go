// Package probe inspects video containers with a single ffprobe JSON
// call and exposes the format-level tag block, where recording devices
// store the creation_time tag.
package probe

import (
	"encoding/json"
	"fmt"
	"os/exec"
)

// Result is the parsed outcome of probing one container.
type Result struct {
	Format FormatInfo
}

// FormatInfo describes the outer container format.
type FormatInfo struct {
	Filename   string
	FormatName string
	Duration   string
	Tags       map[string]string
}

// FFprobe probes containers by shelling out to the ffprobe binary.
// The zero value is ready to use.
type FFprobe struct{}

// New returns a new FFprobe.
func New() *FFprobe {
	return &FFprobe{}
}

// FormatTags probes the container and returns its format-level tags.
// The map is nil when the container carries no tag block.
func (p *FFprobe) FormatTags(filePath string) (map[string]string, error) {
	result, err := p.Probe(filePath)
	if err != nil {
		return nil, err
	}
	return result.Format.Tags, nil
}

// Probe runs a single ffprobe JSON call against the file and returns
// the parsed result.
func (p *FFprobe) Probe(filePath string) (*Result, error) {
	cmd := exec.Command("ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		filePath,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", filePath, err)
	}

	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into a Result. Exported
// for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*Result, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return &Result{
		Format: FormatInfo{
			Filename:   raw.Format.Filename,
			FormatName: raw.Format.FormatName,
			Duration:   raw.Format.Duration,
			Tags:       raw.Format.Tags,
		},
	}, nil
}

// ffprobe JSON wire types.

type ffprobeOutput struct {
	Format ffprobeFormat `json:"format"`
}

type ffprobeFormat struct {
	Filename   string            `json:"filename"`
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	Tags       map[string]string `json:"tags"`
}
