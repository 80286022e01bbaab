package timeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// metadata mirrors the transcription pipeline's output file. JSON input is
// accepted as well since YAML is a superset of it.
type metadata struct {
	TotalDuration float64         `yaml:"total_duration"`
	Segments      []segmentRecord `yaml:"segments"`
}

type segmentRecord struct {
	Index     int     `yaml:"index"`
	Speaker   string  `yaml:"speaker"`
	Voice     string  `yaml:"voice"`
	Text      string  `yaml:"text"`
	StartTime float64 `yaml:"start_time"`
	EndTime   float64 `yaml:"end_time"`
	Duration  float64 `yaml:"duration"`
}

// Parse decodes timeline metadata and validates it against fps.
func Parse(data []byte, fps int) (*Timeline, error) {
	var md metadata
	if err := yaml.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("decode timeline metadata: %w", err)
	}

	segments := make([]Segment, len(md.Segments))
	for i, rec := range md.Segments {
		speaker := rec.Speaker
		if speaker == "" {
			speaker = rec.Voice
		}
		segments[i] = Segment{
			Index:     rec.Index,
			Speaker:   speaker,
			Text:      rec.Text,
			StartTime: rec.StartTime,
			EndTime:   rec.EndTime,
			Duration:  rec.Duration,
		}
	}

	return New(segments, md.TotalDuration, fps)
}

// Read loads timeline metadata from a JSON or YAML file.
func Read(path string, fps int) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tl, err := Parse(data, fps)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tl, nil
}
