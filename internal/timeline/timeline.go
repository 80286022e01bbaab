package timeline

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSegment is returned for segments whose interval is empty or reversed.
var ErrInvalidSegment = errors.New("invalid segment")

// Segment is one timed unit of narration.
type Segment struct {
	Index     int     `yaml:"index"`
	Speaker   string  `yaml:"speaker"`
	Text      string  `yaml:"text"`
	StartTime float64 `yaml:"start_time"` // seconds
	EndTime   float64 `yaml:"end_time"`   // seconds
	// Duration paces the subtitles. It is authoritative and is not
	// re-derived from StartTime/EndTime.
	Duration float64 `yaml:"duration"`
}

// Contains reports whether t falls inside the half-open interval [StartTime, EndTime).
func (s Segment) Contains(t float64) bool {
	return t >= s.StartTime && t < s.EndTime
}

// StartFrame returns the segment start in the frame domain
func (s Segment) StartFrame(fps int) float64 {
	return s.StartTime * float64(fps)
}

// EndFrame returns the segment end in the frame domain
func (s Segment) EndFrame(fps int) float64 {
	return s.EndTime * float64(fps)
}

// Timeline is the immutable segment list a render is driven by.
type Timeline struct {
	Segments      []Segment
	TotalDuration float64 // seconds, matches the audio track
	FPS           int
}

// New builds a validated timeline. The segment slice is copied so later
// changes by the caller do not leak into a running render.
func New(segments []Segment, totalDuration float64, fps int) (*Timeline, error) {
	tl := &Timeline{
		Segments:      append([]Segment(nil), segments...),
		TotalDuration: totalDuration,
		FPS:           fps,
	}
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	return tl, nil
}

// Validate checks the conditions a render cannot recover from.
func (tl *Timeline) Validate() error {
	if tl.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", tl.FPS)
	}
	if tl.TotalDuration < 0 {
		return fmt.Errorf("total duration must not be negative, got %f", tl.TotalDuration)
	}
	for i, seg := range tl.Segments {
		if seg.EndTime <= seg.StartTime {
			return fmt.Errorf("segment %d: end_time %.3f <= start_time %.3f: %w",
				i, seg.EndTime, seg.StartTime, ErrInvalidSegment)
		}
	}
	return nil
}

// Sorted reports whether segments are ordered by start time and do not
// overlap. FindActive is only defined for sorted timelines.
func (tl *Timeline) Sorted() bool {
	for i := 1; i < len(tl.Segments); i++ {
		if tl.Segments[i].StartTime < tl.Segments[i-1].EndTime {
			return false
		}
	}
	return true
}

// FindActive returns the first segment whose interval contains t together
// with its position in the timeline. Gaps yield ok=false.
func (tl *Timeline) FindActive(t float64) (seg Segment, pos int, ok bool) {
	for i, s := range tl.Segments {
		if s.Contains(t) {
			return s, i, true
		}
	}
	return Segment{}, -1, false
}

// Len returns the number of segments
func (tl *Timeline) Len() int {
	return len(tl.Segments)
}

// IsFirst reports whether pos is the first segment of the timeline
func (tl *Timeline) IsFirst(pos int) bool {
	return pos == 0
}

// IsLast reports whether pos is the last segment of the timeline
func (tl *Timeline) IsLast(pos int) bool {
	return pos == len(tl.Segments)-1
}

// TotalFrames is the composition length in frames for the audio track.
func (tl *Timeline) TotalFrames() int {
	return int(math.Ceil(tl.TotalDuration * float64(tl.FPS)))
}

// TimeAt converts a frame number to seconds.
func (tl *Timeline) TimeAt(frame int) float64 {
	return float64(frame) / float64(tl.FPS)
}
