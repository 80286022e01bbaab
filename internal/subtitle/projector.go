package subtitle

import (
	"math"

	"github.com/ivlev/narration2video/internal/easing"
	"github.com/ivlev/narration2video/internal/timeline"
)

// State is the subtitle readout of one frame.
type State struct {
	CurrentIndex   int     `yaml:"current_index"`
	CurrentText    string  `yaml:"current_text"`
	CurrentOpacity float64 `yaml:"current_opacity"`
	// NextIndex equals CurrentIndex on the last line; no second layer is drawn then.
	NextIndex   int     `yaml:"next_index"`
	NextText    string  `yaml:"next_text,omitempty"`
	NextOpacity float64 `yaml:"next_opacity"`
}

// HasNext reports whether a second, incoming line has to be drawn.
func (s State) HasNext() bool {
	return s.NextIndex != s.CurrentIndex
}

// Projector turns a segment and a frame number into a subtitle State.
type Projector struct {
	Segmenter Segmenter
	Allocator Allocator
	// HoldThreshold is the fraction of a line's frames shown fully opaque.
	HoldThreshold float64
	// FadeSeconds is the crossfade window between adjacent lines.
	FadeSeconds float64
	Ease        easing.Func
}

// DefaultProjector returns the projector with the standard pacing.
func DefaultProjector() Projector {
	return Projector{
		Segmenter:     DefaultSegmenter(),
		Allocator:     DefaultAllocator(),
		HoldThreshold: 0.85,
		FadeSeconds:   0.1,
		Ease:          easing.InOutQuad,
	}
}

// Cues splits the segment text and allocates its lines. The result only
// depends on the segment, so callers may cache it per segment.
func (p Projector) Cues(seg timeline.Segment) []Line {
	return p.Allocator.Lines(p.Segmenter.Split(seg.Text), seg.Duration)
}

// Project computes the subtitle state of seg at frame. ok is false when
// the segment has no displayable text.
func (p Projector) Project(seg timeline.Segment, frame, fps int) (State, bool) {
	return p.ProjectLines(p.Cues(seg), seg.StartTime, frame, fps)
}

// ProjectLines is Project for lines that were already allocated.
func (p Projector) ProjectLines(lines []Line, startTime float64, frame, fps int) (State, bool) {
	if len(lines) == 0 || fps <= 0 {
		return State{}, false
	}

	f := float64(fps)
	elapsed := float64(frame) - startTime*f

	// Past the final line the last one stays current.
	current := len(lines) - 1
	for i, line := range lines {
		if elapsed < line.End()*f {
			current = i
			break
		}
	}
	next := current + 1
	if next > len(lines)-1 {
		next = len(lines) - 1
	}

	lineElapsed := elapsed - lines[current].Start*f
	fadeOutStart := lines[current].Duration * f * p.HoldThreshold
	fadeFrames := math.Floor(p.FadeSeconds * f)
	if fadeFrames < 1 {
		fadeFrames = 1
	}

	progress := 0.0
	if lineElapsed >= fadeOutStart {
		progress = easing.Clamp01((lineElapsed - fadeOutStart) / fadeFrames)
	}
	ease := p.Ease
	if ease == nil {
		ease = easing.Linear
	}
	fade := ease(progress)

	st := State{
		CurrentIndex:   current,
		CurrentText:    lines[current].Text,
		CurrentOpacity: 1 - fade,
		NextIndex:      next,
	}
	if next != current {
		st.NextText = lines[next].Text
		st.NextOpacity = fade
	}
	return st, true
}
