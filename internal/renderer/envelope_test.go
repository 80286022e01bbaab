package renderer

import (
	"math"
	"testing"

	"github.com/ivlev/narration2video/internal/easing"
	"github.com/ivlev/narration2video/internal/timeline"
)

func TestEnvelopeOpacity(t *testing.T) {
	env := Envelope{FadeFrames: 15, Ease: easing.InOutQuad}
	// frames [60, 150) at 30 fps
	seg := timeline.Segment{StartTime: 2, EndTime: 5, Duration: 3}

	tests := []struct {
		name  string
		frame int
		first bool
		last  bool
		want  float64
	}{
		{"before start", 59, false, false, 0},
		{"fade-in begins", 60, false, false, 0},
		{"fade-in", 66, false, false, easing.InOutQuad(6.0 / 15)},
		{"first segment skips fade-in", 60, true, false, 1},
		{"first segment mid fade-in", 66, true, false, 1},
		{"hold begins", 75, false, false, 1},
		{"hold", 120, false, false, 1},
		{"fade-out begins", 135, false, false, 1},
		{"fade-out", 142, false, false, 1 - easing.InOutQuad(7.0/15)},
		{"ended", 150, false, false, 0},
		{"last segment held", 150, false, true, 1},
		{"last segment held long after", 1150, false, true, 1},
		{"last segment before start", 59, false, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := env.Opacity(seg, tt.first, tt.last, tt.frame, 30)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Opacity(frame %d) = %f, want %f", tt.frame, got, tt.want)
			}
		})
	}
}

func TestEnvelopeBoundaries(t *testing.T) {
	env := Envelope{FadeFrames: 15, Ease: easing.InOutQuad}
	tl, err := timeline.New([]timeline.Segment{
		{Index: 0, StartTime: 0, EndTime: 4, Duration: 4},
		{Index: 1, StartTime: 4, EndTime: 8, Duration: 4},
		{Index: 2, StartTime: 8, EndTime: 12, Duration: 4},
	}, 12, 30)
	if err != nil {
		t.Fatal(err)
	}

	for pos, seg := range tl.Segments {
		start := int(seg.StartFrame(30))
		end := int(seg.EndFrame(30))

		if got := env.At(tl, pos, start-1); got != 0 {
			t.Errorf("segment %d: opacity before start = %f", pos, got)
		}
		if got := env.At(tl, pos, start+env.FadeFrames); math.Abs(got-1) > 1e-9 {
			t.Errorf("segment %d: opacity after fade-in = %f", pos, got)
		}
		if tl.IsLast(pos) {
			if got := env.At(tl, pos, end+1000); got != 1 {
				t.Errorf("last segment should hold, got %f", got)
			}
		}
	}

	if got := env.At(tl, 7, 10); got != 0 {
		t.Errorf("out of range position should be 0, got %f", got)
	}
}

func TestEnvelopeWithoutFade(t *testing.T) {
	env := Envelope{}
	seg := timeline.Segment{StartTime: 1, EndTime: 2, Duration: 1}
	if got := env.Opacity(seg, false, false, 30, 30); got != 1 {
		t.Errorf("expected hard cut in, got %f", got)
	}
	if got := env.Opacity(seg, false, false, 60, 30); got != 0 {
		t.Errorf("expected hard cut out, got %f", got)
	}
}

func TestEnvelopeShortSegment(t *testing.T) {
	env := Envelope{FadeFrames: 15, Ease: easing.InOutQuad}
	// frames [30, 36): fades shrink to 3 frames each
	seg := timeline.Segment{StartTime: 1.0, EndTime: 1.2, Duration: 0.2}

	tests := []struct {
		name  string
		frame int
		last  bool
		want  float64
	}{
		{"before start", 29, false, 0},
		{"fade-in begins", 30, false, 0},
		{"fade-in", 31, false, easing.InOutQuad(1.0 / 3)},
		{"fade-out begins", 33, false, 1},
		{"fade-out", 35, false, 1 - easing.InOutQuad(2.0/3)},
		{"ended", 36, false, 0},
		{"ended long after", 38, false, 0},
		{"ended well after", 44, false, 0},
		{"last segment held at end", 36, true, 1},
		{"last segment held after", 41, true, 1},
		{"last segment held well after", 44, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := env.Opacity(seg, false, tt.last, tt.frame, 30)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Opacity(frame %d, last=%v) = %f, want %f", tt.frame, tt.last, got, tt.want)
			}
		})
	}
}
