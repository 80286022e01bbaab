package renderer

import (
	"math"

	"github.com/ivlev/narration2video/internal/easing"
	"github.com/ivlev/narration2video/internal/timeline"
)

// Envelope is the fade-in/hold/fade-out opacity curve of the content layer.
type Envelope struct {
	FadeFrames int
	Ease       easing.Func
}

// Opacity evaluates the envelope of seg at frame.
//
// The first segment of a timeline is shown at full opacity right away, and
// the last one stays fully visible after it ends instead of cutting to black.
func (e Envelope) Opacity(seg timeline.Segment, first, last bool, frame, fps int) float64 {
	f := float64(frame)
	startFrame := seg.StartFrame(fps)
	endFrame := seg.EndFrame(fps)

	// Fades never overlap: each gets at most half of the segment.
	fade := math.Min(float64(e.FadeFrames), (endFrame-startFrame)/2)

	switch {
	case f < startFrame:
		return 0
	case f >= endFrame:
		if last {
			return 1
		}
		return 0
	case f < startFrame+fade:
		if first {
			return 1
		}
		return e.ease((f - startFrame) / fade)
	case f < endFrame-fade:
		return 1
	default:
		return 1 - e.ease((f-(endFrame-fade))/fade)
	}
}

// At evaluates the envelope of the segment at pos in tl.
func (e Envelope) At(tl *timeline.Timeline, pos, frame int) float64 {
	if pos < 0 || pos >= tl.Len() {
		return 0
	}
	return e.Opacity(tl.Segments[pos], tl.IsFirst(pos), tl.IsLast(pos), frame, tl.FPS)
}

func (e Envelope) ease(t float64) float64 {
	t = easing.Clamp01(t)
	if e.Ease == nil {
		return t
	}
	return e.Ease(t)
}
