package renderer

import (
	"fmt"
	"math"

	"github.com/ivlev/narration2video/internal/easing"
	"github.com/ivlev/narration2video/internal/source"
)

// BackgroundState describes the cycling background at one instant.
type BackgroundState struct {
	Cycle        int     `yaml:"cycle"` // number of switch intervals elapsed
	CurrentIndex int     `yaml:"current_index"`
	PrevIndex    int     `yaml:"prev_index"` // -1 when nothing fades out
	Progress     float64 `yaml:"progress"`   // crossfade progress of the current image
}

// Opacities returns the layer opacities for the previous and current
// image. The previous image is drawn beneath the current one, so while the
// crossfade runs both are partially visible and sum to 1.
func (b BackgroundState) Opacities() (prev, current float64) {
	if b.PrevIndex < 0 || b.PrevIndex == b.CurrentIndex {
		return 0, 1
	}
	return 1 - b.Progress, b.Progress
}

// Cycler rotates through the image set every SwitchInterval seconds.
type Cycler struct {
	SwitchInterval float64 // seconds
	FadeSeconds    float64
	Ease           easing.Func
}

// At computes the background state at time t for imageCount images.
func (c Cycler) At(t float64, imageCount int) (BackgroundState, error) {
	if imageCount < 1 {
		return BackgroundState{}, fmt.Errorf("background cycler: %w", source.ErrNoImages)
	}
	if c.SwitchInterval <= 0 {
		return BackgroundState{}, fmt.Errorf("background cycler: switch interval must be positive, got %f", c.SwitchInterval)
	}
	return c.state(t, imageCount), nil
}

// state assumes imageCount >= 1 and a positive interval.
func (c Cycler) state(t float64, imageCount int) BackgroundState {
	if t < 0 {
		t = 0
	}

	cycle := int(math.Floor(t / c.SwitchInterval))
	st := BackgroundState{
		Cycle:        cycle,
		CurrentIndex: cycle % imageCount,
		PrevIndex:    -1,
		Progress:     1,
	}
	if cycle == 0 {
		// the very first image does not fade in
		return st
	}

	st.PrevIndex = (cycle - 1) % imageCount
	if c.FadeSeconds > 0 {
		sinceSwitch := t - float64(cycle)*c.SwitchInterval
		st.Progress = easing.Clamp01(sinceSwitch / c.FadeSeconds)
		if c.Ease != nil {
			st.Progress = c.Ease(st.Progress)
		}
	}
	return st
}

// Background is the plain, linear form of Cycler.At.
func Background(t, switchInterval float64, imageCount int, fadeSeconds float64) (BackgroundState, error) {
	return Cycler{SwitchInterval: switchInterval, FadeSeconds: fadeSeconds}.At(t, imageCount)
}
