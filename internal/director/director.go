package director

import (
	"errors"
	"sort"

	"github.com/ivlev/narration2video/internal/renderer"
)

// ScenarioVersion is written into every generated cue sheet.
const ScenarioVersion = "1.0"

// Director compresses per-frame render states into a cue sheet.
type Director struct {
	FPS    int
	Width  int
	Height int
	Mode   string
}

// NewDirector creates a Director for a composition of the given geometry.
func NewDirector(fps, width, height int, mode string) *Director {
	return &Director{
		FPS:    fps,
		Width:  width,
		Height: height,
		Mode:   mode,
	}
}

// lineKey identifies a subtitle line across segments.
type lineKey struct {
	segment int
	line    int
}

// GenerateScenario walks the states in frame order and records a cue
// wherever the background image, the active segment or the subtitle line
// changes. States may be passed in any order.
func (d *Director) GenerateScenario(states []renderer.RenderState, totalFrames int) (*Scenario, error) {
	if len(states) == 0 {
		return nil, errors.New("no frames to direct")
	}

	sorted := d.sortStates(states)

	var cues []Cue
	prevBg := -1
	prevPos, prevSeg := -1, -1
	prevHeld := false
	prevLine := lineKey{-1, -1}

	for _, st := range sorted {
		cue := func(kind CueKind, index int) Cue {
			return Cue{Frame: st.Frame, Time: st.Time, Kind: kind, Index: index}
		}

		if bg := st.Background.CurrentIndex; bg >= 0 && bg != prevBg {
			c := cue(CueBackground, bg)
			if n := len(st.Layers); n > 0 {
				c.Text = st.Layers[n-1].Ref
			}
			cues = append(cues, c)
			prevBg = bg
		}

		pos := -1
		if st.Content.Active {
			pos = st.Content.Position
		}
		if pos != prevPos {
			if prevPos >= 0 {
				cues = append(cues, cue(CueSegmentEnd, prevSeg))
			}
			if pos >= 0 {
				c := cue(CueSegmentStart, st.Content.SegmentIndex)
				c.Speaker = st.Content.Speaker.Name
				cues = append(cues, c)
			}
			prevPos, prevSeg = pos, st.Content.SegmentIndex
		}

		if st.Content.Held && !prevHeld {
			c := cue(CueHold, st.Content.SegmentIndex)
			c.Speaker = st.Content.Speaker.Name
			cues = append(cues, c)
		}
		prevHeld = st.Content.Held

		key := lineKey{-1, -1}
		if st.Subtitle != nil {
			key = lineKey{pos, st.Subtitle.CurrentIndex}
		}
		if key != prevLine && st.Subtitle != nil {
			c := cue(CueLine, st.Subtitle.CurrentIndex)
			c.Text = st.Subtitle.CurrentText
			cues = append(cues, c)
		}
		prevLine = key
	}

	return &Scenario{
		Version:     ScenarioVersion,
		Mode:        d.Mode,
		FPS:         d.FPS,
		Width:       d.Width,
		Height:      d.Height,
		TotalFrames: totalFrames,
		Cues:        cues,
	}, nil
}

// sortStates returns a copy of states ordered by frame
func (d *Director) sortStates(states []renderer.RenderState) []renderer.RenderState {
	sorted := make([]renderer.RenderState, len(states))
	copy(sorted, states)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Frame < sorted[j].Frame
	})

	return sorted
}
