package renderer

import (
	"errors"
	"fmt"

	"github.com/ivlev/narration2video/internal/config"
	"github.com/ivlev/narration2video/internal/easing"
	"github.com/ivlev/narration2video/internal/effects"
	"github.com/ivlev/narration2video/internal/source"
	"github.com/ivlev/narration2video/internal/subtitle"
	"github.com/ivlev/narration2video/internal/timeline"
)

// ImageLayer is one background image to draw, bottom layer first.
type ImageLayer struct {
	Index   int           `yaml:"index"`
	Ref     string        `yaml:"ref"`
	Opacity float64       `yaml:"opacity"`
	Style   effects.Style `yaml:"style"`
}

// ContentState is the speech layer: waveform and subtitle container.
type ContentState struct {
	Active bool `yaml:"active"`
	// Held is set after the last segment ended and its layer stays on screen.
	Held         bool           `yaml:"held"`
	Position     int            `yaml:"position"` // timeline position, -1 when inactive
	SegmentIndex int            `yaml:"segment_index"`
	Speaker      config.Speaker `yaml:"speaker"`
	Opacity      float64        `yaml:"opacity"`
	Waveform     []float64      `yaml:"waveform,omitempty"`
}

// RenderState is everything the compositor needs to paint one frame.
type RenderState struct {
	Frame int     `yaml:"frame"`
	Time  float64 `yaml:"time"`
	// Portrait is set for output taller than wide; subtitle placement and text size depend on it.
	Portrait   bool            `yaml:"portrait"`
	Background BackgroundState `yaml:"background"`
	Layers     []ImageLayer    `yaml:"layers"`
	Content    ContentState    `yaml:"content"`
	Subtitle   *subtitle.State `yaml:"subtitle,omitempty"`
}

// Engine projects a timeline onto per-frame render states. It holds no
// mutable state: Frame may be called for any frame, in any order and from
// any number of goroutines.
type Engine struct {
	cfg    config.Config
	tl     *timeline.Timeline
	images *source.ImageSet

	envelope  Envelope
	cycler    Cycler
	projector subtitle.Projector
	slideshow effects.Slideshow

	// cues[i] are the allocated subtitle lines of segment i
	cues [][]subtitle.Line
}

// NewEngine validates its inputs once so that Frame never has to fail.
func NewEngine(cfg config.Config, tl *timeline.Timeline, images *source.ImageSet) (*Engine, error) {
	if tl == nil {
		return nil, errors.New("engine: timeline is required")
	}
	if images == nil || images.Len() == 0 {
		return nil, fmt.Errorf("engine: %w", source.ErrNoImages)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if err := tl.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if tl.FPS != cfg.Video.FPS {
		return nil, fmt.Errorf("engine: timeline fps %d does not match video fps %d", tl.FPS, cfg.Video.FPS)
	}

	contentEase, err := easing.ByName(cfg.Content.Easing)
	if err != nil {
		return nil, err
	}
	bgEase, err := easing.ByName(cfg.Background.Easing)
	if err != nil {
		return nil, err
	}
	subEase, err := easing.ByName(cfg.Subtitle.Easing)
	if err != nil {
		return nil, err
	}
	enterEase, err := easing.ByName(cfg.Slideshow.EnterEasing)
	if err != nil {
		return nil, err
	}
	exitEase, err := easing.ByName(cfg.Slideshow.ExitEasing)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		tl:     tl,
		images: images,
		envelope: Envelope{
			FadeFrames: cfg.Content.FadeFrames,
			Ease:       contentEase,
		},
		cycler: Cycler{
			SwitchInterval: cfg.Background.SwitchInterval,
			FadeSeconds:    float64(cfg.Background.FadeFrames) / float64(cfg.Video.FPS),
			Ease:           bgEase,
		},
		projector: subtitle.Projector{
			Segmenter: subtitle.Segmenter{
				MaxLineLength: cfg.Subtitle.MaxLineLength,
				MinSplitIndex: cfg.Subtitle.MinSplitIndex,
				ClauseBreaks:  cfg.Subtitle.ClauseBreaks,
			},
			Allocator:     subtitle.Allocator{MinDuration: cfg.Subtitle.MinLineSeconds},
			HoldThreshold: cfg.Subtitle.HoldThreshold,
			FadeSeconds:   cfg.Subtitle.FadeSeconds,
			Ease:          subEase,
		},
		slideshow: effects.Slideshow{
			FramesPerImage: cfg.Slideshow.FramesPerImage,
			EnterFrames:    cfg.Slideshow.EnterFrames,
			StayFrames:     cfg.Slideshow.StayFrames,
			ExitFrames:     cfg.Slideshow.ExitFrames,
			MaxImages:      cfg.Slideshow.MaxImages,
			EnterEase:      enterEase,
			ExitEase:       exitEase,
		},
	}

	e.cues = make([][]subtitle.Line, tl.Len())
	for i, seg := range tl.Segments {
		e.cues[i] = e.projector.Cues(seg)
	}

	return e, nil
}

func (e *Engine) Timeline() *timeline.Timeline { return e.tl }

func (e *Engine) Config() config.Config { return e.cfg }

// TotalFrames is the composition length derived from the audio duration.
func (e *Engine) TotalFrames() int { return e.tl.TotalFrames() }

// Cues returns the subtitle lines of the segment at pos.
func (e *Engine) Cues(pos int) []subtitle.Line {
	if pos < 0 || pos >= len(e.cues) {
		return nil
	}
	return e.cues[pos]
}

// Frame computes the render state of frame.
func (e *Engine) Frame(frame int) RenderState {
	t := e.tl.TimeAt(frame)

	st := RenderState{
		Frame:    frame,
		Time:     t,
		Portrait: e.cfg.IsPortrait(),
		Content:  e.content(frame, t),
	}
	st.Background, st.Layers = e.background(frame, t)

	if st.Content.Active {
		pos := st.Content.Position
		seg := e.tl.Segments[pos]
		if sub, ok := e.projector.ProjectLines(e.cues[pos], seg.StartTime, frame, e.tl.FPS); ok {
			st.Subtitle = &sub
		}
	}
	return st
}

func (e *Engine) content(frame int, t float64) ContentState {
	seg, pos, ok := e.tl.FindActive(t)
	if ok {
		return ContentState{
			Active:       true,
			Position:     pos,
			SegmentIndex: seg.Index,
			Speaker:      e.cfg.Speaker(seg.Speaker),
			Opacity:      e.envelope.At(e.tl, pos, frame),
			Waveform:     WaveformBars(frame, e.cfg.Waveform.Bars),
		}
	}

	cs := ContentState{
		Position:     -1,
		SegmentIndex: -1,
		Speaker:      e.cfg.Speaker(e.cfg.DefaultSpeaker),
	}

	// After the final segment its layer is held rather than cut to black.
	// Gaps between segments show nothing.
	if n := e.tl.Len(); n > 0 {
		last := e.tl.Segments[n-1]
		if t >= last.EndTime {
			cs.Held = true
			cs.SegmentIndex = last.Index
			cs.Speaker = e.cfg.Speaker(last.Speaker)
			cs.Opacity = e.envelope.At(e.tl, n-1, frame)
		}
	}
	return cs
}

func (e *Engine) background(frame int, t float64) (BackgroundState, []ImageLayer) {
	switch e.cfg.Mode {
	case config.ModeCover:
		idx := e.images.CoverIndex()
		bg := BackgroundState{CurrentIndex: idx, PrevIndex: -1, Progress: 1}
		return bg, []ImageLayer{e.layer(idx, 1, effects.Identity())}

	case config.ModeSlideshow:
		sl, ok := e.slideshow.Layer(frame, e.images.Len(), e.tl.TotalFrames())
		if !ok {
			return BackgroundState{CurrentIndex: -1, PrevIndex: -1}, nil
		}
		bg := BackgroundState{
			Cycle:        sl.ImageIndex,
			CurrentIndex: sl.ImageIndex,
			PrevIndex:    -1,
			Progress:     sl.Style.Opacity,
		}
		return bg, []ImageLayer{e.layer(sl.ImageIndex, sl.Style.Opacity, sl.Style)}

	default:
		bg := e.cycler.state(t, e.images.Len())
		prevOp, curOp := bg.Opacities()
		var layers []ImageLayer
		if bg.PrevIndex >= 0 && bg.PrevIndex != bg.CurrentIndex {
			layers = append(layers, e.layer(bg.PrevIndex, prevOp, effects.Identity()))
		}
		layers = append(layers, e.layer(bg.CurrentIndex, curOp, effects.Identity()))
		return bg, layers
	}
}

func (e *Engine) layer(idx int, opacity float64, style effects.Style) ImageLayer {
	style.Opacity = opacity
	return ImageLayer{
		Index:   idx,
		Ref:     e.images.At(idx),
		Opacity: opacity,
		Style:   style,
	}
}
