package effects

import "github.com/ivlev/narration2video/internal/easing"

// Transition names the enter/exit animation of a slideshow image.
type Transition string

const (
	Fade       Transition = "fade"
	SlideLeft  Transition = "slide_left"
	SlideRight Transition = "slide_right"
	Zoom       Transition = "zoom"
	Blur       Transition = "blur"
)

// Transitions is the order in which images pick their animation.
var Transitions = []Transition{Fade, SlideLeft, SlideRight, Zoom, Blur}

// TransitionFor returns the transition of the image at index.
func TransitionFor(index int) Transition {
	if index < 0 {
		index = -index
	}
	return Transitions[index%len(Transitions)]
}

// Style is the visual transform applied to one image layer.
type Style struct {
	Opacity    float64 `yaml:"opacity"`
	TranslateX float64 `yaml:"translate_x"` // percent of the frame width
	Scale      float64 `yaml:"scale"`
	Blur       float64 `yaml:"blur"` // pixels
}

// Identity is a fully visible, untransformed layer.
func Identity() Style {
	return Style{Opacity: 1, Scale: 1}
}

// Effect computes the style of a layer for each phase of its lifetime.
// eased is the already eased phase progress in [0,1].
type Effect interface {
	Enter(eased float64) Style
	Stay() Style
	Exit(eased float64) Style
}

// ForTransition returns the effect implementing t. Unknown names fade.
func ForTransition(t Transition) Effect {
	switch t {
	case SlideLeft:
		return slideEffect{direction: 1}
	case SlideRight:
		return slideEffect{direction: -1}
	case Zoom:
		return zoomEffect{}
	case Blur:
		return blurEffect{}
	default:
		return fadeEffect{}
	}
}

type fadeEffect struct{}

func (fadeEffect) Enter(e float64) Style { return Style{Opacity: e, Scale: 1} }
func (fadeEffect) Stay() Style           { return Identity() }
func (fadeEffect) Exit(e float64) Style  { return Style{Opacity: 1 - e, Scale: 1} }

// slideEffect enters from one side and leaves through the other.
// direction 1 moves right to left.
type slideEffect struct {
	direction float64
}

func (s slideEffect) Enter(e float64) Style {
	return Style{Opacity: e, TranslateX: s.direction * (1 - e) * 100, Scale: 1}
}

func (s slideEffect) Stay() Style { return Identity() }

func (s slideEffect) Exit(e float64) Style {
	return Style{Opacity: 1 - e, TranslateX: -s.direction * e * 100, Scale: 1}
}

type zoomEffect struct{}

func (zoomEffect) Enter(e float64) Style { return Style{Opacity: e, Scale: 0.9 + 0.1*e} }
func (zoomEffect) Stay() Style           { return Identity() }
func (zoomEffect) Exit(e float64) Style  { return Style{Opacity: 1 - e, Scale: 1.1 - 0.1*e} }

type blurEffect struct{}

func (blurEffect) Enter(e float64) Style {
	return Style{Opacity: e, Scale: 0.95 + 0.05*e, Blur: (1 - e) * 20}
}

func (blurEffect) Stay() Style { return Identity() }

func (blurEffect) Exit(e float64) Style {
	return Style{Opacity: 1 - e, Scale: 1 - 0.05*e, Blur: e * 10}
}

// Phase is the lifetime stage of a slideshow image.
type Phase string

const (
	PhaseEnter Phase = "enter"
	PhaseStay  Phase = "stay"
	PhaseExit  Phase = "exit"
)

// Layer is the slideshow image visible at a frame.
type Layer struct {
	ImageIndex int
	Transition Transition
	Phase      Phase
	Style      Style
}

// Slideshow shows each image for a fixed number of frames, animating it in
// and out with the transition assigned to its position.
type Slideshow struct {
	FramesPerImage int
	EnterFrames    int
	StayFrames     int
	ExitFrames     int
	// MaxImages caps how many images are shown; zero shows all of them.
	MaxImages int
	EnterEase easing.Func
	ExitEase  easing.Func
}

// DefaultSlideshow returns 5 second slides at 30 fps: 2s in, 1s hold, 2s out.
func DefaultSlideshow() Slideshow {
	return Slideshow{
		FramesPerImage: 150,
		EnterFrames:    60,
		StayFrames:     30,
		ExitFrames:     60,
		MaxImages:      6,
		EnterEase:      easing.OutQuart,
		ExitEase:       easing.InQuart,
	}
}

// Layer returns the image visible at frame. ok is false once every image
// has been shown, or past totalFrames when totalFrames is positive.
func (s Slideshow) Layer(frame, imageCount, totalFrames int) (Layer, bool) {
	if frame < 0 || imageCount <= 0 || s.FramesPerImage <= 0 {
		return Layer{}, false
	}
	if totalFrames > 0 && frame >= totalFrames {
		return Layer{}, false
	}

	if s.MaxImages > 0 && imageCount > s.MaxImages {
		imageCount = s.MaxImages
	}

	index := frame / s.FramesPerImage
	if index >= imageCount {
		return Layer{}, false
	}

	transition := TransitionFor(index)
	eff := ForTransition(transition)
	local := frame - index*s.FramesPerImage

	layer := Layer{ImageIndex: index, Transition: transition}
	switch {
	case local < s.EnterFrames:
		layer.Phase = PhaseEnter
		layer.Style = eff.Enter(ease(s.EnterEase, float64(local)/float64(s.EnterFrames)))
	case local < s.EnterFrames+s.StayFrames:
		layer.Phase = PhaseStay
		layer.Style = eff.Stay()
	default:
		layer.Phase = PhaseExit
		p := float64(local-s.EnterFrames-s.StayFrames) / float64(s.ExitFrames)
		layer.Style = eff.Exit(ease(s.ExitEase, p))
	}
	return layer, true
}

func ease(f easing.Func, t float64) float64 {
	t = easing.Clamp01(t)
	if f == nil {
		return t
	}
	return f(t)
}
