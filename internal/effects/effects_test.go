package effects

import (
	"math"
	"testing"
)

func TestTransitionFor(t *testing.T) {
	tests := []struct {
		index int
		want  Transition
	}{
		{0, Fade},
		{1, SlideLeft},
		{2, SlideRight},
		{3, Zoom},
		{4, Blur},
		{5, Fade},
		{11, SlideLeft},
	}
	for _, tt := range tests {
		if got := TransitionFor(tt.index); got != tt.want {
			t.Errorf("TransitionFor(%d) = %s, want %s", tt.index, got, tt.want)
		}
	}
}

func TestEffectsAreContinuous(t *testing.T) {
	// Entering ends at the stay style for every transition.
	for _, tr := range Transitions {
		t.Run(string(tr), func(t *testing.T) {
			eff := ForTransition(tr)
			end := eff.Enter(1)
			stay := eff.Stay()
			if math.Abs(end.Opacity-stay.Opacity) > 1e-9 ||
				math.Abs(end.TranslateX-stay.TranslateX) > 1e-9 ||
				math.Abs(end.Scale-stay.Scale) > 1e-9 ||
				math.Abs(end.Blur-stay.Blur) > 1e-9 {
				t.Errorf("Enter(1) = %+v, Stay() = %+v", end, stay)
			}
			if start := eff.Enter(0); start.Opacity != 0 {
				t.Errorf("Enter(0) opacity = %f, want 0", start.Opacity)
			}
			if gone := eff.Exit(1); gone.Opacity != 0 {
				t.Errorf("Exit(1) opacity = %f, want 0", gone.Opacity)
			}
		})
	}
}

func TestSlideDirections(t *testing.T) {
	left := ForTransition(SlideLeft)
	if s := left.Enter(0); s.TranslateX != 100 {
		t.Errorf("slide_left should enter from the right, got %f", s.TranslateX)
	}
	if s := left.Exit(1); s.TranslateX != -100 {
		t.Errorf("slide_left should leave to the left, got %f", s.TranslateX)
	}

	right := ForTransition(SlideRight)
	if s := right.Enter(0); s.TranslateX != -100 {
		t.Errorf("slide_right should enter from the left, got %f", s.TranslateX)
	}
	if s := right.Exit(1); s.TranslateX != 100 {
		t.Errorf("slide_right should leave to the right, got %f", s.TranslateX)
	}
}

func TestSlideshowLayer(t *testing.T) {
	s := DefaultSlideshow()

	tests := []struct {
		frame     int
		wantOK    bool
		wantIndex int
		wantPhase Phase
	}{
		{0, true, 0, PhaseEnter},
		{59, true, 0, PhaseEnter},
		{60, true, 0, PhaseStay},
		{89, true, 0, PhaseStay},
		{90, true, 0, PhaseExit},
		{149, true, 0, PhaseExit},
		{150, true, 1, PhaseEnter},
		{449, true, 2, PhaseExit},
		{450, false, 0, ""}, // only three images
		{-1, false, 0, ""},
	}

	for _, tt := range tests {
		layer, ok := s.Layer(tt.frame, 3, 0)
		if ok != tt.wantOK {
			t.Errorf("frame %d: ok = %v, want %v", tt.frame, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if layer.ImageIndex != tt.wantIndex || layer.Phase != tt.wantPhase {
			t.Errorf("frame %d: got (%d, %s), want (%d, %s)", tt.frame, layer.ImageIndex, layer.Phase, tt.wantIndex, tt.wantPhase)
		}
	}
}

func TestSlideshowStopsAtTotalFrames(t *testing.T) {
	s := DefaultSlideshow()
	if _, ok := s.Layer(200, 6, 200); ok {
		t.Error("frame at totalFrames must not be visible")
	}
	if _, ok := s.Layer(199, 6, 200); !ok {
		t.Error("frame before totalFrames should be visible")
	}
}

func TestSlideshowEnterEasing(t *testing.T) {
	s := DefaultSlideshow()
	layer, _ := s.Layer(30, 1, 0) // halfway into the fade-in
	want := 1 - math.Pow(0.5, 4)
	if math.Abs(layer.Style.Opacity-want) > 1e-9 {
		t.Errorf("opacity = %f, want %f", layer.Style.Opacity, want)
	}
}

func TestSlideshowMaxImages(t *testing.T) {
	s := DefaultSlideshow()

	if layer, ok := s.Layer(899, 10, 0); !ok || layer.ImageIndex != 5 {
		t.Errorf("frame 899: got (%d, %v), want image 5", layer.ImageIndex, ok)
	}
	if _, ok := s.Layer(900, 10, 0); ok {
		t.Error("only the first 6 images are shown")
	}

	s.MaxImages = 0
	if layer, ok := s.Layer(900, 10, 0); !ok || layer.ImageIndex != 6 {
		t.Errorf("unlimited slideshow: got (%d, %v), want image 6", layer.ImageIndex, ok)
	}
}
