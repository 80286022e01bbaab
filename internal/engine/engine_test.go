package engine

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ivlev/narration2video/internal/config"
	"github.com/ivlev/narration2video/internal/director"
	"github.com/ivlev/narration2video/internal/renderer"
	"github.com/ivlev/narration2video/internal/source"
	"github.com/ivlev/narration2video/internal/timeline"
)

func newTestEngine(t *testing.T) *renderer.Engine {
	t.Helper()
	cfg := config.Default()
	tl, err := timeline.New([]timeline.Segment{
		{Index: 0, Speaker: "vivian.surprise", Text: "张晓晶说金融强国要先搞思想启蒙。我们现在还抱着原罪论，这观念太落伍了！", StartTime: 0, EndTime: 6, Duration: 6},
		{Index: 1, Speaker: "man.surprise", Text: "第二段落的文字。", StartTime: 6.5, EndTime: 12, Duration: 5.5},
	}, 14, cfg.Video.FPS)
	if err != nil {
		t.Fatal(err)
	}
	images, err := source.NewImageSet([]string{"a.png", "b.png"})
	if err != nil {
		t.Fatal(err)
	}
	eng, err := renderer.NewEngine(cfg, tl, images)
	if err != nil {
		t.Fatal(err)
	}
	return eng
}

func TestSampleMatchesSequential(t *testing.T) {
	eng := newTestEngine(t)

	for _, workers := range []int{0, 1, 3, 64} {
		p := NewProject(eng, workers)
		states, err := p.Sample(context.Background(), 10, eng.TotalFrames())
		if err != nil {
			t.Fatalf("workers=%d: Sample failed: %v", workers, err)
		}
		if len(states) != eng.TotalFrames()-10 {
			t.Fatalf("workers=%d: expected %d states, got %d", workers, eng.TotalFrames()-10, len(states))
		}
		for i, st := range states {
			if want := eng.Frame(10 + i); !reflect.DeepEqual(st, want) {
				t.Fatalf("workers=%d: frame %d differs from sequential evaluation", workers, 10+i)
			}
		}
	}
}

func TestSampleRanges(t *testing.T) {
	p := NewProject(newTestEngine(t), 2)

	states, err := p.Sample(context.Background(), 5, 5)
	if err != nil || len(states) != 0 {
		t.Errorf("empty range: %d states, err %v", len(states), err)
	}
	if _, err := p.Sample(context.Background(), 10, 5); err == nil {
		t.Error("expected error for reversed range")
	}
	if _, err := p.Sample(context.Background(), -1, 5); err == nil {
		t.Error("expected error for negative start")
	}
}

func TestSampleCanceled(t *testing.T) {
	p := NewProject(newTestEngine(t), 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Sample(ctx, 0, 100); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunWritesCueSheet(t *testing.T) {
	eng := newTestEngine(t)
	p := NewProject(eng, 4)
	p.Out = nil

	out := filepath.Join(t.TempDir(), "cues.yaml")
	scenario, err := p.Run(context.Background(), out)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if scenario.TotalFrames != 420 {
		t.Errorf("Expected 420 frames, got %d", scenario.TotalFrames)
	}
	if n := scenario.Count(director.CueSegmentStart); n != 2 {
		t.Errorf("Expected 2 segment starts, got %d", n)
	}
	// two lines in the first segment, one in the second
	if n := scenario.Count(director.CueLine); n != 3 {
		t.Errorf("Expected 3 line cues, got %d", n)
	}
	// 10s switch interval over 14s
	if n := scenario.Count(director.CueBackground); n != 2 {
		t.Errorf("Expected 2 background cues, got %d", n)
	}

	read, err := director.ReadScenario(out)
	if err != nil {
		t.Fatalf("ReadScenario failed: %v", err)
	}
	if len(read.Cues) != len(scenario.Cues) {
		t.Errorf("Written cue sheet has %d cues, expected %d", len(read.Cues), len(scenario.Cues))
	}
}
