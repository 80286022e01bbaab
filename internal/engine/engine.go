package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/narration2video/internal/director"
	"github.com/ivlev/narration2video/internal/renderer"
)

// Project drives a renderer.Engine over whole frame ranges.
type Project struct {
	Engine  *renderer.Engine
	Workers int
	// Out receives progress output; nil silences it.
	Out io.Writer
}

func NewProject(eng *renderer.Engine, workers int) *Project {
	return &Project{
		Engine:  eng,
		Workers: workers,
		Out:     os.Stdout,
	}
}

func (p *Project) workers(jobs int) int {
	n := p.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > jobs {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Sample evaluates frames [from, to) in parallel. Every frame is independent,
// so results are written by index and need no locking.
func (p *Project) Sample(ctx context.Context, from, to int) ([]renderer.RenderState, error) {
	if from < 0 || to < from {
		return nil, fmt.Errorf("invalid frame range [%d, %d)", from, to)
	}

	count := to - from
	states := make([]renderer.RenderState, count)
	if count == 0 {
		return states, nil
	}

	// Frames are handed out in chunks to keep goroutine overhead low.
	workers := p.workers(count)
	chunk := (count + workers*4 - 1) / (workers * 4)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < count; start += chunk {
		start := start
		end := min(start+chunk, count)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				states[i] = p.Engine.Frame(from + i)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return states, nil
}

// Run samples the whole composition and writes its cue sheet to out.
func (p *Project) Run(ctx context.Context, out string) (*director.Scenario, error) {
	startTime := time.Now()

	cfg := p.Engine.Config()
	total := p.Engine.TotalFrames()

	p.printf("--- [PROJECT: TIMELINE ENGINE] ---\n")
	p.printf("[*] Segments: %d | Frames: %d | Mode: %s\n", p.Engine.Timeline().Len(), total, cfg.Mode)
	p.printf("[*] Resolution: %dx%d @ %d FPS | Workers: %d\n", cfg.Video.Width, cfg.Video.Height, cfg.Video.FPS, p.workers(total))
	p.printf("-----------------------------\n")

	sampleStart := time.Now()
	states, err := p.Sample(ctx, 0, total)
	if err != nil {
		return nil, fmt.Errorf("frame sampling failed: %w", err)
	}
	sampleTime := time.Since(sampleStart)

	dir := director.NewDirector(cfg.Video.FPS, cfg.Video.Width, cfg.Video.Height, cfg.Mode)
	scenario, err := dir.GenerateScenario(states, total)
	if err != nil {
		return nil, err
	}

	if out != "" {
		if err := director.WriteScenario(scenario, out); err != nil {
			return nil, fmt.Errorf("failed to write cue sheet: %w", err)
		}
		p.printf("[+++] Cue sheet saved: %s (%d cues)\n", out, len(scenario.Cues))
	}

	totalTime := time.Since(startTime)
	fps := 0.0
	if s := sampleTime.Seconds(); s > 0 {
		fps = float64(total) / s
	}
	p.printf("[*] Sampling: %.2fs | Total: %.2fs | Effective FPS: %.0f\n", sampleTime.Seconds(), totalTime.Seconds(), fps)

	return scenario, nil
}

func (p *Project) printf(format string, args ...any) {
	if p.Out == nil {
		return
	}
	fmt.Fprintf(p.Out, format, args...)
}
