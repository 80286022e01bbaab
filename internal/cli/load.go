package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/narration2video/internal/config"
	"github.com/ivlev/narration2video/internal/renderer"
	"github.com/ivlev/narration2video/internal/source"
	"github.com/ivlev/narration2video/internal/system"
	"github.com/ivlev/narration2video/internal/timeline"
)

func loadConfig() (config.Config, error) {
	if configPath == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}
	return config.Load(configPath)
}

func resolveTimelinePath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if timelinePath != "" {
		return timelinePath, nil
	}
	if cfg.Timeline != "" {
		return cfg.Timeline, nil
	}

	latest, err := system.FindLatest(defaultTimelineDir, system.TimelineExtensions...)
	if err != nil {
		return "", fmt.Errorf("no timeline given (--timeline, %s or config): %w", envTimeline, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "[*] Using timeline: %s\n", latest)
	return latest, nil
}

// loadEngine builds the engine from flags, environment and config. It
// returns the timeline path for reporting.
func loadEngine(cmd *cobra.Command) (*renderer.Engine, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}

	path, err := resolveTimelinePath(cmd, cfg)
	if err != nil {
		return nil, "", err
	}

	tl, err := timeline.Read(path, cfg.Video.FPS)
	if err != nil {
		return nil, "", fmt.Errorf("read timeline: %w", err)
	}
	if !tl.Sorted() {
		fmt.Fprintf(cmd.ErrOrStderr(), "[!] %s: segments are unsorted or overlap, active segment lookup is undefined\n", path)
	}

	refs := imageRefs
	if len(refs) == 0 {
		refs = cfg.Images
	}
	images, err := source.NewImageSet(refs)
	if err != nil {
		return nil, "", fmt.Errorf("pass --images or set images in the config: %w", err)
	}

	eng, err := renderer.NewEngine(cfg, tl, images)
	if err != nil {
		return nil, "", err
	}
	return eng, path, nil
}
