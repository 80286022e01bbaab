package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/narration2video/internal/easing"
)

// Render modes. They share one engine and differ only in how the
// background layer is chosen.
const (
	ModeCycle     = "cycle"     // backgrounds rotate every switch interval with a crossfade
	ModeCover     = "cover"     // a single cover image for the whole video
	ModeSlideshow = "slideshow" // fixed frames per image with enter/stay/exit transitions
)

// Config is the immutable render configuration. It is built once before
// the first frame and passed explicitly to the engine.
type Config struct {
	Video          VideoConfig        `yaml:"video"`
	Mode           string             `yaml:"mode"`
	Timeline       string             `yaml:"timeline"`
	Images         []string           `yaml:"images"`
	Workers        int                `yaml:"workers"`
	Content        ContentConfig      `yaml:"content"`
	Background     BackgroundConfig   `yaml:"background"`
	Subtitle       SubtitleConfig     `yaml:"subtitle"`
	Slideshow      SlideshowConfig    `yaml:"slideshow"`
	Waveform       WaveformConfig     `yaml:"waveform"`
	DefaultSpeaker string             `yaml:"default_speaker"`
	Speakers       map[string]Speaker `yaml:"speakers"`
}

type VideoConfig struct {
	Preset string `yaml:"preset"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
}

// ContentConfig drives the fade envelope of the speech content layer.
type ContentConfig struct {
	FadeFrames int    `yaml:"fade_frames"`
	Easing     string `yaml:"easing"`
}

type BackgroundConfig struct {
	SwitchInterval float64 `yaml:"switch_interval"` // seconds
	FadeFrames     int     `yaml:"fade_frames"`
	Easing         string  `yaml:"easing"`
}

type SubtitleConfig struct {
	MaxLineLength  int     `yaml:"max_line_length"` // runes
	MinSplitIndex  int     `yaml:"min_split_index"`
	ClauseBreaks   bool    `yaml:"clause_breaks"`
	MinLineSeconds float64 `yaml:"min_line_seconds"`
	HoldThreshold  float64 `yaml:"hold_threshold"`
	FadeSeconds    float64 `yaml:"fade_seconds"`
	Easing         string  `yaml:"easing"`
}

type SlideshowConfig struct {
	FramesPerImage int    `yaml:"frames_per_image"`
	EnterFrames    int    `yaml:"enter_frames"`
	StayFrames     int    `yaml:"stay_frames"`
	ExitFrames     int    `yaml:"exit_frames"`
	MaxImages      int    `yaml:"max_images"` // 0 shows every image
	EnterEasing    string `yaml:"enter_easing"`
	ExitEasing     string `yaml:"exit_easing"`
}

type WaveformConfig struct {
	Bars int `yaml:"bars"`
}

// Speaker is the display configuration of one voice.
type Speaker struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Presets maps preset names to output dimensions.
var Presets = map[string][2]int{
	"portrait_720p":  {720, 1280},
	"portrait_1080p": {1080, 1920},
	"hd_720p":        {1280, 720},
	"full_hd_1080p":  {1920, 1080},
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Video: VideoConfig{
			Width:  1920,
			Height: 1080,
			FPS:    30,
		},
		Mode: ModeCycle,
		Content: ContentConfig{
			FadeFrames: 15,
			Easing:     "easeInOutQuad",
		},
		Background: BackgroundConfig{
			SwitchInterval: 10,
			FadeFrames:     15,
			Easing:         "linear",
		},
		Subtitle: SubtitleConfig{
			MaxLineLength:  25,
			MinSplitIndex:  10,
			MinLineSeconds: 1,
			HoldThreshold:  0.85,
			FadeSeconds:    0.1,
			Easing:         "easeInOutQuad",
		},
		Slideshow: SlideshowConfig{
			FramesPerImage: 150,
			EnterFrames:    60,
			StayFrames:     30,
			ExitFrames:     60,
			MaxImages:      6,
			EnterEasing:    "easeOutQuart",
			ExitEasing:     "easeInQuart",
		},
		Waveform: WaveformConfig{
			Bars: 20,
		},
		DefaultSpeaker: "vivian.surprise",
		Speakers: map[string]Speaker{
			"vivian.surprise": {Name: "Vivian", Color: "#ffffff"},
			"man.surprise":    {Name: "Mr. Zhang", Color: "#ffffff"},
		},
	}
}

// Load reads a YAML config file on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.ApplyPreset(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyPreset overrides the video dimensions with the named preset.
func (c *Config) ApplyPreset() error {
	if c.Video.Preset == "" {
		return nil
	}
	dims, ok := Presets[c.Video.Preset]
	if !ok {
		return fmt.Errorf("unknown video preset %q", c.Video.Preset)
	}
	c.Video.Width, c.Video.Height = dims[0], dims[1]
	return nil
}

// IsPortrait reports whether the output is taller than wide
func (c Config) IsPortrait() bool {
	return c.Video.Height > c.Video.Width
}

// Speaker resolves a speaker id. Unknown ids fall back to the default
// speaker, and a missing default yields a plain white entry.
func (c Config) Speaker(id string) Speaker {
	if sp, ok := c.Speakers[id]; ok {
		return sp
	}
	if sp, ok := c.Speakers[c.DefaultSpeaker]; ok {
		return sp
	}
	name := id
	if name == "" {
		name = c.DefaultSpeaker
	}
	return Speaker{Name: name, Color: "#ffffff"}
}

// Validate checks ranges and names. It collects every problem rather than
// stopping at the first one.
func (c Config) Validate() error {
	var errs []error

	if c.Video.FPS <= 0 {
		errs = append(errs, fmt.Errorf("video.fps must be positive, got %d", c.Video.FPS))
	}
	if c.Video.Width <= 0 || c.Video.Height <= 0 {
		errs = append(errs, fmt.Errorf("video dimensions must be positive, got %dx%d", c.Video.Width, c.Video.Height))
	}

	switch c.Mode {
	case ModeCycle, ModeCover, ModeSlideshow:
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}

	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.Content.FadeFrames < 0 {
		errs = append(errs, fmt.Errorf("content.fade_frames must not be negative, got %d", c.Content.FadeFrames))
	}
	if c.Background.SwitchInterval <= 0 {
		errs = append(errs, fmt.Errorf("background.switch_interval must be positive, got %f", c.Background.SwitchInterval))
	}
	if c.Background.FadeFrames < 0 {
		errs = append(errs, fmt.Errorf("background.fade_frames must not be negative, got %d", c.Background.FadeFrames))
	}

	s := c.Subtitle
	if s.MaxLineLength < 0 || s.MinSplitIndex < 0 {
		errs = append(errs, errors.New("subtitle line limits must not be negative"))
	}
	if s.MinLineSeconds < 0 {
		errs = append(errs, fmt.Errorf("subtitle.min_line_seconds must not be negative, got %f", s.MinLineSeconds))
	}
	if s.HoldThreshold <= 0 || s.HoldThreshold > 1 {
		errs = append(errs, fmt.Errorf("subtitle.hold_threshold must be in (0,1], got %f", s.HoldThreshold))
	}
	if s.FadeSeconds < 0 {
		errs = append(errs, fmt.Errorf("subtitle.fade_seconds must not be negative, got %f", s.FadeSeconds))
	}

	ss := c.Slideshow
	if ss.FramesPerImage <= 0 || ss.EnterFrames <= 0 || ss.ExitFrames <= 0 || ss.StayFrames < 0 {
		errs = append(errs, fmt.Errorf("slideshow frame counts must be positive, got %d/%d/%d/%d",
			ss.FramesPerImage, ss.EnterFrames, ss.StayFrames, ss.ExitFrames))
	}
	if ss.MaxImages < 0 {
		errs = append(errs, fmt.Errorf("slideshow.max_images must not be negative, got %d", ss.MaxImages))
	}
	if c.Waveform.Bars < 0 {
		errs = append(errs, fmt.Errorf("waveform.bars must not be negative, got %d", c.Waveform.Bars))
	}

	for field, name := range map[string]string{
		"content.easing":         c.Content.Easing,
		"background.easing":      c.Background.Easing,
		"subtitle.easing":        s.Easing,
		"slideshow.enter_easing": ss.EnterEasing,
		"slideshow.exit_easing":  ss.ExitEasing,
	} {
		if _, err := easing.ByName(name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
	}

	return errors.Join(errs...)
}
