package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	envConfig   = "N2V_CONFIG"
	envTimeline = "N2V_TIMELINE"

	// defaultTimelineDir is searched for the newest metadata file when no
	// timeline is given.
	defaultTimelineDir = "input/timeline"
)

var (
	configPath   string
	timelinePath string
	imageRefs    []string
)

// Execute runs the root cobra command.
func Execute() {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[-] error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "narration2video",
		Short:         "Frame-exact timeline projection for narrated videos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv(envConfig), "Path to the YAML config (env "+envConfig+")")
	cmd.PersistentFlags().StringVar(&timelinePath, "timeline", os.Getenv(envTimeline), "Path to the timeline metadata (env "+envTimeline+", default: newest file in "+defaultTimelineDir+")")
	cmd.PersistentFlags().StringSliceVar(&imageRefs, "images", nil, "Background image references in display order (overrides config)")

	cmd.AddCommand(newFrameCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newPlanCmd())

	return cmd
}
