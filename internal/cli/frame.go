package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/narration2video/internal/renderer"
)

func newFrameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "frame N [N...]",
		Short: "Print the render state of one or more frames as YAML",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runFrame,
	}
}

func runFrame(cmd *cobra.Command, args []string) error {
	frames := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid frame number %q", arg)
		}
		frames[i] = n
	}

	eng, _, err := loadEngine(cmd)
	if err != nil {
		return err
	}

	var payload any
	if len(frames) == 1 {
		payload = eng.Frame(frames[0])
	} else {
		states := make([]renderer.RenderState, len(frames))
		for i, f := range frames {
			states[i] = eng.Frame(f)
		}
		payload = states
	}

	data, err := yaml.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
