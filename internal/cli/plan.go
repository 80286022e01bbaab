package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/narration2video/internal/director"
	"github.com/ivlev/narration2video/internal/engine"
)

var (
	planOutput  string
	planDir     string
	planWorkers int
)

var cueKinds = []director.CueKind{
	director.CueBackground,
	director.CueSegmentStart,
	director.CueSegmentEnd,
	director.CueLine,
	director.CueHold,
}

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Sample every frame and write the cue sheet",
		Args:  cobra.NoArgs,
		RunE:  runPlan,
	}

	cmd.Flags().StringVarP(&planOutput, "output", "o", "", "Cue sheet path (default: timestamped file in --dir)")
	cmd.Flags().StringVar(&planDir, "dir", director.DefaultScenarioDir, "Cue sheet directory; the newest sheet in it is compared with the new one")
	cmd.Flags().IntVar(&planWorkers, "workers", 0, "Parallel frame workers (default: config, then number of CPUs)")

	return cmd
}

func runPlan(cmd *cobra.Command, _ []string) error {
	eng, _, err := loadEngine(cmd)
	if err != nil {
		return err
	}

	workers := planWorkers
	if workers <= 0 {
		workers = eng.Config().Workers
	}

	// The previous sheet is read up front: the new one may reuse its name.
	var previous *director.Scenario
	var previousPath string
	out := planOutput
	if out == "" {
		if latest, err := director.FindLatestScenario(planDir); err == nil {
			if previous, err = director.ReadScenario(latest); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "[!] Skipping unreadable cue sheet %s: %v\n", latest, err)
			} else {
				previousPath = latest
			}
		}
		out = director.GenerateScenarioPath(planDir)
	}

	project := engine.NewProject(eng, workers)
	project.Out = cmd.OutOrStdout()

	scenario, err := project.Run(cmd.Context(), out)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	if previous != nil {
		fmt.Fprintln(w, boldStyle.Render("Cues:")+" "+faintStyle.Render("(previous: "+previousPath+")"))
	} else {
		fmt.Fprintln(w, boldStyle.Render("Cues:"))
	}
	for _, kind := range cueKinds {
		line := fmt.Sprintf("  %-14s %s", kind, speakerStyle.Render(fmt.Sprint(scenario.Count(kind))))
		if previous != nil {
			if delta := scenario.Count(kind) - previous.Count(kind); delta != 0 {
				line += " " + warnStyle.Render(fmt.Sprintf("(%+d)", delta))
			} else {
				line += " " + faintStyle.Render("(unchanged)")
			}
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
