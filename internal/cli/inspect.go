package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ivlev/narration2video/internal/renderer"
)

var (
	boldStyle    = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	speakerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "List segments and their subtitle lines with timings",
		Args:  cobra.NoArgs,
		RunE:  runInspect,
	}
}

func runInspect(cmd *cobra.Command, _ []string) error {
	eng, path, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	printInspect(cmd.OutOrStdout(), eng, path)
	return nil
}

func printInspect(w io.Writer, eng *renderer.Engine, path string) {
	tl := eng.Timeline()
	cfg := eng.Config()

	fmt.Fprintln(w, boldStyle.Render("Timeline:")+" "+path)
	fmt.Fprintf(w, "%s %d | %s %.2fs | %s %d @ %d FPS | %s %s\n",
		boldStyle.Render("Segments:"), tl.Len(),
		boldStyle.Render("Duration:"), tl.TotalDuration,
		boldStyle.Render("Frames:"), eng.TotalFrames(), tl.FPS,
		boldStyle.Render("Mode:"), cfg.Mode)
	fmt.Fprintln(w)

	for pos, seg := range tl.Segments {
		speaker := cfg.Speaker(seg.Speaker)
		fmt.Fprintf(w, "%s %s → %s  %s\n",
			boldStyle.Render(fmt.Sprintf("#%d", seg.Index)),
			formatTime(seg.StartTime), formatTime(seg.EndTime),
			speakerStyle.Render(speaker.Name))

		lines := eng.Cues(pos)
		if len(lines) == 0 {
			fmt.Fprintln(w, "    "+warnStyle.Render("(no subtitle lines)"))
		}
		for i, line := range lines {
			fmt.Fprintf(w, "    %s %s %s  %s\n",
				faintStyle.Render(fmt.Sprintf("[%d]", i)),
				formatTime(seg.StartTime+line.Start),
				faintStyle.Render(fmt.Sprintf("+%.2fs", line.Duration)),
				line.Text)
		}
		// The minimum line duration can push lines past the segment end.
		if n := len(lines); n > 0 && lines[n-1].End() > seg.Duration+1e-9 {
			fmt.Fprintln(w, "    "+warnStyle.Render(fmt.Sprintf("[!] lines run %.2fs past the segment end", lines[n-1].End()-seg.Duration)))
		}
	}
}

// formatTime renders seconds as mm:ss.cc
func formatTime(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	m := int(sec) / 60
	return fmt.Sprintf("%02d:%05.2f", m, sec-float64(m*60))
}
