package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"trajview/internal/trajectory"
)

// runInspect prints a markdown summary of the configured trajectory file.
func runInspect(cmd *cobra.Command, args []string) error {
	ds, err := openDataset(cfg.Input)
	if err != nil {
		return err
	}

	md := summaryMarkdown(cfg.Input, ds)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		if out, rerr := renderer.Render(md); rerr == nil {
			md = out
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), md)
	return nil
}

// summaryMarkdown describes ds as a markdown document.
func summaryMarkdown(path string, ds *trajectory.Dataset) string {
	traj := ds.Trajectories
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", path))
	sb.WriteString(fmt.Sprintf("- **Objects:** %d (%s)\n", traj.Objects(), strings.Join(ds.Names, ", ")))
	sb.WriteString(fmt.Sprintf("- **Dimensions:** %d\n", traj.Dimensions()))
	sb.WriteString(fmt.Sprintf("- **Samples:** %d\n\n", traj.Samples()))

	if traj.Samples() == 0 {
		sb.WriteString("_No samples recorded._\n")
		return sb.String()
	}

	sb.WriteString("| Object | First | Last | Min | Max |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for o, name := range ds.Names {
		lows := make([]float64, traj.Dimensions())
		highs := make([]float64, traj.Dimensions())
		for d := range lows {
			lows[d], highs[d], _ = traj.Range(o, d)
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			name,
			formatVector(traj.Position(o, 0)),
			formatVector(traj.Position(o, traj.Samples()-1)),
			formatVector(lows),
			formatVector(highs)))
	}
	return sb.String()
}

func formatVector(v []float64) string {
	parts := lo.Map(v, func(x float64, _ int) string {
		return fmt.Sprintf("%.4g", x)
	})
	return "(" + strings.Join(parts, ", ") + ")"
}
