// Package report renders battery results as Markdown or HTML.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"

	"spacetime/domain/result"
)

// Markdown renders the report as a Markdown document.
func Markdown(rep *result.BatteryReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Space-Time Interaction Report\n\n")
	fmt.Fprintf(&b, "- Run: %s\n", rep.RunID)
	fmt.Fprintf(&b, "- Dataset: %s\n", rep.DatasetHash)
	fmt.Fprintf(&b, "- Events: %d\n", rep.N)
	fmt.Fprintf(&b, "- Parameters: delta=%v tau=%v k=%d permutations=%d seed=%d\n",
		rep.Delta, rep.Tau, rep.K, rep.Permutations, rep.Seed)
	fmt.Fprintf(&b, "- Started: %s\n", rep.StartedAt)
	fmt.Fprintf(&b, "- Finished: %s\n\n", rep.FinishedAt)

	if rep.Knox != nil {
		fmt.Fprintf(&b, "## Knox\n\n")
		fmt.Fprintf(&b, "- Space-time pairs: %d of %d\n", rep.Knox.NST, rep.Knox.Pairs)
		fmt.Fprintf(&b, "- Spatial pairs: %d, temporal pairs: %d\n", rep.Knox.NS, rep.Knox.NT)
		fmt.Fprintf(&b, "- Poisson p-value: %.6f\n", rep.Knox.PPoisson)
		if rep.Knox.Permutations > 0 {
			fmt.Fprintf(&b, "- Pseudo p-value: %.6f (%d permutations)\n",
				rep.Knox.PSim, rep.Knox.Permutations)
		}
		b.WriteString("\n")
		writeTable(&b, "Observed", rep.Knox.Observed)
		writeTable(&b, "Expected", rep.Knox.Expected)
	}

	if rep.LocalKnox != nil {
		fmt.Fprintf(&b, "## Local Knox\n\n")
		fmt.Fprintf(&b, "| Event | NSTi | Pseudo p | Hypergeometric p |\n")
		fmt.Fprintf(&b, "|------:|-----:|---------:|-----------------:|\n")
		for i, nsti := range rep.LocalKnox.NSTi {
			psim := "-"
			if rep.LocalKnox.Permutations > 0 {
				psim = fmt.Sprintf("%.6f", rep.LocalKnox.PSims[i])
			}
			fmt.Fprintf(&b, "| %d | %d | %s | %.6f |\n", i, nsti, psim, rep.LocalKnox.PHypergeom[i])
		}
		b.WriteString("\n")
	}

	if rep.Mantel != nil {
		fmt.Fprintf(&b, "## Mantel\n\n")
		fmt.Fprintf(&b, "- Correlation: %.6f\n", rep.Mantel.Stat)
		if rep.Mantel.Permutations > 0 {
			fmt.Fprintf(&b, "- Pseudo p-value: %.6f (%d permutations)\n",
				rep.Mantel.PSim, rep.Mantel.Permutations)
		}
		b.WriteString("\n")
	}

	if rep.Jacquez != nil {
		fmt.Fprintf(&b, "## Jacquez\n\n")
		fmt.Fprintf(&b, "- Neighbor overlap (k=%d): %d\n", rep.Jacquez.K, rep.Jacquez.Stat)
		if rep.Jacquez.Permutations > 0 {
			fmt.Fprintf(&b, "- Pseudo p-value: %.6f (%d permutations)\n",
				rep.Jacquez.PSim, rep.Jacquez.Permutations)
		}
		b.WriteString("\n")
	}

	if rep.ModifiedKnox != nil {
		fmt.Fprintf(&b, "## Modified Knox\n\n")
		fmt.Fprintf(&b, "- Statistic: %.6f\n", rep.ModifiedKnox.Stat)
		if rep.ModifiedKnox.Permutations > 0 {
			fmt.Fprintf(&b, "- Pseudo p-value: %.6f (%d permutations)\n",
				rep.ModifiedKnox.PSim, rep.ModifiedKnox.Permutations)
		}
		b.WriteString("\n")
	}

	if rep.KnoxNull != nil {
		writeNull(&b, "Knox Null Distribution", rep.KnoxNull)
	}
	if rep.ModifiedNull != nil {
		writeNull(&b, "Modified Knox Null Distribution", rep.ModifiedNull)
	}

	return b.String()
}

// HTML renders the report as an HTML fragment.
func HTML(rep *result.BatteryReport) string {
	return string(markdown.ToHTML([]byte(Markdown(rep)), nil, nil))
}

func writeTable(b *strings.Builder, title string, t result.ContingencyTable) {
	fmt.Fprintf(b, "### %s\n\n", title)
	fmt.Fprintf(b, "| | Time close | Time far |\n")
	fmt.Fprintf(b, "|---|---:|---:|\n")
	fmt.Fprintf(b, "| Space close | %.2f | %.2f |\n", t[0][0], t[0][1])
	fmt.Fprintf(b, "| Space far | %.2f | %.2f |\n\n", t[1][0], t[1][1])
}

func writeNull(b *strings.Builder, title string, s *result.NullSummary) {
	fmt.Fprintf(b, "## %s\n\n", title)
	fmt.Fprintf(b, "- Mean: %.4f, StdDev: %.4f\n", s.Mean, s.StdDev)
	fmt.Fprintf(b, "- Range: [%.4f, %.4f]\n", s.Min, s.Max)
	fmt.Fprintf(b, "- P95: %.4f, P99: %.4f\n\n", s.Percentile95, s.Percentile99)
}
