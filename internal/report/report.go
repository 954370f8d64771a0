// Package report renders engine output as a plain-text report.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"AstroEngine/internal/engine"
	"AstroEngine/internal/model"
)

// Format renders the full run output.
func Format(out *engine.Output, at time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("AstroEngine report | %s\n\n", at.Format("2006-01-02")))

	b.WriteString(fmt.Sprintf("Almuten Figuris: %s\n", out.Almuten))
	py := out.Profection
	b.WriteString(fmt.Sprintf("Profection: %s house, %s, lord %s\n\n",
		humanize.Ordinal(py.AgeIndex+1), py.ProfectedSign, py.YearLord))

	b.WriteString("Active configuration:\n")
	for _, f := range out.Result.Features {
		b.WriteString(fmt.Sprintf("  %s\n", f))
	}

	b.WriteString("\nEvidence ranking:\n")
	for i, ev := range out.Result.Evidence {
		b.WriteString(fmt.Sprintf("  %s. [%s] %s: %s (%.2f)\n",
			humanize.Ordinal(i+1), ev.Tier, ev.Subject, ev.Description, ev.FinalScore))
		for _, m := range ev.AppliedMultipliers {
			b.WriteString(fmt.Sprintf("       x%.2f %s\n", m.Factor, m.Name))
		}
	}

	if len(out.Suppressions) > 0 {
		b.WriteString("\nSuppressed claims:\n")
		for _, s := range out.Suppressions {
			b.WriteString(fmt.Sprintf("  %s lost %q to %s (%s)\n",
				s.Loser.Subject, s.Claim, s.WonBy, s.Rule))
		}
	}
	if len(out.Dropped) > 0 {
		b.WriteString(fmt.Sprintf("\n%d item(s) scored below the background threshold and were dropped.\n", len(out.Dropped)))
	}
	return b.String()
}

// FormatTone renders a period's tone on one line.
func FormatTone(tone *model.Tone) string {
	if tone == nil {
		return "tone: not evaluated"
	}
	return fmt.Sprintf("tone: %s/%s (%.2f) - %s",
		tone.Valence, tone.Intensity, tone.Score, strings.Join(tone.Reasons, "; "))
}
