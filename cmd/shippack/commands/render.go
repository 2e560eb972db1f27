package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/piwi3910/ShipPack/internal/engine"
	"github.com/piwi3910/ShipPack/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AAFF")).
			MarginTop(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(labelStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func renderSummary(w io.Writer, res model.PackResult) {
	fmt.Fprintln(w, titleStyle.Render("PACKING RESULT"))

	kv := func(k, v string) {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", k)), v)
	}
	kv("Run", res.RunID)
	kv("Boxes placed", fmt.Sprintf("%d", res.BoxCount()))
	kv("Packages", fmt.Sprintf("%d (%s)", len(res.Packages), formatCounts(res.PackageCounts())))
	kv("Area", fmt.Sprintf("%.0f (initial %.0f, lower bound %.0f)", res.Area, res.InitialArea, res.LowerBound))
	kv("Efficiency", fmt.Sprintf("%.1f%%", res.TotalEfficiency()))
	kv("Schedule", fmt.Sprintf("c0=%g cmin=%g alpha=%g steps=%d seed=%d",
		res.Settings.InitialControl, res.Settings.MinControl, res.Settings.Alpha,
		res.Settings.StepsPerTemperature, res.Settings.Seed))
	kv("Moves", fmt.Sprintf("%d proposed, %d accepted, %d infeasible, %d packages removed",
		res.Stats.Proposed, res.Stats.Accepted(), res.Stats.Infeasible, res.Stats.PackagesRemoved))

	if len(res.Packages) > 0 {
		t := newTable("Package", "Type", "Size", "Boxes", "Used")
		for _, pr := range res.Packages {
			t.Row(
				fmt.Sprintf("%d", pr.Package.ID),
				pr.Package.Type,
				fmt.Sprintf("%.0f x %.0f", pr.Package.Width, pr.Package.Height),
				fmt.Sprintf("%d", len(pr.Boxes)),
				fmt.Sprintf("%.1f%%", pr.Efficiency()),
			)
		}
		fmt.Fprintln(w, t.Render())
	}

	if len(res.Dropped) > 0 {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("%d boxes fit no package type and were dropped:", len(res.Dropped))))
		for _, b := range res.Dropped {
			name := b.Label
			if name == "" {
				name = fmt.Sprintf("#%d", b.Index)
			}
			fmt.Fprintf(w, "  %s %.0f x %.0f\n", name, b.Width, b.Height)
		}
	}
}

func renderComparison(w io.Writer, results []engine.ComparisonResult) {
	fmt.Fprintln(w, titleStyle.Render("SCENARIO COMPARISON"))

	best := -1
	for i, r := range results {
		if best < 0 || r.Area < results[best].Area {
			best = i
		}
	}

	t := newTable("Scenario", "Packages", "Area", "Efficiency", "Dropped", "Accepted")
	for i, r := range results {
		name := r.Scenario.Name
		if i == best {
			name += " *"
		}
		t.Row(
			name,
			fmt.Sprintf("%d", r.PackagesUsed),
			fmt.Sprintf("%.0f", r.Area),
			fmt.Sprintf("%.1f%%", r.Efficiency),
			fmt.Sprintf("%d", r.DroppedCount),
			fmt.Sprintf("%.1f%%", r.Result.Stats.AcceptanceRate()*100),
		)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, labelStyle.Render("* smallest total package area"))
}

func renderCatalog(w io.Writer, catalog model.Catalog) {
	fmt.Fprintln(w, titleStyle.Render("PACKAGE CATALOG"))

	t := newTable("Type", "Width", "Height", "Area")
	for _, pt := range catalog.Types {
		t.Row(pt.Name, fmt.Sprintf("%.0f", pt.Width), fmt.Sprintf("%.0f", pt.Height), fmt.Sprintf("%.0f", pt.Area()))
	}
	fmt.Fprintln(w, t.Render())
}

// formatCounts renders type counts sorted by type name, e.g. "A x2, B x1".
func formatCounts(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s x%d", name, counts[name]))
	}
	return strings.Join(parts, ", ")
}
