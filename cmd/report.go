package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Christian2525252525/bbl-evacuatie-calculator/sim"
)

// Theme holds the report styles.
type Theme struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Hint    lipgloss.Style
}

func newTheme(plain bool) Theme {
	if plain {
		s := lipgloss.NewStyle()
		return Theme{Title: s, Label: s, Success: s, Error: s, Hint: s}
	}
	return Theme{
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7")).Bold(true), // light blue
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("#AFAFAF")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#00D787")).Bold(true), // green
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF005F")).Bold(true), // red
		Hint:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")).Italic(true),
	}
}

// Verdict returns the one-line compliance verdict of a result.
func Verdict(res *sim.Result) string {
	switch {
	case !res.Converged:
		return "NOT CONVERGED"
	case res.Compliant:
		return "COMPLIANT"
	default:
		return "NOT COMPLIANT"
	}
}

// RenderReport formats a result for the terminal.
func RenderReport(res *sim.Result, th Theme) string {
	var b strings.Builder

	b.WriteString(th.Title.Render("=== Evacuation Report ===") + "\n")
	row := func(label, value string) {
		fmt.Fprintf(&b, "%s : %s\n", th.Label.Render(fmt.Sprintf("%-22s", label)), value)
	}
	row("Total people", fmt.Sprintf("%d", res.TotalPeople))
	row("Building height", fmt.Sprintf("%.1f m", res.TotalHeightMeters))
	row("Stair capacity", fmt.Sprintf("%d people/min", res.StairCapacityPerMinute))
	row("Exit door capacity", fmt.Sprintf("%d people/min", res.ExitDoorCapacityPerMinute))
	row("Evacuation time", fmt.Sprintf("%.2f min (limit %d min)", res.EvacuationMinutes, res.MaxEvacuationMinutes))

	verdict := Verdict(res)
	if res.Compliant {
		row("Verdict", th.Success.Render(verdict))
	} else {
		row("Verdict", th.Error.Render(verdict))
	}
	if !res.Converged {
		b.WriteString(th.Hint.Render("The step budget ran out before the building was empty; the time shown is the last simulated step.") + "\n")
	}

	b.WriteString("\n" + th.Title.Render("Critical paths") + "\n")
	fmt.Fprintf(&b, "%6s  %-6s %10s %11s %9s\n", "Floor", "Stair", "Travel(s)", "Descent(s)", "Total(s)")
	for _, p := range res.CriticalPaths {
		fmt.Fprintf(&b, "%6d  %-6s %10.1f %11.1f %9.1f\n", p.Floor, p.Stair, p.TravelSeconds, p.DescentSeconds, p.TotalSeconds)
	}

	b.WriteString("\n" + th.Title.Render("Floors") + "\n")
	fmt.Fprintf(&b, "%6s %8s %11s %10s\n", "Floor", "People", "Start(min)", "Remaining")
	for _, f := range res.Floors {
		fmt.Fprintf(&b, "%6d %8d %11.1f %10.0f\n", f.Floor, f.People, f.StartMinutes, f.RemainingAtEnd)
	}

	if res.Summary != nil && len(res.Summary.Stairs) > 0 {
		b.WriteString("\n" + th.Title.Render("Stairs") + "\n")
		fmt.Fprintf(&b, "%-6s %10s %7s %14s\n", "Stair", "Evacuated", "Share", "Peak (step)")
		for _, s := range res.Summary.Stairs {
			fmt.Fprintf(&b, "%-6s %10.0f %6.1f%% %8.1f (%d)\n", s.Name, s.Evacuated, 100*s.Share, s.PeakOnStair, s.PeakStep)
		}
	}

	if len(res.TimeSeries) > 0 {
		b.WriteString("\n" + th.Title.Render("Evacuation curve") + "\n")
		fmt.Fprintf(&b, "%9s", "Time(min)")
		for _, name := range res.StairNames {
			fmt.Fprintf(&b, " %7s", name)
		}
		fmt.Fprintf(&b, " %7s\n", "Total")
		for _, p := range res.TimeSeries {
			fmt.Fprintf(&b, "%9.1f", p.TimeMinutes)
			for _, n := range p.StairEvacuated {
				fmt.Fprintf(&b, " %7.0f", n)
			}
			fmt.Fprintf(&b, " %7.0f\n", p.TotalEvacuated)
		}
	}
	return b.String()
}
