package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Theme holds the colors used when rendering a report to a terminal.
type Theme struct {
	Title    lipgloss.Color
	Headline lipgloss.Color
	Accent   lipgloss.Color
	Hint     lipgloss.Color
	Border   lipgloss.Color
}

// DefaultTheme is used when no theme is given.
var DefaultTheme = Theme{
	Title:    lipgloss.Color("#5FAFD7"), // light blue
	Headline: lipgloss.Color("#FF005F"), // red
	Accent:   lipgloss.Color("#00D787"), // green
	Hint:     lipgloss.Color("#6C6C6C"), // dim gray
	Border:   lipgloss.Color("#3A3A3A"), // dark gray
}

func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Title).Bold(true).Underline(true)
}

func (t Theme) headlineStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Headline).Bold(true).Padding(1, 2)
}

func (t Theme) accentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) table(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		Headers(headers...)
}

// Render writes the report as styled terminal text.
func (r *Report) Render(w io.Writer, theme Theme) error {
	var b strings.Builder
	name := r.Target.Name

	b.WriteString(theme.headlineStyle().Render(r.Headline))
	b.WriteString("\n\n")

	b.WriteString(theme.titleStyle().Render("Standings"))
	b.WriteString("\n")
	standings := theme.table("Seed", "Entrant", "Total", "Mean", "Std dev")
	for _, e := range r.Standings {
		standings.Row(strconv.Itoa(e.Seed), e.Name,
			fmtScore(e.Total), fmtScore(e.Mean), fmtScore(e.StdDev))
	}
	b.WriteString(standings.Render())
	b.WriteString("\n\n")

	b.WriteString(theme.titleStyle().Render("Step 1: head-to-head odds"))
	b.WriteString("\n")
	b.WriteString(theme.hintStyle().Render("A-B is normal with the difference of the means and the sum of the variances; P(A beats B) = P(A-B > 0)."))
	b.WriteString("\n")
	h2h := theme.table("Opponent", "Seed", fmt.Sprintf("P(%s wins)", name))
	for _, m := range r.Matchups {
		h2h.Row(m.Opponent.Name, strconv.Itoa(m.Opponent.Seed), r.Percent(m.Win))
	}
	b.WriteString(h2h.Render())
	b.WriteString("\n\n")

	b.WriteString(theme.titleStyle().Render("Step 2: losing in the semifinals"))
	b.WriteString("\n")
	adv := theme.table("Entrant", "Seed", "Makes semifinals", "Makes final")
	for _, a := range r.Advancement {
		adv.Row(a.Entrant.Name, strconv.Itoa(a.Entrant.Seed), r.Percent(a.Semifinals), r.Percent(a.Finals))
	}
	b.WriteString(adv.Render())
	b.WriteString("\n")
	semi := theme.table("Opponent", "P(meet in semifinal)", "P(lose to them)")
	for _, m := range r.Matchups {
		semi.Row(m.Opponent.Name, r.Percent(m.MeetSemifinal), r.Percent(m.LoseSemifinal))
	}
	b.WriteString(semi.Render())
	b.WriteString("\n")
	fmt.Fprintf(&b, "P(loses semifinals) = %s\n\n", theme.accentStyle().Render(r.Percent(r.Semifinal)))

	b.WriteString(theme.titleStyle().Render("Step 3: losing in the final"))
	b.WriteString("\n")
	fin := theme.table("Opponent", "P(reaches final)", "P(beats "+name+" there)")
	for _, m := range r.Matchups {
		fin.Row(m.Opponent.Name, r.Percent(m.OpponentFinals), r.Percent(m.LoseFinal))
	}
	b.WriteString(fin.Render())
	b.WriteString("\n")
	fmt.Fprintf(&b, "P(%s makes final) = %s\n", name, r.Percent(r.MakesFinals))
	fmt.Fprintf(&b, "P(loses final) = %s\n\n", theme.accentStyle().Render(r.Percent(r.Final)))

	b.WriteString(theme.titleStyle().Render("Step 4: total"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "P(%s loses) = %s + %s = %s\n", name,
		r.Percent(r.Semifinal), r.Percent(r.Final), theme.accentStyle().Render(r.Percent(r.Tournament)))
	b.WriteString(theme.hintStyle().Render("snapshot " + r.SnapshotID))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func fmtScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
