package report

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const noData = "no data"

var (
	clrTitle  = lipgloss.Color("#58a6ff")
	clrSubtle = lipgloss.Color("#8b949e")
	clrGood   = lipgloss.Color("#3fb950")
	clrBad    = lipgloss.Color("#f85149")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(clrTitle)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle  = lipgloss.NewStyle().Width(16)
	numStyle    = lipgloss.NewStyle().Width(12).Align(lipgloss.Right)
	subtleStyle = lipgloss.NewStyle().Foreground(clrSubtle)
)

// RenderText formats the report as a console table
func RenderText(r *Report) string {
	var sections []string

	sections = append(sections, titleStyle.Render("Euchre simulation report"))
	meta := fmt.Sprintf("run %s  seed %d  mode %s  ai %s  workers %d  %s",
		r.RunID, r.Seed, r.Mode, r.AIType, r.Workers, r.Duration())
	sections = append(sections, subtleStyle.Render(meta), "")

	sections = append(sections, headerStyle.Render("Summary"))
	s := r.Summary
	for _, row := range [][2]string{
		{"deals", fmt.Sprint(s.Deals)},
		{"rounds", fmt.Sprint(s.Rounds)},
		{"tricks", fmt.Sprint(s.Tricks)},
		{"cards played", fmt.Sprint(s.CardsPlayed)},
		{"alone rounds", fmt.Sprint(s.AloneRounds)},
		{"marches", fmt.Sprint(s.Marches)},
		{"euchres", fmt.Sprint(s.Euchres)},
		{"team points", fmt.Sprintf("%d / %d", s.TeamPoints[0], s.TeamPoints[1])},
	} {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(row[0]), numStyle.Render(row[1])))
	}
	sections = append(sections, "")

	sections = append(sections, headerStyle.Render("Card win rates"))
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render("token"), numStyle.Render("played"), numStyle.Render("won"), numStyle.Render("win rate")))
	for _, t := range r.Tokens {
		rate := subtleStyle.Render(noData)
		if t.WinRate != nil {
			rate = fmt.Sprintf("%.5f", *t.WinRate)
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(t.Token),
			numStyle.Render(fmt.Sprint(t.Played)),
			numStyle.Render(fmt.Sprint(t.Won)),
			numStyle.Render(rate)))
	}

	for _, b := range r.Buckets {
		lines := bucketLines(b)
		if len(lines) == 0 {
			continue
		}
		sections = append(sections, "", headerStyle.Render("Dealer call: "+b.Bucket))
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render("hand value"), numStyle.Render("rounds"), numStyle.Render("mean diff")))
		sections = append(sections, lines...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

// bucketLines renders only the deciles that saw at least one round
func bucketLines(b BucketStat) []string {
	var lines []string
	for d, mean := range b.Means {
		if mean == nil {
			continue
		}
		style := numStyle.Foreground(clrGood)
		if *mean < 0 {
			style = numStyle.Foreground(clrBad)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(fmt.Sprintf("%.1f", float64(d)/10)),
			numStyle.Render(fmt.Sprint(b.Counts[d])),
			style.Render(fmt.Sprintf("%+.3f", *mean))))
	}
	return lines
}
