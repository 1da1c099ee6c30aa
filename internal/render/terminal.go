package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#b45309"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#334155"))

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#475569"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8")).
			Italic(true)

	tierStyles = map[Tier]lipgloss.Style{
		TierEasy:   lipgloss.NewStyle().Foreground(lipgloss.Color("#15803d")),
		TierMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("#a16207")),
		TierHard:   lipgloss.NewStyle().Foreground(lipgloss.Color("#b91c1c")),
	}
)

// Terminal renders a view for a terminal. Steps with a timer are tagged
// with the key the user types to start it.
func Terminal(v *View) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(v.Name))
	b.WriteString("\n")
	if v.Description != "" {
		b.WriteString(bodyStyle.Render(v.Description))
		b.WriteString("\n")
	}
	meta := fmt.Sprintf("%s · %s · serves %d", tierStyles[v.Difficulty].Render(string(v.Difficulty)), v.TotalTime, v.Servings)
	b.WriteString(mutedStyle.Render(meta))
	b.WriteString("\n\n")

	b.WriteString(headingStyle.Render("Ingredients"))
	b.WriteString("\n")
	for _, ing := range v.Ingredients {
		b.WriteString(bodyStyle.Render("  • " + ing))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Instructions"))
	b.WriteString("\n")
	for _, s := range v.Steps {
		line := fmt.Sprintf("  %d. %s", s.Number, s.Text)
		b.WriteString(bodyStyle.Render(line))
		if label := s.TimerLabel(); label != "" {
			b.WriteString(" ")
			b.WriteString(mutedStyle.Render(fmt.Sprintf("[t%d: %s]", s.Number, label)))
		}
		b.WriteString("\n")
	}

	if len(v.Substitutions) > 0 {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("Substitutions"))
		b.WriteString("\n")
		for _, sub := range v.Substitutions {
			b.WriteString(bodyStyle.Render(fmt.Sprintf("  %s → %s", sub.MissingIngredient, sub.Suggestion)))
			b.WriteString("\n")
		}
	}

	if v.Nutrition != nil {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("Nutrition (per serving)"))
		b.WriteString("\n")
		n := v.Nutrition
		b.WriteString(bodyStyle.Render(fmt.Sprintf("  Calories %s · Protein %s · Carbs %s · Fat %s", n.Calories, n.Protein, n.Carbs, n.Fat)))
		b.WriteString("\n")
	}

	return b.String()
}

// TerminalMarkdown renders parsed markdown blocks for a terminal.
func TerminalMarkdown(blocks Blocks) string {
	var b strings.Builder
	for _, blk := range blocks {
		switch blk.Kind {
		case BlockHeading2:
			b.WriteString(titleStyle.Render(blk.Text))
		case BlockHeading3:
			b.WriteString("\n")
			b.WriteString(headingStyle.Render(blk.Text))
		case BlockUnorderedList:
			for i, item := range blk.Items {
				if i > 0 {
					b.WriteString("\n")
				}
				b.WriteString(bodyStyle.Render("  • " + item))
			}
		case BlockOrderedList:
			for i, item := range blk.Items {
				if i > 0 {
					b.WriteString("\n")
				}
				b.WriteString(bodyStyle.Render(fmt.Sprintf("  %d. %s", i+1, item)))
			}
		default:
			b.WriteString(bodyStyle.Render(blk.Text))
		}
		b.WriteString("\n")
	}
	return b.String()
}
