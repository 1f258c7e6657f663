package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/safooraa838/FitSync/internal/config"
	"github.com/safooraa838/FitSync/internal/models"
)

func truncateLabel(text string, max int) string {
	if max <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= max {
		return text
	}
	return ansi.Truncate(text, max, config.TruncationSuffix)
}

func (m MainModel) View() string {
	t := CurrentTheme
	if !m.snap.signedIn {
		return t.Base.Render(t.Header.Render("FitSync") + "\n\n" +
			t.Dim.Render("Not signed in. Restart and log in to see your dashboard.") + "\n\n" +
			m.renderFooter())
	}

	header := t.Header.Render("FitSync") + "  " + t.Value.Render(m.snap.user.Name) +
		"  " + t.Dim.Render(m.snap.today.Format("Monday, Jan 2"))

	width := m.panelWidth()
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.panel("Today", m.renderToday(), width),
		m.panel("This week", m.renderWeek(), width),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.panel("Recent workouts", m.renderWorkouts(m.snap.recent), width),
		m.panel("Active goals", m.renderGoals(), width),
	)
	var body string
	if m.width > 0 && m.width < config.CompactModeThreshold {
		body = lipgloss.JoinVertical(lipgloss.Left, left, right)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	parts := []string{header, body}
	if m.searching || m.search.Value() != "" {
		parts = append(parts, m.renderSearch(width))
	}
	parts = append(parts, m.renderFooter())
	return t.Base.Render(strings.Join(parts, "\n\n"))
}

func (m MainModel) panelWidth() int {
	if m.width <= 0 {
		return config.TargetTitleWidth + config.ProgressBarWidth/2
	}
	w := m.width/2 - 4
	if m.width < config.CompactModeThreshold {
		w = m.width - 6
	}
	if w < config.MinPanelWidth {
		w = config.MinPanelWidth
	}
	return w
}

func (m MainModel) panel(title, content string, width int) string {
	t := CurrentTheme
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(width)
	return style.Render(t.Title.Render(title) + "\n" + content)
}

func (m MainModel) renderToday() string {
	t := CurrentTheme
	in := m.snap.intake
	lines := []string{
		t.Value.Render(fmt.Sprintf("%.0f kcal", in.Calories)) + t.Dim.Render(fmt.Sprintf("  from %d meals", m.snap.meals)),
		fmt.Sprintf("P %.0fg  C %.0fg  F %.0fg", in.Protein, in.Carbs, in.Fat),
	}
	return strings.Join(lines, "\n")
}

func (m MainModel) renderWeek() string {
	t := CurrentTheme
	return t.Value.Render(fmt.Sprintf("%d workouts", len(m.snap.week))) + "\n" +
		fmt.Sprintf("%d min  %d kcal burned", m.snap.minutes, m.snap.burned)
}

func (m MainModel) renderWorkouts(ws []models.Workout) string {
	t := CurrentTheme
	if len(ws) == 0 {
		return t.Dim.Render("No workouts yet.")
	}
	var b strings.Builder
	for i, w := range ws {
		if i == config.MaxVisibleRows {
			b.WriteString(t.Dim.Render(fmt.Sprintf("+%d more", len(ws)-i)))
			break
		}
		if i > 0 {
			b.WriteString("\n")
		}
		label := truncateLabel(w.Name, config.TargetTitleWidth)
		b.WriteString(t.Dim.Render(w.Date.In(m.engine.Location()).Format("Jan 02")) + "  " + label)
		b.WriteString(t.Dim.Render(fmt.Sprintf(" (%s, %d min)", w.Type, w.Duration)))
	}
	return b.String()
}

func (m MainModel) renderGoals() string {
	t := CurrentTheme
	var b strings.Builder
	if len(m.snap.active) == 0 {
		b.WriteString(t.Dim.Render("No active goals."))
	}
	for i, g := range m.snap.active {
		if i == config.MaxVisibleGoals {
			b.WriteString("\n" + t.Dim.Render(fmt.Sprintf("+%d more", len(m.snap.active)-i)))
			break
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t.Value.Render(truncateLabel(g.Title, config.TargetTitleWidth)) + "\n")
		b.WriteString(m.progress.ViewAs(float64(g.Progress)/100) + fmt.Sprintf(" %3d%%", g.Progress))
	}
	if m.snap.completed > 0 {
		b.WriteString("\n" + t.Completed.Render(fmt.Sprintf("%d completed", m.snap.completed)))
	}
	return b.String()
}

func (m MainModel) renderSearch(width int) string {
	t := CurrentTheme
	content := t.Input.Render(m.search.View())
	if m.search.Value() != "" {
		content += "\n" + m.renderWorkouts(m.snap.matches)
	}
	return m.panel("Search workouts", content, width)
}

func (m MainModel) renderFooter() string {
	t := CurrentTheme
	if m.err != nil {
		return t.Error.Render("Error: " + m.err.Error())
	}
	if m.status != "" {
		return t.Status.Render(m.status)
	}
	if m.searching {
		return t.Dim.Render("enter: keep results  esc: clear")
	}
	return t.Dim.Render("r: refresh  e: export PDF  /: search  t: theme  q: quit")
}
