package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/safooraa838/FitSync/internal/config"
	"github.com/safooraa838/FitSync/internal/util"
)

var errNotSignedIn = errors.New("not signed in")

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Clear error on keypress
	if m.err != nil {
		if k, ok := msg.(tea.KeyMsg); ok && k.Type != tea.KeyCtrlC {
			m.err = nil
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		target := config.ProgressBarWidth
		if m.width < config.CompactModeThreshold {
			target = util.Clamp(m.width/3, 10, config.ProgressBarWidth)
		}
		m.progress.Width = target
		return m, nil
	case tickMsg:
		m.reload()
		return m, tickCmd(m.refresh)
	case exportedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("export failed: %w", msg.err)
			return m, nil
		}
		m.status = "Report saved to " + msg.path
		return m, nil
	case progress.FrameMsg:
		newProg, cmd := m.progress.Update(msg)
		m.progress = newProg.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m MainModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.reload()
		m.status = "Refreshed"
		return m, nil
	case "e":
		if !m.snap.signedIn {
			m.err = errNotSignedIn
			return m, nil
		}
		m.status = "Exporting weekly report..."
		return m, m.exportCmd()
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "t":
		names := themeOrder()
		m.themeIdx = (m.themeIdx + 1) % len(names)
		SetTheme(names[m.themeIdx])
		m.status = "Theme: " + CurrentTheme.Name
		return m, nil
	}
	return m, nil
}

func (m MainModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.Reset()
		m.reload()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.reload()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.reload()
	return m, cmd
}
