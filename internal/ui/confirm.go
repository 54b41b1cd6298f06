package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rivo/tview"
)

// Dialog is the text of a yes/no question.
type Dialog struct {
	Title  string
	Detail string
	Yes    string
	No     string
}

func (d Dialog) normalized() Dialog {
	d.Title = strings.TrimSpace(d.Title)
	d.Detail = strings.TrimSpace(d.Detail)
	if strings.TrimSpace(d.Yes) == "" {
		d.Yes = "Yes"
	}
	if strings.TrimSpace(d.No) == "" {
		d.No = "No"
	}
	return d
}

func (d Dialog) text() string {
	if d.Detail == "" {
		return d.Title
	}
	return d.Title + "\n\n" + d.Detail
}

// Confirm asks a yes/no question. used is false when no interactive backend
// ran.
func Confirm(backend string, dialog Dialog) (bool, bool, error) {
	dialog = dialog.normalized()
	var firstErr error
	for _, candidate := range backendCandidates(backend) {
		var (
			approved bool
			err      error
		)
		switch candidate {
		case BackendBubbleTea:
			approved, err = confirmWithBubbleTea(dialog)
		case BackendHuh:
			approved, err = confirmWithHuh(dialog)
		case BackendTView:
			approved, err = confirmWithTView(dialog)
		case BackendPlain:
			continue
		default:
			continue
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return approved, true, nil
	}
	if firstErr != nil {
		return false, false, firstErr
	}
	return false, false, nil
}

type bubbleConfirmModel struct {
	dialog   Dialog
	approved bool
	done     bool
}

func (m bubbleConfirmModel) Init() tea.Cmd { return nil }

func (m bubbleConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch k := msg.(type) {
	case tea.KeyMsg:
		switch strings.ToLower(k.String()) {
		case "y", "д":
			m.approved = true
			m.done = true
			return m, tea.Quit
		case "n", "н", "esc", "ctrl+c", "enter":
			m.approved = false
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m bubbleConfirmModel) View() string {
	return fmt.Sprintf("%s\n\n[y] %s  [n] %s", m.dialog.text(), m.dialog.Yes, m.dialog.No)
}

func confirmWithBubbleTea(dialog Dialog) (bool, error) {
	final, err := tea.NewProgram(bubbleConfirmModel{dialog: dialog}, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	out, ok := final.(bubbleConfirmModel)
	if !ok || !out.done {
		return false, nil
	}
	return out.approved, nil
}

func confirmWithHuh(dialog Dialog) (bool, error) {
	approved := false
	prompt := huh.NewConfirm().
		Title(dialog.Title).
		Description(dialog.Detail).
		Affirmative(dialog.Yes).
		Negative(dialog.No).
		Value(&approved).
		WithTheme(huh.ThemeCharm())
	err := prompt.Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return approved, nil
}

func confirmWithTView(dialog Dialog) (bool, error) {
	app := tview.NewApplication()
	approved := false

	modal := tview.NewModal().
		SetText(dialog.text()).
		AddButtons([]string{dialog.Yes, dialog.No}).
		SetDoneFunc(func(index int, _ string) {
			approved = index == 0
			app.Stop()
		})

	if err := app.SetRoot(modal, true).Run(); err != nil {
		return false, err
	}
	return approved, nil
}
