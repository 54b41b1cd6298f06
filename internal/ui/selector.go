package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rivo/tview"
)

// SelectOption shows labels in the first backend that works. index is -1
// when the user cancelled. used is false when no interactive backend ran, in
// which case the caller should fall back to a plain numbered prompt.
func SelectOption(backend string, title string, labels []string) (int, bool, error) {
	options := buildSelectionOptions(labels)
	if len(options) == 0 {
		return -1, false, nil
	}

	var firstErr error
	for _, candidate := range backendCandidates(backend) {
		var (
			selected int
			used     bool
			err      error
		)
		switch candidate {
		case BackendBubbleTea:
			selected, used, err = selectWithBubbleTea(title, options)
		case BackendHuh:
			selected, used, err = selectWithHuh(title, options)
		case BackendTView:
			selected, used, err = selectWithTView(title, options)
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
		if used {
			return selected, true, nil
		}
	}
	if firstErr != nil {
		return -1, false, firstErr
	}
	return -1, false, nil
}

type selectorOption struct {
	Label string
	Index int
}

func buildSelectionOptions(labels []string) []selectorOption {
	options := make([]selectorOption, 0, len(labels))
	for idx, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		options = append(options, selectorOption{
			Label: fmt.Sprintf("%d. %s", idx+1, label),
			Index: idx,
		})
	}
	return options
}

func selectWithHuh(title string, options []selectorOption) (int, bool, error) {
	huhOptions := make([]huh.Option[int], 0, len(options))
	for _, option := range options {
		huhOptions = append(huhOptions, huh.NewOption(option.Label, option.Index))
	}

	choice := options[0].Index
	prompt := huh.NewSelect[int]().
		Title(strings.TrimSpace(title)).
		Options(huhOptions...).
		Filtering(true).
		Height(huhSelectHeight(len(huhOptions))).
		Value(&choice).
		WithTheme(huh.ThemeCharm())

	err := prompt.Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return -1, true, nil
		}
		return -1, false, err
	}
	return choice, true, nil
}

type bubbleSelectorItem struct {
	label string
	index int
}

func (i bubbleSelectorItem) Title() string       { return i.label }
func (i bubbleSelectorItem) Description() string { return "" }
func (i bubbleSelectorItem) FilterValue() string { return i.label }

type bubbleSelectorModel struct {
	list      list.Model
	selection int
	cancelled bool
	options   int
}

func newBubbleSelectorModel(title string, options []selectorOption) bubbleSelectorModel {
	items := make([]list.Item, 0, len(options))
	for _, option := range options {
		items = append(items, bubbleSelectorItem{label: option.Label, index: option.Index})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	initialWidth, initialHeight := bubblePickerSize(80, 24, len(items))
	picker := list.New(items, delegate, initialWidth, initialHeight)
	picker.Title = strings.TrimSpace(title)
	picker.SetShowHelp(false)
	picker.SetFilteringEnabled(true)

	return bubbleSelectorModel{list: picker, selection: -1, options: len(items)}
}

func (m bubbleSelectorModel) Init() tea.Cmd { return nil }

func (m bubbleSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch k := msg.(type) {
	case tea.WindowSizeMsg:
		width, height := bubblePickerSize(k.Width, k.Height, m.options)
		m.list.SetSize(width, height)
		return m, nil
	case tea.KeyMsg:
		switch k.String() {
		case "q", "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(bubbleSelectorItem); ok {
				m.selection = item.index
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m bubbleSelectorModel) View() string {
	return m.list.View()
}

func selectWithBubbleTea(title string, options []selectorOption) (int, bool, error) {
	model := newBubbleSelectorModel(title, options)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return -1, false, err
	}
	out, ok := final.(bubbleSelectorModel)
	if !ok || out.cancelled {
		return -1, true, nil
	}
	return out.selection, true, nil
}

func selectWithTView(title string, options []selectorOption) (int, bool, error) {
	app := tview.NewApplication()
	listView := tview.NewList()
	listView.SetBorder(true)
	listView.SetTitle(strings.TrimSpace(title))
	listView.ShowSecondaryText(false)

	selected := -1
	for _, option := range options {
		current := option
		listView.AddItem(current.Label, "", 0, func() {
			selected = current.Index
			app.Stop()
		})
	}
	listView.SetDoneFunc(func() {
		app.Stop()
	})

	if err := app.SetRoot(listView, true).SetFocus(listView).Run(); err != nil {
		return -1, false, err
	}
	return selected, true, nil
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func bubblePickerSize(termWidth, termHeight, optionCount int) (int, int) {
	if termWidth <= 0 {
		termWidth = 80
	}
	if termHeight <= 0 {
		termHeight = 24
	}
	if optionCount < 1 {
		optionCount = 1
	}

	maxWidth := termWidth
	minWidth := 32
	if maxWidth < minWidth {
		minWidth = maxWidth
	}
	width := clampInt(termWidth-4, minWidth, maxWidth)

	visibleItems := clampInt(optionCount, 3, 12)
	desiredHeight := visibleItems + 6

	maxHeight := termHeight - 2
	if maxHeight <= 0 {
		maxHeight = 1
	}
	minHeight := 8
	if maxHeight < minHeight {
		minHeight = maxHeight
	}
	return width, clampInt(desiredHeight, minHeight, maxHeight)
}

func huhSelectHeight(optionCount int) int {
	if optionCount < 1 {
		optionCount = 1
	}
	return clampInt(optionCount+1, 4, 10)
}
