package ui

// Picker selects one of several labels using the configured backend.
type Picker struct {
	Backend string
}

func (p Picker) Pick(title string, labels []string) (int, bool, error) {
	if !IsInteractiveBackend(p.Backend) {
		return -1, false, nil
	}
	return SelectOption(p.Backend, title, labels)
}

// Confirmer asks yes/no questions with localized button labels.
type Confirmer struct {
	Backend string
	Yes     string
	No      string
}

func (c Confirmer) Confirm(title string, detail string) (bool, bool, error) {
	if !IsInteractiveBackend(c.Backend) {
		return false, false, nil
	}
	return Confirm(c.Backend, Dialog{Title: title, Detail: detail, Yes: c.Yes, No: c.No})
}
