package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestBubbleConfirmModelYes(t *testing.T) {
	model := bubbleConfirmModel{dialog: Dialog{Title: "Удалить сценарий?"}.normalized()}
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	out := updated.(bubbleConfirmModel)
	if !out.done || !out.approved {
		t.Fatalf("expected approval, got done=%v approved=%v", out.done, out.approved)
	}
}

func TestBubbleConfirmModelEnterDeclines(t *testing.T) {
	model := bubbleConfirmModel{dialog: Dialog{Title: "Удалить сценарий?"}.normalized()}
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	out := updated.(bubbleConfirmModel)
	if !out.done || out.approved {
		t.Fatalf("expected decline, got done=%v approved=%v", out.done, out.approved)
	}
}

func TestDialogViewUsesLabels(t *testing.T) {
	model := bubbleConfirmModel{dialog: Dialog{Title: "Удалить?", Detail: "Сценарий#0", Yes: "Да", No: "Нет"}.normalized()}
	view := model.View()
	for _, want := range []string{"Удалить?", "Сценарий#0", "[y] Да", "[n] Нет"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view %q", want, view)
		}
	}
}

func TestDialogDefaultsButtons(t *testing.T) {
	d := Dialog{Title: " t "}.normalized()
	if d.Yes != "Yes" || d.No != "No" || d.Title != "t" {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}

func TestAdaptersSkipPlainBackend(t *testing.T) {
	if _, used, err := (Picker{Backend: BackendPlain}).Pick("x", []string{"a"}); used || err != nil {
		t.Fatalf("plain picker should be unused, used=%v err=%v", used, err)
	}
	if _, used, err := (Confirmer{Backend: BackendPlain}).Confirm("x", ""); used || err != nil {
		t.Fatalf("plain confirmer should be unused, used=%v err=%v", used, err)
	}
}
