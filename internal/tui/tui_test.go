// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nitrokit/nitrokit/internal/i18n"
)

func press(t *testing.T, m model, keys ...string) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, c := m.Update(msg)
		m, cmd = next.(model), c
	}
	return m, cmd
}

func TestMenu_SelectsAction(t *testing.T) {
	i18n.Init("en")
	m, cmd := press(t, newModel("v1.0.0"), "j", "down", "enter")
	if m.result.Action != ActionUpdateDependencies {
		t.Fatalf("expected update-dependencies, got %q", m.result.Action)
	}
	if cmd == nil {
		t.Fatal("selection must quit the program")
	}
}

func TestMenu_CursorIsClamped(t *testing.T) {
	i18n.Init("en")
	m, _ := press(t, newModel(""), "up", "k")
	if m.menu.cursor != 0 {
		t.Fatalf("cursor moved above first item: %d", m.menu.cursor)
	}
	for i := 0; i < len(mainItems)+3; i++ {
		m, _ = press(t, m, "j")
	}
	if m.menu.cursor != len(mainItems)-1 {
		t.Fatalf("cursor moved past last item: %d", m.menu.cursor)
	}
	m, _ = press(t, m, "enter")
	if m.result.Action != ActionExit {
		t.Fatalf("last item is Exit, got %q", m.result.Action)
	}
}

func TestMenu_ConfigurationSubmenu(t *testing.T) {
	i18n.Init("en")
	m := newModel("")
	for i := 0; i < 6; i++ {
		m, _ = press(t, m, "down")
	}
	m, _ = press(t, m, "enter")
	if m.state != configView {
		t.Fatalf("expected config view, got %v", m.state)
	}
	if !strings.Contains(m.View(), "Show configuration") {
		t.Fatalf("config view missing entries:\n%s", m.View())
	}
	m, _ = press(t, m, "esc")
	if m.state != menuView {
		t.Fatal("esc must return to the main menu")
	}
	m, _ = press(t, m, "enter", "down", "enter")
	if m.result.Action != ActionConfigSetup {
		t.Fatalf("expected config-setup, got %q", m.result.Action)
	}
}

func TestMenu_LanguageSelection(t *testing.T) {
	i18n.Init("en")
	defer i18n.SetLang("en")
	m := newModel("")
	for i := 0; i < 7; i++ {
		m, _ = press(t, m, "down")
	}
	m, _ = press(t, m, "enter")
	if m.state != languageView {
		t.Fatalf("expected language view, got %v", m.state)
	}
	if len(m.language.orderedKeys) < 2 {
		t.Fatalf("expected en and tr locales, got %v", m.language.orderedKeys)
	}
	// Locales are sorted: en, tr.
	m, _ = press(t, m, "down", "enter")
	if m.result.Action != ActionLanguage || m.result.Lang != "tr" {
		t.Fatalf("unexpected result %+v", m.result)
	}
	if i18n.GetLang() != "tr" {
		t.Fatalf("language not applied: %s", i18n.GetLang())
	}
}

func TestMenu_QuitKeys(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		m, cmd := press(t, newModel(""), k)
		if m.result.Action != ActionExit || cmd == nil {
			t.Fatalf("%s must quit with exit, got %+v", k, m.result)
		}
	}
}

func TestMenu_ViewListsEveryItem(t *testing.T) {
	i18n.Init("en")
	out := newModel("v9.9.9").View()
	for _, want := range []string{"Create release", "Release notes", "GitHub labels", "Exit", "v9.9.9"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAlignFooter(t *testing.T) {
	if got := AlignFooter("left", "right", 12); got != "left   right" {
		t.Fatalf("got %q", got)
	}
	if got := AlignFooter("left", "right", 3); got != "left right" {
		t.Fatalf("narrow width: %q", got)
	}
}
