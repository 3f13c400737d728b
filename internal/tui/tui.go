// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui provides Nitrokit's interactive main menu. The menu only
// picks an action; the CLI runs it and returns to the menu afterwards.
package tui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nitrokit/nitrokit/internal/i18n"
)

// Action identifies what the user picked.
type Action string

const (
	ActionNone               Action = ""
	ActionCreateRelease      Action = "create-release"
	ActionReleaseNotes       Action = "release-notes"
	ActionUpdateDependencies Action = "update-dependencies"
	ActionSyncTranslations   Action = "sync-translations"
	ActionCodeQuality        Action = "code-quality"
	ActionGitHubLabels       Action = "github-labels"
	ActionConfigShow         Action = "config-show"
	ActionConfigSetup        Action = "config-setup"
	ActionConfigReset        Action = "config-reset"
	ActionLanguage           Action = "language"
	ActionHelp               Action = "help"
	ActionExit               Action = "exit"
)

// Result is what Run returns. Lang is set for ActionLanguage.
type Result struct {
	Action Action
	Lang   string
}

type menuItem struct {
	labelID string
	action  Action
}

type view int

const (
	menuView view = iota
	configView
	languageView
)

var mainItems = []menuItem{
	{"menu.create_release", ActionCreateRelease},
	{"menu.release_notes", ActionReleaseNotes},
	{"menu.update_dependencies", ActionUpdateDependencies},
	{"menu.sync_translations", ActionSyncTranslations},
	{"menu.code_quality", ActionCodeQuality},
	{"menu.github_labels", ActionGitHubLabels},
	{"menu.configuration", ""},
	{"menu.language", ""},
	{"menu.help", ActionHelp},
	{"menu.exit", ActionExit},
}

var configItems = []menuItem{
	{"menu.config_show", ActionConfigShow},
	{"menu.config_setup", ActionConfigSetup},
	{"menu.config_reset", ActionConfigReset},
	{"menu.back", ""},
}

// menuModel holds the state for one list of choices.
type menuModel struct {
	choices []menuItem
	cursor  int
}

func (m *menuModel) move(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > len(m.choices)-1 {
		m.cursor = len(m.choices) - 1
	}
}

func (m menuModel) selected() menuItem { return m.choices[m.cursor] }

func (m menuModel) render(title string) string {
	lines := []string{titleStyle.Render(title), ""}
	for i, c := range m.choices {
		label := i18n.T(c.labelID)
		if i == m.cursor {
			lines = append(lines, selectedItemStyle.Render("▸ "+label))
		} else {
			lines = append(lines, itemStyle.Render("  "+label))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

type languageModel struct {
	choices     map[string]string
	orderedKeys []string
	cursor      int
}

func newLanguageModel() languageModel {
	choices := i18n.GetAvailableLocales()
	keys := make([]string, 0, len(choices))
	for k := range choices {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	cursor := 0
	for i, k := range keys {
		if k == i18n.GetLang() {
			cursor = i
		}
	}
	return languageModel{choices: choices, orderedKeys: keys, cursor: cursor}
}

type model struct {
	state    view
	menu     menuModel
	config   menuModel
	language languageModel
	result   Result
	version  string
	width    int
}

func newModel(version string) model {
	return model{
		menu:     menuModel{choices: mainItems},
		config:   menuModel{choices: configItems},
		language: newLanguageModel(),
		version:  version,
		width:    60,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.result = Result{Action: ActionExit}
			return m, tea.Quit
		}
		switch m.state {
		case configView:
			return m.updateConfig(msg)
		case languageView:
			return m.updateLanguage(msg)
		default:
			return m.updateMenu(msg)
		}
	}
	return m, nil
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		m.menu.move(-1)
	case key.Matches(msg, keys.Down):
		m.menu.move(1)
	case key.Matches(msg, keys.Select):
		item := m.menu.selected()
		switch item.labelID {
		case "menu.configuration":
			m.state = configView
			m.config.cursor = 0
			return m, nil
		case "menu.language":
			m.state = languageView
			m.language = newLanguageModel()
			return m, nil
		}
		m.result = Result{Action: item.action}
		return m, tea.Quit
	}
	return m, nil
}

func (m model) updateConfig(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.state = menuView
	case key.Matches(msg, keys.Up):
		m.config.move(-1)
	case key.Matches(msg, keys.Down):
		m.config.move(1)
	case key.Matches(msg, keys.Select):
		item := m.config.selected()
		if item.action == ActionNone {
			m.state = menuView
			return m, nil
		}
		m.result = Result{Action: item.action}
		return m, tea.Quit
	}
	return m, nil
}

func (m model) updateLanguage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := &m.language
	switch {
	case key.Matches(msg, keys.Back):
		m.state = menuView
	case key.Matches(msg, keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, keys.Down):
		if l.cursor < len(l.orderedKeys)-1 {
			l.cursor++
		}
	case key.Matches(msg, keys.Select):
		if len(l.orderedKeys) == 0 {
			m.state = menuView
			return m, nil
		}
		code := l.orderedKeys[l.cursor]
		i18n.SetLang(code)
		m.result = Result{Action: ActionLanguage, Lang: code}
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var body string
	switch m.state {
	case configView:
		body = m.config.render("⚙️  " + i18n.T("menu.configuration"))
	case languageView:
		lines := []string{titleStyle.Render("🌐 " + i18n.T("language.select")), ""}
		for i, code := range m.language.orderedKeys {
			label := fmt.Sprintf("%s (%s)", m.language.choices[code], code)
			if i == m.language.cursor {
				lines = append(lines, selectedItemStyle.Render("▸ "+label))
			} else {
				lines = append(lines, itemStyle.Render("  "+label))
			}
		}
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	default:
		body = m.menu.render(i18n.T("menu.title"))
	}
	width := m.width - 8
	if width < 40 {
		width = 40
	}
	pane := paneStyle.Width(width).Render(body)
	footer := footerStyle.Render(AlignFooter(keys.helpLine(), m.version, width))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, Banner(m.version), "", pane, "", footer))
}

// Run shows the menu until the user picks an action or quits.
func Run(version string) (Result, error) {
	final, err := tea.NewProgram(newModel(version)).Run()
	if err != nil {
		return Result{}, fmt.Errorf("menu: %w", err)
	}
	m, ok := final.(model)
	if !ok || m.result.Action == ActionNone {
		return Result{Action: ActionExit}, nil
	}
	return m.result, nil
}
