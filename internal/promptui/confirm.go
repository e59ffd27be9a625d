// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package promptui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type confirmModel struct {
	message   string
	confirmed bool
	answered  bool
}

func newConfirmModel(message string) confirmModel {
	return confirmModel{message: message}
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.confirmed, m.answered = true, true
		return m, tea.Quit
	case "n", "N", "esc":
		m.confirmed, m.answered = false, true
		return m, tea.Quit
	case "ctrl+c":
		m.answered = false
		return m, tea.Quit
	}

	return m, nil
}

func (m confirmModel) View() string {
	content := m.message + "?\n\n"
	content += "y yes    n no"
	return overlayBoxStyle.Render(content)
}

// Confirm displays message as a y/n overlay and blocks until the user
// answers. Returns [ErrCancelled] on Ctrl+C.
func Confirm(message string) (bool, error) {
	program := tea.NewProgram(newConfirmModel(message))
	final, err := program.Run()
	if err != nil {
		return false, err
	}

	result, ok := final.(confirmModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	if !result.answered {
		return false, ErrCancelled
	}

	return result.confirmed, nil
}
