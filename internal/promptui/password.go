// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package promptui is the interactive prompt layer named in spec.md §1:
// masked password entry, yes/no confirmations, and a scrollable
// read-only recipients list. Built on the teacher's Bubble Tea stack
// (github.com/charmbracelet/bubbletea, /bubbles, /lipgloss). None of it
// holds state the vault engine depends on; the engine never imports this
// package.
package promptui

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned by [ReadPassword] when the user aborts with
// Ctrl+C or Esc, and by [Confirm] when the user aborts with Ctrl+C (Esc in
// [Confirm] is a "no" answer).
var ErrCancelled = errors.New("promptui: cancelled by user")

type passwordModel struct {
	prompt    string
	input     textinput.Model
	submitted bool
	cancelled bool
}

func newPasswordModel(prompt string) passwordModel {
	ti := textinput.New()
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 40

	return passwordModel{prompt: prompt, input: ti}
}

func (m passwordModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m passwordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m passwordModel) View() string {
	return appStyle.Render(titleStyle.Render(m.prompt) + "\n\n" + m.input.View() + "\n\n" + helpStyle.Render("enter confirm · esc cancel"))
}

// ReadPassword displays prompt and reads a masked line of input in an
// inline (not alternate-screen) Bubble Tea program. Returns [ErrCancelled] if the user
// aborts instead of submitting.
func ReadPassword(prompt string) (string, error) {
	program := tea.NewProgram(newPasswordModel(prompt))
	final, err := program.Run()
	if err != nil {
		return "", err
	}

	result, ok := final.(passwordModel)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	if result.cancelled || !result.submitted {
		return "", ErrCancelled
	}

	return result.input.Value(), nil
}
