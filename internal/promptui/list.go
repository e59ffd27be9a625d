// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package promptui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/envvault/envvault/internal/vault"
)

type recipientsListModel struct {
	view vault.RecipientsView
	idx  int
	quit bool
}

func newRecipientsListModel(view vault.RecipientsView) recipientsListModel {
	return recipientsListModel{view: view}
}

func (m recipientsListModel) Init() tea.Cmd { return nil }

func (m recipientsListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.view.Recipients)-1 {
			m.idx++
		}
	case "q", "esc", "ctrl+c", "enter":
		m.quit = true
		return m, tea.Quit
	}

	return m, nil
}

func (m recipientsListModel) View() string {
	header := titleStyle.Render(fmt.Sprintf("recipients (dek v%d)", m.view.DEKVersion))
	out := header + "\n\n"

	if len(m.view.Recipients) == 0 {
		out += "no recipients\n"
	} else {
		for i, r := range m.view.Recipients {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			label := r.Fingerprint + "  " + r.Label
			if r.IsCaller {
				label = callerStyle.Render(label + "  (you)")
			}
			out += fmt.Sprintf("%s%s\n", cursor, label)
		}
	}

	out += "\n" + helpStyle.Render("↑/k ↓/j move · q/enter close")
	return out
}

// ShowRecipients renders view as a scrollable, read-only list and blocks
// until the user dismisses it. It never mutates the vault; the model holds
// only a cursor position.
func ShowRecipients(view vault.RecipientsView) error {
	program := tea.NewProgram(newRecipientsListModel(view))
	_, err := program.Run()
	return err
}
