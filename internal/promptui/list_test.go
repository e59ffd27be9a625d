// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package promptui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/envvault/envvault/internal/vault"
)

func sampleRecipientsView() vault.RecipientsView {
	return vault.RecipientsView{
		DEKVersion: 3,
		Recipients: []vault.RecipientView{
			{Fingerprint: "aaaa000000000000", Label: "alice-laptop", AddedAt: time.Now(), IsCaller: true},
			{Fingerprint: "bbbb000000000000", Label: "bob-desktop", AddedAt: time.Now()},
		},
	}
}

func TestRecipientsListModel_CursorMovesWithinBounds(t *testing.T) {
	m := newRecipientsListModel(sampleRecipientsView())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = updated.(recipientsListModel)
	require.Equal(t, 1, m.idx)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = updated.(recipientsListModel)
	require.Equal(t, 1, m.idx, "cursor must not move past the last recipient")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	m = updated.(recipientsListModel)
	require.Equal(t, 0, m.idx)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	m = updated.(recipientsListModel)
	require.Equal(t, 0, m.idx, "cursor must not move before the first recipient")
}

func TestRecipientsListModel_QuitKeysQuit(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyEnter},
		{Type: tea.KeyCtrlC},
	} {
		m := newRecipientsListModel(sampleRecipientsView())
		updated, cmd := m.Update(key)
		require.True(t, updated.(recipientsListModel).quit)
		require.NotNil(t, cmd)
	}
}

func TestRecipientsListModel_ViewMarksCaller(t *testing.T) {
	m := newRecipientsListModel(sampleRecipientsView())
	view := m.View()

	require.Contains(t, view, "aaaa000000000000")
	require.Contains(t, view, "bbbb000000000000")
	require.Contains(t, view, "(you)")
	require.Contains(t, view, "dek v3")
}

func TestRecipientsListModel_EmptyRecipients(t *testing.T) {
	m := newRecipientsListModel(vault.RecipientsView{DEKVersion: 1})
	require.Contains(t, m.View(), "no recipients")
}
