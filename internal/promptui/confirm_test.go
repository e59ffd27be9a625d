// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package promptui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestConfirmModel_YesKeyConfirms(t *testing.T) {
	m := newConfirmModel("delete vault")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	result := updated.(confirmModel)

	require.True(t, result.answered)
	require.True(t, result.confirmed)
	require.NotNil(t, cmd)
}

func TestConfirmModel_NoKeyDeclines(t *testing.T) {
	m := newConfirmModel("delete vault")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	result := updated.(confirmModel)

	require.True(t, result.answered)
	require.False(t, result.confirmed)
}

func TestConfirmModel_EscDeclines(t *testing.T) {
	m := newConfirmModel("delete vault")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	result := updated.(confirmModel)

	require.True(t, result.answered)
	require.False(t, result.confirmed)
}

func TestConfirmModel_CtrlCCancels(t *testing.T) {
	m := newConfirmModel("delete vault")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	result := updated.(confirmModel)

	require.False(t, result.answered)
}

func TestConfirmModel_OtherKeysIgnored(t *testing.T) {
	m := newConfirmModel("delete vault")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	result := updated.(confirmModel)

	require.False(t, result.answered)
	require.Nil(t, cmd)
}

func TestConfirmModel_ViewContainsMessage(t *testing.T) {
	m := newConfirmModel("revoke recipient abcd")
	require.Contains(t, m.View(), "revoke recipient abcd")
}
