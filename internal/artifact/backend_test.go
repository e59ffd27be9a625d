// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/envvault/envvault/models"
)

func TestIsValidName(t *testing.T) {
	valid := []string{"a", "my-project", "my.project_1", "A1"}
	for _, name := range valid {
		require.NoErrorf(t, IsValidName(name), "expected %q to be valid", name)
	}

	invalid := []string{".", "..", "foo/bar", "foo\\bar", "../x", ".hidden", "foo..bar"}
	for _, name := range invalid {
		require.Errorf(t, IsValidName(name), "expected %q to be rejected", name)
	}

	require.Error(t, IsValidName(""))

	tooLong := make([]rune, 150)
	for i := range tooLong {
		tooLong[i] = 'a'
	}
	require.Error(t, IsValidName(string(tooLong)))
}

func TestOpenCentral_RejectsInvalidName(t *testing.T) {
	_, err := OpenCentral(t.TempDir(), "../escape")
	require.Error(t, err)
}

func TestOpenCentral_ResolvesUnderReposRoot(t *testing.T) {
	root := t.TempDir()
	b, err := OpenCentral(root, "myproject")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "repos", "myproject"), b.Root())
	require.Equal(t, "myproject", b.Name())
}

func TestOpenLocal_NameIsWorkDirBasename(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-app")
	require.NoError(t, os.MkdirAll(dir, 0700))

	b := OpenLocal(dir)
	require.Equal(t, "my-app", b.Name())
	require.Equal(t, filepath.Join(dir, ".env-vault"), b.Root())
}

func TestBackend_ExistsFalseBeforeWrite(t *testing.T) {
	b, err := OpenCentral(t.TempDir(), "fresh")
	require.NoError(t, err)
	require.False(t, b.Exists())
}

func TestBackend_WriteBothThenLoad(t *testing.T) {
	b, err := OpenCentral(t.TempDir(), "project")
	require.NoError(t, err)

	doc := models.NewRecipientsDocument()
	doc.Recipients["abcd000000000000"] = models.Recipient{Label: "owner"}

	require.NoError(t, b.WriteBoth([]byte("ciphertext-bytes"), doc))
	require.True(t, b.Exists())

	payload, err := b.LoadPayload()
	require.NoError(t, err)
	require.Equal(t, []byte("ciphertext-bytes"), payload)

	loaded, err := b.LoadRecipients()
	require.NoError(t, err)
	require.Equal(t, doc.DEKVersion, loaded.DEKVersion)
	require.Contains(t, loaded.Recipients, "abcd000000000000")
}

func TestBackend_WriteBothSetsFileModes(t *testing.T) {
	root := t.TempDir()
	b, err := OpenCentral(root, "project")
	require.NoError(t, err)

	require.NoError(t, b.WriteBoth([]byte("x"), models.NewRecipientsDocument()))

	for _, name := range []string{payloadFileName, recipientsFileName} {
		info, err := os.Stat(filepath.Join(b.Root(), name))
		require.NoError(t, err)
		require.Equal(t, os.FileMode(fileMode), info.Mode().Perm())
	}

	rootInfo, err := os.Stat(b.Root())
	require.NoError(t, err)
	require.Equal(t, os.FileMode(dirMode), rootInfo.Mode().Perm())
}

func TestBackend_WriteBothLeavesNoStagingArtifacts(t *testing.T) {
	b, err := OpenCentral(t.TempDir(), "project")
	require.NoError(t, err)

	require.NoError(t, b.WriteBoth([]byte("x"), models.NewRecipientsDocument()))

	entries, err := os.ReadDir(b.Root())
	require.NoError(t, err)
	for _, e := range entries {
		require.NotEqual(t, stagingDirName, e.Name())
	}
}

func TestBackend_LoadMetaDefaultsEmpty(t *testing.T) {
	b, err := OpenCentral(t.TempDir(), "project")
	require.NoError(t, err)

	meta, err := b.LoadMeta()
	require.NoError(t, err)
	require.Empty(t, meta)
}

func TestBackend_SaveMetaThenLoad(t *testing.T) {
	b, err := OpenCentral(t.TempDir(), "project")
	require.NoError(t, err)

	require.NoError(t, b.SaveMeta(models.VaultMetadata{"description": "staging creds"}))

	meta, err := b.LoadMeta()
	require.NoError(t, err)
	require.Equal(t, "staging creds", meta["description"])
}

func TestListCentral_OnlyListsVaultsWithPayload(t *testing.T) {
	root := t.TempDir()

	withPayload, err := OpenCentral(root, "has-payload")
	require.NoError(t, err)
	require.NoError(t, withPayload.WriteBoth([]byte("x"), models.NewRecipientsDocument()))

	require.NoError(t, os.MkdirAll(filepath.Join(root, "repos", "empty-dir"), 0700))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "repos", ".hidden"), 0700))

	names, err := ListCentral(root)
	require.NoError(t, err)
	require.Equal(t, []string{"has-payload"}, names)
}

func TestListCentral_MissingReposRootIsEmptyNotError(t *testing.T) {
	names, err := ListCentral(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, names)
}
