package snapshot_test

import (
	"os"
	"path/filepath"
	"testing"

	"portal/internal/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestLoad_MissingFiles(t *testing.T) {
	snap, err := snapshot.Load(t.TempDir())
	require.NoError(t, err)
	assert.False(t, snap.UsersFound)
	assert.False(t, snap.TilesFound)
	assert.Empty(t, snap.Users)
	assert.Empty(t, snap.Tiles)
}

func TestLoad_EmptyArrayCountsAsFound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, snapshot.UsersFile, `[]`)

	snap, err := snapshot.Load(dir)
	require.NoError(t, err)
	assert.True(t, snap.UsersFound)
	assert.Empty(t, snap.Users)
	assert.False(t, snap.TilesFound)
}

func TestLoad_KeepsMalformedRecordsIsolated(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, snapshot.UsersFile, `[{"username":"admin","hashed_password":"$2b$12$x"}]`)
	writeFile(t, dir, snapshot.TilesFile, `[{"title":"Dashboard","icon_url":"i","link_url":"/d"}, 42, {"title": 7}]`)

	snap, err := snapshot.Load(dir)
	require.NoError(t, err)
	assert.Len(t, snap.Users, 1)
	assert.Len(t, snap.Tiles, 3)
}

func TestLoad_NotAnArray(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, snapshot.UsersFile, `{"username":"admin"}`)
	writeFile(t, dir, snapshot.TilesFile, `[{"title":"Reports","icon_url":"i","link_url":"/r"}]`)

	snap, err := snapshot.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), snapshot.UsersFile)
	assert.True(t, snap.UsersFound)
	assert.Empty(t, snap.Users)
	assert.Len(t, snap.Tiles, 1)
}

func TestMarshal(t *testing.T) {
	raw, err := snapshot.Marshal([]snapshot.TileRecord{{Title: "Help", IconURL: "i", LinkURL: "/h"}})
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.JSONEq(t, `{"title":"Help","icon_url":"i","link_url":"/h","description":""}`, string(raw[0]))
}
