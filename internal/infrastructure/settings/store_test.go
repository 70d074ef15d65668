package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_UsernameSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(dir)
	require.NoError(t, err)

	_, ok := s.LoadUsername()
	assert.False(t, ok)

	require.NoError(t, s.SaveUsername("alice"))

	reopened, err := NewStore(dir)
	require.NoError(t, err)

	name, ok := reopened.LoadUsername()
	require.True(t, ok)
	assert.Equal(t, "alice", name)
}

func TestStore_FileLayout(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveUsername("bob"))

	data, err := os.ReadFile(filepath.Join(dir, storageFile))
	require.NoError(t, err)

	var values map[string]string
	require.NoError(t, json.Unmarshal(data, &values))
	assert.Equal(t, map[string]string{UsernameKey: "bob"}, values)
}

func TestStore_CorruptFileIsIgnored(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, storageFile), []byte("{not json"), 0o644))

	s, err := NewStore(dir)
	require.NoError(t, err)

	_, ok := s.LoadUsername()
	assert.False(t, ok)

	require.NoError(t, s.SaveUsername("carol"))
	name, _ := s.LoadUsername()
	assert.Equal(t, "carol", name)
}

func TestStore_FailedWriteKeepsPreviousValue(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveUsername("dave"))

	s.path = filepath.Join(dir, "missing", "nested", storageFile)
	assert.Error(t, s.SaveUsername("eve"))

	name, _ := s.LoadUsername()
	assert.Equal(t, "dave", name)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore("")
	_, ok := m.LoadUsername()
	assert.False(t, ok)

	require.NoError(t, m.SaveUsername("frank"))
	name, ok := m.LoadUsername()
	assert.True(t, ok)
	assert.Equal(t, "frank", name)
}
