package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStorage(t *testing.T) *FileStorage {
	t.Helper()
	return NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
}

func TestFileStorage_RoundTrip(t *testing.T) {
	s := newFileStorage(t)

	val, err := s.Get(KeyToken)
	require.NoError(t, err)
	assert.Empty(t, val)

	require.NoError(t, s.Set(KeyToken, "abc"))
	val, err = s.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "abc", val)
}

func TestFileStorage_SetMany(t *testing.T) {
	s := newFileStorage(t)
	require.NoError(t, s.SetMany(map[string]string{
		KeyToken:        "abc",
		KeyRefreshToken: "def",
		KeyUserRole:     "student",
		KeyRoleInfo:     "{}",
	}))
	for _, key := range SessionKeys() {
		val, err := s.Get(key)
		require.NoError(t, err)
		assert.NotEmpty(t, val, "key %s", key)
	}
}

func TestFileStorage_Del(t *testing.T) {
	s := newFileStorage(t)
	require.NoError(t, s.SetMany(map[string]string{KeyToken: "abc", KeyUserRole: "student"}))

	require.NoError(t, s.Del(SessionKeys()...))
	for _, key := range SessionKeys() {
		val, err := s.Get(key)
		require.NoError(t, err)
		assert.Empty(t, val)
	}

	// 删除不存在的键不算错误
	require.NoError(t, s.Del("nonexistent"))
}

func TestFileStorage_MalformedFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	s := NewFileStorage(path)
	val, err := s.Get(KeyToken)
	require.NoError(t, err)
	assert.Empty(t, val)

	// 写入后恢复正常
	require.NoError(t, s.Set(KeyToken, "fresh"))
	val, err = s.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "fresh", val)
}

func TestFileStorage_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewFileStorage(path)
	require.NoError(t, s.Set(KeyToken, "secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
