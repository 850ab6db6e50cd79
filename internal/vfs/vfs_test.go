package vfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolver_ResolveQuoted(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.shader")
	require.NoError(t, os.WriteFile(entry, []byte(""), 0o644))
	included := filepath.Join(dir, "common.shader")
	require.NoError(t, os.WriteFile(included, []byte(""), 0o644))

	r := NewResolver(nil)
	got, err := r.Resolve(entry, "common.shader", true)
	require.NoError(t, err)
	require.Equal(t, filepath.Clean(included), got)
}

func TestResolver_ResolveMissingFile(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.shader")

	r := NewResolver(nil)
	_, err := r.Resolve(entry, "nope.shader", true)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestResolver_IncludeDirSearchedBeforeEnv(t *testing.T) {
	incDir := t.TempDir()
	inc := filepath.Join(incDir, "types.shader")
	require.NoError(t, os.WriteFile(inc, []byte(""), 0o644))

	entryDir := t.TempDir()
	entry := filepath.Join(entryDir, "main.shader")
	require.NoError(t, os.WriteFile(entry, []byte(""), 0o644))

	envDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(envDir, "types.shader"), []byte(""), 0o644))
	t.Setenv(defaultPathEnvVar, envDir)

	r := NewResolver([]string{incDir})
	got, err := r.Resolve(entry, "types.shader", true)
	require.NoError(t, err)
	require.Equal(t, filepath.Clean(inc), got)
}

func TestResolver_AngledFallsBackToRecursiveGlob(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "vendor", "lighting")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	target := filepath.Join(nested, "phong.shader")
	require.NoError(t, os.WriteFile(target, []byte(""), 0o644))

	entry := filepath.Join(root, "main.shader")
	require.NoError(t, os.WriteFile(entry, []byte(""), 0o644))

	r := NewResolver(nil)
	got, err := r.Resolve(entry, "phong.shader", false)
	require.NoError(t, err)
	require.Equal(t, filepath.Clean(target), got)
}

func TestResolver_QuotedDoesNotUseRecursiveGlob(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "vendor")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "deep.shader"), []byte(""), 0o644))

	entry := filepath.Join(root, "main.shader")
	require.NoError(t, os.WriteFile(entry, []byte(""), 0o644))

	r := NewResolver(nil)
	_, err := r.Resolve(entry, "deep.shader", true)
	require.Error(t, err)
}

func TestResolver_MarkSeenDedupes(t *testing.T) {
	r := NewResolver(nil)
	require.False(t, r.MarkSeen("/a/b.shader"))
	require.True(t, r.MarkSeen("/a/b.shader"))
	require.True(t, r.MarkSeen("/a/./b.shader"))
}

func TestResolver_Seen(t *testing.T) {
	r := NewResolver(nil)
	require.False(t, r.Seen("/a/b.shader"))
	r.MarkSeen("/a/b.shader")
	require.True(t, r.Seen("/a/b.shader"))
}
