package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles_PackageDir(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "first")
	second := filepath.Join(root, "nested", "second")

	files := []GeneratedFile{
		{Dir: first, Filename: "state_gen.go", Content: []byte("package first\n")},
		{Dir: second, Filename: "state_gen.go", Content: []byte("package second\n")},
	}

	require.NoError(t, WriteFiles(files, ""))

	got, err := os.ReadFile(filepath.Join(first, "state_gen.go"))
	require.NoError(t, err)
	assert.Equal(t, "package first\n", string(got))

	got, err = os.ReadFile(filepath.Join(second, "state_gen.go"))
	require.NoError(t, err)
	assert.Equal(t, "package second\n", string(got))
}

func TestWriteFiles_OutputDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")

	files := []GeneratedFile{
		{Dir: "/ignored", Filename: "a_gen.go", Content: []byte("package a\n")},
	}

	require.NoError(t, WriteFiles(files, out))
	assert.FileExists(t, filepath.Join(out, "a_gen.go"))
	assert.NoFileExists(t, "/ignored/a_gen.go")
}

func TestWriteFiles_MissingDir(t *testing.T) {
	err := WriteFiles([]GeneratedFile{{Filename: "state_gen.go"}}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no output directory")
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeDebugUnformatted(dir, "state_gen.go", []byte("package x\nfunc {")))

	got, err := os.ReadFile(filepath.Join(dir, "state_gen.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, "//go:build ignore\n\npackage x\nfunc {", string(got))

	assert.NoError(t, writeDebugUnformatted("", "state_gen.go", nil))
}
