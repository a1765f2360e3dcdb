package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPresentationsValid(t *testing.T) {
	dir := writeSpecDir(t, map[string]string{"chain.cue": chainSpec})

	result, errs := LoadPresentations(dir, LoadModeFailFast)
	require.Empty(t, errs)
	require.NotNil(t, result)

	assert.Equal(t, 1, result.FileCount)
	assert.Len(t, result.Spec.Categories, 1)
	assert.Len(t, result.Spec.Functors, 2)
	assert.Len(t, result.Spec.Transformations, 2)
	assert.Len(t, result.Spec.Adjunctions, 1)
	assert.Contains(t, result.Spec.Categories, "Chain")
}

func TestLoadPresentationsSplitAcrossFiles(t *testing.T) {
	dir := writeSpecDir(t, map[string]string{
		"categories.cue": `
package qed

category: Chain: {
	objects: ["A", "B"]
	arrows: f: {dom: "A", cod: "B"}
	compose: {}
}
`,
		"functors.cue": `
package qed

functor: IdChain: {identity: "Chain"}
`,
	})

	result, errs := LoadPresentations(dir, LoadModeFailFast)
	require.Empty(t, errs)
	assert.Equal(t, 2, result.FileCount)
	assert.Len(t, result.Spec.Categories, 1)
	assert.Len(t, result.Spec.Functors, 1)
}

func TestLoadPresentationsDirectoryNotFound(t *testing.T) {
	result, errs := LoadPresentations("/nonexistent/path", LoadModeFailFast)
	assert.Nil(t, result)
	require.Len(t, errs, 1)

	var loadErr *LoadError
	require.ErrorAs(t, errs[0], &loadErr)
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)
}

func TestLoadPresentationsNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	result, errs := LoadPresentations(file, LoadModeFailFast)
	assert.Nil(t, result)
	require.Len(t, errs, 1)

	var loadErr *LoadError
	require.ErrorAs(t, errs[0], &loadErr)
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)
}

func TestLoadPresentationsNoCUEFiles(t *testing.T) {
	result, errs := LoadPresentations(t.TempDir(), LoadModeFailFast)
	assert.Nil(t, result)
	require.Len(t, errs, 1)

	var loadErr *LoadError
	require.ErrorAs(t, errs[0], &loadErr)
	assert.Equal(t, ErrCodeNoFiles, loadErr.Code)
}

func TestLoadPresentationsEmptyLibrary(t *testing.T) {
	dir := writeSpecDir(t, map[string]string{"empty.cue": `
package qed

unrelated: 42
`})

	result, errs := LoadPresentations(dir, LoadModeFailFast)
	require.NotNil(t, result)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "no categorical structures")
}

func TestLoadPresentationsCollectAll(t *testing.T) {
	// Two broken categories; collect-all reports both, fail-fast stops
	// at the first.
	dir := writeSpecDir(t, map[string]string{"broken.cue": `
package qed

category: First: {arrows: {}}
category: Second: {arrows: {}}
`})

	_, errs := LoadPresentations(dir, LoadModeCollectAll)
	assert.Len(t, errs, 2)

	_, errs = LoadPresentations(dir, LoadModeFailFast)
	assert.Len(t, errs, 1)
}

func TestLoadPresentationsCompileErrorHasCode(t *testing.T) {
	dir := writeSpecDir(t, map[string]string{"broken.cue": `
package qed

category: NoObjects: {arrows: {}}
`})

	_, errs := LoadPresentations(dir, LoadModeFailFast)
	require.Len(t, errs, 1)

	var loadErr *LoadError
	require.True(t, errors.As(errs[0], &loadErr))
	assert.Equal(t, ErrCodeCompile, loadErr.Code)
	assert.Contains(t, loadErr.Message, "objects")
}

func TestFindCUEFilesRecursive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.cue"), []byte("x: 1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b.cue"), []byte("y: 2"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("z"), 0o644))

	files, err := FindCUEFiles(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}
