package textpatch

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchFileWritesResult(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "src/page.tsx", []byte("a\n<div class=\"box\">x</div>\nb\n"), 0600))

	result, err := PatchFile(fs, "src/page.tsx", boxDirective(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "src/page.tsx", result.Path)

	content, err := afero.ReadFile(fs, "src/page.tsx")
	require.NoError(t, err)
	assert.Equal(t, "a\n<section>\n  new $1\n</section>\nb\n", string(content))

	info, err := fs.Stat("src/page.tsx")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestPatchFileNoMatchLeavesFileUntouched(t *testing.T) {
	fs := afero.NewMemMapFs()
	original := []byte("line one\r\nline two\r\n")
	require.NoError(t, afero.WriteFile(fs, "page.tsx", original, 0644))

	_, err := PatchFile(fs, "page.tsx", boxDirective(), Options{})
	require.Error(t, err)
	assert.True(t, IsNoMatch(err))
	assert.Contains(t, err.Error(), "page.tsx")

	content, err := afero.ReadFile(fs, "page.tsx")
	require.NoError(t, err)
	assert.Equal(t, original, content)
}

func TestPatchFileAmbiguousLeavesFileUntouched(t *testing.T) {
	fs := afero.NewMemMapFs()
	original := []byte("<div class=\"box\">a</div><div class=\"box\">b</div>")
	require.NoError(t, afero.WriteFile(fs, "page.tsx", original, 0644))

	d := boxDirective()
	d.FirstMatchOnly = false
	_, err := PatchFile(fs, "page.tsx", d, Options{})
	require.Error(t, err)
	assert.True(t, IsAmbiguous(err))

	content, err := afero.ReadFile(fs, "page.tsx")
	require.NoError(t, err)
	assert.Equal(t, original, content)
}

func TestPatchFileDryRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	original := []byte("<div class=\"box\">x</div>\n")
	require.NoError(t, afero.WriteFile(fs, "page.tsx", original, 0644))

	result, err := PatchFile(fs, "page.tsx", boxDirective(), Options{DryRun: true})
	require.NoError(t, err)
	assert.True(t, result.Changed())

	content, err := afero.ReadFile(fs, "page.tsx")
	require.NoError(t, err)
	assert.Equal(t, original, content)
}

func TestPatchFileMissing(t *testing.T) {
	_, err := PatchFile(afero.NewMemMapFs(), "missing.js", boxDirective(), Options{})
	require.Error(t, err)
	assert.False(t, IsNoMatch(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPatchFileAlreadyAppliedDoesNotWrite(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "page.tsx", []byte("<section>done</section>\n"), 0644))
	// 只读文件系统上写入会失败，已打补丁时不应发生写入
	fs := afero.NewReadOnlyFs(base)

	d := boxDirective()
	d.AppliedMarker = "<section>"
	result, err := PatchFile(fs, "page.tsx", d, Options{})
	require.NoError(t, err)
	assert.True(t, result.AlreadyApplied)
}
