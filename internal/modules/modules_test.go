package modules

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/modoverlay/mergetree"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModulesFs(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(f), 0o755))
		require.NoError(t, afero.WriteFile(fsys, f, []byte(f), 0o644))
	}
	return fsys
}

func TestList(t *testing.T) {
	t.Parallel()

	fsys := newModulesFs(t,
		"/modules/zeta/system/bin/tool",
		"/modules/alpha/system/etc/hosts",
		"/modules/disabled/system/etc/hosts",
		"/modules/disabled/disable",
		"/modules/removed/system/etc/hosts",
		"/modules/removed/remove",
		"/modules/nomount/system/etc/hosts",
		"/modules/nomount/skip_mount",
		"/modules/vendoronly/vendor/lib/x.so",
		"/modules/stray-file",
	)

	mods, err := List(fsys, "/modules", "system")
	require.NoError(t, err)
	require.Len(t, mods, 2)

	assert.Equal(t, Module{ID: "alpha", Path: "/modules/alpha", Root: "/modules/alpha/system"}, mods[0])
	assert.Equal(t, "zeta", mods[1].ID)
}

func TestListMissingDir(t *testing.T) {
	t.Parallel()

	_, err := List(afero.NewMemMapFs(), "/nowhere", "system")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nowhere")
}

func TestBuild(t *testing.T) {
	t.Parallel()

	fsys := newModulesFs(t,
		"/modules/a/system/etc/hosts",
		"/modules/a/system/app/Old/Old.apk",
		"/modules/b/system/etc/.wh.hosts",
		"/modules/b/system/app/Old/.replace",
		"/modules/b/system/fonts/Roboto.ttf",
	)

	mods, err := List(fsys, "/modules", "system")
	require.NoError(t, err)

	res, err := Build(mods, "system", []string{"fonts", "missing"},
		mergetree.WithSource(mergetree.NewAferoSource(fsys)))
	require.NoError(t, err)
	require.Len(t, res.Reports, 2)

	tree := res.Tree
	assert.Equal(t, "system", tree.Name)
	assert.Equal(t, mergetree.Whiteout, tree.Lookup("etc/hosts").FileType)
	assert.Equal(t, "/modules/a/system/etc/hosts", tree.Lookup("etc/hosts").ModulePath)
	assert.True(t, tree.Lookup("app/Old").Replace)
	assert.NotNil(t, tree.Lookup("app/Old/Old.apk"))
	assert.Nil(t, tree.Lookup("app/Old/.replace"))

	assert.Equal(t, 1, res.Excluded)
	assert.True(t, tree.Lookup("fonts").Skip)
	assert.False(t, tree.Lookup("etc").Skip)
}

func TestBuildStopsOnFailure(t *testing.T) {
	t.Parallel()

	fsys := newModulesFs(t, "/modules/a/system/.wh.")
	mods := []Module{{ID: "a", Path: "/modules/a", Root: "/modules/a/system"}}

	res, err := Build(mods, "system", nil, mergetree.WithSource(mergetree.NewAferoSource(fsys)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, mergetree.ErrInvalidWhiteout))
	assert.Contains(t, err.Error(), "module a")
	assert.Len(t, res.Reports, 1)
}
