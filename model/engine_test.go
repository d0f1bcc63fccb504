package model

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mod/sumdb/dirhash"
)

// writeModule creates a fake module cache entry and returns its h1 digest.
func writeModule(t *testing.T, cache, path, version string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(cache, filepath.FromSlash(path)+"@"+version)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	digest, err := dirhash.HashDir(dir, path+"@"+version, dirhash.Hash1)
	require.NoError(t, err)
	return digest
}

func fixtureEngine(t *testing.T, store *TrustStore) (*Engine, *DepTable) {
	t.Helper()
	dir := t.TempDir()
	cache := t.TempDir()

	goodDigest := writeModule(t, cache, "example.com/good", "v1.0.0", map[string]string{
		"go.mod":  "module example.com/good\n",
		"main.go": "package good\n\nfunc A() {}\n",
	})
	writeModule(t, cache, "example.com/bad", "v1.2.0", map[string]string{
		"go.mod": "module example.com/bad\n",
		"lib.go": "package bad\n",
	})

	gomod := `module example.com/app

go 1.24.0

require (
	example.com/missing v1.3.0
	example.com/good v1.0.0
	example.com/bad v1.2.0
)
`
	gosum := "example.com/good v1.0.0 " + goodDigest + "\n" +
		"example.com/good v1.0.0/go.mod h1:ignored\n" +
		"example.com/bad v1.2.0 h1:AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.sum"), []byte(gosum), 0o644))

	table := NewDepTable()
	engine, err := NewEngine(EngineConfig{Dir: dir, ModCache: cache}, table, store)
	require.NoError(t, err)
	return engine, table
}

func Test_Engine_Run(t *testing.T) {
	store := NewTrustStore(
		[]Review{{Module: "example.com/good", Version: "v1.0.0", Level: "high", Reviewer: "alice"}},
		nil,
		[]string{"alice"},
	)
	engine, table := fixtureEngine(t, store)
	assert.Equal(t, "example.com/app", engine.MainModule())

	require.NoError(t, engine.Run(context.Background()))

	snap := table.Snapshot()
	require.Equal(t, PhaseDone, snap.Status.Phase)
	require.Len(t, snap.Deps, 3)

	// Requirements are scanned in path order.
	assert.Equal(t, "example.com/bad", snap.Deps[0].Path)
	assert.Equal(t, "example.com/good", snap.Deps[1].Path)
	assert.Equal(t, "example.com/missing", snap.Deps[2].Path)

	bad := snap.Deps[0].Computed()
	require.NotNil(t, bad)
	require.NotNil(t, bad.DigestOK)
	assert.False(t, *bad.DigestOK)

	good := snap.Deps[1].Computed()
	require.NotNil(t, good)
	require.NotNil(t, good.DigestOK)
	assert.True(t, *good.DigestOK)
	require.NotNil(t, good.Loc)
	assert.Equal(t, uint64(3), *good.Loc)
	assert.Equal(t, VerificationPassed, good.Trust)
	assert.Equal(t, "v1.0.0", good.LatestTrusted)

	// Not in the cache: no digest, no line count, still evaluated.
	missing := snap.Deps[2].Computed()
	require.NotNil(t, missing)
	assert.Nil(t, missing.DigestOK)
	assert.Nil(t, missing.Loc)
	assert.Equal(t, VerificationInsufficient, missing.Trust)
}

func Test_Engine_RowsAppearDuringScan(t *testing.T) {
	engine, table := fixtureEngine(t, NewTrustStore(nil, nil, nil))

	require.Equal(t, 0, table.Len(), "no rows before Run")
	require.True(t, table.Status().BeforeRows())

	require.NoError(t, engine.Run(context.Background()))
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, Progress{Done: 3, Total: 3}, table.Status().Progress)
}

func Test_Engine_Cancelled(t *testing.T) {
	engine, table := fixtureEngine(t, NewTrustStore(nil, nil, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := engine.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, PhaseScanning, table.Status().Phase, "partial status stays in place")
}

func Test_NewEngine_NoGoMod(t *testing.T) {
	_, err := NewEngine(EngineConfig{Dir: t.TempDir()}, NewDepTable(), NewTrustStore(nil, nil, nil))
	assert.ErrorIs(t, err, ErrNoGoMod)
}

func Test_ReadGoSum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "go.sum")
	data := "example.com/a v1.0.0 h1:abc=\n" +
		"example.com/a v1.0.0/go.mod h1:def=\n" +
		"malformed line\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	sums, err := readGoSum(path)
	require.NoError(t, err)
	require.Len(t, sums, 1)

	missing, err := readGoSum(filepath.Join(dir, "absent"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}
