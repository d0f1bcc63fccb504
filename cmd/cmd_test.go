package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, cli interface{}, args ...string) *kong.Context {
	t.Helper()
	parser, err := kong.New(cli)
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return ctx
}

func Test_VetCmd_Defaults(t *testing.T) {
	var cli struct {
		Vet VetCmd `cmd:""`
	}
	parse(t, &cli, "vet")
	assert.Equal(t, ".", cli.Vet.Dir)
	assert.Equal(t, 250*time.Millisecond, cli.Vet.Interval)
	assert.Empty(t, cli.Vet.Trust)
}

func Test_VetCmd_Flags(t *testing.T) {
	dir := t.TempDir()
	var cli struct {
		Vet VetCmd `cmd:""`
	}
	parse(t, &cli, "vet", "--dir", dir, "--trust", "store.yaml", "--interval", "1s")
	assert.Equal(t, dir, cli.Vet.Dir)
	assert.Equal(t, "store.yaml", cli.Vet.Trust)
	assert.Equal(t, time.Second, cli.Vet.Interval)
}

func Test_ServeCmd_Defaults(t *testing.T) {
	var cli struct {
		Serve ServeCmd `cmd:""`
	}
	parse(t, &cli, "serve")
	assert.Equal(t, ":8080", cli.Serve.Addr)
}

func Test_TargetFlags_TrustPath(t *testing.T) {
	flags := targetFlags{Trust: "/tmp/custom.yaml"}
	assert.Equal(t, "/tmp/custom.yaml", flags.trustPath())

	flags = targetFlags{}
	path := flags.trustPath()
	assert.Equal(t, "trust.yaml", filepath.Base(path))
}

func Test_VetCmd_Run_NoGoMod(t *testing.T) {
	dir := t.TempDir()
	cmd := VetCmd{targetFlags: targetFlags{Dir: dir, Trust: filepath.Join(dir, "absent.yaml")}}
	err := cmd.Run()
	assert.Error(t, err, "a directory without go.mod cannot be verified")
}

func Test_ReportCmd_Run(t *testing.T) {
	dir := t.TempDir()
	gomod := "module example.com/empty\n\ngo 1.24.0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o644))

	// No requirements: the run completes immediately with nothing flagged.
	cmd := ReportCmd{targetFlags: targetFlags{Dir: dir, Trust: filepath.Join(dir, "absent.yaml")}}
	assert.NoError(t, cmd.Run())
}
