package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/posener/complete"
	"github.com/willabides/kongplete"

	"github.com/depvet/depvet/cmd"
)

var cli struct {
	Vet    cmd.VetCmd    `cmd:"" default:"withargs" help:"Verify module dependencies and watch the results live in the terminal."`
	Serve  cmd.ServeCmd  `cmd:"" help:"Verify module dependencies and expose the results over an HTTP API."`
	Report cmd.ReportCmd `cmd:"" help:"Verify module dependencies and print a plain-text report."`

	InstallCompletions kongplete.InstallCompletions `cmd:"" help:"Install shell completions."`
}

func main() {
	parser := kong.Must(
		&cli,
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Description("Terminal viewer for background dependency verification, for full usage see https://github.com/depvet/depvet/blob/main/README.md"),
	)
	kongplete.Complete(parser, kongplete.WithPredictor("dir", complete.PredictDirs("*")), kongplete.WithPredictor("file", complete.PredictFiles("*")))

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	ctx.FatalIfErrorf(ctx.Run())
}
