package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

var version = "dev"

type CLI struct {
	Debug   bool             `help:"enable debug logging"`
	Version kong.VersionFlag `short:"v" help:"show version"`

	Run     RunCmd     `cmd:"" help:"verify a suite against a manifest file or a live feed"`
	Regress RegressCmd `cmd:"" help:"create or replay a regression fixture"`
	Report  ReportCmd  `cmd:"" help:"inspect a saved verification report"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("nomai-verify"),
		kong.Description("Verifies declared behavioral intents against a simulator's manifest stream"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)

	logger := log.New(os.Stderr)
	logger.SetColorProfile(termenv.TrueColor)
	if cli.Debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}

	err := ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}
