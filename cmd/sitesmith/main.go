package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitesmith/cmd/sitesmith/commands"
	serrors "git.home.luguber.info/inful/sitesmith/internal/errors"
	"git.home.luguber.info/inful/sitesmith/internal/version"
)

func main() {
	var cli commands.CLI
	kong.Parse(&cli,
		kong.Name("sitesmith"),
		kong.Description("Generate a static affiliate-content blog from a keyword list."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Run(ctx)
	stop()

	serrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
