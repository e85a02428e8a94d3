package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/kilnhq/kilnd/internal"
)

// Represents the root command for the kilnd daemon.
var RootCmd struct {
	Quiet   bool       `short:"q" help:"Suppress informational output."`
	Verbose bool       `short:"v" help:"Enable verbose output."`
	Debug   bool       `short:"d" help:"Enable debug output."`
	Socket  string     `short:"s" help:"Override the default Unix socket path." placeholder:"PATH"`
	Build   BuildCmd   `cmd:"" help:"Build an image from a plan."`
	Inspect InspectCmd `cmd:"" help:"Inspect an exported image archive."`
	Start   StartCmd   `cmd:"" help:"Start the daemon."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Bakes runtime images for services.\n\nExecutes declarative build plans against containerd and exports OCI archives."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Configures the global logger based on CLI flags.
func configureLogger() {
	internal.SetQuiet(RootCmd.Quiet || internal.IsQuiet())
	internal.SetDebug(RootCmd.Debug || internal.IsDebug())
	internal.SetVerbose(RootCmd.Verbose || internal.IsVerbose())

	level := slog.LevelInfo
	if internal.IsDebug() {
		level = slog.LevelDebug
	} else if internal.IsQuiet() {
		level = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: internal.IsVerbose(),
	})
	slog.SetDefault(slog.New(handler).WithGroup(internal.Name))
}
