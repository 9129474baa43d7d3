package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/shibukawa/kdotool"
	"github.com/shibukawa/kdotool/cmdline"
	"github.com/shibukawa/kdotool/intermediate"
	"github.com/shibukawa/kdotool/kwin"
	"github.com/shibukawa/kdotool/kwingen"
	"github.com/shibukawa/kdotool/parser"
	"github.com/shibukawa/kdotool/protocol"
)

const version = "kdotool v0.1.0"

// CLI represents the command-line interface. The command tokens are passed
// through untouched so selectors like %1 and search terms starting with a
// dash are never mistaken for flags.
var CLI struct {
	Config  string           `help:"Configuration file path" default:"kdotool.yaml"`
	Debug   bool             `help:"Enable debug output" short:"d"`
	DryRun  bool             `help:"Don't actually run the script. Just print it to stdout" short:"n"`
	Version kong.VersionFlag `help:"Show version information"`
	Command []string         `arg:"" optional:"" passthrough:"" help:"Window commands and selectors"`
}

// compile turns raw command tokens into the intermediate step list.
func compile(tokens []string) ([]intermediate.Step, error) {
	intents, err := parser.Parse(cmdline.NewTokenStream(tokens))
	if err != nil {
		return nil, err
	}

	return intermediate.Lower(intents), nil
}

func run(ctx context.Context) error {
	config, err := kdotool.LoadConfig(CLI.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(CLI.Command) == 0 {
		help()
		return nil
	}

	logger := kdotool.NewLogger(CLI.Debug, config.LogLevel)
	session := config.SessionVersion.Resolve()

	steps, err := compile(CLI.Command)
	if err != nil {
		return err
	}

	logger.Debug().Int("steps", len(steps)).Str("session", string(session)).Msg("compiled command sequence")

	if CLI.DryRun {
		generator := kwingen.New(
			kwingen.WithDebug(CLI.Debug),
			kwingen.WithSessionVersion(session),
		)

		return generator.Generate(os.Stdout, protocol.NewMarker(), steps)
	}

	client, err := kwin.NewScriptingClient(time.Duration(config.DBus.TimeoutSeconds) * time.Second)
	if err != nil {
		return err
	}
	defer client.Close()

	runner := kwin.NewRunner(client, kwin.NewJournal(config.Journal.Units), kwin.Options{
		Debug:           CLI.Debug,
		SessionVersion:  session,
		TransportPrefix: config.Journal.TransportPrefix,
		KeepTempFiles:   config.Script.KeepTempFiles,
		Logger:          logger,
	})

	return runner.Run(ctx, steps)
}

func help() {
	fmt.Println("Usage: kdotool [options] <command> [args...]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h, --help       Show this help")
	fmt.Println("  -d, --debug      Enable debug output")
	fmt.Println("  -n, --dry-run    Don't actually run the script. Just print it to stdout")
	fmt.Println("      --config     Configuration file path (default: kdotool.yaml)")
	fmt.Println("      --version    Show version information")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  search <term>")
	fmt.Println("  getactivewindow")
	fmt.Println("  getwindowname <window>")
	fmt.Println("  getwindowclassname <window>")
	fmt.Println("  getwindowgeometry <window>")
	fmt.Println("  getwindowpid <window>")
	fmt.Println("  windowminimize <window>")
	fmt.Println("  windowraise <window>")
	fmt.Println("  windowclose <window>")
	fmt.Println("  windowkill <window>")
	fmt.Println("  windowactivate <window>")
	fmt.Println()
	fmt.Println("Window can be specified as:")
	fmt.Println("  %1 - the first window in the stack (default)")
	fmt.Println("  %2 - the second window in the stack")
	fmt.Println("  %@ - all windows in the stack")
	fmt.Println("  <window id> - the window with the given ID")
}

func main() {
	kong.Parse(&CLI,
		kong.Name("kdotool"),
		kong.Description("Compile window commands into a KWin script and run it."),
		kong.Vars{"version": version},
	)

	err := run(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}
