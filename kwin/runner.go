package kwin

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shibukawa/kdotool"
	"github.com/shibukawa/kdotool/intermediate"
	"github.com/shibukawa/kdotool/kwingen"
	"github.com/shibukawa/kdotool/protocol"
)

// ScriptHost loads and executes scripts inside the window manager.
type ScriptHost interface {
	LoadScript(ctx context.Context, path string) (int32, error)
	RunScript(ctx context.Context, id int32) error
	StopScript(ctx context.Context, id int32) error
}

// LogSource returns the shared log lines written since a point in time.
type LogSource interface {
	Since(ctx context.Context, start time.Time) ([]string, error)
}

// Options configures a Runner.
type Options struct {
	Debug           bool
	SessionVersion  kdotool.SessionVersion
	TransportPrefix string
	KeepTempFiles   bool
	Stdout          io.Writer
	Stderr          io.Writer
	Logger          zerolog.Logger
}

// Runner turns a compiled step list into a script run: it writes the script
// to a uniquely named temp file (whose basename becomes the marker), hands it
// to the host, then scrapes the shared log for lines bearing the marker.
// RESULT payloads go to stdout and ERROR payloads to stderr, verbatim, in
// emission order.
type Runner struct {
	host            ScriptHost
	logSource       LogSource
	generator       *kwingen.Generator
	transportPrefix string
	keepTempFiles   bool
	stdout          io.Writer
	stderr          io.Writer
	logger          zerolog.Logger
}

// NewRunner creates a Runner over the given host and log source.
func NewRunner(host ScriptHost, logSource LogSource, opts Options) *Runner {
	if opts.TransportPrefix == "" {
		opts.TransportPrefix = "js: "
	}

	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	return &Runner{
		host:      host,
		logSource: logSource,
		generator: kwingen.New(
			kwingen.WithDebug(opts.Debug),
			kwingen.WithSessionVersion(opts.SessionVersion),
		),
		transportPrefix: opts.TransportPrefix,
		keepTempFiles:   opts.KeepTempFiles,
		stdout:          opts.Stdout,
		stderr:          opts.Stderr,
		logger:          opts.Logger,
	}
}

// Run executes the steps and forwards the recovered output.
func (r *Runner) Run(ctx context.Context, steps []intermediate.Step) error {
	file, err := os.CreateTemp("", "kdotool-*.js")
	if err != nil {
		return fmt.Errorf("%w: %w", kdotool.ErrScriptWrite, err)
	}

	path := file.Name()
	if !r.keepTempFiles {
		defer os.Remove(path)
	}

	marker := protocol.MarkerFromPath(path)

	var script strings.Builder

	err = r.generator.Generate(&script, marker, steps)
	if err != nil {
		file.Close()
		return err
	}

	r.logger.Debug().Str("path", path).Str("marker", string(marker)).Msg("generated KWin script")
	r.logger.Debug().Msg("script:\n" + script.String())

	_, err = file.WriteString(script.String())
	if err != nil {
		file.Close()
		return fmt.Errorf("%w: %w", kdotool.ErrScriptWrite, err)
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("%w: %w", kdotool.ErrScriptWrite, err)
	}

	// The journal query below is bounded by this; journalctl --since has
	// one-second resolution
	start := time.Now()

	id, err := r.host.LoadScript(ctx, path)
	if err != nil {
		return err
	}

	r.logger.Debug().Int32("script_id", id).Msg("loaded script into KWin")

	err = r.host.RunScript(ctx, id)
	if err != nil {
		return err
	}

	err = r.host.StopScript(ctx, id)
	if err != nil {
		return err
	}

	lines, err := r.logSource.Since(ctx, start)
	if err != nil {
		return err
	}

	r.forward(marker, lines)

	return nil
}

// forward demultiplexes the log lines for this invocation and forwards the
// caller-visible payloads.
func (r *Runner) forward(marker protocol.Marker, lines []string) {
	decoder := protocol.NewDecoder(marker)
	sawFinish := false

	for _, line := range lines {
		stripped, ok := strings.CutPrefix(line, r.transportPrefix)
		if !ok {
			continue
		}

		channel, payload, ok := decoder.Decode(stripped)
		if !ok {
			continue
		}

		switch channel {
		case protocol.ChannelResult:
			fmt.Fprintln(r.stdout, payload)
		case protocol.ChannelError:
			fmt.Fprintln(r.stderr, payload)
		case protocol.ChannelDebug:
			r.logger.Debug().Msg(payload)
		case protocol.ChannelFinish:
			sawFinish = true
		}
	}

	if !sawFinish {
		r.logger.Warn().Str("marker", string(marker)).Msg("no FINISH line in the journal; script output may be missing or delayed")
	}
}
