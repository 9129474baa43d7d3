package kwin

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shibukawa/kdotool"
	"github.com/shibukawa/kdotool/intermediate"
	"github.com/shibukawa/kdotool/protocol"
)

// fakeHost captures the script file the runner hands over and the call order.
type fakeHost struct {
	t       *testing.T
	calls   []string
	path    string
	script  string
	marker  protocol.Marker
	loadErr error
	runErr  error
}

func (h *fakeHost) LoadScript(_ context.Context, path string) (int32, error) {
	h.calls = append(h.calls, "load")
	if h.loadErr != nil {
		return 0, h.loadErr
	}

	data, err := os.ReadFile(path)
	require.NoError(h.t, err)

	h.path = path
	h.script = string(data)
	h.marker = protocol.MarkerFromPath(path)

	return 42, nil
}

func (h *fakeHost) RunScript(_ context.Context, id int32) error {
	h.calls = append(h.calls, "run")
	assert.Equal(h.t, int32(42), id)

	return h.runErr
}

func (h *fakeHost) StopScript(_ context.Context, id int32) error {
	h.calls = append(h.calls, "stop")
	assert.Equal(h.t, int32(42), id)

	return nil
}

// journalFunc adapts a closure to the LogSource interface.
type journalFunc func(ctx context.Context, start time.Time) ([]string, error)

func (f journalFunc) Since(ctx context.Context, start time.Time) ([]string, error) {
	return f(ctx, start)
}

func TestRunnerForwardsResultsAndErrors(t *testing.T) {
	host := &fakeHost{t: t}

	journal := journalFunc(func(context.Context, time.Time) ([]string, error) {
		m := string(host.marker)

		return []string{
			"kwin_core: unrelated compositor noise",
			"js: " + m + " START",
			"js: kdotool-other.js RESULT foreign invocation",
			"js: " + m + " DEBUG STEP search firefox",
			"js: " + m + " RESULT {11d5-08}",
			"js: " + m + " ERROR Invalid window stack selection '5' (out of range)",
			"js: " + m + " RESULT {93f2-61}",
			m + " RESULT missing transport prefix",
			"js: " + m + " FINISH",
		}, nil
	})

	var stdout, stderr strings.Builder

	runner := NewRunner(host, journal, Options{
		SessionVersion: kdotool.SessionKDE6,
		Stdout:         &stdout,
		Stderr:         &stderr,
		Logger:         zerolog.Nop(),
	})

	err := runner.Run(context.Background(), []intermediate.Step{
		{Op: intermediate.OpSearch, Term: "firefox"},
		{Op: intermediate.OpFinalOutput},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"load", "run", "stop"}, host.calls)
	assert.Equal(t, "{11d5-08}\n{93f2-61}\n", stdout.String())
	assert.Equal(t, "Invalid window stack selection '5' (out of range)\n", stderr.String())
}

func TestRunnerScriptCarriesMarkerFromTempFile(t *testing.T) {
	host := &fakeHost{t: t}
	journal := journalFunc(func(context.Context, time.Time) ([]string, error) {
		return []string{"js: " + string(host.marker) + " FINISH"}, nil
	})

	runner := NewRunner(host, journal, Options{
		SessionVersion: kdotool.SessionKDE6,
		Stdout:         &strings.Builder{},
		Stderr:         &strings.Builder{},
		Logger:         zerolog.Nop(),
	})

	err := runner.Run(context.Background(), []intermediate.Step{{Op: intermediate.OpGetActiveWindow}})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(host.marker), "kdotool-"))
	assert.True(t, strings.HasSuffix(string(host.marker), ".js"))
	assert.Contains(t, host.script, `print("`+string(host.marker)+` START");`)
	assert.Contains(t, host.script, "window_stack = [workspace.activeWindow];")
}

func TestRunnerRemovesTempFile(t *testing.T) {
	host := &fakeHost{t: t}
	journal := journalFunc(func(context.Context, time.Time) ([]string, error) {
		return nil, nil
	})

	runner := NewRunner(host, journal, Options{
		SessionVersion: kdotool.SessionKDE6,
		Stdout:         &strings.Builder{},
		Stderr:         &strings.Builder{},
		Logger:         zerolog.Nop(),
	})

	err := runner.Run(context.Background(), nil)
	require.NoError(t, err)

	_, err = os.Stat(host.path)
	assert.True(t, os.IsNotExist(err))
}

func TestRunnerKeepsTempFileWhenConfigured(t *testing.T) {
	host := &fakeHost{t: t}
	journal := journalFunc(func(context.Context, time.Time) ([]string, error) {
		return nil, nil
	})

	runner := NewRunner(host, journal, Options{
		SessionVersion: kdotool.SessionKDE6,
		KeepTempFiles:  true,
		Stdout:         &strings.Builder{},
		Stderr:         &strings.Builder{},
		Logger:         zerolog.Nop(),
	})

	err := runner.Run(context.Background(), nil)
	require.NoError(t, err)

	t.Cleanup(func() { os.Remove(host.path) })

	_, err = os.Stat(host.path)
	assert.NoError(t, err)
}

func TestRunnerPropagatesHostErrors(t *testing.T) {
	loadErr := errors.New("org.kde.KWin is not running")
	host := &fakeHost{t: t, loadErr: loadErr}
	journal := journalFunc(func(context.Context, time.Time) ([]string, error) {
		t.Fatal("journal must not be queried when loading fails")
		return nil, nil
	})

	runner := NewRunner(host, journal, Options{
		SessionVersion: kdotool.SessionKDE6,
		Stdout:         &strings.Builder{},
		Stderr:         &strings.Builder{},
		Logger:         zerolog.Nop(),
	})

	err := runner.Run(context.Background(), nil)
	assert.ErrorIs(t, err, loadErr)
	assert.Equal(t, []string{"load"}, host.calls)
}

func TestRunnerPropagatesJournalErrors(t *testing.T) {
	host := &fakeHost{t: t}
	journal := journalFunc(func(context.Context, time.Time) ([]string, error) {
		return nil, kdotool.ErrJournalQuery
	})

	runner := NewRunner(host, journal, Options{
		SessionVersion: kdotool.SessionKDE6,
		Stdout:         &strings.Builder{},
		Stderr:         &strings.Builder{},
		Logger:         zerolog.Nop(),
	})

	err := runner.Run(context.Background(), nil)
	assert.ErrorIs(t, err, kdotool.ErrJournalQuery)
}

func TestRunnerHonorsConfiguredTransportPrefix(t *testing.T) {
	host := &fakeHost{t: t}
	journal := journalFunc(func(context.Context, time.Time) ([]string, error) {
		m := string(host.marker)

		return []string{
			"qml: " + m + " RESULT {7c4a-19}",
			"js: " + m + " RESULT ignored under this transport",
			"qml: " + m + " FINISH",
		}, nil
	})

	var stdout strings.Builder

	runner := NewRunner(host, journal, Options{
		SessionVersion:  kdotool.SessionKDE6,
		TransportPrefix: "qml: ",
		Stdout:          &stdout,
		Stderr:          &strings.Builder{},
		Logger:          zerolog.Nop(),
	})

	err := runner.Run(context.Background(), []intermediate.Step{{Op: intermediate.OpGetActiveWindow}})
	require.NoError(t, err)

	assert.Equal(t, "{7c4a-19}\n", stdout.String())
}
