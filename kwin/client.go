package kwin

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/shibukawa/kdotool"
)

const (
	kwinService        = "org.kde.KWin"
	scriptingPath      = "/Scripting"
	scriptingInterface = "org.kde.kwin.Scripting"
	scriptInterface    = "org.kde.kwin.Script"
)

// DefaultTimeout bounds each D-Bus call when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// ScriptingClient drives the KWin scripting interface over the D-Bus
// session bus: loadScript on /Scripting, run and stop on the per-script
// object KWin creates for it.
type ScriptingClient struct {
	conn    *dbus.Conn
	timeout time.Duration
}

// NewScriptingClient connects to the session bus. A non-positive timeout
// selects DefaultTimeout.
func NewScriptingClient(timeout time.Duration) (*ScriptingClient, error) {
	conn, err := dbus.SessionBusPrivate()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	if err := conn.Auth(nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to authenticate on session bus: %w", err)
	}

	if err := conn.Hello(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to register on session bus: %w", err)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &ScriptingClient{conn: conn, timeout: timeout}, nil
}

// Close releases the bus connection.
func (c *ScriptingClient) Close() error {
	return c.conn.Close()
}

// LoadScript loads the script file at path into KWin and returns the
// script id KWin assigned to it.
func (c *ScriptingClient) LoadScript(ctx context.Context, path string) (int32, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	obj := c.conn.Object(kwinService, scriptingPath)

	var id int32

	err := obj.CallWithContext(ctx, scriptingInterface+".loadScript", 0, path).Store(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", kdotool.ErrScriptLoad, err)
	}

	return id, nil
}

// RunScript starts the loaded script.
func (c *ScriptingClient) RunScript(ctx context.Context, id int32) error {
	return c.callScript(ctx, id, "run")
}

// StopScript stops and unloads the script.
func (c *ScriptingClient) StopScript(ctx context.Context, id int32) error {
	return c.callScript(ctx, id, "stop")
}

func (c *ScriptingClient) callScript(ctx context.Context, id int32, method string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	obj := c.conn.Object(kwinService, dbus.ObjectPath(fmt.Sprintf("/Scripting/Script%d", id)))

	call := obj.CallWithContext(ctx, scriptInterface+"."+method, 0)
	if call.Err != nil {
		return fmt.Errorf("%w: %s: %w", kdotool.ErrScriptRun, method, call.Err)
	}

	return nil
}

func (c *ScriptingClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}
