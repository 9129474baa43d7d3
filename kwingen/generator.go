package kwingen

import (
	"errors"
	"fmt"
	"io"

	"github.com/shibukawa/kdotool"
	"github.com/shibukawa/kdotool/intermediate"
	"github.com/shibukawa/kdotool/protocol"
)

// Sentinel errors
var (
	// ErrUnknownStepOp indicates a step with an op the generator cannot render.
	ErrUnknownStepOp = errors.New("unknown step operation")
	// ErrUnknownActionVerb indicates an action step whose verb is not in the catalog.
	ErrUnknownActionVerb = errors.New("unknown action verb")
)

// Generator renders a step list into KWin script text. Rendering is a pure
// function of (steps, marker, flags): identical inputs yield byte-identical
// scripts.
type Generator struct {
	debug bool
	kde5  bool
}

// Option is a function that configures Generator
type Option func(*Generator)

// WithDebug compiles tracing output into the script. Without it the
// output_debug helper has an empty body.
func WithDebug(debug bool) Option {
	return func(g *Generator) {
		g.debug = debug
	}
}

// WithSessionVersion selects the window enumeration call of the target
// Plasma generation. SessionAuto resolves against the current desktop
// session at construction time.
func WithSessionVersion(version kdotool.SessionVersion) Option {
	return func(g *Generator) {
		g.kde5 = version.IsKDE5()
	}
}

// New creates a new Generator
func New(opts ...Option) *Generator {
	g := &Generator{
		kde5: kdotool.SessionAuto.IsKDE5(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// renderContext carries the compile-time values every fragment may reference.
type renderContext struct {
	Marker string
	Debug  bool
	KDE5   bool
}

// stepContext extends renderContext with the per-step values.
type stepContext struct {
	renderContext
	Term     string
	MatchAny bool
	Verb     string
	WindowID string
	Index    int
	Action   string
}

// Generate renders the script for the given steps and writes it to w.
// The emitted text is PROLOGUE ++ STEP* ++ EPILOGUE, with every output line
// tagged by the marker.
func (g *Generator) Generate(w io.Writer, marker protocol.Marker, steps []intermediate.Step) error {
	rctx := renderContext{
		Marker: string(marker),
		Debug:  g.debug,
		KDE5:   g.kde5,
	}

	err := scriptTemplates.ExecuteTemplate(w, "header", rctx)
	if err != nil {
		return fmt.Errorf("failed to render script header: %w", err)
	}

	for _, step := range steps {
		err = g.generateStep(w, rctx, step)
		if err != nil {
			return err
		}
	}

	err = scriptTemplates.ExecuteTemplate(w, "footer", rctx)
	if err != nil {
		return fmt.Errorf("failed to render script footer: %w", err)
	}

	return nil
}

// generateStep renders a single step.
func (g *Generator) generateStep(w io.Writer, rctx renderContext, step intermediate.Step) error {
	sctx := stepContext{
		renderContext: rctx,
		Term:          step.Term,
		MatchAny:      step.MatchAny,
		Verb:          step.Verb,
		WindowID:      step.WindowID,
		Index:         step.Index,
	}

	var name string

	switch step.Op {
	case intermediate.OpSearch:
		name = "search"
	case intermediate.OpGetActiveWindow:
		name = "getactivewindow"
	case intermediate.OpActionOnWindowID:
		name = "action_on_window_id"
	case intermediate.OpActionOnStackItem:
		name = "action_on_stack_item"
	case intermediate.OpActionOnStackAll:
		name = "action_on_stack_all"
	case intermediate.OpFinalOutput:
		name = "final_output"
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStepOp, step.Op)
	}

	if step.Verb != "" {
		action, ok := kdotool.LookupAction(step.Verb)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownActionVerb, step.Verb)
		}

		sctx.Action = action.Fragment
	}

	err := scriptTemplates.ExecuteTemplate(w, name, sctx)
	if err != nil {
		return fmt.Errorf("failed to render %s step: %w", step.Op, err)
	}

	return nil
}
