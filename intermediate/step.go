package intermediate

// OpSearch and related constants define the step operation types for the
// intermediate script format.
const (
	// OpSearch replaces the window stack with windows matching a pattern.
	OpSearch = "SEARCH"
	// OpGetActiveWindow replaces the window stack with the active window.
	OpGetActiveWindow = "GET_ACTIVE_WINDOW"
	// OpActionOnWindowID applies an action to the window with a given id.
	OpActionOnWindowID = "ACTION_ON_WINDOW_ID"
	// OpActionOnStackItem applies an action to one stack element by position.
	OpActionOnStackItem = "ACTION_ON_STACK_ITEM"
	// OpActionOnStackAll applies an action to every stack element in order.
	OpActionOnStackAll = "ACTION_ON_STACK_ALL"
	// OpFinalOutput emits one RESULT line per stack element.
	OpFinalOutput = "FINAL_OUTPUT"
)

// Step represents a single unit of script logic in the intermediate format.
// Exactly one step is lowered per command intent, plus at most one trailing
// FINAL_OUTPUT step.
type Step struct {
	Op string `json:"op"`

	// Term is the case-insensitive regular expression for SEARCH.
	Term string `json:"term,omitempty"`
	// MatchAny keeps a window when any candidate field matches instead of
	// requiring all fields to match. The command grammar always compiles
	// it false; the branch stays in place for the generator.
	MatchAny bool `json:"match_any,omitempty"`

	// Verb is the action catalog verb for ACTION_ON_* steps.
	Verb string `json:"verb,omitempty"`
	// WindowID is the target window id for ACTION_ON_WINDOW_ID.
	WindowID string `json:"window_id,omitempty"`
	// Index is the 1-based stack position for ACTION_ON_STACK_ITEM.
	// Bounds are checked at script run time.
	Index int `json:"index,omitempty"`
}

// IsQuery reports whether the step replaces the window stack.
func (s Step) IsQuery() bool {
	return s.Op == OpSearch || s.Op == OpGetActiveWindow
}
