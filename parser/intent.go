package parser

import "fmt"

// IntentKind classifies a parsed command.
type IntentKind int

const (
	// IntentSearch replaces the window stack with windows matching a pattern.
	IntentSearch IntentKind = iota
	// IntentGetActiveWindow replaces the window stack with the active window.
	IntentGetActiveWindow
	// IntentAction applies a catalog verb to the windows named by a selector.
	IntentAction
)

// SelectorKind classifies how an action names its target windows.
type SelectorKind int

const (
	// SelectStackItem targets one window by its 1-based stack position.
	SelectStackItem SelectorKind = iota
	// SelectStackAll targets every window on the stack.
	SelectStackAll
	// SelectWindowID targets a window directly by its id, bypassing the stack.
	SelectWindowID
)

// Selector designates the target windows of an action verb.
type Selector struct {
	Kind     SelectorKind
	Index    int    // 1-based, SelectStackItem only
	WindowID string // SelectWindowID only
}

// DefaultSelector is used when an action verb has no selector token:
// the first window on the stack.
func DefaultSelector() Selector {
	return Selector{Kind: SelectStackItem, Index: 1}
}

func (s Selector) String() string {
	switch s.Kind {
	case SelectStackAll:
		return "%@"
	case SelectWindowID:
		return s.WindowID
	default:
		return fmt.Sprintf("%%%d", s.Index)
	}
}

// Intent is one parsed command, ready for lowering. Term is set for
// IntentSearch; Verb and Selector are set for IntentAction.
type Intent struct {
	Kind     IntentKind
	Term     string
	Verb     string
	Selector Selector
}

// IsQuery reports whether the intent replaces the window stack.
// Query intents are the ones that trigger a trailing final-output step.
func (i Intent) IsQuery() bool {
	return i.Kind == IntentSearch || i.Kind == IntentGetActiveWindow
}
