package kdotool

// ActionKind distinguishes query actions, which write RESULT lines, from
// mutation actions, which only have a side effect on the selected window.
type ActionKind int

const (
	// ActionQuery emits one or more RESULT lines and mutates nothing.
	ActionQuery ActionKind = iota
	// ActionMutation performs exactly one side effect and emits nothing.
	ActionMutation
)

// Action is one entry of the fixed verb catalog: the script fragment applied
// to the selected window (bound to the variable `w`) plus its kind.
type Action struct {
	Kind     ActionKind
	Fragment string
}

// Actions is the static verb → fragment table. The parser consults it to
// validate verbs, the generator to splice fragments into step templates.
// Lookup is exact-match; there is no dynamic registration.
var Actions = map[string]Action{
	"getwindowname":      {ActionQuery, "output_result(w.caption);"},
	"getwindowclassname": {ActionQuery, "output_result(w.resourceClass);"},
	"getwindowgeometry":  {ActionQuery, "output_result(`Window ${w.internalId}`); output_result(`  Position: ${w.x},${w.y}`); output_result(`  Geometry: ${w.width}x${w.height}`);"},
	"getwindowpid":       {ActionQuery, "output_result(w.pid);"},
	"windowminimize":     {ActionMutation, "w.minimized = true;"},
	"windowraise":        {ActionMutation, "workspace.raiseWindow(w);"},
	"windowclose":        {ActionMutation, "w.closeWindow();"},
	"windowkill":         {ActionMutation, "w.killWindow();"},
	"windowactivate":     {ActionMutation, "workspace.setActiveWindow(w);"},
}

// LookupAction returns the catalog entry for a verb.
func LookupAction(verb string) (Action, bool) {
	action, ok := Actions[verb]
	return action, ok
}

// IsActionVerb reports whether verb is part of the fixed action catalog.
func IsActionVerb(verb string) bool {
	_, ok := Actions[verb]
	return ok
}

// ActionVerbs returns the catalog verbs in unspecified order.
func ActionVerbs() []string {
	verbs := make([]string, 0, len(Actions))
	for verb := range Actions {
		verbs = append(verbs, verb)
	}

	return verbs
}
