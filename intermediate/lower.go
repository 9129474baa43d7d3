package intermediate

import "github.com/shibukawa/kdotool/parser"

// Lower generates steps from parsed intents. Steps come out in intent order,
// one per intent; when the final intent is a query a FINAL_OUTPUT step is
// appended so the resulting window stack is reported back to the caller.
func Lower(intents []parser.Intent) []Step {
	steps := make([]Step, 0, len(intents)+1)

	lastIsQuery := false

	for _, intent := range intents {
		switch intent.Kind {
		case parser.IntentSearch:
			steps = append(steps, Step{
				Op:       OpSearch,
				Term:     intent.Term,
				MatchAny: false,
			})
			lastIsQuery = true

		case parser.IntentGetActiveWindow:
			steps = append(steps, Step{Op: OpGetActiveWindow})
			lastIsQuery = true

		case parser.IntentAction:
			steps = append(steps, lowerAction(intent))
			lastIsQuery = false
		}
	}

	if lastIsQuery {
		steps = append(steps, Step{Op: OpFinalOutput})
	}

	return steps
}

// lowerAction maps an action intent to the step variant its selector calls for.
func lowerAction(intent parser.Intent) Step {
	switch intent.Selector.Kind {
	case parser.SelectStackAll:
		return Step{
			Op:   OpActionOnStackAll,
			Verb: intent.Verb,
		}
	case parser.SelectWindowID:
		return Step{
			Op:       OpActionOnWindowID,
			Verb:     intent.Verb,
			WindowID: intent.Selector.WindowID,
		}
	default:
		return Step{
			Op:    OpActionOnStackItem,
			Verb:  intent.Verb,
			Index: intent.Selector.Index,
		}
	}
}
