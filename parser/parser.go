package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shibukawa/kdotool"
	"github.com/shibukawa/kdotool/cmdline"
)

// Parse consumes the whole token stream and returns the ordered command
// intents. Any malformed token aborts the whole compilation: the returned
// error names the offending token and no intents are handed on.
func Parse(stream *cmdline.TokenStream) ([]Intent, error) {
	var intents []Intent

	for {
		token, ok := stream.Next()
		if !ok {
			return intents, nil
		}

		if cmdline.IsOption(token) {
			return nil, fmt.Errorf("%w: %s", kdotool.ErrUnexpectedOption, token)
		}

		intent, err := parseCommand(token, stream)
		if err != nil {
			return nil, err
		}

		intents = append(intents, intent)
	}
}

// parseCommand parses one command starting at the verb token.
func parseCommand(verb string, stream *cmdline.TokenStream) (Intent, error) {
	switch {
	case verb == "search":
		term, ok := stream.Next()
		if !ok || cmdline.IsOption(term) {
			return Intent{}, fmt.Errorf("%w after %q", kdotool.ErrMissingSearchTerm, verb)
		}

		return Intent{Kind: IntentSearch, Term: term}, nil

	case verb == "getactivewindow":
		return Intent{Kind: IntentGetActiveWindow}, nil

	case kdotool.IsActionVerb(verb):
		selector, err := parseSelector(stream)
		if err != nil {
			return Intent{}, err
		}

		return Intent{Kind: IntentAction, Verb: verb, Selector: selector}, nil

	default:
		return Intent{}, fmt.Errorf("%w: %s", kdotool.ErrUnknownCommand, verb)
	}
}

// parseSelector consumes the optional selector token for an action verb.
// Leading option-like tokens are reserved for per-action options and
// skipped. No token at all selects the top of the stack.
func parseSelector(stream *cmdline.TokenStream) (Selector, error) {
	for stream.NextIsOption() {
		stream.Next()
	}

	token, ok := stream.Next()
	if !ok {
		return DefaultSelector(), nil
	}

	if token == "%@" {
		return Selector{Kind: SelectStackAll}, nil
	}

	if strings.HasPrefix(token, "%") {
		index, err := strconv.Atoi(token[1:])
		if err != nil {
			return Selector{}, fmt.Errorf("%w: %s", kdotool.ErrInvalidStackIndex, token)
		}

		// Bounds are checked at script run time, not here: the stack size
		// is only known once the script executes.
		return Selector{Kind: SelectStackItem, Index: index}, nil
	}

	return Selector{Kind: SelectWindowID, WindowID: token}, nil
}
