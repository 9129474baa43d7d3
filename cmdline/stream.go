package cmdline

import "strings"

// TokenStream is a cursor over an ordered command-line token vector with
// one-token lookahead. It is built once from the process arguments and
// consumed left to right by the parser.
type TokenStream struct {
	tokens []string
	pos    int
}

// NewTokenStream creates a TokenStream over the given tokens.
func NewTokenStream(tokens []string) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Next consumes and returns the next token. The second return value is false
// when the stream is exhausted.
func (s *TokenStream) Next() (string, bool) {
	if s.pos >= len(s.tokens) {
		return "", false
	}

	token := s.tokens[s.pos]
	s.pos++

	return token, true
}

// Peek returns the next token without consuming it.
func (s *TokenStream) Peek() (string, bool) {
	if s.pos >= len(s.tokens) {
		return "", false
	}

	return s.tokens[s.pos], true
}

// NextIsOption reports whether the next token looks like an option
// (a leading dash). An exhausted stream reports false.
func (s *TokenStream) NextIsOption() bool {
	token, ok := s.Peek()
	if !ok {
		return false
	}

	return IsOption(token)
}

// Remaining returns the number of unconsumed tokens.
func (s *TokenStream) Remaining() int {
	return len(s.tokens) - s.pos
}

// IsOption reports whether a single token looks like an option.
func IsOption(token string) bool {
	return strings.HasPrefix(token, "-")
}
