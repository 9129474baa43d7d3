package kdotool

import "errors"

// Common errors used throughout the kdotool package
var (
	// ErrUnknownCommand is returned when a token in verb position is not a known command.
	// Parser errors
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMissingSearchTerm indicates the search command had no term to search for.
	ErrMissingSearchTerm = errors.New("missing search term")
	// ErrUnexpectedOption indicates an option-like token was found where a command was expected.
	ErrUnexpectedOption = errors.New("unexpected option")
	// ErrInvalidStackIndex indicates a %-prefixed selector that is neither %@ nor an integer.
	ErrInvalidStackIndex = errors.New("invalid stack index")

	// ErrScriptWrite indicates the generated script could not be written to its temp file.
	// Execution host errors
	ErrScriptWrite = errors.New("failed to write script file")
	// ErrScriptLoad indicates KWin rejected the loadScript call.
	ErrScriptLoad = errors.New("failed to load script into KWin")
	// ErrScriptRun indicates KWin failed to run or stop a loaded script.
	ErrScriptRun = errors.New("failed to run script")
	// ErrJournalQuery indicates the systemd journal could not be read back.
	ErrJournalQuery = errors.New("failed to query systemd journal")
)
