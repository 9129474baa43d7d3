package protocol

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Channel classifies the purpose of one script output line.
type Channel string

const (
	// ChannelStart marks the beginning of a script run.
	ChannelStart Channel = "START"
	// ChannelDebug carries tracing output, present only in debug builds.
	ChannelDebug Channel = "DEBUG"
	// ChannelError reports a recoverable in-script problem.
	ChannelError Channel = "ERROR"
	// ChannelResult carries caller-visible output, one value per line.
	ChannelResult Channel = "RESULT"
	// ChannelFinish marks the end of a script run.
	ChannelFinish Channel = "FINISH"
)

// IsValid reports whether the channel is one of the five fixed values.
func (c Channel) IsValid() bool {
	switch c {
	case ChannelStart, ChannelDebug, ChannelError, ChannelResult, ChannelFinish:
		return true
	}

	return false
}

// Marker is the process-unique tag prefixed to every script output line so
// that concurrently running invocations can be told apart in the shared log
// stream. Demultiplexing correctness rests entirely on its uniqueness.
type Marker string

// NewMarker derives a marker from a fresh UUID. Used in dry-run mode, where
// no script file exists to borrow a name from.
func NewMarker() Marker {
	return Marker("kdotool-" + uuid.NewString())
}

// MarkerFromPath derives a marker from the basename of the uniquely named
// script file, matching what the executing script prints.
func MarkerFromPath(path string) Marker {
	return Marker(filepath.Base(path))
}

// Decoder classifies log lines for one invocation by its marker.
type Decoder struct {
	marker string
}

// NewDecoder creates a Decoder for the given marker.
func NewDecoder(marker Marker) *Decoder {
	return &Decoder{marker: string(marker)}
}

// Decode splits one log line into channel and payload. The line must already
// be stripped of any transport prefix. Lines that do not begin with the exact
// marker, or whose channel tag is not one of the five fixed values, are
// reported as not ok and should be ignored by the caller.
func (d *Decoder) Decode(line string) (Channel, string, bool) {
	rest, ok := strings.CutPrefix(line, d.marker+" ")
	if !ok {
		return "", "", false
	}

	tag, payload, _ := strings.Cut(rest, " ")

	channel := Channel(tag)
	if !channel.IsValid() {
		return "", "", false
	}

	return channel, payload, true
}
