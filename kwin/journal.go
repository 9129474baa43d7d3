package kwin

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/shibukawa/kdotool"
)

// journalTimeFormat is the local-time format journalctl expects for --since.
const journalTimeFormat = "2006-01-02 15:04:05"

// Journal recovers script output from the user systemd journal. KWin does
// not hand script output back over D-Bus; everything the script prints ends
// up in the journal of the compositor unit, tagged with a transport prefix.
type Journal struct {
	units []string
}

// NewJournal creates a Journal reading the given systemd user units.
func NewJournal(units []string) *Journal {
	return &Journal{units: units}
}

// Since returns the journal lines written at or after start, oldest first.
func (j *Journal) Since(ctx context.Context, start time.Time) ([]string, error) {
	output, err := exec.CommandContext(ctx, "journalctl", j.args(start)...).Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kdotool.ErrJournalQuery, err)
	}

	text := strings.TrimRight(string(output), "\n")
	if text == "" {
		return nil, nil
	}

	return strings.Split(text, "\n"), nil
}

// args builds the journalctl argument vector for one query.
func (j *Journal) args(start time.Time) []string {
	args := []string{
		"--since=" + start.Local().Format(journalTimeFormat),
		"--user",
	}
	for _, unit := range j.units {
		args = append(args, "--unit="+unit)
	}

	return append(args, "--output=cat")
}
