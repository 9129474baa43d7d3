package kdotool

import "os"

// SessionVersion selects which generation of the KWin scripting API the
// generated script targets. Plasma 5 enumerates windows with
// workspace.clientList(), Plasma 6 renamed the call to workspace.windowList().
// This type is shared across all packages.
type SessionVersion string

const (
	// SessionAuto resolves the version from the desktop environment.
	SessionAuto SessionVersion = "auto"
	// SessionKDE5 targets the Plasma 5 scripting API.
	SessionKDE5 SessionVersion = "5"
	// SessionKDE6 targets the Plasma 6 scripting API.
	SessionKDE6 SessionVersion = "6"
)

// Resolve maps SessionAuto to the version advertised by the current desktop
// session. KDE sets KDE_SESSION_VERSION for every session; anything other than
// "5" (including an unset variable) resolves to the Plasma 6 API.
func (v SessionVersion) Resolve() SessionVersion {
	switch v {
	case SessionKDE5, SessionKDE6:
		return v
	default:
		if os.Getenv("KDE_SESSION_VERSION") == "5" {
			return SessionKDE5
		}

		return SessionKDE6
	}
}

// IsKDE5 reports whether the resolved version targets the Plasma 5 API.
func (v SessionVersion) IsKDE5() bool {
	return v.Resolve() == SessionKDE5
}
