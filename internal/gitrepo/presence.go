package gitrepo

// Presence is the outcome of an existence probe.
type Presence int

// Probe outcomes. PresenceUnknown always accompanies a non-nil error.
const (
	PresenceUnknown Presence = iota
	PresencePresent
	PresenceAbsent
)

var presenceLabels = map[Presence]string{
	PresenceUnknown: "unknown",
	PresencePresent: "present",
	PresenceAbsent:  "absent",
}

// String returns a lower-case label for logs.
func (presence Presence) String() string {
	if label, known := presenceLabels[presence]; known {
		return label
	}
	return presenceLabels[PresenceUnknown]
}
