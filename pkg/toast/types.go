package toast

import (
	"fmt"
	"strings"

	"github.com/vango-dev/toastkit/internal/errors"
)

// Position identifies the screen edge a stack is anchored to.
type Position string

const (
	Top    Position = "top"
	Bottom Position = "bottom"
)

// Positions lists every valid position.
var Positions = []Position{Top, Bottom}

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	return p == Top || p == Bottom
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return string(p)
}

// ErrInvalidPosition is returned by ParsePosition for unknown positions.
// Use errors.Is to test for it.
var ErrInvalidPosition = errors.New("E101")

// ParsePosition parses "top" or "bottom" (case-insensitive).
func ParsePosition(s string) (Position, error) {
	p := Position(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", errors.New("E101").WithDetail(fmt.Sprintf("unknown position %q", s))
	}
	return p, nil
}

// Severity selects the icon and accent color of a toast.
// Unknown severities are allowed and render like SeverityInfo.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ParseSeverity normalizes s. It never fails: unrecognized values are kept
// and fall back to the info presentation when rendered.
func ParseSeverity(s string) Severity {
	return Severity(strings.ToLower(strings.TrimSpace(s)))
}

// Known reports whether s has its own entry in the default presentation.
func (s Severity) Known() bool {
	switch s {
	case SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// Phase is a toast's lifecycle state. Phases only ever move forward.
type Phase int32

const (
	PhaseCreated  Phase = iota // Mounted inert, entrance not committed yet
	PhaseEntering              // Entrance animation running
	PhaseVisible               // Fully shown
	PhaseLeaving               // Exit animation running
	PhaseDisposed              // Unmounted and removed (terminal)
)

// String returns the string representation of the Phase.
func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseEntering:
		return "entering"
	case PhaseVisible:
		return "visible"
	case PhaseLeaving:
		return "leaving"
	case PhaseDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}
