package portrange

import (
	"strconv"
	"strings"
)

// Port range bands
const (
	WellKnown  = "Well-known (0-1023)"
	Registered = "Registered (1024-49151)"
	Dynamic    = "Dynamic (49152-65535)"
	Unknown    = "Unknown"
)

// Bands lists every band in display order.
var Bands = []string{WellKnown, Registered, Dynamic, Unknown}

// Classify maps a "<id>/<protocol>" string to its port range band.
func Classify(port string) string {
	n, ok := Number(port)
	if !ok {
		return Unknown
	}
	switch {
	case n < 1024:
		return WellKnown
	case n < 49152:
		return Registered
	default:
		return Dynamic
	}
}

// Number parses the numeric id in front of the "/" separator.
func Number(port string) (int, bool) {
	id, _, found := strings.Cut(port, "/")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(id)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Protocol returns the part after the "/" separator, or "" without one.
func Protocol(port string) string {
	_, proto, _ := strings.Cut(port, "/")
	return proto
}
