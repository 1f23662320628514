// Package slug derives URL-safe identifiers from display names.
//
// NetBox requires a slug alongside most named objects. The same name may be
// slugified independently by several callers, so Make must be deterministic
// and free of side effects for lookups to line up.
package slug

import "strings"

// Make converts a display name into a NetBox-compatible slug.
// It lowercases the name, collapses whitespace runs into a single hyphen,
// and strips every character outside [a-z0-9-_].
//
// Two different names can collapse to the same slug (e.g. "Box 1" and
// "Box-1"). That is a known limitation and is not guarded against.
func Make(name string) string {
	lowered := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lowered))

	pendingHyphen := false
	for _, r := range lowered {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			// Collapse runs of whitespace into one hyphen, but only
			// emit it if a valid character follows.
			if b.Len() > 0 {
				pendingHyphen = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_':
			if pendingHyphen {
				b.WriteByte('-')
				pendingHyphen = false
			}
			b.WriteRune(r)
		default:
			// Dropped entirely, matching NetBox's allowed slug charset.
		}
	}

	return b.String()
}
