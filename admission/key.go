package admission

import (
	"regexp"
	"strings"
	"time"
)

const (
	// timestampLayout keeps nanosecond precision at fixed width so keys from
	// concurrent uploads for the same session still differ.
	timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

	maxSafeEmailLen = 60
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

var timestampSanitizer = strings.NewReplacer(":", "-", ".", "-")

// BuildStorageKey derives the deterministic, collision-resistant object key
// for a stored resume: sanitized UTC timestamp, sanitized email (truncated to
// 60 characters), and the unique session id.
func BuildStorageKey(email, sessionID string, now time.Time) string {
	ts := timestampSanitizer.Replace(now.UTC().Format(timestampLayout))

	safeEmail := nonAlphanumeric.ReplaceAllString(email, "_")
	if len(safeEmail) > maxSafeEmailLen {
		safeEmail = safeEmail[:maxSafeEmailLen]
	}

	return ts + "__" + safeEmail + "__" + sessionID + ".pdf"
}
