// Package classify implements the keyword routing decision for inbound
// chat messages. A message containing any of the configured domain terms
// is answered from the local docs index; everything else goes to the
// general-purpose provider.
package classify

import "strings"

// Match returns the keywords found in the message, case-insensitively.
// A nil result means the message is general-purpose. The function is
// pure and deterministic; it looks at nothing but the message text.
func Match(keywords []string, message string) []string {
	lower := strings.ToLower(message)
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}
