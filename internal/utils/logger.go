package utils

import (
	"log"
	"strings"
)

// LogEvent writes one line per domain event, keyed as module.action and
// correlated by the inbound request id. Keep messages summarized; no
// tokens, card numbers, or full addresses.
func LogEvent(requestID, module, action, message string) {
	var b strings.Builder
	b.WriteString(strings.ToLower(strings.TrimSpace(module)))
	b.WriteByte('.')
	b.WriteString(action)
	if id := strings.TrimSpace(requestID); id != "" {
		b.WriteString(" request_id=")
		b.WriteString(id)
	}
	if message != "" {
		b.WriteByte(' ')
		b.WriteString(message)
	}
	log.Print(b.String())
}
