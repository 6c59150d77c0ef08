package parse

import (
	"regexp"
	"strings"

	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/constants"
)

var (
	orderIDRe  = regexp.MustCompile(`(?i)Order\s+picking:\s*([^\n|]+)`)
	sanitizeRe = regexp.MustCompile(`[^0-9A-Za-z_\- ]+`)
)

// SanitizeID reduces raw text to a filesystem-safe identifier: characters
// outside [0-9A-Za-z_- ] are removed, the result is trimmed and spaces become
// underscores. An identifier that sanitizes to nothing becomes the fixed
// "ismeretlen" placeholder, so the result is never empty. Idempotent.
func SanitizeID(raw string) string {
	s := strings.TrimSpace(sanitizeRe.ReplaceAllString(raw, ""))
	s = strings.ReplaceAll(s, " ", "_")
	if s == "" {
		return constants.UnknownOrderID
	}
	return s
}

// ResolveOrderID extracts the order identifier from document text, falling
// back to the stem of fallbackName (usually the upload filename) when the
// "Order picking:" phrase is absent. Never returns an empty string.
func ResolveOrderID(text, fallbackName string) string {
	if m := orderIDRe.FindStringSubmatch(text); m != nil {
		return SanitizeID(m[1])
	}

	base := fallbackName
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return SanitizeID(base)
}
