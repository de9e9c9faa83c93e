package util

import "regexp"

var (
	reUserinfo = regexp.MustCompile(`(://[^/:@\s]+):[^/@\s]+@`)
	reToken    = regexp.MustCompile(`(?i)((?:api[_-]?key|secret|token|key|password)=)[^&\s#]+`)
)

// Redact masks credentials in a source location before it is logged or
// shown: URL passwords and token-like query parameters.
func Redact(s string) string {
	s = reUserinfo.ReplaceAllString(s, "$1:[redacted]@")
	s = reToken.ReplaceAllString(s, "${1}[redacted]")
	return s
}
