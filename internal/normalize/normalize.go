// Package normalize applies URI and MIME normalization before
// string-match leaves compare an intent's scheme/host/data fields.
// Case sensitivity follows each attribute's own semantics: MIME types
// are lowercased, scheme and host are normalized per URI rules, paths
// are left alone.
package normalize

import "strings"

// Scheme lowercases a URI scheme (RFC 3986 §3.1: scheme is
// case-insensitive, canonically lowercase).
func Scheme(scheme string) string {
	return strings.ToLower(scheme)
}

// Host lowercases a URI host/authority (RFC 3986 §3.2.2) and strips a
// single trailing dot, the root-label separator some callers include.
func Host(host string) string {
	host = strings.ToLower(host)
	return strings.TrimSuffix(host, ".")
}

// MimeType lowercases a MIME type. Android (and every major platform)
// treats MIME types as case-insensitive and stores them lowercased.
func MimeType(mime string) string {
	return strings.ToLower(mime)
}

// Path leaves the path as-is: URI paths are case-sensitive per RFC
// 3986 §3.3, unlike scheme/host.
func Path(path string) string { return path }
