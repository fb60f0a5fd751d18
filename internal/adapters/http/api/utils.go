// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// pathRef extracts the single path segment after prefix. r.URL.Path is
// already unescaped, so names with spaces arrive intact.
func pathRef(r *http.Request, prefix string) (string, bool) {
	ref := strings.TrimPrefix(r.URL.Path, prefix)
	if strings.TrimSpace(ref) == "" || strings.Contains(ref, "/") {
		return "", false
	}
	return ref, true
}

// queryPair reads the a and b query parameters.
func queryPair(r *http.Request) (string, string, bool) {
	q := r.URL.Query()
	a, b := strings.TrimSpace(q.Get("a")), strings.TrimSpace(q.Get("b"))
	return a, b, a != "" && b != ""
}
