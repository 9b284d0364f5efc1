package utils

import (
	"fmt"
	"net/http"
)

// AbsoluteURL builds the absolute URL for path. baseURL takes precedence when
// set, otherwise scheme and host come from the request.
func AbsoluteURL(r *http.Request, baseURL, path string) string {
	if baseURL != "" {
		return baseURL + path
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return fmt.Sprintf("%s://%s%s", scheme, r.Host, path)
}
