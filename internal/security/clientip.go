package security

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the address a request came from. Forwarding headers
// are honoured only after the TrustedProxy middleware has stripped them
// from untrusted peers.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
