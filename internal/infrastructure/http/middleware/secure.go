package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureOptions returns the response header policy. The service speaks JSON
// only, so the content security policy denies everything and referrers are
// never sent. HSTS is suppressed in development where requests arrive over
// plain HTTP.
func SecureOptions(isDevelopment bool) secure.Options {
	return secure.Options{
		IsDevelopment:         isDevelopment,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "no-referrer",
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
	}
}

// NewSecure returns a middleware that applies the header policy.
func NewSecure(opts secure.Options) func(next http.Handler) http.Handler {
	s := secure.New(opts)
	return s.Handler
}
