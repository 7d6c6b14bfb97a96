package callback

import "crypto/subtle"

// Verifier checks the x-callback-token header the gateway attaches to
// notification deliveries. Verification is optional: with no token configured
// every delivery passes, and the reconciler's gateway re-fetch remains the
// only financial authority either way.
type Verifier struct {
	token string
}

// New creates a verifier for the configured token.
func New(token string) *Verifier {
	return &Verifier{token: token}
}

// Enabled reports whether a token is configured.
func (v *Verifier) Enabled() bool {
	return v.token != ""
}

// Verify compares the provided header value in constant time.
func (v *Verifier) Verify(provided string) bool {
	if !v.Enabled() {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(v.token), []byte(provided)) == 1
}
