package respond

import (
	"regexp"
)

var (
	// Credentials embedded in URLs (audit targets may carry basic auth).
	urlCredentialPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)

	// Bearer tokens leaked through wrapped transport errors.
	bearerTokenPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)

	// Generic key=value style secrets (api_key=..., token=..., password=...).
	secretParamPattern = regexp.MustCompile(`(?i)(api[_-]?key|token|password|secret)=([^&\s"':]+)`)
)

// SanitizeError masks credentials before an error message reaches the logs.
// Fetch errors often contain the full target URL, which may embed basic-auth
// credentials or signed query parameters.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	msg = urlCredentialPattern.ReplaceAllString(msg, "://$1:****@")
	msg = bearerTokenPattern.ReplaceAllString(msg, "Bearer ****")
	msg = secretParamPattern.ReplaceAllString(msg, "$1=****")

	return msg
}
