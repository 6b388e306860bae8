package respond

import (
	"regexp"
)

var (
	// user:password@ in URLs
	userinfoPattern = regexp.MustCompile(`://([^:/@\s]+):([^@/\s]+)@`)
	// credential-looking query parameters
	secretQueryPattern = regexp.MustCompile(`(?i)([?&](?:token|key|api_key|apikey|secret|password|sig|signature)=)[^&\s"]+`)
)

// SanitizeError returns err's message with credentials in URLs masked.
// Source URLs are client-supplied and end up in fetch errors verbatim.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	return SanitizeText(err.Error())
}

// SanitizeText masks URL credentials in s.
func SanitizeText(s string) string {
	s = userinfoPattern.ReplaceAllString(s, "://$1:****@")
	return secretQueryPattern.ReplaceAllString(s, "${1}****")
}
