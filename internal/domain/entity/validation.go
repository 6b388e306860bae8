package entity

import (
	"fmt"
	"net/url"
)

// maxURLLength defines the maximum allowed length for source URLs.
const maxURLLength = 2048

// ValidateSourceURL validates the catalog URL supplied by a client.
// It checks that the URL is present, well-formed, uses HTTP/HTTPS and has a host.
// Private network checks are performed by the fetcher after DNS resolution.
func ValidateSourceURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "url is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "url is invalid"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "url must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "url must have a valid host"}
	}

	return nil
}
