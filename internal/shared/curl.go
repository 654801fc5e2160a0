// Utilities for importing a web session from a copied cURL command.
//
// The webclient's "copy as cURL" output carries the session cookie and CSRF
// header needed to talk to the gateway without a fresh login.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// CurlSession represents headers and cookies parsed from a cURL command.
type CurlSession struct {
	Headers map[string]string
	Cookie  string
}

// ParseCurlFile reads a .sh file containing a cURL command and extracts headers.
func ParseCurlFile(filepath string) (*CurlSession, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts headers.
func ParseCurlCommand(data []byte) (*CurlSession, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	headers := make(map[string]string)
	var cookie string

	headerRegex := regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	matches := headerRegex.FindAllStringSubmatch(curlCmd, -1)

	for _, match := range matches {
		var headerLine string
		if match[1] != "" {
			headerLine = match[1]
		} else {
			headerLine = match[2]
		}

		parts := strings.SplitN(headerLine, ":", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if strings.ToLower(key) != "cookie" {
				headers[key] = value
			} else {
				cookie = value
			}
		}
	}

	cookieRegex := regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
	cookieMatches := cookieRegex.FindStringSubmatch(curlCmd)
	if len(cookieMatches) > 1 {
		if cookieMatches[1] != "" {
			cookie = cookieMatches[1]
		} else if cookieMatches[2] != "" {
			cookie = cookieMatches[2]
		}
	}

	if len(headers) == 0 && cookie == "" {
		return nil, fmt.Errorf("no headers found in curl command")
	}

	return &CurlSession{Headers: headers, Cookie: cookie}, nil
}

// SessionToken extracts the session identifier from the parsed cookie string.
//
// Looks for the "sessionid" cookie used by the web gateway.
func (c *CurlSession) SessionToken() (string, error) {
	for _, part := range strings.Split(c.Cookie, ";") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) == 2 && kv[0] == "sessionid" {
			return kv[1], nil
		}
	}

	return "", fmt.Errorf("%w: no sessionid cookie in curl command", ErrMissingCredentials)
}

// CSRFToken returns the X-CSRFToken header value if present.
func (c *CurlSession) CSRFToken() string {
	for key, value := range c.Headers {
		if strings.EqualFold(key, "X-CSRFToken") {
			return value
		}
	}

	return ""
}
