// Package validation checks firewall connection override requests before
// they are handed to the FortiGate client.
package validation

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/vivekshiftai/integration-of-firewall/internal/domain"
)

// ValidationError describes a rejected request field.
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every rejected field of a request.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", e[0].Error(), len(e)-1)
}

// Add appends a validation error to the collection.
func (e *ValidationErrors) Add(field, value, message string) {
	*e = append(*e, &ValidationError{Field: field, Value: value, Message: message})
}

// HasErrors returns true if any field was rejected.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// maxTimeoutSeconds caps the request timeout an override may ask for.
const maxTimeoutSeconds = 300

// isAlpha returns true if the byte is an ASCII letter.
func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isNum returns true if the byte is an ASCII digit.
func isNum(b byte) bool {
	return b >= '0' && b <= '9'
}

// isAlphaNum returns true if the byte is an ASCII letter or digit.
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isNum(b)
}

// ValidateFirewallConfig checks a connection override field by field and
// reports every problem at once.
func ValidateFirewallConfig(req *domain.FirewallConfigRequest) ValidationErrors {
	var errs ValidationErrors

	if err := ValidateAddress(req.IPAddress); err != nil {
		errs.Add("ip_address", req.IPAddress, err.Error())
	}
	if strings.TrimSpace(req.APIToken) == "" {
		errs.Add("api_token", "", "API token must not be empty")
	}
	if err := ValidateTimeout(req.Timeout); err != nil {
		errs.Add("timeout", strconv.Itoa(req.Timeout), err.Error())
	}
	if err := ValidateAPIVersion(req.APIVersion); err != nil {
		errs.Add("api_version", req.APIVersion, err.Error())
	}

	return errs
}

// ValidateAddress validates a firewall address: an IP address or hostname,
// optionally with a :port suffix.
func ValidateAddress(addr string) error {
	if addr == "" {
		return fmt.Errorf("address must not be empty")
	}

	host := addr
	if h, port, err := net.SplitHostPort(addr); err == nil {
		if !isValidPortNumber(port) {
			return fmt.Errorf("invalid port: %s", port)
		}
		host = h
	}

	if ip := net.ParseIP(host); ip != nil {
		return nil
	}
	return validateHostname(host)
}

// validateHostname checks a DNS name label by label.
func validateHostname(name string) error {
	if name == "" {
		return fmt.Errorf("host must not be empty")
	}
	for _, label := range strings.Split(name, ".") {
		if label == "" {
			return fmt.Errorf("host must not have empty labels")
		}
		if !isAlphaNum(label[0]) {
			return fmt.Errorf("host labels must start with a letter or digit")
		}
		for _, b := range []byte(label) {
			if !isAlphaNum(b) && b != '-' {
				return fmt.Errorf("host labels can only contain letters, digits, or hyphens")
			}
		}
	}
	return nil
}

// ValidateTimeout checks an override timeout in seconds. Zero means the
// server default applies.
func ValidateTimeout(seconds int) error {
	if seconds == 0 {
		return nil
	}
	if seconds < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if seconds > maxTimeoutSeconds {
		return fmt.Errorf("timeout must not exceed %d seconds", maxTimeoutSeconds)
	}
	return nil
}

// ValidateAPIVersion checks a FortiGate REST API version such as "v2".
// Empty means the server default applies.
func ValidateAPIVersion(version string) error {
	if version == "" {
		return nil
	}
	digits, ok := strings.CutPrefix(version, "v")
	if !ok {
		return fmt.Errorf("API version must start with 'v'")
	}
	if digits == "" {
		return fmt.Errorf("API version must have a number after 'v'")
	}
	for _, b := range []byte(digits) {
		if !isNum(b) {
			return fmt.Errorf("API version must be 'v' followed by digits")
		}
	}
	return nil
}

// isValidPortNumber checks if a string is a valid port number (1-65535).
func isValidPortNumber(s string) bool {
	if s == "" {
		return false
	}
	num := 0
	for _, b := range []byte(s) {
		if !isNum(b) {
			return false
		}
		num = num*10 + int(b-'0')
		if num > 65535 {
			return false
		}
	}
	return num > 0 && num <= 65535
}
