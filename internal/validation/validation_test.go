package validation

import (
	"testing"

	"github.com/vivekshiftai/integration-of-firewall/internal/domain"
)

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"valid ipv4", "192.168.1.99", false},
		{"valid ipv4 with port", "192.168.1.99:8443", false},
		{"valid ipv6", "fd00::1", false},
		{"valid ipv6 with port", "[fd00::1]:443", false},
		{"valid hostname", "fw.example.com", false},
		{"valid hostname with port", "fw.example.com:8443", false},
		{"valid single label", "firewall", false},
		{"empty", "", true},
		{"empty label", "fw..example.com", true},
		{"label starts with hyphen", "-fw.example.com", true},
		{"label with underscore", "fw_1.example.com", true},
		{"port zero", "fw.example.com:0", true},
		{"port out of range", "fw.example.com:70000", true},
		{"port not numeric", "fw.example.com:https", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.addr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAddress(%q) error = %v, wantErr %v", tt.addr, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTimeout(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		wantErr bool
	}{
		{"zero means default", 0, false},
		{"one second", 1, false},
		{"upper bound", 300, false},
		{"negative", -1, true},
		{"above upper bound", 301, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimeout(tt.seconds)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTimeout(%d) error = %v, wantErr %v", tt.seconds, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAPIVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{"empty means default", "", false},
		{"v2", "v2", false},
		{"v10", "v10", false},
		{"missing prefix", "2", true},
		{"bare prefix", "v", true},
		{"non numeric", "v2beta", true},
		{"wrong prefix", "api2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAPIVersion(tt.version)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAPIVersion(%q) error = %v, wantErr %v", tt.version, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFirewallConfig(t *testing.T) {
	valid := domain.FirewallConfigRequest{
		IPAddress:  "192.168.1.99",
		APIToken:   "token",
		Timeout:    30,
		APIVersion: "v2",
	}

	errs := ValidateFirewallConfig(&valid)
	if errs.HasErrors() {
		t.Errorf("Expected no errors for valid request, got %v", errs)
	}

	minimal := domain.FirewallConfigRequest{IPAddress: "fw.example.com", APIToken: "token"}
	if errs := ValidateFirewallConfig(&minimal); errs.HasErrors() {
		t.Errorf("Expected defaults to pass, got %v", errs)
	}
}

func TestValidateFirewallConfig_CollectsAllErrors(t *testing.T) {
	req := domain.FirewallConfigRequest{
		IPAddress:  "",
		APIToken:   "  ",
		Timeout:    -5,
		APIVersion: "two",
	}

	errs := ValidateFirewallConfig(&req)
	if len(errs) != 4 {
		t.Fatalf("Expected 4 errors, got %d: %v", len(errs), errs)
	}

	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, want := range []string{"ip_address", "api_token", "timeout", "api_version"} {
		if !fields[want] {
			t.Errorf("Expected an error for field %s", want)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "" {
		t.Errorf("Expected empty message for no errors, got %q", errs.Error())
	}

	errs.Add("ip_address", "", "address must not be empty")
	if errs.Error() != "ip_address: address must not be empty" {
		t.Errorf("Unexpected single error message: %q", errs.Error())
	}

	errs.Add("api_token", "", "API token must not be empty")
	want := "ip_address: address must not be empty (and 1 more errors)"
	if errs.Error() != want {
		t.Errorf("Expected %q, got %q", want, errs.Error())
	}
}
