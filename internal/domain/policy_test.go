package domain_test

import (
	"reflect"
	"testing"

	"github.com/vivekshiftai/integration-of-firewall/internal/domain"
)

func TestFlattenNames_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{
			name:  "list of named objects",
			input: []any{map[string]any{"name": "port1"}, map[string]any{"name": "port2"}},
			want:  []string{"port1", "port2"},
		},
		{
			name:  "list of plain strings",
			input: []any{"wan1", "wan2"},
			want:  []string{"wan1", "wan2"},
		},
		{
			name:  "mixed list skips unusable entries",
			input: []any{"wan1", map[string]any{"name": "port3"}, map[string]any{"q_origin_key": "x"}, 42},
			want:  []string{"wan1", "port3"},
		},
		{
			name:  "single scalar string",
			input: "all",
			want:  []string{"all"},
		},
		{
			name:  "single named object",
			input: map[string]any{"name": "internal"},
			want:  []string{"internal"},
		},
		{
			name:  "nil",
			input: nil,
			want:  []string{},
		},
		{
			name:  "unusable scalar",
			input: 7.5,
			want:  []string{},
		},
		{
			name:  "empty list",
			input: []any{},
			want:  []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.FlattenNames(tc.input)
			if got == nil {
				t.Fatal("Expected non-nil slice")
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestRawPolicy_UintField(t *testing.T) {
	tests := []struct {
		name string
		raw  domain.RawPolicy
		want uint32
	}{
		{name: "json number", raw: domain.RawPolicy{"policyid": float64(42)}, want: 42},
		{name: "numeric string", raw: domain.RawPolicy{"policyid": "17"}, want: 17},
		{name: "go int", raw: domain.RawPolicy{"policyid": 3}, want: 3},
		{name: "negative number", raw: domain.RawPolicy{"policyid": float64(-5)}, want: 0},
		{name: "fractional number", raw: domain.RawPolicy{"policyid": 1.5}, want: 0},
		{name: "non-numeric string", raw: domain.RawPolicy{"policyid": "abc"}, want: 0},
		{name: "missing", raw: domain.RawPolicy{}, want: 0},
		{name: "wrong type", raw: domain.RawPolicy{"policyid": []any{1}}, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.raw.UintField("policyid"); got != tc.want {
				t.Errorf("Expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestRawPolicy_StringField(t *testing.T) {
	raw := domain.RawPolicy{"name": "Allow-Web", "policyid": float64(1)}

	if got := raw.StringField("name", ""); got != "Allow-Web" {
		t.Errorf("Expected Allow-Web, got %q", got)
	}
	if got := raw.StringField("schedule", "always"); got != "always" {
		t.Errorf("Expected default always, got %q", got)
	}
	if got := raw.StringField("policyid", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback for non-string field, got %q", got)
	}
}
