package domain

import (
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Source identifies where a batch of policies was retrieved from.
type Source string

const (
	// SourceAPI means the policies came from the live firewall REST API.
	SourceAPI Source = "api"
	// SourceSample means the policies came from the local fallback corpus.
	SourceSample Source = "sample"
)

// RawPolicy is one firewall policy exactly as a source produced it.
// It is structurally unconstrained and never validated or rejected;
// unknown fields are preserved.
type RawPolicy map[string]any

// StringField returns the named field as a string, or def when the field
// is missing or not a string.
func (p RawPolicy) StringField(key, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// UintField returns the named field as an unsigned integer. JSON numbers,
// integral floats and numeric strings are accepted; anything else yields 0.
func (p RawPolicy) UintField(key string) uint32 {
	switch v := p[key].(type) {
	case float64:
		if v >= 0 && v <= math.MaxUint32 && v == math.Trunc(v) {
			return uint32(v)
		}
	case int:
		if v >= 0 && v <= math.MaxUint32 {
			return uint32(v)
		}
	case int64:
		if v >= 0 && v <= math.MaxUint32 {
			return uint32(v)
		}
	case string:
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			return uint32(n)
		}
	}
	return 0
}

// FlattenNames flattens a firewall object reference into a list of names.
// Sources emit references in three shapes: a list of objects with "name"
// keys, a list of plain strings, or a single scalar/object. Anything
// unrecognized flattens to an empty list, never nil.
func FlattenNames(v any) []string {
	switch ref := v.(type) {
	case nil:
		return []string{}
	case []any:
		return namesFromList(ref)
	default:
		return namesFromEntry(ref)
	}
}

// namesFromList handles the two list shapes. Mixed lists are allowed;
// entries without a usable name are skipped.
func namesFromList(entries []any) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := entryName(entry); ok {
			names = append(names, name)
		}
	}
	return names
}

// namesFromEntry handles the single scalar or single object shape.
func namesFromEntry(entry any) []string {
	if name, ok := entryName(entry); ok {
		return []string{name}
	}
	return []string{}
}

// entryName extracts the name from one reference entry: the value itself
// for a plain string, the "name" member for an object.
func entryName(entry any) (string, bool) {
	switch e := entry.(type) {
	case string:
		return e, true
	case map[string]any:
		name, ok := e["name"].(string)
		return name, ok
	default:
		return "", false
	}
}

// RawPoliciesFrom coerces a decoded JSON value into a policy list: a list
// of objects or a single object. Non-object list entries are skipped. The
// second return is false when the value has neither shape.
func RawPoliciesFrom(v any) ([]RawPolicy, bool) {
	switch val := v.(type) {
	case []any:
		policies := make([]RawPolicy, 0, len(val))
		for _, item := range val {
			if p, ok := item.(map[string]any); ok {
				policies = append(policies, RawPolicy(p))
			}
		}
		return policies, true
	case map[string]any:
		return []RawPolicy{RawPolicy(val)}, true
	default:
		return nil, false
	}
}

// CanonicalPolicy is the normalized form of one firewall policy. Every
// stored row and every exported record uses this schema.
type CanonicalPolicy struct {
	PolicyID              uint32    `json:"policy_id" db:"policy_id"`
	Name                  string    `json:"name" db:"name"`
	Action                string    `json:"action" db:"action"` // "accept", "deny"; preserved verbatim if unrecognized
	Status                string    `json:"status" db:"status"`
	SourceInterfaces      []string  `json:"source_interfaces" db:"source_interfaces"`
	DestinationInterfaces []string  `json:"destination_interfaces" db:"destination_interfaces"`
	SourceAddresses       []string  `json:"source_addresses" db:"source_addresses"`
	DestinationAddresses  []string  `json:"destination_addresses" db:"destination_addresses"`
	Services              []string  `json:"services" db:"services"`
	Schedule              string    `json:"schedule" db:"schedule"`
	LogTraffic            string    `json:"log_traffic" db:"log_traffic"`
	Comments              string    `json:"comments" db:"comments"`
	PolicyType            string    `json:"policy_type" db:"policy_type"`
	RawData               string    `json:"raw_data" db:"raw_data"` // original RawPolicy serialized as JSON
	RetrievedAt           time.Time `json:"retrieved_at" db:"retrieved_at"`
}

// RetrievalBatch is the unit of persistence: every policy retrieved in one
// pipeline run, stamped with a single retrieval time and a batch ID.
// All policies in a batch share the batch's RetrievedAt.
type RetrievalBatch struct {
	ID          uuid.UUID         `json:"batch_id"`
	Source      Source            `json:"data_source"`
	RetrievedAt time.Time         `json:"retrieved_at"`
	Policies    []CanonicalPolicy `json:"policies"`
}
