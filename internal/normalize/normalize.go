// Package normalize converts raw firewall policies into the canonical
// schema used for persistence and export.
package normalize

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vivekshiftai/integration-of-firewall/internal/domain"
)

// Defaults substituted for missing or malformed raw fields.
const (
	DefaultSchedule   = "always"
	DefaultLogTraffic = "disable"
	DefaultPolicyType = "firewall"
)

const maxSamplePolicies = 5

// Policy converts one raw policy into its canonical form. It is total:
// missing, malformed or unexpected fields become the documented defaults,
// and the original raw policy is preserved verbatim in RawData.
func Policy(raw domain.RawPolicy, retrievedAt time.Time) domain.CanonicalPolicy {
	rawJSON, err := json.Marshal(raw)
	if err != nil {
		// Raw policies come from decoded JSON, so this only happens with
		// hand-built values carrying unmarshalable types. Keep the record.
		rawJSON = []byte("{}")
	}

	return domain.CanonicalPolicy{
		PolicyID:              raw.UintField("policyid"),
		Name:                  raw.StringField("name", ""),
		Action:                raw.StringField("action", ""),
		Status:                raw.StringField("status", ""),
		SourceInterfaces:      domain.FlattenNames(raw["srcintf"]),
		DestinationInterfaces: domain.FlattenNames(raw["dstintf"]),
		SourceAddresses:       domain.FlattenNames(raw["srcaddr"]),
		DestinationAddresses:  domain.FlattenNames(raw["dstaddr"]),
		Services:              domain.FlattenNames(raw["service"]),
		Schedule:              scheduleName(raw),
		LogTraffic:            raw.StringField("logtraffic", DefaultLogTraffic),
		Comments:              raw.StringField("comments", ""),
		PolicyType:            raw.StringField("policy_type", DefaultPolicyType),
		RawData:               string(rawJSON),
		RetrievedAt:           retrievedAt,
	}
}

// scheduleName handles the two shapes schedules arrive in: a plain string
// or a named object.
func scheduleName(raw domain.RawPolicy) string {
	names := domain.FlattenNames(raw["schedule"])
	if len(names) == 0 {
		return DefaultSchedule
	}
	return names[0]
}

// NewBatch normalizes a full retrieval into one batch: a fresh batch ID and
// a single retrieval timestamp shared by every policy. Duplicate policy IDs
// are kept (the store is append-only) but logged.
func NewBatch(raws []domain.RawPolicy, source domain.Source) domain.RetrievalBatch {
	batch := domain.RetrievalBatch{
		ID:          uuid.New(),
		Source:      source,
		RetrievedAt: time.Now().UTC(),
		Policies:    make([]domain.CanonicalPolicy, 0, len(raws)),
	}

	seen := make(map[uint32]int, len(raws))
	for _, raw := range raws {
		p := Policy(raw, batch.RetrievedAt)
		seen[p.PolicyID]++
		if seen[p.PolicyID] == 2 {
			slog.Warn("duplicate policy id in batch", "policy_id", p.PolicyID, "batch_id", batch.ID)
		}
		batch.Policies = append(batch.Policies, p)
	}

	return batch
}

// Summarize builds the short batch overview included in fetch results:
// up to five policies with display placeholders for empty values.
func Summarize(batch domain.RetrievalBatch) domain.Summary {
	summary := domain.Summary{
		TotalPolicies:  len(batch.Policies),
		SamplePolicies: []domain.PolicySample{},
	}

	for _, p := range batch.Policies {
		if len(summary.SamplePolicies) == maxSamplePolicies {
			break
		}
		summary.SamplePolicies = append(summary.SamplePolicies, domain.PolicySample{
			Name:                 displayValue(p.Name, "Unnamed"),
			PolicyID:             p.PolicyID,
			SourceInterface:      joinNames(p.SourceInterfaces),
			DestinationInterface: joinNames(p.DestinationInterfaces),
			Action:               displayValue(p.Action, "N/A"),
		})
	}

	return summary
}

// joinNames renders an interface list for display.
func joinNames(names []string) string {
	if len(names) == 0 {
		return "N/A"
	}
	return strings.Join(names, ", ")
}

func displayValue(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}
