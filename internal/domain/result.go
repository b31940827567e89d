package domain

import "time"

// FetchResult reports one pipeline run. Success reflects data retrieval
// only; persistence and export failures are recorded in their own fields
// and do not fail the run.
type FetchResult struct {
	Success       bool      `json:"success"`
	PoliciesCount int       `json:"policies_count"`
	DBStored      bool      `json:"db_stored"`
	DBCount       int       `json:"db_count"`
	DBError       string    `json:"db_error,omitempty"`
	FileSaved     bool      `json:"file_saved"`
	OutputFile    string    `json:"output_file,omitempty"`
	FileError     string    `json:"file_error,omitempty"`
	DataSource    Source    `json:"data_source,omitempty"`
	BatchID       string    `json:"batch_id,omitempty"`
	Summary       *Summary  `json:"summary,omitempty"`
	Error         string    `json:"error,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Summary is the short overview of a normalized batch included in a
// FetchResult.
type Summary struct {
	TotalPolicies  int            `json:"total_policies"`
	SamplePolicies []PolicySample `json:"sample_policies"`
}

// PolicySample is one abbreviated policy in a Summary. Interface lists are
// rendered comma-joined; empty values fall back to display placeholders.
type PolicySample struct {
	Name                 string `json:"name"`
	PolicyID             uint32 `json:"policy_id"`
	SourceInterface      string `json:"source_interface"`
	DestinationInterface string `json:"destination_interface"`
	Action               string `json:"action"`
}

// StatusResponse reports service configuration and the stored row count.
type StatusResponse struct {
	Status              string `json:"status"`
	FortiGateConfigured bool   `json:"fortigate_configured"`
	DatabaseConfigured  bool   `json:"database_configured"`
	SampleDataAvailable bool   `json:"sample_data_available"`
	TotalPoliciesInDB   uint64 `json:"total_policies_in_db"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// FirewallConfigRequest is an optional per-request firewall connection
// override accepted by the fetch endpoint.
type FirewallConfigRequest struct {
	IPAddress  string `json:"ip_address"`
	APIToken   string `json:"api_token"`
	VerifySSL  bool   `json:"verify_ssl"`
	Timeout    int    `json:"timeout"` // seconds; 0 means the default 30
	APIVersion string `json:"api_version"`
}
