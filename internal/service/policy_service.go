// Package service orchestrates policy retrieval, normalization,
// persistence and export.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vivekshiftai/integration-of-firewall/internal/config"
	"github.com/vivekshiftai/integration-of-firewall/internal/domain"
	"github.com/vivekshiftai/integration-of-firewall/internal/export"
	"github.com/vivekshiftai/integration-of-firewall/internal/fortigate"
	"github.com/vivekshiftai/integration-of-firewall/internal/normalize"
	"github.com/vivekshiftai/integration-of-firewall/internal/sample"
	"github.com/vivekshiftai/integration-of-firewall/internal/storage"
)

// Options configures a PolicyService.
type Options struct {
	// ForceSample routes retrieval to the fallback corpus even when a
	// live client is available.
	ForceSample bool
	// OutputFile is the default export path for save_to_file runs.
	OutputFile string
}

// PolicyService runs the retrieve-normalize-persist pipeline.
type PolicyService struct {
	client  fortigate.PolicyClient // nil when no live API is configured
	store   storage.Store          // nil when persistence is not configured
	samples *sample.Loader
	opts    Options
}

// New creates a PolicyService. client and store may be nil: the pipeline
// then falls back to the sample corpus and skips persistence respectively.
// samples must not be nil.
func New(client fortigate.PolicyClient, store storage.Store, samples *sample.Loader, opts Options) *PolicyService {
	return &PolicyService{
		client:  client,
		store:   store,
		samples: samples,
		opts:    opts,
	}
}

// FetchOptions controls one pipeline run.
type FetchOptions struct {
	StoreInDB  bool
	SaveToFile bool
	// Override connects to a different firewall for this run only.
	Override *domain.FirewallConfigRequest
}

// FetchAndStore runs the pipeline once: select a source, fetch, normalize,
// then persist and export as requested. Persistence and export failures
// are recorded in the result and do not fail the run; only the inability
// to retrieve any data at all returns an error.
func (s *PolicyService) FetchAndStore(ctx context.Context, opts FetchOptions) (*domain.FetchResult, error) {
	result := &domain.FetchResult{Timestamp: time.Now().UTC()}

	raws, source, err := s.retrieve(ctx, opts.Override)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}

	batch := normalize.NewBatch(raws, source)
	summary := normalize.Summarize(batch)
	result.Success = true
	result.PoliciesCount = len(batch.Policies)
	result.DataSource = batch.Source
	result.BatchID = batch.ID.String()
	result.Summary = &summary

	if len(batch.Policies) == 0 {
		slog.Warn("retrieval returned no policies", "source", source)
		return result, nil
	}

	slog.Info("normalized policy batch",
		"batch_id", batch.ID, "source", batch.Source, "policies", len(batch.Policies))

	if opts.StoreInDB {
		s.persist(ctx, &batch, result)
	}
	if opts.SaveToFile {
		s.saveToFile(&batch, result)
	}

	return result, nil
}

// retrieve selects the data source and fetches raw policies from it. The
// decision order is fixed: forced fallback, then missing client, then a
// live attempt whose failure falls back to the corpus.
func (s *PolicyService) retrieve(ctx context.Context, override *domain.FirewallConfigRequest) ([]domain.RawPolicy, domain.Source, error) {
	client := s.client
	forced := s.opts.ForceSample
	if override != nil {
		// A per-request override always attempts the live API.
		client = fortigate.New(overrideConfig(override))
		forced = false
	}

	switch {
	case forced:
		slog.Info("sample data forced by configuration")
	case client == nil:
		slog.Info("no firewall API configured, using sample data")
	default:
		raws, err := client.FetchPolicies(ctx)
		if err == nil {
			slog.Info("fetched policies from firewall", "count", len(raws))
			return raws, domain.SourceAPI, nil
		}
		slog.Warn("live fetch failed, falling back to sample data", "error", err)
	}

	raws, file, err := s.samples.Load()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrNoDataAvailable, err)
	}
	slog.Info("loaded policies from sample corpus", "file", file, "count", len(raws))
	return raws, domain.SourceSample, nil
}

// overrideConfig maps a request override onto client configuration,
// filling in the request defaults.
func overrideConfig(req *domain.FirewallConfigRequest) config.FortiGateConfig {
	cfg := config.FortiGateConfig{
		IPAddress:  req.IPAddress,
		APIToken:   req.APIToken,
		VerifySSL:  req.VerifySSL,
		Timeout:    time.Duration(req.Timeout) * time.Second,
		APIVersion: req.APIVersion,
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v2"
	}
	return cfg
}

// persist writes the batch to the store, recording failure in the result
// without failing the run.
func (s *PolicyService) persist(ctx context.Context, batch *domain.RetrievalBatch, result *domain.FetchResult) {
	if s.store == nil {
		result.DBError = "no database configured"
		return
	}

	if err := s.store.EnsureSchema(ctx); err != nil {
		slog.Error("schema setup failed", "error", err)
		result.DBError = err.Error()
		return
	}

	written, err := s.store.InsertBatch(ctx, batch)
	if err != nil {
		slog.Error("batch insert failed", "batch_id", batch.ID, "error", err)
		result.DBError = err.Error()
		return
	}

	result.DBStored = true
	result.DBCount = written
	slog.Info("stored policy batch", "batch_id", batch.ID, "rows", written)

	if total, err := s.store.CountPolicies(ctx); err == nil {
		slog.Info("total stored policies", "count", total)
	}
}

// saveToFile exports the batch to the configured output file, recording
// failure in the result without failing the run.
func (s *PolicyService) saveToFile(batch *domain.RetrievalBatch, result *domain.FetchResult) {
	result.OutputFile = s.opts.OutputFile
	if err := export.WriteBatch(s.opts.OutputFile, batch); err != nil {
		slog.Error("export failed", "file", s.opts.OutputFile, "error", err)
		result.FileError = err.Error()
		return
	}
	result.FileSaved = true
}

// Status reports service configuration and the stored row count. Count
// failures are logged and reported as zero.
func (s *PolicyService) Status(ctx context.Context) *domain.StatusResponse {
	status := &domain.StatusResponse{
		Status:              "operational",
		FortiGateConfigured: s.client != nil,
		DatabaseConfigured:  s.store != nil,
		SampleDataAvailable: s.samples.Available(),
	}

	if s.store != nil {
		count, err := s.store.CountPolicies(ctx)
		if err != nil {
			slog.Warn("counting stored policies failed", "error", err)
		} else {
			status.TotalPoliciesInDB = count
		}
	}

	return status
}
