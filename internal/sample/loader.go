// Package sample reads the local fallback corpus of firewall policies.
package sample

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/vivekshiftai/integration-of-firewall/internal/domain"
)

// defaultCandidates are tried in order when no explicit file is configured.
var defaultCandidates = []string{"fortinet-config.json", "sample_policies.json"}

// Loader reads raw policies from a directory of JSON corpus files.
type Loader struct {
	dir  string
	file string // explicit file name; empty means try defaultCandidates in order
}

// NewLoader creates a loader over the given corpus directory.
func NewLoader(dir, file string) *Loader {
	return &Loader{dir: dir, file: file}
}

// candidates returns the file names Load will try, in order.
func (l *Loader) candidates() []string {
	if l.file != "" {
		return []string{l.file}
	}
	return defaultCandidates
}

// Load reads the fallback corpus and returns its raw policies plus the name
// of the file they came from. When every candidate fails, the returned error
// wraps domain.ErrNoFallbackData together with each candidate's failure.
func (l *Loader) Load() ([]domain.RawPolicy, string, error) {
	var errs error
	for _, name := range l.candidates() {
		policies, err := l.LoadFile(name)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		return policies, name, nil
	}

	return nil, "", multierr.Append(domain.ErrNoFallbackData, errs)
}

// LoadFile reads one corpus file. Accepted document shapes: a bare array of
// policies, {"policies": [...]}, {"policy": object-or-list}, or a single
// policy object.
func (l *Loader) LoadFile(name string) ([]domain.RawPolicy, error) {
	path := filepath.Join(l.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}

	policies, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded fallback corpus", "file", path, "policies", len(policies))
	return policies, nil
}

// Available reports whether any corpus file Load would try is present.
func (l *Loader) Available() bool {
	for _, name := range l.candidates() {
		if _, err := os.Stat(filepath.Join(l.dir, name)); err == nil {
			return true
		}
	}
	return false
}

func decodeDocument(data []byte) ([]domain.RawPolicy, error) {
	var list []domain.RawPolicy
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing corpus file: %w", err)
	}

	if v, ok := doc["policies"]; ok {
		return policiesFromValue(v)
	}
	if v, ok := doc["policy"]; ok {
		return policiesFromValue(v)
	}

	// A bare object is a single policy.
	return []domain.RawPolicy{doc}, nil
}

func policiesFromValue(v any) ([]domain.RawPolicy, error) {
	policies, ok := domain.RawPoliciesFrom(v)
	if !ok {
		return nil, fmt.Errorf("corpus document has an unexpected shape")
	}
	return policies, nil
}
