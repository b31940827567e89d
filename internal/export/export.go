// Package export writes normalized policy batches to JSON files.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vivekshiftai/integration-of-firewall/internal/domain"
)

// WriteBatch writes the batch to path as indented JSON, creating parent
// directories as needed. The document carries the batch envelope (batch id,
// data source, retrieval time) plus every canonical policy row.
func WriteBatch(path string, batch *domain.RetrievalBatch) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling batch: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	slog.Info("exported policy batch", "file", path, "policies", len(batch.Policies))
	return nil
}
