package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/vivekshiftai/integration-of-firewall/internal/domain"
	"github.com/vivekshiftai/integration-of-firewall/internal/service"
	"github.com/vivekshiftai/integration-of-firewall/internal/validation"
)

// Version is reported by the health and root endpoints.
const Version = "1.0.0"

// PolicyHandler handles policy pipeline endpoints.
type PolicyHandler struct {
	svc           *service.PolicyService
	saveByDefault bool
}

// NewPolicyHandler creates a new PolicyHandler. saveByDefault controls
// whether fetch runs export to file when the request does not say.
func NewPolicyHandler(svc *service.PolicyService, saveByDefault bool) *PolicyHandler {
	return &PolicyHandler{svc: svc, saveByDefault: saveByDefault}
}

// Fetch triggers one retrieval run: fetch, normalize, persist, and
// optionally export. The store_in_db and save_to_file query parameters
// control persistence; an optional JSON body overrides the firewall
// connection for this run only.
func (h *PolicyHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	opts := service.FetchOptions{
		StoreInDB:  queryBool(r, "store_in_db", true),
		SaveToFile: queryBool(r, "save_to_file", h.saveByDefault),
	}

	override, err := decodeOverride(r)
	if err != nil {
		handleError(w, err)
		return
	}
	if override != nil {
		if errs := validation.ValidateFirewallConfig(override); errs.HasErrors() {
			respondValidationErrors(w, errs)
			return
		}
		opts.Override = override
	}

	result, err := h.svc.FetchAndStore(r.Context(), opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrNoDataAvailable) {
			status = http.StatusBadGateway
		}
		respondJSON(w, status, result)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Status reports service configuration and the stored policy count.
func (h *PolicyHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Status(r.Context()))
}

// Health reports liveness.
func (h *PolicyHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &domain.HealthResponse{
		Status:    "healthy",
		Version:   Version,
		Timestamp: time.Now().UTC(),
	})
}

// Info describes the service and its endpoints.
func (h *PolicyHandler) Info(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"service": "FortiGate Policy Fetcher",
		"version": Version,
		"endpoints": map[string]string{
			"fetch":  "POST /api/v1/policies/fetch",
			"status": "GET /api/v1/policies/status",
			"health": "GET /health",
		},
	})
}

// decodeOverride reads an optional connection override from the request
// body. An empty body means no override.
func decodeOverride(r *http.Request) (*domain.FirewallConfigRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var req domain.FirewallConfigRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &req, nil
}
