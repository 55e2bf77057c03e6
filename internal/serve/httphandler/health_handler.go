package httphandler

import (
	"net/http"

	"github.com/stellar/go-stellar-sdk/support/log"
	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/duckdrop/spl-airdrop-backend/internal/ledger"
)

// Status indicates whether the service is healthy or not.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// HealthResponse follows the health check response format for HTTP APIs, based on the format defined in the draft IETF
// network working group standard, Health Check Response Format for HTTP APIs.
//
// https://datatracker.ietf.org/doc/html/draft-inadarei-api-health-check-06#name-api-health-response
type HealthResponse struct {
	Status    Status            `json:"status"`
	Version   string            `json:"version,omitempty"`
	ServiceID string            `json:"service_id,omitempty"`
	ReleaseID string            `json:"release_id,omitempty"`
	Services  map[string]Status `json:"services,omitempty"`
}

type HealthHandler struct {
	Version   string
	ServiceID string
	ReleaseID string
	Ledger    ledger.LedgerClient
}

func (h HealthHandler) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	rpcStatus := StatusPass
	if err := h.Ledger.GetHealth(ctx); err != nil {
		log.Ctx(ctx).Warnf("solana rpc health check failed: %v", err)
		rpcStatus = StatusFail
	}

	response := HealthResponse{
		Status:    rpcStatus,
		Version:   h.Version,
		ServiceID: h.ServiceID,
		ReleaseID: h.ReleaseID,
		Services: map[string]Status{
			"solana_rpc": rpcStatus,
		},
	}

	// A 503 tells the orchestrator to stop routing claims to this instance.
	if response.Status == StatusFail {
		httpjson.RenderStatus(rw, http.StatusServiceUnavailable, response, httpjson.JSON)
		return
	}

	httpjson.RenderStatus(rw, http.StatusOK, response, httpjson.JSON)
}
