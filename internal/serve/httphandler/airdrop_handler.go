package httphandler

import (
	"errors"
	"net/http"

	"github.com/stellar/go-stellar-sdk/support/http/httpdecode"
	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/duckdrop/spl-airdrop-backend/internal/serve/httperror"
	"github.com/duckdrop/spl-airdrop-backend/internal/serve/validators"
	"github.com/duckdrop/spl-airdrop-backend/internal/services"
)

type AirdropHandler struct {
	AirdropService services.AirdropServiceInterface
}

type AirdropResponse struct {
	Success   bool   `json:"success"`
	Signature string `json:"signature"`
	Message   string `json:"message"`
}

// ServeHTTP handles every method itself: preflight requests get an empty 200 and anything other than POST a 405.
func (h AirdropHandler) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodOptions:
		rw.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
		h.claim(rw, req)
	default:
		httperror.MethodNotAllowed("").Render(rw)
	}
}

func (h AirdropHandler) claim(rw http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var reqBody *validators.AirdropRequest
	if err := httpdecode.DecodeJSON(req, &reqBody); err != nil {
		httperror.BadRequest("Invalid request body", err).Render(rw)
		return
	}

	validator := validators.NewAirdropRequestValidator()
	reqBody = validator.ValidateAirdropRequest(reqBody)
	if validator.HasErrors() {
		httperror.BadRequest(validator.FirstError(), nil).Render(rw)
		return
	}

	result, err := h.AirdropService.Claim(ctx, reqBody.WalletAddress)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidWalletAddress):
			httperror.BadRequest("Invalid wallet address", err).Render(rw)
		case errors.Is(err, services.ErrAirdropAlreadyClaimed):
			httperror.BadRequest("Airdrop already claimed for this wallet", err).Render(rw)
		case errors.Is(err, services.ErrAirdropClaimInProgress):
			httperror.BadRequest("Airdrop claim already in progress for this wallet", err).Render(rw)
		default:
			httperror.InternalError(ctx, "Failed to process airdrop", err).Render(rw)
		}
		return
	}

	httpjson.Render(rw, AirdropResponse{
		Success:   true,
		Signature: result.Signature.String(),
		Message:   result.Message,
	}, httpjson.JSON)
}
