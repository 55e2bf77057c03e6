package validators

import (
	"strings"

	"github.com/duckdrop/spl-airdrop-backend/internal/utils"
)

type AirdropRequest struct {
	WalletAddress string `json:"walletAddress"`
}

type AirdropRequestValidator struct {
	*Validator
}

func NewAirdropRequestValidator() *AirdropRequestValidator {
	return &AirdropRequestValidator{Validator: NewValidator()}
}

// ValidateAirdropRequest checks the presence of the wallet address and returns a sanitized copy of the request. The
// address format is checked when the claim is processed.
func (av *AirdropRequestValidator) ValidateAirdropRequest(reqBody *AirdropRequest) *AirdropRequest {
	av.Check(reqBody != nil, "body", "Invalid request body")
	if av.HasErrors() {
		return nil
	}

	av.Check(!utils.IsBlank(reqBody.WalletAddress), "walletAddress", "Wallet address is required")
	if av.HasErrors() {
		return nil
	}

	return &AirdropRequest{WalletAddress: strings.TrimSpace(reqBody.WalletAddress)}
}
