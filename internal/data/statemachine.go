package data

import (
	"fmt"
	"strings"
)

type ClaimStatus string

const (
	// PendingClaimStatus marks a wallet whose airdrop transaction is being built, submitted or confirmed.
	PendingClaimStatus ClaimStatus = "PENDING"
	// ClaimedClaimStatus is terminal, the wallet can never claim again.
	ClaimedClaimStatus ClaimStatus = "CLAIMED"
	// ReleasedClaimStatus is the status of a reservation rolled back after a failed submission.
	ReleasedClaimStatus ClaimStatus = "RELEASED"
)

var claimTransitions = map[ClaimStatus][]ClaimStatus{
	PendingClaimStatus: {ClaimedClaimStatus, ReleasedClaimStatus},
}

func (status ClaimStatus) Validate() error {
	switch ClaimStatus(strings.ToUpper(string(status))) {
	case PendingClaimStatus, ClaimedClaimStatus, ReleasedClaimStatus:
		return nil
	default:
		return fmt.Errorf("invalid claim status: %s", status)
	}
}

func (status ClaimStatus) CanTransitionTo(target ClaimStatus) bool {
	for _, allowed := range claimTransitions[status] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (status ClaimStatus) TransitionTo(target ClaimStatus) error {
	if !status.CanTransitionTo(target) {
		return fmt.Errorf("cannot transition from %s to %s", status, target)
	}
	return nil
}
