package monitor

type HttpRequestLabels struct {
	Status string
	Route  string
	Method string
}

type ClaimStatus string

const (
	ClaimStatusSuccess        ClaimStatus = "success"
	ClaimStatusAlreadyClaimed ClaimStatus = "already_claimed"
	ClaimStatusInProgress     ClaimStatus = "in_progress"
	ClaimStatusInvalidAddress ClaimStatus = "invalid_address"
	ClaimStatusFailed         ClaimStatus = "failed"
)

type AirdropClaimLabels struct {
	Status ClaimStatus
}

func (l AirdropClaimLabels) ToMap() map[string]string {
	return map[string]string{"status": string(l.Status)}
}

type LedgerConfirmationLabels struct {
	Confirmed bool
}

func (l LedgerConfirmationLabels) ToMap() map[string]string {
	outcome := "failed"
	if l.Confirmed {
		outcome = "confirmed"
	}
	return map[string]string{"outcome": outcome}
}
