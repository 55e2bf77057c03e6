package monitor

type MetricTag string

const (
	HttpRequestDurationTag MetricTag = "requests_duration_seconds"
	// AirdropClaimsCounterTag counts claim attempts by outcome.
	AirdropClaimsCounterTag MetricTag = "claims_total"
	// LedgerConfirmationDurationTag measures the time between submission and confirmation of an airdrop transaction.
	LedgerConfirmationDurationTag MetricTag = "confirmation_duration_seconds"
)

func (m MetricTag) ListAll() []MetricTag {
	return []MetricTag{
		HttpRequestDurationTag,
		AirdropClaimsCounterTag,
		LedgerConfirmationDurationTag,
	}
}
