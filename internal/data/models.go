package data

import "errors"

var (
	ErrRecordNotFound            = errors.New("record not found")
	ErrClaimAlreadyExists        = errors.New("airdrop already claimed for this wallet")
	ErrClaimInProgress           = errors.New("airdrop claim already in progress for this wallet")
	ErrReservationTicketMismatch = errors.New("reservation ticket does not match")
	ErrMissingInput              = errors.New("missing input")
)

// Models groups the process-lifetime stores used by the airdrop service.
type Models struct {
	Claims ClaimRegistry
}

func NewModels() *Models {
	return &Models{
		Claims: NewInMemoryClaimRegistry(),
	}
}
