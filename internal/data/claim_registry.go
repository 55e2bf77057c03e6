package data

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Claim struct {
	WalletAddress string
	Status        ClaimStatus
	// Ticket identifies the reservation holder. Only the holder can commit or release a pending claim.
	Ticket    string
	Signature string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClaimRegistry admits at most one airdrop per wallet address. A wallet is reserved before the transfer is submitted,
// then the reservation is either committed with the transaction signature or released so the wallet can try again.
type ClaimRegistry interface {
	Reserve(ctx context.Context, walletAddress string) (ticket string, err error)
	Commit(ctx context.Context, walletAddress, ticket, signature string) error
	Release(ctx context.Context, walletAddress, ticket string) error
	Get(ctx context.Context, walletAddress string) (*Claim, error)
	IsClaimed(ctx context.Context, walletAddress string) (bool, error)
}

var _ ClaimRegistry = (*InMemoryClaimRegistry)(nil)

// InMemoryClaimRegistry keeps claims for the lifetime of the process. It's reset on restart.
type InMemoryClaimRegistry struct {
	mu     sync.Mutex
	claims map[string]*Claim
	now    func() time.Time
}

func NewInMemoryClaimRegistry() *InMemoryClaimRegistry {
	return &InMemoryClaimRegistry{
		claims: make(map[string]*Claim),
		now:    time.Now,
	}
}

func (r *InMemoryClaimRegistry) Reserve(_ context.Context, walletAddress string) (string, error) {
	if walletAddress == "" {
		return "", fmt.Errorf("wallet address is required: %w", ErrMissingInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.claims[walletAddress]; ok {
		if existing.Status == ClaimedClaimStatus {
			return "", ErrClaimAlreadyExists
		}
		return "", ErrClaimInProgress
	}

	now := r.now()
	ticket := uuid.NewString()
	r.claims[walletAddress] = &Claim{
		WalletAddress: walletAddress,
		Status:        PendingClaimStatus,
		Ticket:        ticket,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return ticket, nil
}

func (r *InMemoryClaimRegistry) Commit(_ context.Context, walletAddress, ticket, signature string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	claim, err := r.pendingClaim(walletAddress, ticket)
	if err != nil {
		return err
	}
	if err = claim.Status.TransitionTo(ClaimedClaimStatus); err != nil {
		return fmt.Errorf("committing claim: %w", err)
	}

	claim.Status = ClaimedClaimStatus
	claim.Signature = signature
	claim.UpdatedAt = r.now()

	return nil
}

// Release drops a pending reservation. Claimed wallets are never removed.
func (r *InMemoryClaimRegistry) Release(_ context.Context, walletAddress, ticket string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	claim, err := r.pendingClaim(walletAddress, ticket)
	if err != nil {
		return err
	}
	if err = claim.Status.TransitionTo(ReleasedClaimStatus); err != nil {
		return fmt.Errorf("releasing claim: %w", err)
	}

	delete(r.claims, walletAddress)

	return nil
}

func (r *InMemoryClaimRegistry) Get(_ context.Context, walletAddress string) (*Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	claim, ok := r.claims[walletAddress]
	if !ok {
		return nil, ErrRecordNotFound
	}

	claimCopy := *claim
	return &claimCopy, nil
}

func (r *InMemoryClaimRegistry) IsClaimed(ctx context.Context, walletAddress string) (bool, error) {
	claim, err := r.Get(ctx, walletAddress)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return claim.Status == ClaimedClaimStatus, nil
}

// pendingClaim must be called with r.mu held.
func (r *InMemoryClaimRegistry) pendingClaim(walletAddress, ticket string) (*Claim, error) {
	claim, ok := r.claims[walletAddress]
	if !ok {
		return nil, ErrRecordNotFound
	}
	if claim.Ticket != ticket {
		return nil, ErrReservationTicketMismatch
	}
	return claim, nil
}
