package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/duckdrop/spl-airdrop-backend/internal/data"
	"github.com/duckdrop/spl-airdrop-backend/internal/ledger"
	"github.com/duckdrop/spl-airdrop-backend/internal/monitor"
	"github.com/duckdrop/spl-airdrop-backend/internal/utils"
)

var (
	ErrInvalidWalletAddress   = ledger.ErrInvalidWalletAddress
	ErrAirdropAlreadyClaimed  = errors.New("airdrop already claimed for this wallet")
	ErrAirdropClaimInProgress = errors.New("airdrop claim already in progress for this wallet")
)

// DownstreamError wraps failures of the ledger while building, submitting or confirming an airdrop transaction.
type DownstreamError struct {
	Err error
}

func (e *DownstreamError) Error() string {
	return e.Err.Error()
}

func (e *DownstreamError) Unwrap() error {
	return e.Err
}

type ClaimResult struct {
	WalletAddress       string
	Signature           solana.Signature
	CreatedTokenAccount bool
	Message             string
}

//go:generate mockery --name=AirdropServiceInterface --case=underscore --structname=MockAirdropService --filename=airdrop_service.go
type AirdropServiceInterface interface {
	// Claim pays the airdrop to walletAddress, at most once per address.
	Claim(ctx context.Context, walletAddress string) (*ClaimResult, error)
}

var _ AirdropServiceInterface = (*AirdropService)(nil)

type AirdropServiceOptions struct {
	Ledger         ledger.LedgerClient
	Models         *data.Models
	DistributorKey solana.PrivateKey
	TokenMint      solana.PublicKey
	Amount         TokenAmount
	MonitorService monitor.MonitorServiceInterface
}

func (o AirdropServiceOptions) Validate() error {
	if o.Ledger == nil {
		return fmt.Errorf("ledger client cannot be nil")
	}
	if o.Models == nil || o.Models.Claims == nil {
		return fmt.Errorf("claim registry cannot be nil")
	}
	if len(o.DistributorKey) == 0 {
		return fmt.Errorf("distributor key cannot be empty")
	}
	if o.TokenMint.IsZero() {
		return fmt.Errorf("token mint cannot be empty")
	}
	if o.Amount.BaseUnits() == 0 {
		return fmt.Errorf("airdrop amount cannot be zero")
	}
	return nil
}

type AirdropService struct {
	ledger         ledger.LedgerClient
	claims         data.ClaimRegistry
	distributorKey solana.PrivateKey
	tokenMint      solana.PublicKey
	amount         TokenAmount
	monitorService monitor.MonitorServiceInterface
}

func NewAirdropService(opts AirdropServiceOptions) (*AirdropService, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validating airdrop service options: %w", err)
	}

	return &AirdropService{
		ledger:         opts.Ledger,
		claims:         opts.Models.Claims,
		distributorKey: opts.DistributorKey,
		tokenMint:      opts.TokenMint,
		amount:         opts.Amount,
		monitorService: opts.MonitorService,
	}, nil
}

func (s *AirdropService) Claim(ctx context.Context, walletAddress string) (*ClaimResult, error) {
	recipient, err := ledger.ParseWalletAddress(walletAddress)
	if err != nil {
		s.recordClaim(ctx, monitor.ClaimStatusInvalidAddress)
		return nil, err
	}
	address := recipient.String()
	ctx = log.Set(ctx, log.Ctx(ctx).WithField("wallet", utils.TruncateString(address, 4)))

	ticket, err := s.claims.Reserve(ctx, address)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrClaimAlreadyExists):
			s.recordClaim(ctx, monitor.ClaimStatusAlreadyClaimed)
			return nil, ErrAirdropAlreadyClaimed
		case errors.Is(err, data.ErrClaimInProgress):
			s.recordClaim(ctx, monitor.ClaimStatusInProgress)
			return nil, ErrAirdropClaimInProgress
		default:
			s.recordClaim(ctx, monitor.ClaimStatusFailed)
			return nil, fmt.Errorf("reserving airdrop claim: %w", err)
		}
	}

	// Once submitted the transfer can land regardless of the caller, so a client disconnect must not cut the
	// confirmation short and release a reservation whose tokens are on their way.
	ctx = context.WithoutCancel(ctx)

	signature, createdTokenAccount, err := s.transfer(ctx, recipient)
	if err != nil {
		if releaseErr := s.claims.Release(ctx, address, ticket); releaseErr != nil {
			log.Ctx(ctx).Errorf("releasing airdrop reservation: %v", releaseErr)
		}
		s.recordClaim(ctx, monitor.ClaimStatusFailed)
		return nil, &DownstreamError{Err: err}
	}

	if err = s.claims.Commit(ctx, address, ticket, signature.String()); err != nil {
		// The tokens were already sent, so the claim is reported as successful.
		log.Ctx(ctx).Errorf("committing airdrop claim %s: %v", signature, err)
	}
	s.recordClaim(ctx, monitor.ClaimStatusSuccess)
	log.Ctx(ctx).Infof("🪂 airdrop of %s %s confirmed with signature %s", s.amount.Amount, s.amount.Symbol, signature)

	return &ClaimResult{
		WalletAddress:       address,
		Signature:           signature,
		CreatedTokenAccount: createdTokenAccount,
		Message:             s.amount.SuccessMessage(),
	}, nil
}

// transfer builds, signs, submits and confirms the airdrop transaction to recipient.
func (s *AirdropService) transfer(ctx context.Context, recipient solana.PublicKey) (solana.Signature, bool, error) {
	distributor := s.distributorKey.PublicKey()

	instructions, createdTokenAccount, err := BuildAirdropInstructions(ctx, s.ledger, AirdropInstructionsParams{
		Distributor: distributor,
		Recipient:   recipient,
		TokenMint:   s.tokenMint,
		Amount:      s.amount.BaseUnits(),
	})
	if err != nil {
		return solana.Signature{}, false, fmt.Errorf("building airdrop instructions: %w", err)
	}

	blockhash, err := s.ledger.GetLatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, false, err
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(distributor))
	if err != nil {
		return solana.Signature{}, false, fmt.Errorf("creating transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(distributor) {
			return &s.distributorKey
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, false, fmt.Errorf("signing transaction: %w", err)
	}

	signature, err := s.ledger.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, false, err
	}
	log.Ctx(ctx).Debugf("submitted airdrop transaction %s", signature)

	startedAt := time.Now()
	err = s.ledger.ConfirmTransaction(ctx, signature)
	s.recordConfirmation(ctx, time.Since(startedAt), err == nil)
	if err != nil {
		return solana.Signature{}, false, err
	}

	return signature, createdTokenAccount, nil
}

type AirdropInstructionsParams struct {
	Distributor solana.PublicKey
	Recipient   solana.PublicKey
	TokenMint   solana.PublicKey
	Amount      uint64
}

// BuildAirdropInstructions returns the token transfer from the distributor to the recipient, preceded by the creation
// of the recipient token account when it does not exist yet. A failed existence lookup is treated as a missing
// account.
func BuildAirdropInstructions(ctx context.Context, ledgerClient ledger.LedgerClient, params AirdropInstructionsParams) ([]solana.Instruction, bool, error) {
	sourceAccount, err := ledger.FindAssociatedTokenAddress(params.Distributor, params.TokenMint)
	if err != nil {
		return nil, false, err
	}
	destinationAccount, err := ledger.FindAssociatedTokenAddress(params.Recipient, params.TokenMint)
	if err != nil {
		return nil, false, err
	}

	exists, err := ledgerClient.AccountExists(ctx, destinationAccount)
	if err != nil {
		log.Ctx(ctx).Warnf("checking token account %s, attempting to create it: %v", destinationAccount, err)
		exists = false
	}

	instructions := make([]solana.Instruction, 0, 2)
	if !exists {
		createIx, createErr := ledger.NewCreateAssociatedTokenAccountInstruction(params.Distributor, params.Recipient, params.TokenMint)
		if createErr != nil {
			return nil, false, createErr
		}
		instructions = append(instructions, createIx)
	}
	transferIx, err := ledger.NewTransferInstruction(sourceAccount, destinationAccount, params.Distributor, params.Amount)
	if err != nil {
		return nil, false, err
	}
	instructions = append(instructions, transferIx)

	return instructions, !exists, nil
}

func (s *AirdropService) recordClaim(ctx context.Context, status monitor.ClaimStatus) {
	if s.monitorService == nil {
		return
	}
	labels := monitor.AirdropClaimLabels{Status: status}
	if err := s.monitorService.MonitorCounters(monitor.AirdropClaimsCounterTag, labels.ToMap()); err != nil {
		log.Ctx(ctx).Errorf("monitoring airdrop claim counter: %v", err)
	}
}

func (s *AirdropService) recordConfirmation(ctx context.Context, duration time.Duration, confirmed bool) {
	if s.monitorService == nil {
		return
	}
	labels := monitor.LedgerConfirmationLabels{Confirmed: confirmed}
	if err := s.monitorService.MonitorDuration(duration, monitor.LedgerConfirmationDurationTag, labels.ToMap()); err != nil {
		log.Ctx(ctx).Errorf("monitoring ledger confirmation duration: %v", err)
	}
}
