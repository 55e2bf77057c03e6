package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/duckdrop/spl-airdrop-backend/internal/serve/httpclient"
)

const (
	DefaultConfirmationTimeout = 30 * time.Second
	DefaultPollInterval        = 500 * time.Millisecond
)

var (
	ErrTransactionFailed       = errors.New("transaction failed on chain")
	ErrTransactionNotConfirmed = errors.New("transaction was not confirmed")
	ErrNodeUnhealthy           = errors.New("rpc node is unhealthy")
)

// LedgerClient is the subset of the Solana JSON-RPC API needed to pay an airdrop.
type LedgerClient interface {
	AccountExists(ctx context.Context, account solana.PublicKey) (bool, error)
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	ConfirmTransaction(ctx context.Context, signature solana.Signature) error
	GetHealth(ctx context.Context) error
}

type rpcClient interface {
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransactionWithOpts(ctx context.Context, transaction *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, transactionSignatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error)
	GetHealth(ctx context.Context) (string, error)
}

var _ rpcClient = (*rpc.Client)(nil)

type RPCLedgerClientOptions struct {
	RPCURL              string
	HTTPClient          httpclient.HTTPClientInterface
	ConfirmationTimeout time.Duration
	PollInterval        time.Duration
}

type RPCLedgerClient struct {
	rpc                 rpcClient
	confirmationTimeout time.Duration
	pollInterval        time.Duration
}

var _ LedgerClient = (*RPCLedgerClient)(nil)

func NewRPCLedgerClient(opts RPCLedgerClientOptions) (*RPCLedgerClient, error) {
	if opts.RPCURL == "" {
		return nil, fmt.Errorf("rpc url cannot be empty")
	}
	if opts.ConfirmationTimeout <= 0 {
		opts.ConfirmationTimeout = DefaultConfirmationTimeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = httpclient.DefaultClient()
	}

	jsonRPCClient := jsonrpc.NewClientWithOpts(opts.RPCURL, &jsonrpc.RPCClientOpts{HTTPClient: opts.HTTPClient})
	return &RPCLedgerClient{
		rpc:                 rpc.NewWithCustomRPCClient(jsonRPCClient),
		confirmationTimeout: opts.ConfirmationTimeout,
		pollInterval:        opts.PollInterval,
	}, nil
}

func (c *RPCLedgerClient) AccountExists(ctx context.Context, account solana.PublicKey) (bool, error) {
	_, err := c.rpc.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{Commitment: rpc.CommitmentConfirmed})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("getting account info of %s: %w", account, err)
	}

	return true, nil
}

func (c *RPCLedgerClient) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	result, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("getting latest blockhash: %w", err)
	}
	if result == nil || result.Value == nil {
		return solana.Hash{}, fmt.Errorf("getting latest blockhash: empty response")
	}

	return result.Value.Blockhash, nil
}

// SendTransaction submits a signed transaction once, with preflight simulation at the confirmed commitment.
func (c *RPCLedgerClient) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	signature, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("sending transaction: %w", err)
	}

	return signature, nil
}

// ConfirmTransaction polls the signature status until the transaction reaches the confirmed commitment, fails on chain
// or the confirmation window elapses.
func (c *RPCLedgerClient) ConfirmTransaction(ctx context.Context, signature solana.Signature) error {
	ctx, cancel := context.WithTimeout(ctx, c.confirmationTimeout)
	defer cancel()

	err := retry.Do(
		func() error {
			return c.checkSignatureStatus(ctx, signature)
		},
		retry.Context(ctx),
		retry.Attempts(0),
		retry.Delay(c.pollInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debugf("🔁 waiting for confirmation of %s (attempt %d): %v", signature, n+1, err)
		}),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s within %s", ErrTransactionNotConfirmed, signature, c.confirmationTimeout)
		}
		return err
	}

	return nil
}

func (c *RPCLedgerClient) checkSignatureStatus(ctx context.Context, signature solana.Signature) error {
	statuses, err := c.rpc.GetSignatureStatuses(ctx, false, signature)
	if err != nil {
		return fmt.Errorf("getting signature status: %w", err)
	}
	if statuses == nil || len(statuses.Value) == 0 || statuses.Value[0] == nil {
		return fmt.Errorf("%w: %s is not visible yet", ErrTransactionNotConfirmed, signature)
	}

	status := statuses.Value[0]
	if status.Err != nil {
		return retry.Unrecoverable(fmt.Errorf("%w: %v", ErrTransactionFailed, status.Err))
	}

	switch status.ConfirmationStatus {
	case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
		return nil
	default:
		return fmt.Errorf("%w: %s is %s", ErrTransactionNotConfirmed, signature, status.ConfirmationStatus)
	}
}

func (c *RPCLedgerClient) GetHealth(ctx context.Context) error {
	health, err := c.rpc.GetHealth(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNodeUnhealthy, err)
	}
	if health != rpc.HealthOk {
		return fmt.Errorf("%w: %s", ErrNodeUnhealthy, health)
	}

	return nil
}
