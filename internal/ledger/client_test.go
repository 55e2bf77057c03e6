package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/duckdrop/spl-airdrop-backend/internal/serve/httpclient"
)

type mockRPCClient struct {
	mock.Mock
}

var _ rpcClient = (*mockRPCClient)(nil)

func (m *mockRPCClient) GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
	args := m.Called(ctx, account, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rpc.GetAccountInfoResult), args.Error(1)
}

func (m *mockRPCClient) GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	args := m.Called(ctx, commitment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rpc.GetLatestBlockhashResult), args.Error(1)
}

func (m *mockRPCClient) SendTransactionWithOpts(ctx context.Context, transaction *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error) {
	args := m.Called(ctx, transaction, opts)
	return args.Get(0).(solana.Signature), args.Error(1)
}

func (m *mockRPCClient) GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, transactionSignatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	args := m.Called(ctx, searchTransactionHistory, transactionSignatures)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rpc.GetSignatureStatusesResult), args.Error(1)
}

func (m *mockRPCClient) GetHealth(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func newTestLedgerClient(mRPC *mockRPCClient) *RPCLedgerClient {
	return &RPCLedgerClient{
		rpc:                 mRPC,
		confirmationTimeout: 200 * time.Millisecond,
		pollInterval:        10 * time.Millisecond,
	}
}

func signatureStatuses(statuses ...*rpc.SignatureStatusesResult) *rpc.GetSignatureStatusesResult {
	return &rpc.GetSignatureStatusesResult{Value: statuses}
}

func Test_NewRPCLedgerClient(t *testing.T) {
	t.Run("rpc url is required", func(t *testing.T) {
		client, err := NewRPCLedgerClient(RPCLedgerClientOptions{})
		assert.Nil(t, client)
		assert.EqualError(t, err, "rpc url cannot be empty")
	})

	t.Run("defaults are applied", func(t *testing.T) {
		client, err := NewRPCLedgerClient(RPCLedgerClientOptions{RPCURL: "https://api.devnet.solana.com"})
		require.NoError(t, err)
		assert.Equal(t, DefaultConfirmationTimeout, client.confirmationTimeout)
		assert.Equal(t, DefaultPollInterval, client.pollInterval)
		assert.IsType(t, &rpc.Client{}, client.rpc)
	})

	t.Run("custom timings are kept", func(t *testing.T) {
		client, err := NewRPCLedgerClient(RPCLedgerClientOptions{
			RPCURL:              "https://api.devnet.solana.com",
			ConfirmationTimeout: time.Minute,
			PollInterval:        time.Second,
		})
		require.NoError(t, err)
		assert.Equal(t, time.Minute, client.confirmationTimeout)
		assert.Equal(t, time.Second, client.pollInterval)
	})
}

func Test_RPCLedgerClient_AccountExists(t *testing.T) {
	ctx := context.Background()
	account := solana.NewWallet().PublicKey()
	wantOpts := &rpc.GetAccountInfoOpts{Commitment: rpc.CommitmentConfirmed}

	t.Run("account found", func(t *testing.T) {
		mRPC := &mockRPCClient{}
		mRPC.On("GetAccountInfoWithOpts", ctx, account, wantOpts).Return(&rpc.GetAccountInfoResult{}, nil).Once()
		defer mRPC.AssertExpectations(t)

		exists, err := newTestLedgerClient(mRPC).AccountExists(ctx, account)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("account not found", func(t *testing.T) {
		mRPC := &mockRPCClient{}
		mRPC.On("GetAccountInfoWithOpts", ctx, account, wantOpts).Return(nil, rpc.ErrNotFound).Once()
		defer mRPC.AssertExpectations(t)

		exists, err := newTestLedgerClient(mRPC).AccountExists(ctx, account)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("rpc error", func(t *testing.T) {
		mRPC := &mockRPCClient{}
		mRPC.On("GetAccountInfoWithOpts", ctx, account, wantOpts).Return(nil, errors.New("connection refused")).Once()
		defer mRPC.AssertExpectations(t)

		exists, err := newTestLedgerClient(mRPC).AccountExists(ctx, account)
		assert.False(t, exists)
		assert.EqualError(t, err, "getting account info of "+account.String()+": connection refused")
	})
}

func Test_RPCLedgerClient_GetLatestBlockhash(t *testing.T) {
	ctx := context.Background()
	blockhash := solana.HashFromBytes(solana.NewWallet().PublicKey().Bytes())

	t.Run("success", func(t *testing.T) {
		mRPC := &mockRPCClient{}
		mRPC.On("GetLatestBlockhash", ctx, rpc.CommitmentConfirmed).
			Return(&rpc.GetLatestBlockhashResult{Value: &rpc.LatestBlockhashResult{Blockhash: blockhash}}, nil).
			Once()
		defer mRPC.AssertExpectations(t)

		got, err := newTestLedgerClient(mRPC).GetLatestBlockhash(ctx)
		require.NoError(t, err)
		assert.Equal(t, blockhash, got)
	})

	t.Run("empty response", func(t *testing.T) {
		mRPC := &mockRPCClient{}
		mRPC.On("GetLatestBlockhash", ctx, rpc.CommitmentConfirmed).Return(&rpc.GetLatestBlockhashResult{}, nil).Once()
		defer mRPC.AssertExpectations(t)

		_, err := newTestLedgerClient(mRPC).GetLatestBlockhash(ctx)
		assert.EqualError(t, err, "getting latest blockhash: empty response")
	})

	t.Run("rpc error", func(t *testing.T) {
		mRPC := &mockRPCClient{}
		mRPC.On("GetLatestBlockhash", ctx, rpc.CommitmentConfirmed).Return(nil, errors.New("429 Too Many Requests")).Once()
		defer mRPC.AssertExpectations(t)

		_, err := newTestLedgerClient(mRPC).GetLatestBlockhash(ctx)
		assert.EqualError(t, err, "getting latest blockhash: 429 Too Many Requests")
	})
}

func Test_RPCLedgerClient_SendTransaction(t *testing.T) {
	ctx := context.Background()
	tx := &solana.Transaction{}
	wantOpts := rpc.TransactionOpts{SkipPreflight: false, PreflightCommitment: rpc.CommitmentConfirmed}
	signature := solana.SignatureFromBytes(make([]byte, 64))

	t.Run("success", func(t *testing.T) {
		mRPC := &mockRPCClient{}
		mRPC.On("SendTransactionWithOpts", ctx, tx, wantOpts).Return(signature, nil).Once()
		defer mRPC.AssertExpectations(t)

		got, err := newTestLedgerClient(mRPC).SendTransaction(ctx, tx)
		require.NoError(t, err)
		assert.Equal(t, signature, got)
	})

	t.Run("preflight failure is not retried", func(t *testing.T) {
		mRPC := &mockRPCClient{}
		mRPC.On("SendTransactionWithOpts", ctx, tx, wantOpts).
			Return(solana.Signature{}, errors.New("Transaction simulation failed: insufficient funds")).
			Once()
		defer mRPC.AssertExpectations(t)

		_, err := newTestLedgerClient(mRPC).SendTransaction(ctx, tx)
		assert.EqualError(t, err, "sending transaction: Transaction simulation failed: insufficient funds")
	})
}

func Test_RPCLedgerClient_ConfirmTransaction(t *testing.T) {
	ctx := context.Background()
	signature := solana.SignatureFromBytes(make([]byte, 64))
	signatures := []solana.Signature{signature}

	t.Run("confirmed after a few polls", func(t *testing.T) {
		mRPC := &mockRPCClient{}
		mRPC.On("GetSignatureStatuses", mock.Anything, false, signatures).Return(signatureStatuses(nil), nil).Once()
		mRPC.On("GetSignatureStatuses", mock.Anything, false, signatures).
			Return(signatureStatuses(&rpc.SignatureStatusesResult{ConfirmationStatus: rpc.ConfirmationStatusProcessed}), nil).
			Once()
		mRPC.On("GetSignatureStatuses", mock.Anything, false, signatures).
			Return(signatureStatuses(&rpc.SignatureStatusesResult{ConfirmationStatus: rpc.ConfirmationStatusConfirmed}), nil).
			Once()
		defer mRPC.AssertExpectations(t)

		err := newTestLedgerClient(mRPC).ConfirmTransaction(ctx, signature)
		require.NoError(t, err)
	})

	t.Run("finalized counts as confirmed", func(t *testing.T) {
		mRPC := &mockRPCClient{}
		mRPC.On("GetSignatureStatuses", mock.Anything, false, signatures).
			Return(signatureStatuses(&rpc.SignatureStatusesResult{ConfirmationStatus: rpc.ConfirmationStatusFinalized}), nil).
			Once()
		defer mRPC.AssertExpectations(t)

		err := newTestLedgerClient(mRPC).ConfirmTransaction(ctx, signature)
		require.NoError(t, err)
	})

	t.Run("on-chain failure stops polling", func(t *testing.T) {
		mRPC := &mockRPCClient{}
		mRPC.On("GetSignatureStatuses", mock.Anything, false, signatures).
			Return(signatureStatuses(&rpc.SignatureStatusesResult{
				ConfirmationStatus: rpc.ConfirmationStatusConfirmed,
				Err:                map[string]interface{}{"InstructionError": []interface{}{1, "InsufficientFunds"}},
			}), nil).
			Once()
		defer mRPC.AssertExpectations(t)

		err := newTestLedgerClient(mRPC).ConfirmTransaction(ctx, signature)
		assert.ErrorIs(t, err, ErrTransactionFailed)
		assert.ErrorContains(t, err, "InsufficientFunds")
	})

	t.Run("times out when never confirmed", func(t *testing.T) {
		mRPC := &mockRPCClient{}
		mRPC.On("GetSignatureStatuses", mock.Anything, false, signatures).
			Return(signatureStatuses(&rpc.SignatureStatusesResult{ConfirmationStatus: rpc.ConfirmationStatusProcessed}), nil)

		err := newTestLedgerClient(mRPC).ConfirmTransaction(ctx, signature)
		assert.ErrorIs(t, err, ErrTransactionNotConfirmed)
		assert.ErrorContains(t, err, "within 200ms")
	})
}

func Test_RPCLedgerClient_GetHealth(t *testing.T) {
	ctx := context.Background()

	t.Run("healthy", func(t *testing.T) {
		mRPC := &mockRPCClient{}
		mRPC.On("GetHealth", ctx).Return(rpc.HealthOk, nil).Once()
		defer mRPC.AssertExpectations(t)

		require.NoError(t, newTestLedgerClient(mRPC).GetHealth(ctx))
	})

	t.Run("node behind", func(t *testing.T) {
		mRPC := &mockRPCClient{}
		mRPC.On("GetHealth", ctx).Return("", errors.New("Node is behind by 42 slots")).Once()
		defer mRPC.AssertExpectations(t)

		err := newTestLedgerClient(mRPC).GetHealth(ctx)
		assert.ErrorIs(t, err, ErrNodeUnhealthy)
		assert.EqualError(t, err, "rpc node is unhealthy: Node is behind by 42 slots")
	})

	t.Run("unexpected status", func(t *testing.T) {
		mRPC := &mockRPCClient{}
		mRPC.On("GetHealth", ctx).Return("unknown", nil).Once()
		defer mRPC.AssertExpectations(t)

		err := newTestLedgerClient(mRPC).GetHealth(ctx)
		assert.EqualError(t, err, "rpc node is unhealthy: unknown")
	})
}

func Test_RPCLedgerClient_overJSONRPC(t *testing.T) {
	results := map[string]string{
		"getHealth":      `"ok"`,
		"getAccountInfo": `{"context":{"slot":1},"value":null}`,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		result, ok := results[req.Method]
		require.True(t, ok, "unexpected method %s", req.Method)

		w.Header().Set("Content-Type", "application/json")
		_, err := fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, req.ID, result)
		require.NoError(t, err)
	}))
	defer server.Close()

	client, err := NewRPCLedgerClient(RPCLedgerClientOptions{RPCURL: server.URL, HTTPClient: server.Client()})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, client.GetHealth(ctx))

	exists, err := client.AccountExists(ctx, solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.False(t, exists)
}

func Test_RPCLedgerClient_transportError(t *testing.T) {
	mHTTPClient := &httpclient.HttpClientMock{}
	mHTTPClient.
		On("Do", mock.AnythingOfType("*http.Request")).
		Return(nil, errors.New("dial tcp 127.0.0.1:8899: connect: connection refused")).
		Once()
	defer mHTTPClient.AssertExpectations(t)

	client, err := NewRPCLedgerClient(RPCLedgerClientOptions{RPCURL: "http://127.0.0.1:8899", HTTPClient: mHTTPClient})
	require.NoError(t, err)

	err = client.GetHealth(context.Background())
	require.ErrorIs(t, err, ErrNodeUnhealthy)
	assert.Contains(t, err.Error(), "connection refused")
}
