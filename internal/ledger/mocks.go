package ledger

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/mock"
)

type MockLedgerClient struct {
	mock.Mock
}

var _ LedgerClient = (*MockLedgerClient)(nil)

func (m *MockLedgerClient) AccountExists(ctx context.Context, account solana.PublicKey) (bool, error) {
	args := m.Called(ctx, account)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerClient) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	args := m.Called(ctx)
	return args.Get(0).(solana.Hash), args.Error(1)
}

func (m *MockLedgerClient) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(solana.Signature), args.Error(1)
}

func (m *MockLedgerClient) ConfirmTransaction(ctx context.Context, signature solana.Signature) error {
	return m.Called(ctx, signature).Error(0)
}

func (m *MockLedgerClient) GetHealth(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
