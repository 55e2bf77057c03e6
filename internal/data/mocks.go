package data

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockClaimRegistry struct {
	mock.Mock
}

var _ ClaimRegistry = (*MockClaimRegistry)(nil)

func (m *MockClaimRegistry) Reserve(ctx context.Context, walletAddress string) (string, error) {
	args := m.Called(ctx, walletAddress)
	return args.String(0), args.Error(1)
}

func (m *MockClaimRegistry) Commit(ctx context.Context, walletAddress, ticket, signature string) error {
	return m.Called(ctx, walletAddress, ticket, signature).Error(0)
}

func (m *MockClaimRegistry) Release(ctx context.Context, walletAddress, ticket string) error {
	return m.Called(ctx, walletAddress, ticket).Error(0)
}

func (m *MockClaimRegistry) Get(ctx context.Context, walletAddress string) (*Claim, error) {
	args := m.Called(ctx, walletAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Claim), args.Error(1)
}

func (m *MockClaimRegistry) IsClaimed(ctx context.Context, walletAddress string) (bool, error) {
	args := m.Called(ctx, walletAddress)
	return args.Bool(0), args.Error(1)
}
