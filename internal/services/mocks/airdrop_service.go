package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/duckdrop/spl-airdrop-backend/internal/services"
)

type MockAirdropService struct {
	mock.Mock
}

var _ services.AirdropServiceInterface = (*MockAirdropService)(nil)

func (s *MockAirdropService) Claim(ctx context.Context, walletAddress string) (*services.ClaimResult, error) {
	args := s.Called(ctx, walletAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ClaimResult), args.Error(1)
}
