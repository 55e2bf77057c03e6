package ledger

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/token"
)

func FindAssociatedTokenAddress(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("deriving associated token account of %s: %w", owner, err)
	}
	return ata, nil
}

// NewCreateAssociatedTokenAccountInstruction creates the associated token account of `owner` for `mint`, with `payer`
// funding the rent.
func NewCreateAssociatedTokenAccountInstruction(payer, owner, mint solana.PublicKey) (solana.Instruction, error) {
	ix, err := associatedtokenaccount.NewCreateInstruction(payer, owner, mint).ValidateAndBuild()
	if err != nil {
		return nil, fmt.Errorf("building create token account instruction for %s: %w", owner, err)
	}
	return ix, nil
}

// NewTransferInstruction moves `amount` base units from `source` to `destination`. Both are token accounts and `owner`
// must sign for `source`.
func NewTransferInstruction(source, destination, owner solana.PublicKey, amount uint64) (solana.Instruction, error) {
	ix, err := token.NewTransferInstruction(amount, source, destination, owner, nil).ValidateAndBuild()
	if err != nil {
		return nil, fmt.Errorf("building token transfer instruction: %w", err)
	}
	return ix, nil
}
