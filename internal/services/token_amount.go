package services

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

const MaxTokenDecimals = 18

var maxBaseUnits = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)

// TokenAmount is the fixed airdrop payout, in human units, of a token with the given number of decimals.
type TokenAmount struct {
	Amount   decimal.Decimal
	Decimals uint8
	Symbol   string
	base     uint64
}

func NewTokenAmount(amount decimal.Decimal, decimals uint8, symbol string) (TokenAmount, error) {
	if !amount.IsPositive() {
		return TokenAmount{}, fmt.Errorf("airdrop amount must be positive, got %s", amount)
	}
	if decimals > MaxTokenDecimals {
		return TokenAmount{}, fmt.Errorf("token decimals must be between 0 and %d, got %d", MaxTokenDecimals, decimals)
	}
	if symbol == "" {
		return TokenAmount{}, fmt.Errorf("token symbol cannot be empty")
	}

	baseUnits := amount.Shift(int32(decimals))
	if !baseUnits.IsInteger() {
		return TokenAmount{}, fmt.Errorf("airdrop amount %s has more than %d decimal places", amount, decimals)
	}
	if baseUnits.GreaterThan(maxBaseUnits) {
		return TokenAmount{}, fmt.Errorf("airdrop amount %s overflows the token base units", amount)
	}

	return TokenAmount{
		Amount:   amount,
		Decimals: decimals,
		Symbol:   symbol,
		base:     baseUnits.BigInt().Uint64(),
	}, nil
}

// BaseUnits is the amount in the smallest indivisible unit of the token, as written in the transfer instruction.
func (a TokenAmount) BaseUnits() uint64 {
	return a.base
}

func (a TokenAmount) SuccessMessage() string {
	return fmt.Sprintf("%s %s tokens sent successfully!", a.Amount.String(), a.Symbol)
}
