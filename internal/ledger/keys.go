package ledger

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrInvalidWalletAddress = errors.New("invalid wallet address")
	ErrInvalidPrivateKey    = errors.New("invalid private key")
)

// ParseWalletAddress decodes a base58 encoded 32-byte public key.
func ParseWalletAddress(address string) (solana.PublicKey, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return solana.PublicKey{}, fmt.Errorf("%w: address is empty", ErrInvalidWalletAddress)
	}

	publicKey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %w", ErrInvalidWalletAddress, err)
	}

	return publicKey, nil
}

// ParsePrivateKey accepts the JSON byte array written by `solana-keygen` or a base58 encoded 64-byte secret key.
func ParsePrivateKey(secret string) (solana.PrivateKey, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, fmt.Errorf("%w: key is empty", ErrInvalidPrivateKey)
	}

	var keyBytes []byte
	if strings.HasPrefix(secret, "[") {
		var ints []int
		if err := json.Unmarshal([]byte(secret), &ints); err != nil {
			return nil, fmt.Errorf("%w: not a JSON byte array", ErrInvalidPrivateKey)
		}
		keyBytes = make([]byte, len(ints))
		for i, v := range ints {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("%w: byte out of range at index %d", ErrInvalidPrivateKey, i)
			}
			keyBytes[i] = byte(v)
		}
	} else {
		decoded, err := solana.PrivateKeyFromBase58(secret)
		if err != nil {
			return nil, fmt.Errorf("%w: not a base58 string", ErrInvalidPrivateKey)
		}
		keyBytes = decoded
	}

	if len(keyBytes) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidPrivateKey, ed25519.PrivateKeySize, len(keyBytes))
	}

	derived := ed25519.NewKeyFromSeed(keyBytes[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], keyBytes[ed25519.SeedSize:]) {
		return nil, fmt.Errorf("%w: public key does not match the secret seed", ErrInvalidPrivateKey)
	}

	return solana.PrivateKey(keyBytes), nil
}
