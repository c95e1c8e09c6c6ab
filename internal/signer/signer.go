package signer

import (
	"crypto/ecdsa"
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Errors returned by this package. ErrInvalidKey deliberately carries no
// detail from the underlying parser so that no fragment of the key material
// can surface in logs or responses.
var (
	ErrInvalidKey = errors.New("invalid private key")
	ErrZeroed     = errors.New("signing identity has been zeroed")
)

// Identity is a signing identity derived from a private key. It never
// serializes or prints its key; its lifetime is a single deployment call
// and callers must Zero it on every exit path.
type Identity struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// Derive creates an Identity from hex-encoded private key material.
// A 0x prefix and surrounding whitespace are tolerated.
func Derive(secretKeyHex string) (*Identity, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(secretKeyHex), "0x")

	key, err := crypto.HexToECDSA(trimmed)
	if err != nil {
		return nil, ErrInvalidKey
	}

	return &Identity{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the account address derived from the key
func (i *Identity) Address() common.Address {
	return i.address
}

// SignTx signs a transaction with EIP-155 replay protection for the given
// chain. The signature over the canonical encoding is deterministic for a
// given transaction; the input transaction is not mutated.
func (i *Identity) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	if i.key == nil {
		return nil, ErrZeroed
	}
	return types.SignTx(tx, types.NewEIP155Signer(chainID), i.key)
}

// Zero scrubs the private scalar from memory. Safe to call more than once;
// any later SignTx fails with ErrZeroed.
func (i *Identity) Zero() {
	if i.key == nil {
		return
	}
	words := i.key.D.Bits()
	for idx := range words {
		words[idx] = 0
	}
	i.key.D.SetInt64(0)
	i.key = nil
}

// String returns the address only, never the key
func (i *Identity) String() string {
	return i.address.Hex()
}
