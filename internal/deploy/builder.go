package deploy

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"launchpad/backend/internal/artifact"
)

// Request describes one token to deploy. Immutable once constructed by the
// caller.
type Request struct {
	Name               string
	Symbol             string
	FeeRecipient       common.Address
	MigrationThreshold *big.Int // wei
}

// UnsignedTx pairs an unsigned contract-creation transaction with the chain
// it is bound to and the account it will be sent from. The chain ID becomes
// part of the signature, not the transaction payload, so it travels
// alongside until signing.
type UnsignedTx struct {
	Tx      *types.Transaction
	ChainID *big.Int
	From    common.Address
}

// ConstructorData encodes the deployment payload: init bytecode followed by
// the ABI-encoded constructor arguments in the order the contract declares
// them: name, symbol, migrationThreshold, feeRecipient. The order is part
// of the on-chain ABI contract and must not change.
func ConstructorData(art *artifact.Artifact, req Request) ([]byte, error) {
	args, err := art.ABI.Pack("", req.Name, req.Symbol, req.MigrationThreshold, req.FeeRecipient)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor arguments: %w", err)
	}
	return append(append([]byte{}, art.Bytecode...), args...), nil
}

// BuildCreationTx assembles an unsigned contract-creation transaction.
// Pure: the same inputs always produce the same encoded payload. The gas
// limit passed in must already include any safety buffer.
func BuildCreationTx(from common.Address, data []byte, nonce, gasLimit uint64, gasPrice, chainID *big.Int) *UnsignedTx {
	return &UnsignedTx{
		Tx:      types.NewContractCreation(nonce, big.NewInt(0), gasLimit, gasPrice, data),
		ChainID: chainID,
		From:    from,
	}
}
