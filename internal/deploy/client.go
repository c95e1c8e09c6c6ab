package deploy

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// NodeClient is the set of node capabilities the deployment pipeline needs.
// The pipeline never speaks the wire protocol directly; the production
// implementation lives in internal/blockchain/evm and test doubles implement
// this interface directly. A NodeClient may be shared across concurrent
// deployments and must be safe for concurrent read-only queries.
type NodeClient interface {
	// IsConnected reports whether the node answers a liveness probe
	IsConnected(ctx context.Context) bool

	// ChainID returns the chain ID reported by the node
	ChainID(ctx context.Context) (*big.Int, error)

	// PendingNonceAt returns the next nonce for an account, including
	// transactions in the mempool
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)

	// SuggestGasPrice returns the network-suggested gas price in wei
	SuggestGasPrice(ctx context.Context) (*big.Int, error)

	// EstimateGas simulates the call and returns a gas estimate
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)

	// SendTransaction submits a signed transaction to the network
	SendTransaction(ctx context.Context, tx *types.Transaction) error

	// WaitForReceipt polls until the transaction is mined or the timeout
	// elapses. It returns the receipt whatever its status; classifying a
	// reverted transaction is the caller's job. It never resubmits.
	WaitForReceipt(ctx context.Context, txHash common.Hash, timeout time.Duration) (*types.Receipt, error)

	// TransactionByHash fetches a transaction for diagnostics
	TransactionByHash(ctx context.Context, txHash common.Hash) (*types.Transaction, bool, error)
}
