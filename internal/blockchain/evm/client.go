package evm

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"launchpad/backend/internal/deploy"
)

// receiptPollInterval is how often a pending transaction is re-checked
const receiptPollInterval = 2 * time.Second

// connectProbeTimeout bounds the liveness probe in IsConnected
const connectProbeTimeout = 5 * time.Second

// Client wraps an Ethereum node connection and satisfies the deployment
// pipeline's capability interface. One Client is created at process start
// and shared across deployments; the underlying ethclient is safe for
// concurrent queries.
type Client struct {
	ethClient *ethclient.Client
	logger    *zap.Logger
}

var _ deploy.NodeClient = (*Client)(nil)

// Dial connects to an RPC endpoint
func Dial(rpcEndpoint string, logger *zap.Logger) (*Client, error) {
	ethClient, err := ethclient.Dial(rpcEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC endpoint %s: %w", rpcEndpoint, err)
	}

	return &Client{
		ethClient: ethClient,
		logger:    logger.Named("evm"),
	}, nil
}

// Close closes the underlying RPC connection
func (c *Client) Close() {
	c.ethClient.Close()
}

// IsConnected probes the node with a chain ID query. HTTP connections are
// lazy, so a successful Dial says nothing about reachability.
func (c *Client) IsConnected(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, connectProbeTimeout)
	defer cancel()

	_, err := c.ethClient.ChainID(ctx)
	return err == nil
}

// ChainID returns the chain ID reported by the node
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	return c.ethClient.ChainID(ctx)
}

// PendingNonceAt returns the next nonce for an account including pending
// transactions
func (c *Client) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return c.ethClient.PendingNonceAt(ctx, account)
}

// SuggestGasPrice returns the network-suggested gas price
func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return c.ethClient.SuggestGasPrice(ctx)
}

// EstimateGas simulates the call and returns a gas estimate
func (c *Client) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return c.ethClient.EstimateGas(ctx, msg)
}

// SendTransaction submits a signed transaction
func (c *Client) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	return c.ethClient.SendTransaction(ctx, tx)
}

// WaitForReceipt polls for the transaction receipt until it is mined or the
// timeout elapses. The receipt is returned whatever its status; it is the
// caller's job to classify a revert. The transaction is never resubmitted.
func (c *Client) WaitForReceipt(ctx context.Context, txHash common.Hash, timeout time.Duration) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timeout waiting for transaction %s", txHash.Hex())
		case <-ticker.C:
			receipt, err := c.ethClient.TransactionReceipt(ctx, txHash)
			if err == nil && receipt != nil {
				return receipt, nil
			}
			// Not yet mined, keep polling
		}
	}
}

// TransactionByHash fetches a transaction, used for revert diagnostics
func (c *Client) TransactionByHash(ctx context.Context, txHash common.Hash) (*types.Transaction, bool, error) {
	return c.ethClient.TransactionByHash(ctx, txHash)
}
