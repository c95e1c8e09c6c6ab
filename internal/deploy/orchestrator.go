package deploy

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"go.uber.org/zap"

	"launchpad/backend/internal/artifact"
	"launchpad/backend/internal/signer"
)

// Pipeline constants
const (
	// GasLimitBuffer is added on top of the node's gas estimate. A
	// conservative margin against estimation error, not a correctness
	// guarantee.
	GasLimitBuffer uint64 = 100_000

	// ReceiptTimeout bounds how long a submitted transaction is polled for
	ReceiptTimeout = 300 * time.Second
)

// fallbackGasPrice is used when the live price query fails: 1 gwei.
// Deliberately not bounded against network conditions; under real
// congestion this can produce an underpriced, stuck transaction.
var fallbackGasPrice = big.NewInt(params.GWei)

// Orchestrator drives a single contract deployment through the full
// pipeline: derive identity, load artifact, fetch nonce, estimate gas,
// price, build, sign, submit, confirm. Every invocation is one best-effort
// attempt; no step is retried and a timed-out transaction is never
// replaced. Concurrent deployments from the same signing address race on
// the nonce and are the caller's responsibility to avoid.
type Orchestrator struct {
	client       NodeClient
	keyHex       string
	artifactPath string
	logger       *zap.Logger
}

// NewOrchestrator creates a deployment orchestrator. The client is a shared,
// long-lived connection owned by the process bootstrap; key and artifact
// path come from configuration and may be empty, in which case every Deploy
// fails fast with a configuration reason.
func NewOrchestrator(client NodeClient, keyHex, artifactPath string, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		client:       client,
		keyHex:       keyHex,
		artifactPath: artifactPath,
		logger:       logger.Named("deploy"),
	}
}

// Deploy runs the deployment pipeline for one request and returns the
// deployed contract address or a stage-tagged failure. The returned error
// never carries key material or raw internal state.
func (o *Orchestrator) Deploy(ctx context.Context, req Request) (common.Address, *Error) {
	// Preconditions: no network calls until key and path are known present.
	if o.keyHex == "" {
		return common.Address{}, newError(StageInit, KindConfiguration, "private key not configured")
	}
	if o.artifactPath == "" {
		return common.Address{}, newError(StageInit, KindConfiguration, "contract artifact path not configured")
	}
	if o.client == nil {
		return common.Address{}, newError(StageInit, KindConfiguration, "node RPC endpoint not configured")
	}
	if !o.client.IsConnected(ctx) {
		return common.Address{}, newError(StageInit, KindNodeUnreachable, "not connected to network node")
	}

	// Cheap existence check before the parse
	if !artifact.Exists(o.artifactPath) {
		return common.Address{}, newError(StageInit, KindArtifact,
			"contract artifact file not found at %s", o.artifactPath)
	}

	identity, err := signer.Derive(o.keyHex)
	if err != nil {
		return common.Address{}, newError(StageInit, KindKey, "failed to derive signing identity: %v", err)
	}
	defer identity.Zero()

	o.logger.Info("Deploying from account", zap.String("address", identity.Address().Hex()))

	art, err := artifact.Load(o.artifactPath)
	if err != nil {
		return common.Address{}, newError(StageIdentityReady, KindArtifact, "%v", err)
	}

	nonce, err := o.client.PendingNonceAt(ctx, identity.Address())
	if err != nil {
		return common.Address{}, newError(StageArtifactReady, KindRPC, "failed to fetch nonce: %v", err)
	}

	data, err := ConstructorData(art, req)
	if err != nil {
		return common.Address{}, newError(StageNonceReady, KindArtifact, "%v", err)
	}

	gasEstimate, err := o.client.EstimateGas(ctx, ethereum.CallMsg{
		From: identity.Address(),
		Data: data,
	})
	if err != nil {
		return common.Address{}, o.estimationFailure(ctx, err)
	}

	o.logger.Info("Gas estimated", zap.Uint64("gas", gasEstimate))

	gasPrice, err := o.client.SuggestGasPrice(ctx)
	if err != nil {
		// A price-query hiccup should not block the deployment
		o.logger.Warn("Failed to fetch gas price, using fallback",
			zap.String("fallback_wei", fallbackGasPrice.String()),
			zap.Error(err))
		gasPrice = new(big.Int).Set(fallbackGasPrice)
	}

	chainID, err := o.client.ChainID(ctx)
	if err != nil {
		return common.Address{}, newError(StagePriceReady, KindRPC, "failed to fetch chain ID: %v", err)
	}

	unsigned := BuildCreationTx(identity.Address(), data, nonce, gasEstimate+GasLimitBuffer, gasPrice, chainID)

	signedTx, err := identity.SignTx(unsigned.Tx, unsigned.ChainID)
	if err != nil {
		return common.Address{}, newError(StageBuilt, KindSigning, "failed to sign transaction: %v", err)
	}

	if err := o.client.SendTransaction(ctx, signedTx); err != nil {
		return common.Address{}, newError(StageSigned, KindRPC, "failed to submit transaction: %v", err)
	}

	txHash := signedTx.Hash()
	o.logger.Info("Transaction submitted",
		zap.String("tx_hash", txHash.Hex()),
		zap.Uint64("nonce", nonce),
		zap.Uint64("gas_limit", unsigned.Tx.Gas()),
		zap.String("gas_price_wei", gasPrice.String()))

	receipt, err := o.client.WaitForReceipt(ctx, txHash, ReceiptTimeout)
	if err != nil {
		return common.Address{}, newError(StageSubmitted, KindSubmissionTimeout,
			"transaction %s not mined within %s", txHash.Hex(), ReceiptTimeout)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		o.logRevertDiagnostics(ctx, txHash)
		return common.Address{}, newError(StageSubmitted, KindOnChainRevert,
			"transaction %s mined but reverted", txHash.Hex())
	}

	o.logger.Info("Contract deployed",
		zap.String("address", receipt.ContractAddress.Hex()),
		zap.String("tx_hash", txHash.Hex()))

	return receipt.ContractAddress, nil
}

// estimationFailure builds the gas-estimation error, attaching the current
// gas price as diagnostic context when it can be fetched. A secondary
// failure fetching the price never masks the primary failure.
func (o *Orchestrator) estimationFailure(ctx context.Context, estimateErr error) *Error {
	price, priceErr := o.client.SuggestGasPrice(ctx)
	if priceErr != nil {
		o.logger.Warn("Could not fetch gas price for estimation diagnostics", zap.Error(priceErr))
		return newError(StageNonceReady, KindGasEstimation,
			"gas estimation failed: %v; check deployer balance and constructor arguments", estimateErr)
	}
	return newError(StageNonceReady, KindGasEstimation,
		"gas estimation failed: %v (current gas price: %s wei); check deployer balance and constructor arguments",
		estimateErr, price)
}

// logRevertDiagnostics best-effort fetches the reverted transaction for the
// logs. Never fatal.
func (o *Orchestrator) logRevertDiagnostics(ctx context.Context, txHash common.Hash) {
	tx, pending, err := o.client.TransactionByHash(ctx, txHash)
	if err != nil {
		o.logger.Warn("Could not fetch reverted transaction for diagnostics",
			zap.String("tx_hash", txHash.Hex()),
			zap.Error(err))
		return
	}
	o.logger.Error("Transaction mined but reverted",
		zap.String("tx_hash", txHash.Hex()),
		zap.Bool("pending", pending),
		zap.Uint64("gas_limit", tx.Gas()),
		zap.String("gas_price_wei", tx.GasPrice().String()))
}
