package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"go.uber.org/zap"

	"launchpad/backend/internal/config"
	"launchpad/backend/internal/deploy"
)

// MigrationThreshold returns the liquidity migration market cap every token
// launches with: 0.01 ether, in wei.
func MigrationThreshold() *big.Int {
	return new(big.Int).Div(big.NewInt(params.Ether), big.NewInt(100))
}

// DeploymentService turns a validated token request into a deployment
// pipeline invocation. It is stateless per request; the node client it
// holds is the shared, long-lived connection created at process start.
type DeploymentService struct {
	cfg          *config.Config
	orchestrator *deploy.Orchestrator
	logger       *zap.Logger
}

// NewDeploymentService creates a new deployment service. client may be nil
// when no RPC endpoint is configured; deployments then fail with a
// configuration reason.
func NewDeploymentService(client deploy.NodeClient, cfg *config.Config, logger *zap.Logger) *DeploymentService {
	return &DeploymentService{
		cfg:          cfg,
		orchestrator: deploy.NewOrchestrator(client, cfg.Deployer.PrivateKey, cfg.Deployer.ArtifactPath, logger),
		logger:       logger,
	}
}

// DeployToken deploys the token contract for the given name and symbol and
// returns the deployed contract address. Failures come back as a
// stage-tagged *deploy.Error whose reason string is safe to return to the
// caller. Concurrent calls are fine for independent requests, but all
// deployments sign from the same configured address, so their nonces race;
// callers should serialize submissions if that matters to them.
func (s *DeploymentService) DeployToken(ctx context.Context, name, symbol string) (string, *deploy.Error) {
	if s.cfg.Deployer.FeeRecipient == "" {
		return "", &deploy.Error{
			Stage:  deploy.StageInit,
			Kind:   deploy.KindConfiguration,
			Reason: "fee recipient address not configured",
		}
	}
	if !common.IsHexAddress(s.cfg.Deployer.FeeRecipient) {
		return "", &deploy.Error{
			Stage:  deploy.StageInit,
			Kind:   deploy.KindConfiguration,
			Reason: "fee recipient address is not a valid address",
		}
	}

	s.logger.Info("Deploying token",
		zap.String("name", name),
		zap.String("symbol", symbol),
		zap.String("chain", s.cfg.Chain.Name))

	req := deploy.Request{
		Name:               name,
		Symbol:             symbol,
		FeeRecipient:       common.HexToAddress(s.cfg.Deployer.FeeRecipient),
		MigrationThreshold: MigrationThreshold(),
	}

	address, derr := s.orchestrator.Deploy(ctx, req)
	if derr != nil {
		s.logger.Error("Token deployment failed",
			zap.String("name", name),
			zap.String("symbol", symbol),
			zap.String("stage", string(derr.Stage)),
			zap.String("kind", string(derr.Kind)),
			zap.String("reason", derr.Reason))
		return "", derr
	}

	s.logger.Info("Token deployed",
		zap.String("name", name),
		zap.String("symbol", symbol),
		zap.String("address", address.Hex()))

	return address.Hex(), nil
}
