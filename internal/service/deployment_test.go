package service

import (
	"context"
	"math/big"
	"testing"

	"go.uber.org/zap"

	"launchpad/backend/internal/config"
	"launchpad/backend/internal/deploy"
)

func TestMigrationThreshold(t *testing.T) {
	// 0.01 ether in wei
	want := big.NewInt(10_000_000_000_000_000)
	if got := MigrationThreshold(); got.Cmp(want) != 0 {
		t.Errorf("expected %s wei, got %s", want, got)
	}
}

func TestDeployTokenFeeRecipientValidation(t *testing.T) {
	tests := []struct {
		name         string
		feeRecipient string
	}{
		{
			name:         "missing fee recipient",
			feeRecipient: "",
		},
		{
			name:         "invalid fee recipient",
			feeRecipient: "not-an-address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Chain: config.ChainConfig{Name: "sepolia"},
				Deployer: config.DeployerConfig{
					PrivateKey:   "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
					ArtifactPath: "/artifacts/Token.json",
					FeeRecipient: tt.feeRecipient,
				},
			}

			svc := NewDeploymentService(nil, cfg, zap.NewNop())

			_, derr := svc.DeployToken(context.Background(), "Moon Token", "MOON")
			if derr == nil {
				t.Fatal("expected failure, got success")
			}
			if derr.Kind != deploy.KindConfiguration {
				t.Errorf("expected kind %s, got %s", deploy.KindConfiguration, derr.Kind)
			}
			if derr.Stage != deploy.StageInit {
				t.Errorf("expected stage %s, got %s", deploy.StageInit, derr.Stage)
			}
		})
	}
}

func TestDeployTokenNoClient(t *testing.T) {
	cfg := &config.Config{
		Chain: config.ChainConfig{Name: "sepolia"},
		Deployer: config.DeployerConfig{
			PrivateKey:   "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
			ArtifactPath: "/artifacts/Token.json",
			FeeRecipient: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		},
	}

	svc := NewDeploymentService(nil, cfg, zap.NewNop())

	_, derr := svc.DeployToken(context.Background(), "Moon Token", "MOON")
	if derr == nil {
		t.Fatal("expected failure, got success")
	}
	if derr.Kind != deploy.KindConfiguration {
		t.Errorf("expected kind %s, got %s", deploy.KindConfiguration, derr.Kind)
	}
}
