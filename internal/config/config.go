package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the service
type Config struct {
	Server   ServerConfig
	Chain    ChainConfig
	Deployer DeployerConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
}

// ChainConfig holds configuration for the target EVM chain
type ChainConfig struct {
	Name        string
	RPCEndpoint string
}

// DeployerConfig holds deployment wallet and artifact configuration.
// PrivateKey and ArtifactPath may legitimately be empty at startup: a
// deployment attempted without them fails with a configuration reason
// instead of crashing the process.
type DeployerConfig struct {
	PrivateKey   string // hex-encoded, 0x prefix optional
	ArtifactPath string // compiled contract artifact (JSON with abi + bytecode)
	FeeRecipient string // where launch fees are sent
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Chain: ChainConfig{
			Name:        getEnv("CHAIN_NAME", "sepolia"),
			RPCEndpoint: getEnv("RPC_URL", ""),
		},
		Deployer: DeployerConfig{
			PrivateKey:   strings.TrimSpace(getEnv("PRIVATE_KEY", "")),
			ArtifactPath: getEnv("CONTRACT_ARTIFACT_PATH", ""),
			FeeRecipient: getEnv("FEE_RECIPIENT_ADDRESS", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid. Deployment-time values
// (key, artifact path, fee recipient) are deliberately not required here;
// their absence is reported per deployment attempt.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Chain.Name == "" {
		return fmt.Errorf("chain name is required")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
