package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"launchpad/backend/internal/api"
	"launchpad/backend/internal/blockchain/evm"
	"launchpad/backend/internal/config"
	"launchpad/backend/internal/deploy"
	"launchpad/backend/internal/service"
)

func main() {
	// .env is optional, real deployments configure the environment directly
	_ = godotenv.Load()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting token deployment service")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.Int("server_port", cfg.Server.Port),
		zap.String("chain", cfg.Chain.Name),
		zap.Bool("private_key_set", cfg.Deployer.PrivateKey != ""),
		zap.String("artifact_path", cfg.Deployer.ArtifactPath))

	// The node connection is created once and shared across deployments.
	// Its absence is not fatal: deployments then fail with a configuration
	// reason instead of crashing the process.
	var node deploy.NodeClient
	var checker api.ConnectionChecker

	if cfg.Chain.RPCEndpoint == "" {
		logger.Warn("RPC_URL not set, deployments will fail until configured")
	} else {
		client, err := evm.Dial(cfg.Chain.RPCEndpoint, logger)
		if err != nil {
			logger.Warn("Failed to initialize node connection",
				zap.String("rpc_url", cfg.Chain.RPCEndpoint),
				zap.Error(err))
		} else {
			defer client.Close()
			node = client
			checker = client

			probeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if client.IsConnected(probeCtx) {
				logger.Info("Connected to network", zap.String("chain", cfg.Chain.Name))
			} else {
				logger.Warn("Could not reach RPC endpoint, deployments will fail until it is reachable",
					zap.String("rpc_url", cfg.Chain.RPCEndpoint))
			}
			cancel()
		}
	}

	deploymentService := service.NewDeploymentService(node, cfg, logger)

	apiHandler := api.NewHandler(deploymentService, checker, cfg.Chain.Name, logger)
	router := api.SetupRouter(apiHandler, logger)

	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	httpServer := &http.Server{
		Addr:        serverAddr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// Deployment requests hold the connection while the receipt poll
		// runs, so the write timeout must exceed the pipeline's own bound.
		WriteTimeout: deploy.ReceiptTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", serverAddr))
		serverErrors <- httpServer.ListenAndServe()
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Fatal("HTTP server error", zap.Error(err))
	case sig := <-quit:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
		httpServer.Close()
	} else {
		logger.Info("HTTP server stopped gracefully")
	}

	logger.Info("Service stopped")
}

func initLogger() (*zap.Logger, error) {
	if os.Getenv("ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
