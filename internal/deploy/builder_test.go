package deploy

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"launchpad/backend/internal/artifact"
)

func loadTestArtifact(t *testing.T) *artifact.Artifact {
	t.Helper()
	art, err := artifact.Load(writeTestArtifact(t))
	if err != nil {
		t.Fatalf("failed to load test artifact: %v", err)
	}
	return art
}

func TestConstructorData(t *testing.T) {
	art := loadTestArtifact(t)
	req := testRequest()

	data, err := ConstructorData(art, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.HasPrefix(data, art.Bytecode) {
		t.Error("payload must start with the init bytecode")
	}
	if len(data) <= len(art.Bytecode) {
		t.Error("payload must carry encoded constructor arguments after the bytecode")
	}

	// The encoded tail must end with the argument order the contract
	// declares; the fee recipient is the last static argument.
	tail := data[len(art.Bytecode):]
	if !bytes.Contains(tail, common.LeftPadBytes(req.FeeRecipient.Bytes(), 32)) {
		t.Error("encoded arguments do not contain the fee recipient")
	}
	if !bytes.Contains(tail, common.LeftPadBytes(req.MigrationThreshold.Bytes(), 32)) {
		t.Error("encoded arguments do not contain the migration threshold")
	}
	if !bytes.Contains(tail, []byte(req.Name)) || !bytes.Contains(tail, []byte(req.Symbol)) {
		t.Error("encoded arguments do not contain name and symbol")
	}
}

func TestConstructorDataDeterministic(t *testing.T) {
	art := loadTestArtifact(t)
	req := testRequest()

	first, err := ConstructorData(art, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ConstructorData(art, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("same inputs must produce the same encoded payload")
	}

	changed := req
	changed.FeeRecipient = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	third, err := ConstructorData(art, changed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bytes.Equal(first, third) {
		t.Error("different arguments must change the encoded payload")
	}
}

func TestBuildCreationTx(t *testing.T) {
	art := loadTestArtifact(t)
	from := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	chainID := big.NewInt(11155111)

	data, err := ConstructorData(art, testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	unsigned := BuildCreationTx(from, data, 5, 121000, big.NewInt(1), chainID)

	if unsigned.Tx.To() != nil {
		t.Errorf("expected contract-creation transaction, got call to %s", unsigned.Tx.To().Hex())
	}
	if unsigned.Tx.Nonce() != 5 {
		t.Errorf("expected nonce 5, got %d", unsigned.Tx.Nonce())
	}
	if unsigned.Tx.Gas() != 121000 {
		t.Errorf("expected gas limit 121000, got %d", unsigned.Tx.Gas())
	}
	if unsigned.Tx.GasPrice().Cmp(big.NewInt(1)) != 0 {
		t.Errorf("expected gas price 1, got %s", unsigned.Tx.GasPrice())
	}
	if unsigned.Tx.Value().Sign() != 0 {
		t.Errorf("contract creation must carry no value, got %s", unsigned.Tx.Value())
	}
	if !bytes.Equal(unsigned.Tx.Data(), data) {
		t.Error("transaction payload differs from the built constructor data")
	}
	if unsigned.ChainID.Cmp(chainID) != 0 {
		t.Errorf("expected chain ID %s, got %s", chainID, unsigned.ChainID)
	}
	if unsigned.From != from {
		t.Errorf("expected from %s, got %s", from.Hex(), unsigned.From.Hex())
	}
}

func TestConstructorDataRejectsBadArguments(t *testing.T) {
	// An artifact whose constructor signature does not match the request
	// arguments must fail to encode rather than silently mis-encode.
	badABI := `{
		"abi": [
			{
				"inputs": [{"internalType": "uint256", "name": "onlyArg", "type": "uint256"}],
				"stateMutability": "nonpayable",
				"type": "constructor"
			}
		],
		"bytecode": "0x6080"
	}`

	art, err := artifact.Load(writeArtifactFile(t, badABI))
	if err != nil {
		t.Fatalf("failed to load artifact: %v", err)
	}

	_, err = ConstructorData(art, testRequest())
	if err == nil {
		t.Fatal("expected encoding error for mismatched constructor signature")
	}
	if !strings.Contains(err.Error(), "constructor") {
		t.Errorf("error should mention the constructor: %v", err)
	}
}
