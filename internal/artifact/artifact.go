package artifact

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Sentinel errors for artifact loading failures
var (
	ErrNotFound  = errors.New("artifact file not found")
	ErrMalformed = errors.New("artifact file malformed")
)

// Artifact is a compiled contract: its interface description and the
// executable init bytecode. Loaded fresh for every deployment attempt;
// callers must not assume caching since the file may change between
// deployments.
type Artifact struct {
	ABI      abi.ABI
	RawABI   json.RawMessage
	Bytecode []byte
}

// document is the on-disk artifact format produced by the contract compiler
type document struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode string          `json:"bytecode"`
}

// Exists reports whether path resolves to a regular file. Used as a cheap
// fail-fast check before the more expensive parse.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Load reads and validates a compiled contract artifact from path
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: not valid JSON: %v", ErrMalformed, err)
	}

	if len(doc.ABI) == 0 || string(doc.ABI) == "null" {
		return nil, fmt.Errorf("%w: missing abi field", ErrMalformed)
	}
	if doc.Bytecode == "" {
		return nil, fmt.Errorf("%w: missing bytecode field", ErrMalformed)
	}

	parsedABI, err := abi.JSON(bytes.NewReader(doc.ABI))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse ABI: %v", ErrMalformed, err)
	}

	bytecode, err := hex.DecodeString(strings.TrimPrefix(doc.Bytecode, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: bytecode is not valid hex: %v", ErrMalformed, err)
	}
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("%w: empty bytecode", ErrMalformed)
	}

	return &Artifact{
		ABI:      parsedABI,
		RawABI:   doc.ABI,
		Bytecode: bytecode,
	}, nil
}
