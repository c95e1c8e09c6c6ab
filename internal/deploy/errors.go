package deploy

import "fmt"

// Stage identifies how far the deployment pipeline progressed.
// A failure is tagged with the last stage the pipeline had reached
// when the failing step was attempted.
type Stage string

const (
	StageInit          Stage = "init"
	StageIdentityReady Stage = "identity_ready"
	StageArtifactReady Stage = "artifact_ready"
	StageNonceReady    Stage = "nonce_ready"
	StageGasEstimated  Stage = "gas_estimated"
	StagePriceReady    Stage = "price_ready"
	StageBuilt         Stage = "built"
	StageSigned        Stage = "signed"
	StageSubmitted     Stage = "submitted"
	StageConfirmed     Stage = "confirmed"
)

// Kind classifies deployment failures
type Kind string

const (
	KindConfiguration     Kind = "configuration_error"
	KindArtifact          Kind = "artifact_error"
	KindKey               Kind = "key_error"
	KindNodeUnreachable   Kind = "node_unreachable"
	KindRPC               Kind = "rpc_error"
	KindGasEstimation     Kind = "gas_estimation_failure"
	KindSigning           Kind = "signing_error"
	KindSubmissionTimeout Kind = "submission_timeout"
	KindOnChainRevert     Kind = "on_chain_revert"
)

// Error is the single failure value the pipeline produces. The reason is a
// human-readable string safe to return to callers: it never carries key
// material, stack traces, or raw internal state.
type Error struct {
	Stage  Stage
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (stage %s): %s", e.Kind, e.Stage, e.Reason)
}

// newError creates a stage-tagged deployment error
func newError(stage Stage, kind Kind, format string, args ...interface{}) *Error {
	return &Error{
		Stage:  stage,
		Kind:   kind,
		Reason: fmt.Sprintf(format, args...),
	}
}
