package workflow

import (
	"context"

	"github.com/dmitrijs2005/idkeeper/internal/client/client"
	"github.com/dmitrijs2005/idkeeper/internal/client/models"
	"github.com/dmitrijs2005/idkeeper/internal/client/services"
)

// VerifyResult is what a verify-with-proof flow produced. Verification is
// set in both verified states. Proof is set only in VerifiedWithProof;
// otherwise ProofNote says why it is missing.
type VerifyResult struct {
	Verification *models.VerificationOutcome
	Proof        *models.ProofReport
	ProofNote    string
	Err          error
}

// VerifyFlow verifies a credential hash and then asks for its on-chain
// proof. A failed proof lookup never fails the flow.
type VerifyFlow struct {
	machine
	creds  services.CredentialService
	result VerifyResult
}

// Result returns the outcome so far. It is complete once State is terminal.
func (f *VerifyFlow) Result() VerifyResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Run executes the flow once. It returns the verification error when the
// flow ends in StateFailed, and ErrFlowFinished on a second call.
func (f *VerifyFlow) Run(ctx context.Context, hash string) (VerifyResult, error) {
	if err := f.start(ctx, StateVerifying); err != nil {
		return VerifyResult{}, err
	}

	v, err := f.creds.Verify(ctx, hash)
	if err != nil {
		f.finish(ctx, StateFailed, func() { f.result = VerifyResult{Err: err} })
		return f.Result(), err
	}

	res := VerifyResult{Verification: v}
	next := StateVerifiedNoProof

	report, err := f.creds.BlockchainProof(ctx, hash)
	switch {
	case err != nil:
		f.log.Warn(ctx, "proof lookup failed", "error", err)
		res.ProofNote = "proof unavailable: " + client.Message(err)
	case report.ProofError != "":
		res.ProofNote = "proof unavailable: " + report.ProofError
	case !report.HasProof():
		res.ProofNote = "no on-chain proof recorded"
	default:
		res.Proof = report
		next = StateVerifiedWithProof
	}

	f.finish(ctx, next, func() { f.result = res })
	return res, nil
}
