package workflow

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/idkeeper/internal/client/models"
	"github.com/dmitrijs2005/idkeeper/internal/client/services"
)

// CreateResult is what a create-with-report flow produced.
type CreateResult struct {
	Outcome *models.CreationOutcome
	Err     error
}

// Simulated reports whether the credential was anchored by a simulated
// transaction rather than a live network.
func (r CreateResult) Simulated() bool {
	return r.Outcome != nil && r.Outcome.BlockchainTx != nil && r.Outcome.BlockchainTx.Simulated
}

// CreateFlow creates one credential. It is single-shot: creation is not
// idempotent and is never retried.
type CreateFlow struct {
	machine
	creds  services.CredentialService
	result CreateResult
}

func (f *CreateFlow) Result() CreateResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

func (f *CreateFlow) Run(ctx context.Context, credentialType string, data json.RawMessage) (CreateResult, error) {
	if err := f.start(ctx, StateCreating); err != nil {
		return CreateResult{}, err
	}

	out, err := f.creds.Create(ctx, credentialType, data)
	if err != nil {
		res := CreateResult{Err: err}
		f.finish(ctx, StateFailed, func() { f.result = res })
		return res, err
	}

	res := CreateResult{Outcome: out}
	if res.Simulated() {
		f.log.Info(ctx, "credential anchored by simulated transaction", "hash", out.CredentialHash)
	}
	f.finish(ctx, StateCreated, func() { f.result = res })
	return res, nil
}
