package workflow

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/idkeeper/internal/client/models"
	"github.com/dmitrijs2005/idkeeper/internal/client/services"
)

type fakeCreds struct {
	mu    sync.Mutex
	calls []string

	VerifyFn func(ctx context.Context, hash string) (*models.VerificationOutcome, error)
	ProofFn  func(ctx context.Context, hash string) (*models.ProofReport, error)
	CreateFn func(ctx context.Context, t string, data json.RawMessage) (*models.CreationOutcome, error)
	ListFn   func(ctx context.Context) ([]models.CredentialSummary, error)
}

var _ services.CredentialService = (*fakeCreds)(nil)

func (f *fakeCreds) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeCreds) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeCreds) Create(ctx context.Context, t string, data json.RawMessage) (*models.CreationOutcome, error) {
	f.record("create")
	return f.CreateFn(ctx, t, data)
}

func (f *fakeCreds) List(ctx context.Context) ([]models.CredentialSummary, error) {
	f.record("list")
	return f.ListFn(ctx)
}

func (f *fakeCreds) Get(ctx context.Context, id string) (*models.CredentialDetail, error) {
	f.record("get")
	return nil, nil
}

func (f *fakeCreds) Revoke(ctx context.Context, id string) error {
	f.record("revoke")
	return nil
}

func (f *fakeCreds) Verify(ctx context.Context, hash string) (*models.VerificationOutcome, error) {
	f.record("verify")
	return f.VerifyFn(ctx, hash)
}

func (f *fakeCreds) BlockchainProof(ctx context.Context, hash string) (*models.ProofReport, error) {
	f.record("proof")
	return f.ProofFn(ctx, hash)
}

func (f *fakeCreds) BlockchainStatus(ctx context.Context) (*models.BlockchainStatus, error) {
	f.record("chain")
	return &models.BlockchainStatus{}, nil
}

// fakeAuth implements only what the orchestrator uses; the embedded nil
// interface panics on anything else.
type fakeAuth struct {
	services.AuthService
	ProfileFn func(ctx context.Context) (*models.Profile, error)
}

func (f *fakeAuth) Profile(ctx context.Context) (*models.Profile, error) {
	return f.ProfileFn(ctx)
}
