package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/idkeeper/internal/client/client"
	"github.com/dmitrijs2005/idkeeper/internal/client/models"
	"github.com/dmitrijs2005/idkeeper/internal/client/session"
)

// CredentialService manages the signed-in user's credentials and the public
// verification of credential hashes.
//
// Owner operations (Create, List, Get, Revoke) need a session and take a
// credential id. Public operations (Verify, BlockchainProof) take a content
// hash and work without one. Nothing is cached: every call goes to the
// service, and Create and Revoke are never retried.
type CredentialService interface {
	Create(ctx context.Context, credentialType string, data json.RawMessage) (*models.CreationOutcome, error)
	List(ctx context.Context) ([]models.CredentialSummary, error)
	Get(ctx context.Context, credentialID string) (*models.CredentialDetail, error)
	Revoke(ctx context.Context, credentialID string) error
	Verify(ctx context.Context, hash string) (*models.VerificationOutcome, error)
	BlockchainProof(ctx context.Context, hash string) (*models.ProofReport, error)
	BlockchainStatus(ctx context.Context) (*models.BlockchainStatus, error)
}

type credentialService struct {
	client   client.Client
	sessions session.Store
}

// NewCredentialService constructs a CredentialService over the given client.
func NewCredentialService(c client.Client, sessions session.Store) CredentialService {
	return &credentialService{client: c, sessions: sessions}
}

// ParseCredentialData turns user-entered text into a credential payload. The
// text must be a JSON object; it is returned compacted.
func ParseCredentialData(text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("credential data is required")
	}
	if !json.Valid([]byte(text)) {
		return nil, invalid("credential data is not valid JSON")
	}
	if text[0] != '{' {
		return nil, invalid("credential data must be a JSON object")
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(text)); err != nil {
		return nil, invalid("credential data is not valid JSON")
	}
	return json.RawMessage(buf.Bytes()), nil
}

func (s *credentialService) Create(ctx context.Context, credentialType string, data json.RawMessage) (*models.CreationOutcome, error) {
	credentialType = strings.TrimSpace(credentialType)
	if credentialType == "" {
		return nil, invalid("credential type is required")
	}
	if len(data) == 0 || !json.Valid(data) {
		return nil, invalid("credential data is not valid JSON")
	}
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	out, err := s.client.CreateCredential(ctx, credentialType, data)
	if err != nil {
		return nil, fmt.Errorf("create credential: %w", err)
	}
	return out, nil
}

func (s *credentialService) List(ctx context.Context) ([]models.CredentialSummary, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	list, err := s.client.ListCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	return list, nil
}

func (s *credentialService) Get(ctx context.Context, credentialID string) (*models.CredentialDetail, error) {
	id, err := requireArg(credentialID, "credential id")
	if err != nil {
		return nil, err
	}
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	d, err := s.client.GetCredential(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return d, nil
}

func (s *credentialService) Revoke(ctx context.Context, credentialID string) error {
	id, err := requireArg(credentialID, "credential id")
	if err != nil {
		return err
	}
	if err := s.requireSession(); err != nil {
		return err
	}

	if err := s.client.RevokeCredential(ctx, id); err != nil {
		return fmt.Errorf("revoke credential: %w", err)
	}
	return nil
}

func (s *credentialService) Verify(ctx context.Context, hash string) (*models.VerificationOutcome, error) {
	hash, err := requireArg(hash, "credential hash")
	if err != nil {
		return nil, err
	}

	v, err := s.client.VerifyCredential(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("verify credential: %w", err)
	}
	return v, nil
}

func (s *credentialService) BlockchainProof(ctx context.Context, hash string) (*models.ProofReport, error) {
	hash, err := requireArg(hash, "credential hash")
	if err != nil {
		return nil, err
	}

	r, err := s.client.GetBlockchainProof(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("blockchain proof: %w", err)
	}
	return r, nil
}

func (s *credentialService) BlockchainStatus(ctx context.Context) (*models.BlockchainStatus, error) {
	st, err := s.client.BlockchainStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("blockchain status: %w", err)
	}
	return st, nil
}

func (s *credentialService) requireSession() error {
	if !s.sessions.Get().Authenticated() {
		return notSignedIn()
	}
	return nil
}

func requireArg(v, name string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", invalid(name + " is required")
	}
	return v, nil
}
