package client

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/idkeeper/internal/client/models"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	WalletAddress string `json:"wallet_address"`
	FullName      string `json:"full_name"`
}

// AuthResult is what login and register hand back: a token and the user it
// belongs to.
type AuthResult struct {
	Token string
	User  models.UserSummary
}

// Client is the typed contract of the identity service.
type Client interface {
	Close() error

	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	VerifyToken(ctx context.Context, token string) (*models.TokenInfo, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, fullName string) (*models.UserSummary, error)

	CreateCredential(ctx context.Context, credentialType string, data json.RawMessage) (*models.CreationOutcome, error)
	ListCredentials(ctx context.Context) ([]models.CredentialSummary, error)
	GetCredential(ctx context.Context, credentialID string) (*models.CredentialDetail, error)
	RevokeCredential(ctx context.Context, credentialID string) error
	VerifyCredential(ctx context.Context, hash string) (*models.VerificationOutcome, error)
	GetBlockchainProof(ctx context.Context, hash string) (*models.ProofReport, error)

	Health(ctx context.Context) (*models.HealthStatus, error)
	BlockchainStatus(ctx context.Context) (*models.BlockchainStatus, error)
}
